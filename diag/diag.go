// Copyright 2025 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diag implements the per-compilation diagnostics sink that
// replaces the original's global warningLevel/scanFile/lineNum state
// (spec.md section 9). A Sink is created fresh for each compilation
// session and accumulates a structured (file, line, level, message)
// record for each diagnostic, as well as the running error count that
// governs abort thresholds (spec.md section 7).
package diag

import "fmt"

// Level is the severity of a diagnostic message.
type Level int

const (
	Info Level = iota
	Action
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Action:
		return "action"
	case Warn:
		return "warning"
	case Error:
		return "error"
	}
	return "unknown"
}

// Message is a single structured diagnostic record.
type Message struct {
	File  string
	Line  int
	Level Level
	Text  string
}

func (m Message) String() string {
	if m.File == "" {
		return fmt.Sprintf("%s: %s", m.Level, m.Text)
	}
	return fmt.Sprintf("%s:%d: %s: %s", m.File, m.Line, m.Level, m.Text)
}

// AbortThreshold is the default number of Error-level diagnostics after
// which a compilation session aborts (spec.md section 7).
const AbortThreshold = 10

// Sink accumulates diagnostics for a single compilation session. The
// zero value is ready to use.
type Sink struct {
	Messages []Message
	errors   int
	file     string
	line     int
}

// SetPosition records the current file/line used to stamp subsequent
// diagnostics, mirroring the original's scanFile/lineNum globals but
// scoped to this Sink.
func (s *Sink) SetPosition(file string, line int) {
	s.file, s.line = file, line
}

func (s *Sink) emit(level Level, format string, args ...any) {
	s.Messages = append(s.Messages, Message{
		File:  s.file,
		Line:  s.line,
		Level: level,
		Text:  fmt.Sprintf(format, args...),
	})
	if level == Error {
		s.errors++
	}
}

// Infof records an info-level diagnostic.
func (s *Sink) Infof(format string, args ...any) { s.emit(Info, format, args...) }

// Actionf records an action-level diagnostic: the recovery taken in
// response to a preceding warning or error ("Using first definition",
// "Ignoring", "Using default").
func (s *Sink) Actionf(format string, args ...any) { s.emit(Action, format, args...) }

// Warnf records a warning-level diagnostic.
func (s *Sink) Warnf(format string, args ...any) { s.emit(Warn, format, args...) }

// Errorf records an error-level diagnostic and increments the session
// error count.
func (s *Sink) Errorf(format string, args ...any) { s.emit(Error, format, args...) }

// CollisionLevel reports the warning level that should be used for a
// semantic-collision diagnostic, depending on whether both definitions
// came from the same source unit (spec.md section 4.5/7): same-unit
// collisions may be bumped to a higher level than cross-unit ones.
func CollisionLevel(sameUnit bool) Level {
	if sameUnit {
		return Warn
	}
	return Info
}

// ErrorCount returns the number of Error-level diagnostics recorded so
// far.
func (s *Sink) ErrorCount() int { return s.errors }

// ShouldAbort reports whether the session has exceeded AbortThreshold
// errors and the current file should be abandoned.
func (s *Sink) ShouldAbort() bool { return s.errors > AbortThreshold }

// Failed reports whether the overall compilation should fail (any error
// was recorded).
func (s *Sink) Failed() bool { return s.errors > 0 }
