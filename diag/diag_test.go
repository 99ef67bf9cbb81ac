package diag

import "testing"

func TestAbortThreshold(t *testing.T) {
	var s Sink
	for i := 0; i < AbortThreshold; i++ {
		s.Errorf("error %d", i)
	}
	if s.ShouldAbort() {
		t.Fatalf("should not abort at exactly threshold errors")
	}
	s.Errorf("one more")
	if !s.ShouldAbort() {
		t.Fatalf("should abort past threshold errors")
	}
}

func TestFailed(t *testing.T) {
	var s Sink
	if s.Failed() {
		t.Fatalf("fresh sink should not have failed")
	}
	s.Warnf("just a warning")
	if s.Failed() {
		t.Fatalf("warnings alone should not fail compilation")
	}
	s.Errorf("an error")
	if !s.Failed() {
		t.Fatalf("an error should fail compilation")
	}
}

func TestMessageString(t *testing.T) {
	m := Message{File: "us.xkb", Line: 3, Level: Warn, Text: "oops"}
	if got, want := m.String(), "us.xkb:3: warning: oops"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
