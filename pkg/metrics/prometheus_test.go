package metrics

import "testing"

func TestNewReturnsSharedRecorder(t *testing.T) {
	// Collectors live on the default registry; a second construction must
	// reuse them instead of re-registering and panicking.
	first := New()
	second := New()
	if first == nil {
		t.Fatalf("expected a recorder")
	}
	if first != second {
		t.Fatalf("expected the same recorder instance")
	}
}

func TestRecorderMethods(t *testing.T) {
	r := New()
	r.RecordEvaluation("kw", "HOT_OPPORTUNITY")
	r.RecordError("stream")
	r.RecordPulseScore("kw", 7.5)
	r.RecordLatency("evaluate", 0.05)
}
