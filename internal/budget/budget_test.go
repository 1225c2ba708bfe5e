package budget

import (
	"testing"

	"github.com/vtcode/vtcode/pkg/vtmodels"
)

func TestRecordThresholds(t *testing.T) {
	tr := New(Config{ContextWindow: 1000})

	cases := []struct {
		used int
		want vtmodels.CompactMode
	}{
		{100, vtmodels.CompactModeNormal},
		{899, vtmodels.CompactModeNormal},
		{900, vtmodels.CompactModeCompact},
		{949, vtmodels.CompactModeCompact},
		{950, vtmodels.CompactModeCheckpoint},
		{1000, vtmodels.CompactModeCheckpoint},
	}

	for _, tc := range cases {
		got := tr.Record("s1", tc.used)
		if got != tc.want {
			t.Errorf("Record(%d) = %v, want %v", tc.used, got, tc.want)
		}
	}
}

func TestRecordMonotonic(t *testing.T) {
	tr := New(Config{ContextWindow: 1000})
	tr.Record("s1", 500)
	tr.Record("s1", 100) // lower value must not decrease usage
	if got := tr.Usage("s1"); got != 500 {
		t.Fatalf("Usage() = %d, want monotonic 500", got)
	}
}

func TestResetClearsSession(t *testing.T) {
	tr := New(Config{ContextWindow: 1000})
	tr.Record("s1", 950)
	tr.Reset("s1")
	if got := tr.Mode("s1"); got != vtmodels.CompactModeNormal {
		t.Fatalf("Mode() after reset = %v, want Normal", got)
	}
}
