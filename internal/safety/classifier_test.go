package safety

import (
	"testing"

	"github.com/vtcode/vtcode/pkg/vtmodels"
)

func TestClassifySpotChecks(t *testing.T) {
	c := New()

	cases := []struct {
		name    string
		cmd     string
		verdict vtmodels.SafetyVerdict
	}{
		{"git status allows", "git status", vtmodels.SafetyAllow},
		{"git reset hard denies", "git reset --hard HEAD~1", vtmodels.SafetyDeny},
		{"find delete denies", "find . -delete", vtmodels.SafetyDeny},
		{"find alone is unknown", "find .", vtmodels.SafetyUnknown},
		{"rm -rf denies", "rm -rf /tmp/x", vtmodels.SafetyDeny},
		{"pipe to shell denies via metachar scan", "git status | rm -rf /", vtmodels.SafetyDeny},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(tc.cmd).Verdict
			if got != tc.verdict {
				t.Fatalf("Classify(%q) = %v, want %v", tc.cmd, got, tc.verdict)
			}
		})
	}
}

func TestClassifyWindowsPowerShellEncodedCommand(t *testing.T) {
	c := NewForWindows()
	got := c.Classify(`powershell -EncodedCommand SQBFAFgA`).Verdict
	if got != vtmodels.SafetyDeny {
		t.Fatalf("expected deny, got %v", got)
	}
}

func TestClassifyEmptyCommand(t *testing.T) {
	c := New()
	d := c.Classify("   ")
	if d.Verdict != vtmodels.SafetyUnknown {
		t.Fatalf("expected unknown for empty command, got %v", d.Verdict)
	}
}
