package safety

import (
	"strings"

	"github.com/vtcode/vtcode/pkg/vtmodels"
)

// windowsRules mirrors the Rust implementation's enhanced Windows
// analyzer: PowerShell's encoded/hidden execution flags and
// alternate-data-stream paths are denied outright since argv-level
// inspection cannot see what they actually run.
func windowsRules() []Rule {
	return []Rule{
		{
			Name:    "powershell_encoded_command",
			Verdict: vtmodels.SafetyDeny,
			Reason:  "PowerShell -EncodedCommand hides the actual script from static analysis",
			Match: func(program string, argv []string, raw string) bool {
				if !isPowerShell(program) {
					return false
				}
				lower := strings.ToLower(raw)
				return strings.Contains(lower, "-encodedcommand") || strings.Contains(lower, "-enc ") || strings.Contains(lower, "-e ")
			},
		},
		{
			Name:    "powershell_invoke_expression",
			Verdict: vtmodels.SafetyDeny,
			Reason:  "Invoke-Expression/IEX executes arbitrary dynamically-built strings",
			Match: func(program string, argv []string, raw string) bool {
				if !isPowerShell(program) {
					return false
				}
				lower := strings.ToLower(raw)
				return strings.Contains(lower, "invoke-expression") || strings.Contains(lower, "iex ") || strings.Contains(lower, "iex(")
			},
		},
		{
			Name:    "powershell_download_string",
			Verdict: vtmodels.SafetyDeny,
			Reason:  "remote download-and-execute pattern",
			Match: func(program string, argv []string, raw string) bool {
				if !isPowerShell(program) {
					return false
				}
				lower := strings.ToLower(raw)
				return strings.Contains(lower, "downloadstring") || strings.Contains(lower, "downloadfile") ||
					strings.Contains(lower, "net.webclient")
			},
		},
		{
			Name:    "ads_path",
			Verdict: vtmodels.SafetyDeny,
			Reason:  "alternate-data-stream path can hide payload content",
			Match: func(program string, argv []string, raw string) bool {
				for _, a := range argv[1:] {
					if strings.Contains(a, ":") && !strings.Contains(a, "://") && len(a) > 2 {
						if idx := strings.Index(a, ":"); idx > 1 && idx < len(a)-1 {
							return true
						}
					}
				}
				return false
			},
		},
		{
			Name:    "bypass_execution_policy",
			Verdict: vtmodels.SafetyDeny,
			Reason:  "ExecutionPolicy Bypass disables script signature checks",
			Match: func(program string, argv []string, raw string) bool {
				if !isPowerShell(program) {
					return false
				}
				lower := strings.ToLower(raw)
				return strings.Contains(lower, "bypass") && strings.Contains(lower, "executionpolicy")
			},
		},
	}
}

func isPowerShell(program string) bool {
	switch strings.ToLower(program) {
	case "powershell", "powershell.exe", "pwsh", "pwsh.exe":
		return true
	default:
		return false
	}
}

// NewForWindows builds a Classifier with the Windows-specific rules
// layered in front of the default table, so PowerShell-specific denies
// take priority over the generic argv rules.
func NewForWindows() *Classifier {
	c := &Classifier{}
	c.rules = append(c.rules, windowsRules()...)
	c.rules = append(c.rules, defaultRules()...)
	return c
}
