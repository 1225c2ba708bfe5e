package security

import (
	"fmt"
	"strings"

	"github.com/vtcode/vtcode/internal/config"
)

// AuditGatewayConfig checks the automation/tool-policy surface for security issues.
func AuditGatewayConfig(cfg *config.Config) []Finding {
	var findings []Finding

	if cfg == nil {
		return findings
	}

	findings = append(findings, auditFullAuto(cfg)...)
	findings = append(findings, auditToolPolicies(cfg)...)
	findings = append(findings, auditPluginIsolation(cfg)...)

	return findings
}

func auditFullAuto(cfg *config.Config) []Finding {
	var findings []Finding

	fa := cfg.Automation.FullAuto
	if !fa.Enabled {
		return findings
	}

	if !fa.RequireAck {
		findings = append(findings, Finding{
			CheckID:     "automation.full_auto.no_ack",
			Severity:    SeverityWarn,
			Title:       "full-auto enabled without an acknowledgement file",
			Detail:      "automation.full_auto.enabled=true but require_ack is false, so startup does not confirm the operator reviewed the profile.",
			Remediation: "Set automation.full_auto.require_ack=true and point ack_file at a profile-specific acknowledgement.",
		})
	}

	for _, pattern := range fa.AllowedTools {
		if pattern == "*" {
			findings = append(findings, Finding{
				CheckID:     "automation.full_auto.wildcard_tools",
				Severity:    SeverityCritical,
				Title:       "full-auto allows every tool",
				Detail:      "automation.full_auto.allowed_tools contains '*' - every tool runs unattended.",
				Remediation: "List the specific tools full-auto may run instead of '*'.",
			})
			break
		}
	}

	return findings
}

func auditToolPolicies(cfg *config.Config) []Finding {
	var findings []Finding

	execution := cfg.Tools.Execution
	approval := execution.Approval

	for _, pattern := range execution.RequireApproval {
		if pattern == "*" {
			findings = append(findings, Finding{
				CheckID:  "tools.approval.wildcard",
				Severity: SeverityInfo,
				Title:    "All tools require approval",
				Detail:   "tools.execution.require_approval contains '*' - all tools need user confirmation.",
			})
			break
		}
	}

	if len(approval.Allowlist) > 50 {
		findings = append(findings, Finding{
			CheckID:     "tools.allowlist.large",
			Severity:    SeverityWarn,
			Title:       "Tool allowlist is very large",
			Detail:      fmt.Sprintf("tools.execution.approval.allowlist has %d entries; consider using denylist instead.", len(approval.Allowlist)),
			Remediation: "Use tools.execution.approval.denylist to block specific dangerous tools instead.",
		})
	}

	for _, pattern := range approval.Allowlist {
		if pattern == "*" {
			findings = append(findings, Finding{
				CheckID:     "tools.allowlist.wildcard",
				Severity:    SeverityCritical,
				Title:       "Tool allowlist allows everything",
				Detail:      "tools.execution.approval.allowlist contains '*' - all tools are auto-approved.",
				Remediation: "Remove '*' from allowlist and explicitly list allowed tools.",
			})
			break
		}
	}

	dangerousPatterns := []string{"bash", "exec", "shell", "run_command", "run_terminal_cmd", "execute_code"}
	for _, dangerous := range dangerousPatterns {
		for _, allowed := range approval.Allowlist {
			if strings.Contains(strings.ToLower(allowed), dangerous) {
				requiresApproval := false
				for _, req := range execution.RequireApproval {
					if req == allowed || req == "*" {
						requiresApproval = true
						break
					}
				}
				if !requiresApproval {
					findings = append(findings, Finding{
						CheckID:     fmt.Sprintf("tools.dangerous.%s", dangerous),
						Severity:    SeverityWarn,
						Title:       fmt.Sprintf("Dangerous tool pattern '%s' in allowlist", allowed),
						Detail:      fmt.Sprintf("Tool '%s' can execute arbitrary code but doesn't require approval.", allowed),
						Remediation: fmt.Sprintf("Add '%s' to tools.execution.require_approval.", allowed),
					})
				}
			}
		}
	}

	if approval.DefaultDecision == "allowed" {
		findings = append(findings, Finding{
			CheckID:     "tools.default_allowed",
			Severity:    SeverityWarn,
			Title:       "Default tool decision is 'allowed'",
			Detail:      "Unrecognized tools are auto-approved by default.",
			Remediation: "Set tools.execution.approval.default_decision to 'pending' or 'denied'.",
		})
	}

	return findings
}

func auditPluginIsolation(cfg *config.Config) []Finding {
	var findings []Finding

	iso := cfg.Plugins.Isolation
	if len(cfg.Plugins.Entries) == 0 {
		return findings
	}

	if !iso.Enabled {
		findings = append(findings, Finding{
			CheckID:     "plugins.isolation.disabled",
			Severity:    SeverityWarn,
			Title:       "Plugins run without process isolation",
			Detail:      "plugins.entries is non-empty but plugins.isolation.enabled is false; plugin code runs in-process.",
			Remediation: "Enable plugins.isolation with a sandboxed backend, or only load plugins you trust.",
		})
	} else if iso.NetworkEnabled {
		findings = append(findings, Finding{
			CheckID:  "plugins.isolation.network_enabled",
			Severity: SeverityInfo,
			Title:    "Isolated plugins have network access",
			Detail:   "plugins.isolation.network_enabled=true allows sandboxed plugins to reach the network.",
		})
	}

	return findings
}
