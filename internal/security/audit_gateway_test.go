package security

import (
	"testing"

	"github.com/vtcode/vtcode/internal/config"
)

func TestAuditGatewayConfig_Nil(t *testing.T) {
	findings := AuditGatewayConfig(nil)
	if len(findings) != 0 {
		t.Errorf("Expected 0 findings for nil config, got %d", len(findings))
	}
}

func TestAuditFullAuto_NoAckFile(t *testing.T) {
	cfg := &config.Config{
		Automation: config.AutomationConfig{
			FullAuto: config.FullAutoConfig{
				Enabled:    true,
				RequireAck: false,
			},
		},
	}

	findings := AuditGatewayConfig(cfg)

	found := false
	for _, f := range findings {
		if f.CheckID == "automation.full_auto.no_ack" {
			found = true
			if f.Severity != SeverityWarn {
				t.Errorf("Expected warn severity, got %s", f.Severity)
			}
		}
	}
	if !found {
		t.Error("Expected to find automation.full_auto.no_ack finding")
	}
}

func TestAuditFullAuto_WildcardTools(t *testing.T) {
	cfg := &config.Config{
		Automation: config.AutomationConfig{
			FullAuto: config.FullAutoConfig{
				Enabled:      true,
				RequireAck:   true,
				AllowedTools: []string{"*"},
			},
		},
	}

	findings := AuditGatewayConfig(cfg)

	found := false
	for _, f := range findings {
		if f.CheckID == "automation.full_auto.wildcard_tools" {
			found = true
			if f.Severity != SeverityCritical {
				t.Errorf("Expected critical severity, got %s", f.Severity)
			}
		}
	}
	if !found {
		t.Error("Expected to find automation.full_auto.wildcard_tools finding")
	}
}

func TestAuditToolPolicies_WildcardAllowlist(t *testing.T) {
	cfg := &config.Config{
		Tools: config.ToolsConfig{
			Execution: config.ToolExecutionConfig{
				Approval: config.ApprovalConfig{
					Allowlist: []string{"*"},
				},
			},
		},
	}

	findings := AuditGatewayConfig(cfg)

	found := false
	for _, f := range findings {
		if f.CheckID == "tools.allowlist.wildcard" {
			found = true
			if f.Severity != SeverityCritical {
				t.Errorf("Expected critical severity, got %s", f.Severity)
			}
		}
	}
	if !found {
		t.Error("Expected to find tools.allowlist.wildcard finding")
	}
}

func TestAuditToolPolicies_DefaultAllowed(t *testing.T) {
	cfg := &config.Config{
		Tools: config.ToolsConfig{
			Execution: config.ToolExecutionConfig{
				Approval: config.ApprovalConfig{
					DefaultDecision: "allowed",
				},
			},
		},
	}

	findings := AuditGatewayConfig(cfg)

	found := false
	for _, f := range findings {
		if f.CheckID == "tools.default_allowed" {
			found = true
			if f.Severity != SeverityWarn {
				t.Errorf("Expected warn severity, got %s", f.Severity)
			}
		}
	}
	if !found {
		t.Error("Expected to find tools.default_allowed finding")
	}
}

func TestAuditPluginIsolation_Disabled(t *testing.T) {
	cfg := &config.Config{
		Plugins: config.PluginsConfig{
			Entries: map[string]config.PluginEntryConfig{
				"sample": {Enabled: true, Path: "./plugins/sample"},
			},
			Isolation: config.PluginIsolationConfig{Enabled: false},
		},
	}

	findings := AuditGatewayConfig(cfg)

	found := false
	for _, f := range findings {
		if f.CheckID == "plugins.isolation.disabled" {
			found = true
			if f.Severity != SeverityWarn {
				t.Errorf("Expected warn severity, got %s", f.Severity)
			}
		}
	}
	if !found {
		t.Error("Expected to find plugins.isolation.disabled finding")
	}
}

func TestAuditPluginIsolation_NoEntriesNoFinding(t *testing.T) {
	cfg := &config.Config{}

	findings := AuditGatewayConfig(cfg)
	for _, f := range findings {
		if f.CheckID == "plugins.isolation.disabled" {
			t.Error("Should not flag isolation when no plugin entries are configured")
		}
	}
}
