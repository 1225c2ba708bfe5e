package testharness_test

import (
	"testing"

	"github.com/vtcode/vtcode/internal/tools/policy"
)

func TestToolPolicy_DenialMessage_ExplicitDeny(t *testing.T) {
	resolver := policy.NewResolver()

	pol := &policy.Policy{
		Profile: policy.ProfileCoding,
		Deny:    []string{"run_terminal_cmd"},
	}

	result := resolver.Decide(pol, "run_terminal_cmd")
	if result.Allowed {
		t.Fatal("expected tool to be denied")
	}
	if result.Reason != "denied by rule: run_terminal_cmd" {
		t.Errorf("unexpected reason: %q", result.Reason)
	}
}

func TestToolPolicy_DenialMessage_NotInProfile(t *testing.T) {
	resolver := policy.NewResolver()

	pol := &policy.Policy{Profile: policy.ProfileMinimal}

	result := resolver.Decide(pol, "run_terminal_cmd")
	if result.Allowed {
		t.Fatal("expected tool to be denied")
	}
	if result.Reason != "no matching allow rule" {
		t.Errorf("unexpected reason: %q", result.Reason)
	}
}

func TestToolPolicy_DenialMessage_MCPDenied(t *testing.T) {
	resolver := policy.NewResolver()
	resolver.RegisterMCPServer("github", []string{"create_issue"})

	pol := &policy.Policy{
		Profile: policy.ProfileCoding,
		Deny:    []string{"mcp:github.*"},
	}

	result := resolver.Decide(pol, "mcp:github.create_issue")
	if result.Allowed {
		t.Fatal("expected MCP tool to be denied")
	}
	if result.Reason != "denied by rule: mcp:github.*" {
		t.Errorf("unexpected reason: %q", result.Reason)
	}
}

func TestToolPolicy_ProfileMinimal(t *testing.T) {
	resolver := policy.NewResolver()
	pol := &policy.Policy{Profile: policy.ProfileMinimal}

	tests := []struct {
		tool    string
		allowed bool
	}{
		{"read_file", true},
		{"list_dir", true},
		{"run_terminal_cmd", false},
		{"write_file", false},
		{"web_search", false},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			result := resolver.Decide(pol, tt.tool)
			if result.Allowed != tt.allowed {
				t.Errorf("Decide(%q) = %v, want %v", tt.tool, result.Allowed, tt.allowed)
			}
		})
	}
}

func TestToolPolicy_ProfileCoding(t *testing.T) {
	resolver := policy.NewResolver()
	pol := &policy.Policy{Profile: policy.ProfileCoding}

	tests := []struct {
		tool    string
		allowed bool
	}{
		{"read_file", true},
		{"write_file", true},
		{"edit_file", true},
		{"run_terminal_cmd", true},
		{"web_search", true},
		{"web_fetch", true},
		{"grep", true},
		{"git_status", true},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			result := resolver.Decide(pol, tt.tool)
			if result.Allowed != tt.allowed {
				t.Errorf("Decide(%q) = %v, want %v (reason: %s)", tt.tool, result.Allowed, tt.allowed, result.Reason)
			}
		})
	}
}

func TestToolPolicy_ProfileReview(t *testing.T) {
	resolver := policy.NewResolver()
	pol := &policy.Policy{Profile: policy.ProfileReview}

	tests := []struct {
		tool    string
		allowed bool
	}{
		{"read_file", true},
		{"grep", true},
		{"git_diff", true},
		{"write_file", false},
		{"run_terminal_cmd", false},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			result := resolver.Decide(pol, tt.tool)
			if result.Allowed != tt.allowed {
				t.Errorf("Decide(%q) = %v, want %v (reason: %s)", tt.tool, result.Allowed, tt.allowed, result.Reason)
			}
		})
	}
}

func TestToolPolicy_ProfileFull(t *testing.T) {
	resolver := policy.NewResolver()
	pol := &policy.Policy{Profile: policy.ProfileFull}

	for _, tool := range []string{"read_file", "write_file", "edit_file", "run_terminal_cmd", "web_search"} {
		t.Run(tool, func(t *testing.T) {
			result := resolver.Decide(pol, tool)
			if !result.Allowed {
				t.Errorf("Decide(%q) should be allowed in full profile, got denied: %s", tool, result.Reason)
			}
		})
	}
}

func TestToolPolicy_ExplicitAllowExtendsProfile(t *testing.T) {
	resolver := policy.NewResolver()
	pol := &policy.Policy{
		Profile: policy.ProfileMinimal,
		Allow:   []string{"run_terminal_cmd"},
	}

	result := resolver.Decide(pol, "run_terminal_cmd")
	if !result.Allowed {
		t.Errorf("expected run_terminal_cmd to be allowed via explicit allow list, got denied: %s", result.Reason)
	}
}

func TestToolPolicy_DenyOverridesAllow(t *testing.T) {
	resolver := policy.NewResolver()
	pol := &policy.Policy{
		Profile: policy.ProfileFull,
		Deny:    []string{"run_terminal_cmd"},
	}

	result := resolver.Decide(pol, "run_terminal_cmd")
	if result.Allowed {
		t.Error("expected run_terminal_cmd to be denied despite full profile")
	}
}

func TestToolPolicy_ToolAliases(t *testing.T) {
	tests := []struct {
		alias     string
		canonical string
	}{
		{"bash", "run_terminal_cmd"},
		{"shell", "run_terminal_cmd"},
		{"exec", "run_terminal_cmd"},
		{"apply-patch", "edit_file"},
		{"apply_patch", "edit_file"},
		{"websearch", "web_search"},
		{"webfetch", "web_fetch"},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			if got := policy.NormalizeTool(tt.alias); got != tt.canonical {
				t.Errorf("NormalizeTool(%q) = %q, want %q", tt.alias, got, tt.canonical)
			}
		})
	}
}

func TestToolPolicy_MCPToolParsing(t *testing.T) {
	tests := []struct {
		toolName string
		serverID string
		tool     string
	}{
		{"mcp:github.create_issue", "github", "create_issue"},
		{"mcp:slack.post_message", "slack", "post_message"},
		{"not_mcp_tool", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.toolName, func(t *testing.T) {
			serverID, tool := policy.ParseMCPToolName(tt.toolName)
			if serverID != tt.serverID || tool != tt.tool {
				t.Errorf("ParseMCPToolName(%q) = (%q, %q), want (%q, %q)",
					tt.toolName, serverID, tool, tt.serverID, tt.tool)
			}
		})
	}
}

func TestToolPolicy_UnifiedPolicyBuilder(t *testing.T) {
	pol := policy.NewUnifiedPolicy().
		WithProfile(policy.ProfileCoding).
		AllowMCPServer("github").
		Deny("run_terminal_cmd").
		Build()

	resolver := policy.NewResolver()
	resolver.RegisterMCPServer("github", []string{"create_issue", "list_repos"})

	tests := []struct {
		tool    string
		allowed bool
	}{
		{"read_file", true},
		{"mcp:github.create_issue", true},
		{"run_terminal_cmd", false},
		{"mcp:unknown.tool", false},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			result := resolver.Decide(pol, tt.tool)
			if result.Allowed != tt.allowed {
				t.Errorf("Decide(%q) = %v, want %v (reason: %s)",
					tt.tool, result.Allowed, tt.allowed, result.Reason)
			}
		})
	}
}
