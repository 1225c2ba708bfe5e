// Package policy provides tool authorization: profiles, allow/deny
// rules, and tool groups that the HITL gateway (C5) evaluates before a
// tool call is allowed to reach execution.
package policy

import (
	"strings"
)

// Profile is a pre-configured tool access level.
type Profile string

const (
	// ProfileMinimal allows only read-only inspection tools.
	ProfileMinimal Profile = "minimal"

	// ProfileCoding allows filesystem, exec, and search tools — the
	// default profile for an interactive coding session.
	ProfileCoding Profile = "coding"

	// ProfileReview allows read/search tools but denies writes and exec,
	// for a read-only code-review session.
	ProfileReview Profile = "review"

	// ProfileFull allows all tools except explicitly denied ones.
	ProfileFull Profile = "full"
)

// Policy combines a profile with explicit allow/deny lists. Deny
// always takes precedence over allow.
type Policy struct {
	// Profile is a pre-configured access level.
	Profile Profile `json:"profile,omitempty" yaml:"profile"`

	// Allow explicitly allows these tools, in addition to the profile.
	Allow []string `json:"allow,omitempty" yaml:"allow"`

	// Deny explicitly denies these tools; always overrides Allow.
	Deny []string `json:"deny,omitempty" yaml:"deny"`

	// ByProvider scopes additional policy rules to a tool provider.
	// For MCP tools the key is "mcp:<server>"; built-in tools use "vtcode".
	ByProvider map[string]*Policy `json:"by_provider,omitempty" yaml:"by_provider,omitempty"`
}

// ToolGroup is a named bundle of tools for convenient bulk permissions.
type ToolGroup struct {
	Name  string
	Tools []string
}

// DefaultGroups are the built-in tool groups referenced from policies
// as "group:<name>".
var DefaultGroups = map[string][]string{
	"group:fs":     {"read_file", "write_file", "edit_file", "list_dir"},
	"group:exec":   {"run_terminal_cmd"},
	"group:search": {"grep", "glob", "codebase_search"},
	"group:web":    {"web_search", "web_fetch"},
	"group:git":    {"git_status", "git_diff", "git_log"},
	"group:vtcode": {
		"read_file", "write_file", "edit_file", "list_dir",
		"run_terminal_cmd",
		"grep", "glob", "codebase_search",
		"web_search", "web_fetch",
		"git_status", "git_diff", "git_log",
	},
	// MCP tools are dynamically populated via Resolver.RegisterMCPServer.
	// Use "mcp:*" to allow all MCP tools, "mcp:server.*" for one server.
	"group:mcp": {},
}

// ProfileDefaults defines the default allow list for each profile.
var ProfileDefaults = map[Profile]*Policy{
	ProfileMinimal: {
		Allow: []string{"read_file", "list_dir", "grep", "glob"},
	},
	ProfileCoding: {
		Allow: []string{"group:fs", "group:exec", "group:search", "group:git"},
	},
	ProfileReview: {
		Allow: []string{"group:search", "group:git", "read_file", "list_dir"},
	},
	ProfileFull: {
		// Full profile allows everything not explicitly denied.
	},
}

// ToolAliases maps alternative tool names to their canonical form.
var ToolAliases = map[string]string{
	"bash":        "run_terminal_cmd",
	"shell":       "run_terminal_cmd",
	"exec":        "run_terminal_cmd",
	"cat":         "read_file",
	"ls":          "list_dir",
	"apply_patch": "edit_file",
	"apply-patch": "edit_file",
	"search":      "grep",
	"websearch":   "web_search",
	"webfetch":    "web_fetch",
}

// NormalizeTool lowercases and resolves a tool name through the alias table.
func NormalizeTool(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := ToolAliases[normalized]; ok {
		return alias
	}
	return normalized
}

// NormalizeTools normalizes a list of tool names.
func NormalizeTools(names []string) []string {
	result := make([]string, 0, len(names))
	for _, name := range names {
		if n := NormalizeTool(name); n != "" {
			result = append(result, n)
		}
	}
	return result
}

// UnifiedPolicyBuilder is a fluent builder for policies that work
// consistently across built-in and MCP tools.
type UnifiedPolicyBuilder struct {
	policy *Policy
}

// NewUnifiedPolicy creates a new policy builder.
func NewUnifiedPolicy() *UnifiedPolicyBuilder {
	return &UnifiedPolicyBuilder{policy: &Policy{}}
}

// WithProfile sets the base profile.
func (b *UnifiedPolicyBuilder) WithProfile(profile Profile) *UnifiedPolicyBuilder {
	b.policy.Profile = profile
	return b
}

// Allow allows built-in tools.
func (b *UnifiedPolicyBuilder) Allow(tools ...string) *UnifiedPolicyBuilder {
	for _, t := range tools {
		b.policy.Allow = append(b.policy.Allow, NormalizeTool(t))
	}
	return b
}

// AllowGroup allows a tool group (e.g. "fs", "web").
func (b *UnifiedPolicyBuilder) AllowGroup(groups ...string) *UnifiedPolicyBuilder {
	for _, g := range groups {
		if !strings.HasPrefix(g, "group:") {
			g = "group:" + g
		}
		b.policy.Allow = append(b.policy.Allow, g)
	}
	return b
}

// AllowMCPServer allows all tools from an MCP server.
func (b *UnifiedPolicyBuilder) AllowMCPServer(serverIDs ...string) *UnifiedPolicyBuilder {
	for _, id := range serverIDs {
		b.policy.Allow = append(b.policy.Allow, "mcp:"+id+".*")
	}
	return b
}

// AllowMCPTool allows a specific MCP tool.
func (b *UnifiedPolicyBuilder) AllowMCPTool(serverID, toolName string) *UnifiedPolicyBuilder {
	b.policy.Allow = append(b.policy.Allow, "mcp:"+serverID+"."+toolName)
	return b
}

// Deny denies built-in tools.
func (b *UnifiedPolicyBuilder) Deny(tools ...string) *UnifiedPolicyBuilder {
	for _, t := range tools {
		b.policy.Deny = append(b.policy.Deny, NormalizeTool(t))
	}
	return b
}

// DenyMCPServer denies all tools from an MCP server.
func (b *UnifiedPolicyBuilder) DenyMCPServer(serverIDs ...string) *UnifiedPolicyBuilder {
	for _, id := range serverIDs {
		b.policy.Deny = append(b.policy.Deny, "mcp:"+id+".*")
	}
	return b
}

// WithMCPServerPolicy sets provider-specific policy for an MCP server.
func (b *UnifiedPolicyBuilder) WithMCPServerPolicy(serverID string, policy *Policy) *UnifiedPolicyBuilder {
	if b.policy.ByProvider == nil {
		b.policy.ByProvider = make(map[string]*Policy)
	}
	b.policy.ByProvider["mcp:"+serverID] = policy
	return b
}

// Build returns the constructed policy.
func (b *UnifiedPolicyBuilder) Build() *Policy {
	return b.policy
}

// IsMCPTool reports whether a tool name refers to an MCP-provided tool.
func IsMCPTool(toolName string) bool {
	normalized := strings.ToLower(strings.TrimSpace(toolName))
	return strings.HasPrefix(normalized, "mcp:")
}

// ParseMCPToolName splits an "mcp:<server>.<tool>" reference into its parts.
func ParseMCPToolName(toolName string) (serverID, tool string) {
	normalized := strings.ToLower(strings.TrimSpace(toolName))
	if !strings.HasPrefix(normalized, "mcp:") {
		return "", ""
	}
	trimmed := strings.TrimPrefix(normalized, "mcp:")
	parts := strings.SplitN(trimmed, ".", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

// NewPolicy creates a policy with the given profile as a base.
func NewPolicy(profile Profile) *Policy {
	return &Policy{Profile: profile}
}

// WithAllow appends tools to the allow list and returns the policy for chaining.
func (p *Policy) WithAllow(tools ...string) *Policy {
	p.Allow = append(p.Allow, tools...)
	return p
}

// WithDeny appends tools to the deny list and returns the policy for chaining.
func (p *Policy) WithDeny(tools ...string) *Policy {
	p.Deny = append(p.Deny, tools...)
	return p
}
