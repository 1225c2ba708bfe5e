package config

import "time"

// AgentConfig controls default run-loop behavior for the interactive agent.
type AgentConfig struct {
	DefaultProvider   string        `yaml:"default_provider" toml:"default_provider"`
	DefaultModel      string        `yaml:"default_model" toml:"default_model"`
	ReasoningEffort   string        `yaml:"reasoning_effort" toml:"reasoning_effort"`
	SystemPromptFile  string        `yaml:"system_prompt_file" toml:"system_prompt_file"`
	MaxIterations     int           `yaml:"max_iterations" toml:"max_iterations"`
	MaxTokens         int           `yaml:"max_tokens" toml:"max_tokens"`
	MaxToolCalls      int           `yaml:"max_tool_calls" toml:"max_tool_calls"`
	MaxWallTime       time.Duration `yaml:"max_wall_time" toml:"max_wall_time"`
	AdditionalDirs    []string      `yaml:"additional_directories" toml:"additional_directories"`
	SessionIDSuffix   string        `yaml:"session_id_suffix" toml:"session_id_suffix"`
	ContextCompaction ContextPruningConfig `yaml:"context_compaction" toml:"context_compaction"`
}

// UIConfig controls the terminal rendering surface wired through uiport.Renderer.
type UIConfig struct {
	Theme           string `yaml:"theme" toml:"theme"`
	ShowReasoning   bool   `yaml:"show_reasoning" toml:"show_reasoning"`
	ShowTokenUsage  bool   `yaml:"show_token_usage" toml:"show_token_usage"`
	Markdown        bool   `yaml:"markdown" toml:"markdown"`
	SyntaxHighlight bool   `yaml:"syntax_highlight" toml:"syntax_highlight"`
}

// AutomationConfig controls unattended execution modes.
type AutomationConfig struct {
	PermissionMode string               `yaml:"permission_mode" toml:"permission_mode"` // ask | suggest | auto-approved | full-auto | plan
	FullAuto       FullAutoConfig       `yaml:"full_auto" toml:"full_auto"`
}

// FullAutoConfig gates --full-auto / automation.full_auto.enabled.
type FullAutoConfig struct {
	Enabled            bool     `yaml:"enabled" toml:"enabled"`
	ProfilePath        string   `yaml:"profile_path" toml:"profile_path"`
	RequireAck         bool     `yaml:"require_ack" toml:"require_ack"`
	AckFile            string   `yaml:"ack_file" toml:"ack_file"`
	AllowedTools       []string `yaml:"allowed_tools" toml:"allowed_tools"`
	AdditionalDirs     []string `yaml:"additional_directories" toml:"additional_directories"`
}

// ACPConfig configures the Agent Client Protocol bridge (external peer integration).
// The concrete adapter lives in internal/acpport and is out of scope here; this
// section only carries the dial/listen parameters the bridge needs at startup.
type ACPConfig struct {
	Enabled bool          `yaml:"enabled" toml:"enabled"`
	Listen  string        `yaml:"listen" toml:"listen"`
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`
}

// TelemetryConfig controls OpenTelemetry export for the agent run-loop.
// It reuses the tracing shape already defined for security/observability
// auditing so a single exporter endpoint serves both traces and agent spans.
type TelemetryConfig struct {
	Enabled        bool              `yaml:"enabled" toml:"enabled"`
	Endpoint       string            `yaml:"endpoint" toml:"endpoint"`
	ServiceName    string            `yaml:"service_name" toml:"service_name"`
	SamplingRate   float64           `yaml:"sampling_rate" toml:"sampling_rate"`
	Insecure       bool              `yaml:"insecure" toml:"insecure"`
	Attributes     map[string]string `yaml:"attributes" toml:"attributes"`
	MetricsEnabled bool              `yaml:"metrics_enabled" toml:"metrics_enabled"`
}

// SubagentsConfig controls the subagent spawn/announce manager.
type SubagentsConfig struct {
	Enabled      bool          `yaml:"enabled" toml:"enabled"`
	MaxActive    int           `yaml:"max_active" toml:"max_active"`
	DefaultModel string        `yaml:"default_model" toml:"default_model"`
	Timeout      time.Duration `yaml:"timeout" toml:"timeout"`
}

// AgentTeamsConfig configures named multi-agent team presets that group
// subagent roles together for a single invocation.
type AgentTeamsConfig struct {
	Enabled bool                    `yaml:"enabled" toml:"enabled"`
	Teams   map[string]AgentTeamDef `yaml:"teams" toml:"teams"`
}

// AgentTeamDef defines one named team of cooperating subagent roles.
type AgentTeamDef struct {
	Roles       []string `yaml:"roles" toml:"roles"`
	MaxParallel int      `yaml:"max_parallel" toml:"max_parallel"`
}
