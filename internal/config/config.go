// Package config loads and validates vtcode's configuration tree.
//
// The canonical on-disk format is TOML (vtcode.toml), with YAML and JSON5
// accepted for compatibility and $include composition. Load parses the file
// at path (or a bundled set of defaults when path is empty), merges any
// --config key=value overrides on top, and validates the result.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vtcode/vtcode/internal/mcp"
)

// Config is the root configuration tree for a vtcode invocation.
type Config struct {
	Version int `yaml:"version" toml:"version"`

	Agent      AgentConfig      `yaml:"agent" toml:"agent"`
	UI         UIConfig         `yaml:"ui" toml:"ui"`
	Automation AutomationConfig `yaml:"automation" toml:"automation"`
	ACP        ACPConfig        `yaml:"acp" toml:"acp"`
	Telemetry  TelemetryConfig  `yaml:"telemetry" toml:"telemetry"`
	Subagents  SubagentsConfig  `yaml:"subagents" toml:"subagents"`
	AgentTeams AgentTeamsConfig `yaml:"agent_teams" toml:"agent_teams"`

	Workspace WorkspaceConfig `yaml:"workspace" toml:"workspace"`
	Identity  IdentityConfig  `yaml:"identity" toml:"identity"`
	User      UserConfig      `yaml:"user" toml:"user"`

	LLM     LLMConfig     `yaml:"llm" toml:"llm"`
	Tools   ToolsConfig   `yaml:"tools" toml:"tools"`
	Session SessionConfig `yaml:"session" toml:"session"`
	Skills  SkillsConfig  `yaml:"skills" toml:"skills"`

	MCP     mcp.Config    `yaml:"mcp" toml:"mcp"`
	Plugins PluginsConfig `yaml:"plugins" toml:"plugins"`

	Logging       LoggingConfig       `yaml:"logging" toml:"logging"`
	Observability ObservabilityConfig `yaml:"observability" toml:"observability"`
	Security      SecurityConfig      `yaml:"security" toml:"security"`
}

// SkillsConfig controls discovery of SKILL.md-style skill bundles served
// through internal/skillstore.SkillStore.
type SkillsConfig struct {
	Enabled  bool     `yaml:"enabled" toml:"enabled"`
	Paths    []string `yaml:"paths" toml:"paths"`
	Disabled []string `yaml:"disabled" toml:"disabled"`
}

// Load reads, merges, and validates the configuration at path. An empty path
// resolves to "vtcode.toml" in the current directory; if that file does not
// exist, Load returns built-in defaults.
func Load(path string) (*Config, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides behaves like Load but applies "key.path=value" overrides
// (as accepted by the --config flag) after file-based includes are resolved,
// so CLI overrides always win.
func LoadWithOverrides(path string, overrides []string) (*Config, error) {
	resolvedPath := strings.TrimSpace(path)
	if resolvedPath == "" {
		resolvedPath = "vtcode.toml"
	}

	var raw map[string]any
	if _, err := os.Stat(resolvedPath); err != nil {
		if path != "" {
			return nil, fmt.Errorf("read config %s: %w", resolvedPath, err)
		}
		raw = map[string]any{}
	} else {
		loaded, err := LoadRaw(resolvedPath)
		if err != nil {
			return nil, err
		}
		raw = loaded
	}

	for _, override := range overrides {
		merged, err := ApplyKeyValueOverride(raw, override)
		if err != nil {
			return nil, err
		}
		raw = merged
	}

	cfg, err := decodeRawConfig(raw)
	if err != nil {
		return nil, err
	}

	if cfg.Version != 0 {
		if err := ValidateVersion(cfg.Version); err != nil {
			return nil, err
		}
	} else {
		cfg.Version = CurrentVersion
	}

	applyDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Agent.MaxIterations <= 0 {
		cfg.Agent.MaxIterations = 40
	}
	if cfg.Agent.MaxToolCalls <= 0 {
		cfg.Agent.MaxToolCalls = 200
	}
	if cfg.Agent.MaxWallTime <= 0 {
		cfg.Agent.MaxWallTime = 30 * time.Minute
	}
	if cfg.Agent.ReasoningEffort == "" {
		cfg.Agent.ReasoningEffort = "medium"
	}

	if cfg.UI.Theme == "" {
		cfg.UI.Theme = "default"
	}

	if cfg.Automation.PermissionMode == "" {
		cfg.Automation.PermissionMode = "ask"
	}

	if cfg.Tools.Execution.MaxIterations <= 0 {
		cfg.Tools.Execution.MaxIterations = cfg.Agent.MaxIterations
	}
	if cfg.Tools.Execution.Parallelism <= 0 {
		cfg.Tools.Execution.Parallelism = 4
	}
	if cfg.Tools.Execution.Timeout <= 0 {
		cfg.Tools.Execution.Timeout = 2 * time.Minute
	}
	if cfg.Tools.Execution.MaxAttempts <= 0 {
		cfg.Tools.Execution.MaxAttempts = 2
	}
	if cfg.Tools.Execution.Approval.DefaultDecision == "" {
		cfg.Tools.Execution.Approval.DefaultDecision = "pending"
	}
	if cfg.Tools.Jobs.Retention <= 0 {
		cfg.Tools.Jobs.Retention = 24 * time.Hour
	}
	if cfg.Tools.Jobs.PruneInterval <= 0 {
		cfg.Tools.Jobs.PruneInterval = time.Hour
	}

	if cfg.Subagents.MaxActive <= 0 {
		cfg.Subagents.MaxActive = 3
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}

	if cfg.Security.Posture.Interval <= 0 {
		cfg.Security.Posture.Interval = time.Hour
	}
}

// ConfigValidationError reports one or more configuration problems together.
type ConfigValidationError struct {
	Issues []string
}

func (e *ConfigValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "invalid configuration"
	}
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Issues, "; "))
}

func validateConfig(cfg *Config) error {
	var issues []string

	switch cfg.Automation.PermissionMode {
	case "ask", "suggest", "auto-approved", "full-auto", "plan", "":
	default:
		issues = append(issues, fmt.Sprintf("automation.permission_mode %q is not one of ask|suggest|auto-approved|full-auto|plan", cfg.Automation.PermissionMode))
	}

	if cfg.Automation.FullAuto.Enabled && cfg.Automation.FullAuto.RequireAck && strings.TrimSpace(cfg.Automation.FullAuto.AckFile) == "" {
		issues = append(issues, "automation.full_auto.require_ack is true but automation.full_auto.ack_file is empty")
	}

	for id, entry := range cfg.Plugins.Entries {
		if entry.Enabled && entry.Path == "" {
			issues = append(issues, fmt.Sprintf("plugins.entries.%s is enabled but has no path", id))
		}
	}

	issues = append(issues, pluginValidationIssues(cfg)...)

	if len(issues) > 0 {
		return &ConfigValidationError{Issues: issues}
	}
	return nil
}
