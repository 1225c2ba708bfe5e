package config

import "time"

type SessionConfig struct {
	DefaultAgentID string               `yaml:"default_agent_id" toml:"default_agent_id"`
	SlackScope     string               `yaml:"slack_scope" toml:"slack_scope"`
	DiscordScope   string               `yaml:"discord_scope" toml:"discord_scope"`
	Memory         MemoryConfig         `yaml:"memory" toml:"memory"`
	Heartbeat      HeartbeatConfig      `yaml:"heartbeat" toml:"heartbeat"`
	MemoryFlush    MemoryFlushConfig    `yaml:"memory_flush" toml:"memory_flush"`
	ContextPruning ContextPruningConfig `yaml:"context_pruning" toml:"context_pruning"`
	Scoping        SessionScopeConfig   `yaml:"scoping" toml:"scoping"`
}

// SessionScopeConfig controls advanced session scoping behavior.
type SessionScopeConfig struct {
	// DMScope controls how DM sessions are scoped:
	// - "main": all DMs share one session (default)
	// - "per-peer": separate session per peer
	// - "per-channel-peer": separate session per channel+peer combination
	DMScope string `yaml:"dm_scope" toml:"dm_scope"`

	// IdentityLinks maps canonical IDs to platform-specific peer IDs.
	// Format: canonical_id -> ["provider:peer_id", "provider:peer_id", ...]
	// This allows cross-channel identity resolution for unified sessions.
	IdentityLinks map[string][]string `yaml:"identity_links" toml:"identity_links"`

	// Reset configures default session reset behavior.
	Reset ResetConfig `yaml:"reset" toml:"reset"`

	// ResetByType configures reset behavior per conversation type (dm, group, thread).
	ResetByType map[string]ResetConfig `yaml:"reset_by_type" toml:"reset_by_type"`

	// ResetByChannel configures reset behavior per channel (slack, discord, etc).
	ResetByChannel map[string]ResetConfig `yaml:"reset_by_channel" toml:"reset_by_channel"`
}

// ResetConfig controls when sessions are automatically reset.
type ResetConfig struct {
	// Mode is the reset mode: "daily", "idle", "daily+idle", or "never" (default).
	Mode string `yaml:"mode" toml:"mode"`

	// AtHour is the hour (0-23) to reset sessions when mode includes "daily".
	AtHour int `yaml:"at_hour" toml:"at_hour"`

	// IdleMinutes is the number of minutes of inactivity before reset when mode includes "idle".
	IdleMinutes int `yaml:"idle_minutes" toml:"idle_minutes"`
}

type MemoryConfig struct {
	Enabled   bool   `yaml:"enabled" toml:"enabled"`
	Directory string `yaml:"directory" toml:"directory"`
	MaxLines  int    `yaml:"max_lines" toml:"max_lines"`
	Days      int    `yaml:"days" toml:"days"`
	Scope     string `yaml:"scope" toml:"scope"`
}

type HeartbeatConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	File    string `yaml:"file" toml:"file"`
	Mode    string `yaml:"mode" toml:"mode"`
}

type MemoryFlushConfig struct {
	Enabled   bool   `yaml:"enabled" toml:"enabled"`
	Threshold int    `yaml:"threshold" toml:"threshold"`
	Prompt    string `yaml:"prompt" toml:"prompt"`
}

// ContextPruningConfig controls in-memory tool result pruning for sessions.
type ContextPruningConfig struct {
	Mode                 string                  `yaml:"mode" toml:"mode"`
	TTL                  *time.Duration          `yaml:"ttl" toml:"ttl"`
	KeepLastAssistants   *int                    `yaml:"keep_last_assistants" toml:"keep_last_assistants"`
	SoftTrimRatio        *float64                `yaml:"soft_trim_ratio" toml:"soft_trim_ratio"`
	HardClearRatio       *float64                `yaml:"hard_clear_ratio" toml:"hard_clear_ratio"`
	MinPrunableToolChars *int                    `yaml:"min_prunable_tool_chars" toml:"min_prunable_tool_chars"`
	Tools                ContextPruningToolMatch `yaml:"tools" toml:"tools"`
	SoftTrim             ContextPruningSoftTrim  `yaml:"soft_trim" toml:"soft_trim"`
	HardClear            ContextPruningHardClear `yaml:"hard_clear" toml:"hard_clear"`
}

// ContextPruningToolMatch selects which tool results can be trimmed.
type ContextPruningToolMatch struct {
	Allow []string `yaml:"allow" toml:"allow"`
	Deny  []string `yaml:"deny" toml:"deny"`
}

// ContextPruningSoftTrim configures soft trimming of tool result content.
type ContextPruningSoftTrim struct {
	MaxChars  *int `yaml:"max_chars" toml:"max_chars"`
	HeadChars *int `yaml:"head_chars" toml:"head_chars"`
	TailChars *int `yaml:"tail_chars" toml:"tail_chars"`
}

// ContextPruningHardClear configures hard clearing of tool result content.
type ContextPruningHardClear struct {
	Enabled     *bool  `yaml:"enabled" toml:"enabled"`
	Placeholder string `yaml:"placeholder" toml:"placeholder"`
}
