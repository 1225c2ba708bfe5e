package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/vtcode/vtcode/internal/config"
)

// resolveConfigPath returns the configured path or the "vtcode.toml"
// default, honoring VTCODE_CONFIG when --config was not given.
func resolveConfigPath(flags *globalFlags) string {
	if strings.TrimSpace(flags.configPath) != "" {
		return flags.configPath
	}
	return strings.TrimSpace(os.Getenv("VTCODE_CONFIG"))
}

// loadConfig reads vtcode.toml (or the configured path) and applies the
// global flags that map onto config fields, so a flag always overrides
// whatever the file says.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	var overrides []string
	if flags.permissionMode != "" {
		overrides = append(overrides, fmt.Sprintf("automation.permission_mode=%s", flags.permissionMode))
	}
	if flags.fullAuto {
		overrides = append(overrides, "automation.full_auto.enabled=true")
	}

	cfg, err := config.LoadWithOverrides(resolveConfigPath(flags), overrides)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if flags.workspace != "" {
		cfg.Workspace.Path = flags.workspace
	}
	if len(flags.additionalDirs) > 0 {
		cfg.Agent.AdditionalDirs = append(cfg.Agent.AdditionalDirs, flags.additionalDirs...)
	}
	if flags.sessionIDSuffix != "" {
		cfg.Agent.SessionIDSuffix = flags.sessionIDSuffix
	}
	return cfg, nil
}
