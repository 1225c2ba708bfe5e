// Package main provides the CLI entry point for vtcode, a terminal coding
// agent.
//
// # Basic Usage
//
// Start an interactive chat session (the default command):
//
//	vtcode --workspace . chat
//	vtcode chat --full-auto
//
// Inspect configured MCP servers:
//
//	vtcode mcp servers
//
// Bridge to a peer agent/IDE over stdio:
//
//	vtcode a2a
//
// Pick provider API keys interactively:
//
//	vtcode terminal-setup
//
// # Environment Variables
//
//   - VTCODE_CONFIG: path to the configuration file (default: vtcode.toml)
//   - ANTHROPIC_API_KEY, OPENAI_API_KEY, GOOGLE_API_KEY: provider credentials
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Build information, populated by ldflags during release builds.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags carries the persistent flags shared by every subcommand.
type globalFlags struct {
	workspace       string
	configPath      string
	theme           string
	permissionMode  string
	fullAuto        bool
	additionalDirs  []string
	sessionIDSuffix string
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	rootCmd := buildRootCmd()
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

// buildRootCmd assembles the root command and every subcommand. Separated
// from main for testability.
func buildRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "vtcode",
		Short: "vtcode - a terminal coding agent",
		Long: `vtcode runs a long-lived agentic loop against an LLM provider,
giving it sandboxed access to a workspace through a tool pipeline with a
command-safety classifier, token-budget/compaction, and a policy/HITL
approval gateway.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
		// Running vtcode with no subcommand starts an interactive chat,
		// matching the default-root-command contract in the CLI surface.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, flags, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.workspace, "workspace", "", "Workspace directory (default: current directory)")
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to vtcode.toml (default: ./vtcode.toml)")
	rootCmd.PersistentFlags().StringVar(&flags.theme, "theme", "dark", "UI color theme")
	rootCmd.PersistentFlags().StringVar(&flags.permissionMode, "permission-mode", "", "Permission mode: ask|suggest|auto-approved|full-auto|plan")
	rootCmd.PersistentFlags().BoolVar(&flags.fullAuto, "full-auto", false, "Run with automation.full_auto enabled, bypassing per-call approval")
	rootCmd.PersistentFlags().StringArrayVar(&flags.additionalDirs, "additional-directory", nil, "Extra directory the agent may read/write beyond the workspace (repeatable)")
	rootCmd.PersistentFlags().StringVar(&flags.sessionIDSuffix, "session-id-suffix", "", "Suffix appended to generated session IDs")

	rootCmd.AddCommand(
		buildChatCmd(flags),
		buildMcpCmd(flags),
		buildA2ACmd(flags),
		buildTerminalSetupCmd(flags),
		buildUpdateCmd(),
	)

	return rootCmd
}
