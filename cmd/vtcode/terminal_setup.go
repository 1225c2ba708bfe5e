package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vtcode/vtcode/internal/config"
)

// buildTerminalSetupCmd interactively collects provider API keys and writes
// them into vtcode.toml, masking key entry when stdin is a real terminal.
func buildTerminalSetupCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "terminal-setup",
		Short: "Interactively configure provider API keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTerminalSetup(cmd, flags)
		},
	}
}

func runTerminalSetup(cmd *cobra.Command, flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	fmt.Fprintln(out, "vtcode terminal setup - press enter to keep an existing value")

	provider := promptString(out, reader, "Default LLM provider (anthropic/openai/google/azure/openrouter/ollama/bedrock/copilot_proxy)", firstNonEmpty(cfg.LLM.DefaultProvider, "anthropic"))
	cfg.LLM.DefaultProvider = provider

	envVar := envKeyForProvider(provider)
	var key string
	if envVar != "" {
		key = promptSecret(out, cmd.InOrStdin(), fmt.Sprintf("%s API key (leave blank to keep using %s)", provider, envVar))
	}
	if key != "" {
		pc := cfg.LLM.Providers[provider]
		pc.APIKey = key
		if cfg.LLM.Providers == nil {
			cfg.LLM.Providers = map[string]config.LLMProviderConfig{}
		}
		cfg.LLM.Providers[provider] = pc
	}

	model := promptString(out, reader, "Default model for "+provider, cfg.LLM.Providers[provider].DefaultModel)
	if model != "" {
		pc := cfg.LLM.Providers[provider]
		pc.DefaultModel = model
		cfg.LLM.Providers[provider] = pc
	}

	path := resolveConfigPath(flags)
	if path == "" {
		path = "vtcode.toml"
	}
	if err := config.WriteTOML(path, cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}

func promptString(out io.Writer, reader *bufio.Reader, label, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, defaultValue)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue
	}
	return line
}

// promptSecret reads a value without echoing it when in is a real terminal
// (golang.org/x/term.IsTerminal); it falls back to a plain line read
// otherwise, since term.ReadPassword requires an actual tty file descriptor.
func promptSecret(out io.Writer, in io.Reader, label string) string {
	fmt.Fprintf(out, "%s: ", label)

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytesRead, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(bytesRead))
	}

	reader := bufio.NewReader(in)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
