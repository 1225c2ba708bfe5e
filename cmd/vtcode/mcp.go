package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vtcode/vtcode/internal/config"
	"github.com/vtcode/vtcode/internal/mcp"
)

// buildMcpCmd groups the MCP server/tool/resource/prompt inspection
// subcommands under "vtcode mcp".
func buildMcpCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Manage MCP servers and interact with their tools/resources/prompts",
	}
	cmd.AddCommand(
		buildMcpServersCmd(flags),
		buildMcpConnectCmd(flags),
		buildMcpToolsCmd(flags),
		buildMcpCallCmd(flags),
		buildMcpReadCmd(flags),
		buildMcpPromptCmd(flags),
	)
	return cmd
}

func loadMCPManager(flags *globalFlags) (*config.Config, *mcp.Manager, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, nil, err
	}
	return cfg, mcp.NewManager(&cfg.MCP, nil), nil
}

func buildMcpServersCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "servers",
		Short: "List configured MCP servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, mgr, err := loadMCPManager(flags)
			if err != nil {
				return err
			}
			if cfg.MCP.Enabled {
				if err := mgr.Start(cmd.Context()); err != nil {
					return err
				}
			}
			defer mgr.Stop()

			out := cmd.OutOrStdout()
			statuses := mgr.Status()
			if len(statuses) == 0 {
				fmt.Fprintln(out, "No MCP servers configured.")
				return nil
			}
			fmt.Fprintln(out, "MCP Servers:")
			for _, status := range statuses {
				state := "disconnected"
				if status.Connected {
					state = "connected"
				}
				fmt.Fprintf(out, "  %s (%s) - %s\n", status.ID, status.Name, state)
				if status.Connected {
					fmt.Fprintf(out, "    Tools: %d | Resources: %d | Prompts: %d\n", status.Tools, status.Resources, status.Prompts)
				}
			}
			return nil
		},
	}
}

func buildMcpConnectCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "connect <server-id>",
		Short: "Connect to a configured MCP server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, mgr, err := loadMCPManager(flags)
			if err != nil {
				return err
			}
			defer mgr.Stop()

			if err := mgr.Connect(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Connected to %s\n", args[0])
			return nil
		},
	}
}

func buildMcpToolsCmd(flags *globalFlags) *cobra.Command {
	var serverID string
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List tools exposed by connected MCP servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, mgr, err := loadMCPManager(flags)
			if err != nil {
				return err
			}
			defer mgr.Stop()

			if serverID != "" {
				if err := mgr.Connect(cmd.Context(), serverID); err != nil {
					return err
				}
			} else if err := mgr.Start(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tools := mgr.AllTools()
			if serverID != "" {
				list := tools[serverID]
				if len(list) == 0 {
					fmt.Fprintf(out, "No tools for %s\n", serverID)
					return nil
				}
				fmt.Fprintf(out, "Tools for %s:\n", serverID)
				for _, tool := range list {
					fmt.Fprintf(out, "  - %s: %s\n", tool.Name, tool.Description)
				}
				return nil
			}
			if len(tools) == 0 {
				fmt.Fprintln(out, "No tools available.")
				return nil
			}
			for id, list := range tools {
				fmt.Fprintf(out, "%s:\n", id)
				for _, tool := range list {
					fmt.Fprintf(out, "  - %s: %s\n", tool.Name, tool.Description)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&serverID, "server", "", "Restrict to a single server ID")
	return cmd
}

func buildMcpCallCmd(flags *globalFlags) *cobra.Command {
	var rawArgs []string
	cmd := &cobra.Command{
		Use:   "call <server>.<tool>",
		Short: "Call an MCP tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverID, toolName, err := parseMCPQualifiedName(args[0])
			if err != nil {
				return err
			}
			_, mgr, err := loadMCPManager(flags)
			if err != nil {
				return err
			}
			defer mgr.Stop()

			if err := mgr.Connect(cmd.Context(), serverID); err != nil {
				return err
			}
			toolArgs, err := parseToolArgs(rawArgs)
			if err != nil {
				return err
			}
			result, err := mgr.CallTool(cmd.Context(), serverID, toolName, toolArgs)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if result == nil || len(result.Content) == 0 {
				fmt.Fprintln(out, "No result.")
				return nil
			}
			for _, item := range result.Content {
				if item.Type == "text" {
					fmt.Fprintln(out, item.Text)
					continue
				}
				fmt.Fprintf(out, "[%s]\n", item.Type)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&rawArgs, "arg", nil, "key=value tool argument (repeatable); JSON values are parsed, otherwise treated as a string")
	return cmd
}

func buildMcpReadCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "read <server-id> <uri>",
		Short: "Read an MCP resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, mgr, err := loadMCPManager(flags)
			if err != nil {
				return err
			}
			defer mgr.Stop()

			serverID := args[0]
			if err := mgr.Connect(cmd.Context(), serverID); err != nil {
				return err
			}
			contents, err := mgr.ReadResource(cmd.Context(), serverID, args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(contents) == 0 {
				fmt.Fprintln(out, "No content.")
				return nil
			}
			payload, err := json.Marshal(contents)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(payload))
			return nil
		},
	}
}

func buildMcpPromptCmd(flags *globalFlags) *cobra.Command {
	var rawArgs []string
	cmd := &cobra.Command{
		Use:   "prompt <server>.<name>",
		Short: "Fetch an MCP prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverID, name, err := parseMCPQualifiedName(args[0])
			if err != nil {
				return err
			}
			_, mgr, err := loadMCPManager(flags)
			if err != nil {
				return err
			}
			defer mgr.Stop()

			if err := mgr.Connect(cmd.Context(), serverID); err != nil {
				return err
			}
			promptArgs := make(map[string]string, len(rawArgs))
			for _, item := range rawArgs {
				key, value, err := parseKeyValueString(item)
				if err != nil {
					return err
				}
				promptArgs[key] = value
			}
			result, err := mgr.GetPrompt(cmd.Context(), serverID, name, promptArgs)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, msg := range result.Messages {
				fmt.Fprintf(out, "[%s] %+v\n", msg.Role, msg.Content)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&rawArgs, "arg", nil, "key=value prompt argument (repeatable)")
	return cmd
}

func parseMCPQualifiedName(value string) (string, string, error) {
	parts := strings.SplitN(value, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected format <server>.<name>, got %q", value)
	}
	return parts[0], parts[1], nil
}

func parseKeyValueString(item string) (string, string, error) {
	key, value, ok := strings.Cut(item, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", item)
	}
	return key, value, nil
}

func parseToolArgs(items []string) (map[string]any, error) {
	if len(items) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(items))
	for _, item := range items {
		key, value, err := parseKeyValueString(item)
		if err != nil {
			return nil, err
		}
		var parsed any
		if err := json.Unmarshal([]byte(value), &parsed); err == nil {
			out[key] = parsed
		} else {
			out[key] = value
		}
	}
	return out, nil
}
