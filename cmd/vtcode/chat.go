package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vtcode/vtcode/internal/agent"
	"github.com/vtcode/vtcode/internal/sessions"
	"github.com/vtcode/vtcode/internal/uiport"
	"github.com/vtcode/vtcode/pkg/models"
)

// buildChatCmd wires the "chat" subcommand to runChat. It exists alongside
// the root command's default RunE so "vtcode chat" and a bare "vtcode" both
// start the same interactive session.
func buildChatCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session with the agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, flags, args)
		},
	}
}

// runChat loads configuration, wires a provider/tool-registry/session store
// into an AgenticLoop, and drives a line-oriented REPL until EOF or a second
// ctrl-c within the cancel signal's exit window.
func runChat(cmd *cobra.Command, flags *globalFlags, args []string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	provider, err := buildProviderWithFallback(cfg)
	if err != nil {
		return err
	}

	store := sessions.NewMemoryStore()
	registry := buildToolRegistry(cfg, store)

	loop := agent.NewAgenticLoop(provider, registry, store, &agent.LoopConfig{
		MaxIterations: cfg.Agent.MaxIterations,
		MaxTokens:     cfg.Agent.MaxTokens,
		MaxToolCalls:  cfg.Agent.MaxToolCalls,
		MaxWallTime:   cfg.Agent.MaxWallTime,
	})
	defaultModel := cfg.LLM.Providers[cfg.LLM.DefaultProvider].DefaultModel
	if defaultModel != "" {
		loop.SetDefaultModel(defaultModel)
	}
	loop.SetDefaultSystem(defaultSystemPrompt)

	ctx, stopSignals := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stopSignals()

	cancelSignal := agent.NewCancelSignal()
	ctx = agent.WithCancelSignal(ctx, cancelSignal)

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT)
	defer signal.Stop(sigint)
	go func() {
		for range sigint {
			cancelSignal.Signal()
			if cancelSignal.ExitRequested() {
				os.Exit(130)
			}
		}
	}()

	renderer := uiport.NewTerminalRenderer(os.Stdout, os.Stdin, cfg.UI.ShowReasoning)
	renderer.SetHeader(cfg.LLM.DefaultProvider, defaultModel, cfg.Automation.PermissionMode, cfg.Agent.ReasoningEffort)

	sessionKey := "cli"
	if flags.sessionIDSuffix != "" {
		sessionKey = fmt.Sprintf("cli-%s", flags.sessionIDSuffix)
	}
	session, err := store.GetOrCreate(ctx, sessionKey, "vtcode", models.ChannelCLI, sessionKey)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	fmt.Fprintln(os.Stdout, "vtcode chat - type a message, ctrl-c to interrupt a turn, ctrl-c twice to exit")
	for {
		fmt.Fprint(os.Stdout, "\n> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "/exit" || text == "/quit" {
			break
		}

		msg := &models.Message{
			SessionID: session.ID,
			Channel:   models.ChannelCLI,
			Direction: models.DirectionInbound,
			Role:      models.RoleUser,
			Content:   text,
			CreatedAt: time.Now(),
		}

		chunks, err := loop.Run(ctx, session, msg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			cancelSignal.Disarm()
			continue
		}
		for chunk := range chunks {
			if chunk.Error != nil {
				fmt.Fprintf(os.Stderr, "\nerror: %v\n", chunk.Error)
				continue
			}
			if chunk.Text != "" {
				renderer.RenderAssistantDelta(chunk.Text)
			}
			if chunk.ToolEvent != nil {
				switch chunk.ToolEvent.Stage {
				case models.ToolEventStarted, models.ToolEventRequested:
					renderer.RenderToolStart(chunk.ToolEvent.ToolName, chunk.ToolEvent.Input)
				case models.ToolEventSucceeded, models.ToolEventFailed, models.ToolEventDenied:
					renderer.RenderToolResult(chunk.ToolEvent.ToolName, uiport.ToolOutcomeView{
						Summary: summarizeToolEvent(chunk.ToolEvent),
						IsError: chunk.ToolEvent.Stage != models.ToolEventSucceeded,
						Detail:  chunk.ToolEvent.Error,
					})
				}
			}
		}
		cancelSignal.Disarm()
	}

	return nil
}

const defaultSystemPrompt = "You are a terminal coding agent with sandboxed access to the workspace through a tool pipeline. Use tools to read and modify files and run commands; explain what you changed."

func summarizeToolEvent(event *models.ToolEvent) string {
	const maxLen = 200
	content := strings.TrimSpace(event.Output)
	if content == "" {
		content = string(event.Stage)
	}
	if len(content) > maxLen {
		return content[:maxLen] + "..."
	}
	return content
}
