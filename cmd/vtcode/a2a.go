package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vtcode/vtcode/internal/acpport"
	"github.com/vtcode/vtcode/internal/agent"
	"github.com/vtcode/vtcode/internal/config"
	"github.com/vtcode/vtcode/internal/sessions"
	"github.com/vtcode/vtcode/pkg/models"
)

// a2aInbound is one newline-delimited JSON frame a peer sends on stdin to
// drive a turn. It is intentionally narrower than acpport's own envelope:
// the peer only ever submits prompts here, never permission decisions,
// since this command does not route tool approval back over the bridge
// (that stays config-driven, per automation.permission_mode).
type a2aInbound struct {
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
}

// buildA2ACmd bridges the agent loop to a peer (an IDE, an orchestrator,
// another agent) over stdio or a websocket, depending on acp.listen.
func buildA2ACmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "a2a",
		Short: "Bridge the agent to a peer over stdio or websocket (Agent-to-Agent / ACP transport)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runA2A(cmd, flags)
		},
	}
}

// a2aSession is everything a turn needs once a peer bridge exists:
// provider, tool registry, session store and the loop built from them.
// Both the stdio and websocket transports drive it the same way.
type a2aSession struct {
	loop  *agent.AgenticLoop
	store sessions.Store
}

func newA2ASession(cfg *config.Config) (*a2aSession, error) {
	provider, err := buildProviderWithFallback(cfg)
	if err != nil {
		return nil, err
	}

	store := sessions.NewMemoryStore()
	registry := buildToolRegistry(cfg, store)
	loop := agent.NewAgenticLoop(provider, registry, store, &agent.LoopConfig{
		MaxIterations: cfg.Agent.MaxIterations,
		MaxTokens:     cfg.Agent.MaxTokens,
		MaxToolCalls:  cfg.Agent.MaxToolCalls,
		MaxWallTime:   cfg.Agent.MaxWallTime,
	})
	if model := cfg.LLM.Providers[cfg.LLM.DefaultProvider].DefaultModel; model != "" {
		loop.SetDefaultModel(model)
	}
	loop.SetDefaultSystem(defaultSystemPrompt)

	return &a2aSession{loop: loop, store: store}, nil
}

func runA2A(cmd *cobra.Command, flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	sess, err := newA2ASession(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	if listen := strings.TrimSpace(cfg.ACP.Listen); listen != "" {
		return acpport.ListenAndServeOnce(ctx, listen, func(bridge *acpport.WebSocketBridge) error {
			return serveA2AWebSocket(ctx, bridge, sess)
		})
	}

	// No reader is wired for permission replies: this bridge only notifies a
	// peer of progress, it does not ask the peer to approve tool calls.
	bridge := acpport.NewStdioBridge(cmd.OutOrStdout(), strings.NewReader(""))
	return serveA2AStdio(ctx, cmd, bridge, sess)
}

func serveA2AStdio(ctx context.Context, cmd *cobra.Command, bridge acpport.PeerBridge, sess *a2aSession) error {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		var inbound a2aInbound
		if err := json.Unmarshal(scanner.Bytes(), &inbound); err != nil {
			notifyError(ctx, bridge, fmt.Errorf("malformed frame: %w", err))
			continue
		}
		runA2ATurn(ctx, bridge, sess, inbound)
	}
	return scanner.Err()
}

// serveA2AWebSocket drains bridge.Messages() until the connection drops,
// running each inbound prompt as a turn the same way the stdio transport
// does. It returns once Messages() closes (peer disconnected) or ctx is done.
func serveA2AWebSocket(ctx context.Context, bridge *acpport.WebSocketBridge, sess *a2aSession) error {
	for {
		select {
		case inbound, ok := <-bridge.Messages():
			if !ok {
				if err := bridge.Err(); err != nil && err != io.EOF {
					return err
				}
				return nil
			}
			runA2ATurn(ctx, bridge, sess, a2aInbound{SessionID: inbound.SessionID, Content: inbound.Content})
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func runA2ATurn(ctx context.Context, bridge acpport.PeerBridge, sess *a2aSession, inbound a2aInbound) {
	if inbound.SessionID == "" {
		inbound.SessionID = "a2a"
	}

	session, err := sess.store.GetOrCreate(ctx, inbound.SessionID, "vtcode", models.ChannelCLI, inbound.SessionID)
	if err != nil {
		notifyError(ctx, bridge, err)
		return
	}

	msg := &models.Message{
		SessionID: session.ID,
		Channel:   models.ChannelCLI,
		Direction: models.DirectionInbound,
		Role:      models.RoleUser,
		Content:   inbound.Content,
		CreatedAt: time.Now(),
	}

	chunks, err := sess.loop.Run(ctx, session, msg)
	if err != nil {
		notifyError(ctx, bridge, err)
		return
	}
	for chunk := range chunks {
		forwardChunk(ctx, bridge, chunk)
	}
	bridge.Notify(ctx, acpport.PeerEvent{Kind: "turn_complete"})
}

func forwardChunk(ctx context.Context, bridge acpport.PeerBridge, chunk *agent.ResponseChunk) {
	switch {
	case chunk.Error != nil:
		notifyError(ctx, bridge, chunk.Error)
	case chunk.Text != "":
		bridge.Notify(ctx, acpport.PeerEvent{Kind: "text", Payload: rawJSON(chunk.Text)})
	case chunk.ToolEvent != nil:
		payload, _ := json.Marshal(chunk.ToolEvent)
		bridge.Notify(ctx, acpport.PeerEvent{Kind: "tool_event", Payload: payload})
	}
}

func notifyError(ctx context.Context, bridge acpport.PeerBridge, err error) {
	bridge.Notify(ctx, acpport.PeerEvent{Kind: "error", Payload: rawJSON(err.Error())})
}

func rawJSON(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
