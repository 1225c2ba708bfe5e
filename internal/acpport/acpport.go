// Package acpport defines the peer-agent bridge contract used by the a2a
// subcommand. A2A/ACP (Agent-to-Agent, Agent Client Protocol) adapters are
// out of this port's scope; the core only depends on this interface.
package acpport

import (
	"context"
	"encoding/json"
)

// PeerEvent is a notification pushed from the agent core to a connected
// peer (an IDE, another agent, an orchestrator).
type PeerEvent struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// PeerPermissionRequest asks a connected peer to approve an action the
// core wants to take (a tool call the local policy could not resolve).
type PeerPermissionRequest struct {
	ToolName  string          `json:"tool_name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
	Reason    string          `json:"reason,omitempty"`
}

// PeerPermissionDecision is the peer's answer to a PeerPermissionRequest.
type PeerPermissionDecision string

const (
	PeerPermissionApprove PeerPermissionDecision = "approve"
	PeerPermissionDeny    PeerPermissionDecision = "deny"
)

// PeerBridge is implemented by whatever transport carries peer-agent
// traffic: stdio JSON-RPC, a websocket, an IDE extension host.
type PeerBridge interface {
	Notify(ctx context.Context, event PeerEvent) error
	RequestPermission(ctx context.Context, req PeerPermissionRequest) (PeerPermissionDecision, error)
}
