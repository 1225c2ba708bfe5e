// Package uiport defines the contract between the agent core and whatever
// surface renders its output. The core never imports a concrete renderer;
// cmd/vtcode wires one in at startup.
package uiport

import "encoding/json"

// ToolOutcomeView is the renderer-facing summary of a finished tool call.
type ToolOutcomeView struct {
	Summary string
	IsError bool
	Detail  string
}

// HITLRequest describes a human-in-the-loop approval prompt.
type HITLRequest struct {
	ToolName  string
	Arguments json.RawMessage
	Reason    string
}

// HITLDecision is the human's answer to a HITLRequest.
type HITLDecision string

const (
	HITLApprove       HITLDecision = "approve"
	HITLApproveAlways HITLDecision = "approve_always"
	HITLDeny          HITLDecision = "deny"
)

// Renderer is implemented by whatever surface presents agent output to a
// human: an interactive terminal, a headless logger, a future TUI.
type Renderer interface {
	RenderAssistantDelta(text string)
	RenderReasoningDelta(text string)
	RenderToolStart(name string, args json.RawMessage)
	RenderToolResult(name string, outcome ToolOutcomeView)
	RenderDiffConfirm(paths []string, unifiedDiff string) (approved bool)
	RenderHITL(req HITLRequest) (HITLDecision, error)
	SetHeader(provider, model, mode string, reasoningEffort string)
}
