package vtmodels

// TurnPhase tracks where the run-loop is within a single turn.
type TurnPhase string

const (
	PhaseIdle             TurnPhase = "idle"
	PhaseAssemblingPrompt TurnPhase = "assembling_prompt"
	PhaseAwaitingProvider TurnPhase = "awaiting_provider"
	PhaseStreaming        TurnPhase = "streaming"
	PhaseToolExecution    TurnPhase = "tool_execution"
	PhaseAwaitingHITL     TurnPhase = "awaiting_hitl"
	PhasePostProcessing   TurnPhase = "post_processing"
	PhaseCompacting       TurnPhase = "compacting"
	PhaseDone             TurnPhase = "done"
	PhaseErrored          TurnPhase = "errored"
	PhaseCancelled        TurnPhase = "cancelled"
)

// TurnState is the run-loop's per-turn state snapshot, exposed to
// observability and the UI renderer.
type TurnState struct {
	SessionID    string
	TurnIndex    int
	Phase        TurnPhase
	PendingCalls []ToolCall
	Usage        Usage
}

// SafetyVerdict is the outcome of the command-safety classifier (C1).
type SafetyVerdict string

const (
	SafetyAllow   SafetyVerdict = "allow"
	SafetyDeny    SafetyVerdict = "deny"
	SafetyUnknown SafetyVerdict = "unknown"
)

// SafetyDecision records a classifier verdict plus the rule that
// produced it, for the append-only audit log.
type SafetyDecision struct {
	Verdict SafetyVerdict
	Rule    string
	Reason  string
}

// PolicyAction is the HITL gateway's resolved action for a tool call.
type PolicyAction string

const (
	PolicyActionAllow         PolicyAction = "allow"
	PolicyActionDeny          PolicyAction = "deny"
	PolicyActionRequireHITL   PolicyAction = "require_hitl"
)

// PolicyDecision is the result of evaluating a tool call against the
// policy/approval gateway (C5).
type PolicyDecision struct {
	Action PolicyAction
	Reason string
}

// ToolResolution is the outcome of resolving a requested tool name
// against the registry (C4): the canonical tool, or an error
// explaining why resolution failed.
type ToolResolution struct {
	CanonicalName string
	Found         bool
	Err           error
}

// ToolPipelineOutcome is the end-to-end result of running a single
// tool call through resolve -> policy -> validate -> execute (C6).
type ToolPipelineOutcome struct {
	ToolCallID string
	Result     ToolResult
	Kind       UnifiedErrorKind
	Retried    int
	Summary    string
}

// CompactMode is the three-tier budget classification used by C2.
type CompactMode string

const (
	CompactModeNormal     CompactMode = "normal"
	CompactModeCompact    CompactMode = "compact"
	CompactModeCheckpoint CompactMode = "checkpoint"
)
