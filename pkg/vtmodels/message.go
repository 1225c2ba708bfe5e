// Package vtmodels defines the wire-level data model shared by the
// agent run-loop, the tool pipeline, and the provider layer.
package vtmodels

import (
	"encoding/json"
	"time"
)

// Role indicates the author of a message in a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// Message is a single turn element exchanged with a provider.
type Message struct {
	ID          string         `json:"id"`
	Role        Role           `json:"role"`
	Content     string         `json:"content"`
	ToolCalls   []ToolCall     `json:"tool_calls,omitempty"`
	ToolResults []ToolResult   `json:"tool_results,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ToolCall is a provider's request to invoke a named tool with
// arguments. Input is kept as raw JSON so the pipeline can re-scan it
// with the tolerant balanced-brace parser before committing to a
// strict unmarshal.
type ToolCall struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

// ToolResult is the outcome of executing a ToolCall, fed back to the
// provider as a tool-role message.
type ToolResult struct {
	ToolCallID string `json:"tool_call_id"`
	Content    string `json:"content"`
	IsError    bool   `json:"is_error,omitempty"`
}

// Usage reports token accounting for a single provider response.
type Usage struct {
	InputTokens              int `json:"input_tokens"`
	OutputTokens             int `json:"output_tokens"`
	CacheCreationInputTokens int `json:"cache_creation_input_tokens,omitempty"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens,omitempty"`
}

// Total returns the total token count billed for this turn.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// StreamEventKind discriminates the variants of StreamEvent.
type StreamEventKind string

const (
	StreamEventTextDelta      StreamEventKind = "text_delta"
	StreamEventReasoningDelta StreamEventKind = "reasoning_delta"
	StreamEventToolCallStart  StreamEventKind = "tool_call_start"
	StreamEventToolCallDelta  StreamEventKind = "tool_call_delta"
	StreamEventToolCallEnd    StreamEventKind = "tool_call_end"
	StreamEventMessageStop    StreamEventKind = "message_stop"
	StreamEventUsage          StreamEventKind = "usage"
	StreamEventError          StreamEventKind = "error"
)

// StreamEvent is a single normalized provider streaming event, decoded
// from whichever wire framing (Anthropic SSE, OpenAI SSE, Gemini
// chunked JSON) the active provider uses.
type StreamEvent struct {
	Kind         StreamEventKind `json:"kind"`
	TextDelta    string          `json:"text_delta,omitempty"`
	ToolCallID   string          `json:"tool_call_id,omitempty"`
	ToolName     string          `json:"tool_name,omitempty"`
	ArgsDelta    string          `json:"args_delta,omitempty"`
	StopReason   string          `json:"stop_reason,omitempty"`
	Usage        *Usage          `json:"usage,omitempty"`
	Err          error           `json:"-"`
}
