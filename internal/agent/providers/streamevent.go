package providers

import (
	"github.com/vtcode/vtcode/internal/agent"
	"github.com/vtcode/vtcode/pkg/models"
	"github.com/vtcode/vtcode/pkg/vtmodels"
)

// streamEventToChunk folds a normalized vtmodels.StreamEvent into the
// agent.CompletionChunk shape the run-loop consumes. Providers decode
// their own wire framing (SSE, chunked JSON) into StreamEvent first so
// the fan-in to CompletionChunk is shared instead of reimplemented per
// provider. toolCalls accumulates in-flight tool_call_delta fragments
// keyed by the provider's own per-call index.
func streamEventToChunk(event vtmodels.StreamEvent, toolCalls map[string]*models.ToolCall) *agent.CompletionChunk {
	switch event.Kind {
	case vtmodels.StreamEventTextDelta:
		if event.TextDelta == "" {
			return nil
		}
		return &agent.CompletionChunk{Text: event.TextDelta}

	case vtmodels.StreamEventToolCallStart:
		toolCalls[event.ToolCallID] = &models.ToolCall{ID: event.ToolCallID, Name: event.ToolName}
		return nil

	case vtmodels.StreamEventToolCallDelta:
		tc, ok := toolCalls[event.ToolCallID]
		if !ok {
			tc = &models.ToolCall{ID: event.ToolCallID}
			toolCalls[event.ToolCallID] = tc
		}
		if event.ToolName != "" {
			tc.Name = event.ToolName
		}
		tc.Input = append(tc.Input, []byte(event.ArgsDelta)...)
		return nil

	case vtmodels.StreamEventToolCallEnd:
		tc, ok := toolCalls[event.ToolCallID]
		if !ok || tc.ID == "" || tc.Name == "" {
			return nil
		}
		delete(toolCalls, event.ToolCallID)
		return &agent.CompletionChunk{ToolCall: tc}

	case vtmodels.StreamEventMessageStop:
		return &agent.CompletionChunk{Done: true}

	case vtmodels.StreamEventError:
		return &agent.CompletionChunk{Error: event.Err, Done: true}

	default:
		return nil
	}
}

// flushPendingToolCalls emits a CompletionChunk for every tool call still
// accumulating in toolCalls, for providers (like OpenAI's) that signal
// completion via a finish_reason rather than a dedicated end-of-call event.
func flushPendingToolCalls(toolCalls map[string]*models.ToolCall, chunks chan<- *agent.CompletionChunk) {
	for id, tc := range toolCalls {
		if tc.ID != "" && tc.Name != "" {
			chunks <- &agent.CompletionChunk{ToolCall: tc}
		}
		delete(toolCalls, id)
	}
}
