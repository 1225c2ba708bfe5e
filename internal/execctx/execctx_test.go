package execctx

import (
	"encoding/json"
	"testing"

	"github.com/vtcode/vtcode/internal/budget"
	"github.com/vtcode/vtcode/internal/loopguard"
	"github.com/vtcode/vtcode/pkg/vtmodels"
)

func TestRecordToolCallSoftThenHardLimit(t *testing.T) {
	ctx := New(Config{
		Budget:    budget.Config{ContextWindow: 1000},
		LoopGuard: loopguard.Config{WindowSize: 10, RepeatThreshold: 3, SoftThreshold: 2},
	})
	call := vtmodels.ToolCall{Name: "grep", Input: json.RawMessage(`{"q":"TODO"}`)}

	advisory, blocked := ctx.RecordToolCall("s1", call)
	if advisory != "" || blocked {
		t.Fatalf("first call should be clean, got advisory=%q blocked=%v", advisory, blocked)
	}

	advisory, blocked = ctx.RecordToolCall("s1", call)
	if advisory == "" || blocked {
		t.Fatalf("second call should trigger soft advisory, got advisory=%q blocked=%v", advisory, blocked)
	}

	_, blocked = ctx.RecordToolCall("s1", call)
	if !blocked {
		t.Fatalf("third call should trip the hard limit")
	}

	ctx.ResetTool("s1")
	_, blocked = ctx.RecordToolCall("s1", call)
	if blocked {
		t.Fatalf("expected fresh state after ResetTool")
	}
}

func TestShouldWarnForToolHighFailureRate(t *testing.T) {
	ctx := New(Config{Budget: budget.Config{ContextWindow: 1000}})
	ctx.RecordToolExecution("s1", "flaky_tool", false)
	ctx.RecordToolExecution("s1", "flaky_tool", false)
	ctx.RecordToolExecution("s1", "flaky_tool", true)

	msg, warn := ctx.ShouldWarnForTool("s1", "flaky_tool")
	if !warn || msg == "" {
		t.Fatalf("expected a warning for a tool failing 2/3 calls")
	}
}

func TestRecoveryActionKnownAndUnknown(t *testing.T) {
	if RecoveryAction(vtmodels.ErrKindTimeout) == "" {
		t.Fatalf("expected a recovery action for timeout")
	}
	if RecoveryAction(vtmodels.ErrKindUnknown) != "" {
		t.Fatalf("expected no recovery action for unknown kind")
	}
}
