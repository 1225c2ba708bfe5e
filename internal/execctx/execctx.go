// Package execctx implements the unified execution context (spec §4.9,
// component C9): it aggregates the token-budget tracker (C2), the loop
// detector (C3), and a lightweight tool-behavior analyzer behind one
// interface so the run-loop and tool pipeline share a single source of
// truth for "is this session healthy" decisions.
package execctx

import (
	"fmt"
	"sync"

	"github.com/vtcode/vtcode/internal/budget"
	"github.com/vtcode/vtcode/internal/loopguard"
	"github.com/vtcode/vtcode/pkg/vtmodels"
)

// Config bundles the sub-component configuration for a new Context.
type Config struct {
	Budget    budget.Config
	LoopGuard loopguard.Config
}

type toolStats struct {
	successes int
	failures  int
}

// Context is the C9 aggregate. It exclusively owns the budget tracker
// and loop guard; the run-loop (C10) and tool pipeline (C6) only read
// through its methods, never reach into the sub-components directly.
type Context struct {
	budget *budget.Tracker
	loop   *loopguard.Guard

	mu    sync.Mutex
	stats map[string]map[string]*toolStats // sessionID -> tool -> stats
}

// New creates an execution Context.
func New(cfg Config) *Context {
	return &Context{
		budget: budget.New(cfg.Budget),
		loop:   loopguard.New(cfg.LoopGuard),
		stats:  make(map[string]map[string]*toolStats),
	}
}

// RecordToolCall feeds a tool call to the loop detector and returns a
// non-empty advisory string once the soft limit is reached (nil
// otherwise). A true return for blocked means the hard limit has
// already tripped and the call must be denied with PolicyViolation.
func (c *Context) RecordToolCall(sessionID string, call vtmodels.ToolCall) (advisory string, blocked bool) {
	tripped, soft := c.loop.ObserveStatus(sessionID, call)
	if tripped {
		return "", true
	}
	if soft {
		return fmt.Sprintf("repeated identical call to %q detected — consider a different approach", call.Name), false
	}
	return "", false
}

// ShouldBlockForLoop reports whether a tool call identical to the given
// call would currently be blocked, without recording a new observation.
func (c *Context) ShouldBlockForLoop(sessionID string, call vtmodels.ToolCall) bool {
	return c.loop.Tripped(sessionID, call)
}

// ResetTool clears the loop-guard history for a session after observable
// progress (a file modification, a new tool being used).
func (c *Context) ResetTool(sessionID string) {
	c.loop.Reset(sessionID)
}

// RecordTokens updates the budget tracker and returns the resulting
// CompactMode.
func (c *Context) RecordTokens(sessionID string, usedTokens int) vtmodels.CompactMode {
	return c.budget.Record(sessionID, usedTokens)
}

// CompactMode returns the session's current tier without recording new usage.
func (c *Context) CompactMode(sessionID string) vtmodels.CompactMode {
	return c.budget.Mode(sessionID)
}

// RecordToolExecution updates per-tool success-rate statistics for the
// behavior analyzer.
func (c *Context) RecordToolExecution(sessionID, toolName string, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	session, ok := c.stats[sessionID]
	if !ok {
		session = make(map[string]*toolStats)
		c.stats[sessionID] = session
	}
	st, ok := session[toolName]
	if !ok {
		st = &toolStats{}
		session[toolName] = st
	}
	if success {
		st.successes++
	} else {
		st.failures++
	}
}

// ShouldWarnForTool returns an advisory string when a tool's recent
// failure rate is high enough to be worth surfacing to the model. Only
// tools with at least 3 recorded executions and a failure rate >= 50%
// are flagged.
func (c *Context) ShouldWarnForTool(sessionID, toolName string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	session, ok := c.stats[sessionID]
	if !ok {
		return "", false
	}
	st, ok := session[toolName]
	if !ok {
		return "", false
	}
	total := st.successes + st.failures
	if total < 3 {
		return "", false
	}
	if float64(st.failures)/float64(total) >= 0.5 {
		return fmt.Sprintf("tool %q has failed %d of %d recent calls", toolName, st.failures, total), true
	}
	return "", false
}

// RecoveryAction maps a known UnifiedErrorKind to a short remediation
// hint the model can act on, or "" if none is known.
func RecoveryAction(kind vtmodels.UnifiedErrorKind) string {
	switch kind {
	case vtmodels.ErrKindTimeout:
		return "retry with a narrower scope or smaller input"
	case vtmodels.ErrKindNetwork, vtmodels.ErrKindRateLimit, vtmodels.ErrKindCircuitOpen:
		return "wait briefly and retry; this is likely transient"
	case vtmodels.ErrKindArgumentValidation:
		return "re-read the tool's schema and correct the arguments"
	case vtmodels.ErrKindNotFound:
		return "check the tool name against the available tool list"
	case vtmodels.ErrKindPermissionDenied:
		return "this action requires different permissions or mode; ask the user or adjust scope"
	default:
		return ""
	}
}

// GenerateStatusReport produces a short human summary of session health.
func (c *Context) GenerateStatusReport(sessionID string) string {
	mode := c.CompactMode(sessionID)
	c.mu.Lock()
	toolCount := len(c.stats[sessionID])
	c.mu.Unlock()
	return fmt.Sprintf("compact_mode=%s tools_tracked=%d", mode, toolCount)
}
