// Package budget tracks per-session token usage against a context
// window and classifies it into the three-tier CompactMode the
// run-loop and prompt assembler act on.
package budget

import (
	"sync"
	"time"

	"github.com/vtcode/vtcode/pkg/vtmodels"
)

// Thresholds are the ratio boundaries between CompactMode tiers:
// below CompactThreshold is Normal, between CompactThreshold and
// CheckpointThreshold is Compact, at or above CheckpointThreshold is
// Checkpoint.
const (
	CompactThreshold    = 0.90
	CheckpointThreshold = 0.95
)

// Config configures a Tracker.
type Config struct {
	// ContextWindow is the provider's maximum token count for the
	// active model.
	ContextWindow int
}

type sessionBudget struct {
	usedTokens int
	lastCheck  time.Time
	mode       vtmodels.CompactMode
}

// Tracker monitors per-session token usage and reports the current
// CompactMode, guarding its per-session map the same way the
// teacher's CompactionManager guards its session map.
type Tracker struct {
	mu       sync.RWMutex
	cfg      Config
	sessions map[string]*sessionBudget
}

// New creates a Tracker for the given context window.
func New(cfg Config) *Tracker {
	return &Tracker{cfg: cfg, sessions: make(map[string]*sessionBudget)}
}

// Record updates a session's used-token count and returns the
// resulting CompactMode. usedTokens is monotonically non-decreasing
// within a turn; callers pass the cumulative total, not a delta.
func (t *Tracker) Record(sessionID string, usedTokens int) vtmodels.CompactMode {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.sessions[sessionID]
	if s == nil {
		s = &sessionBudget{}
		t.sessions[sessionID] = s
	}
	if usedTokens > s.usedTokens {
		s.usedTokens = usedTokens
	}
	s.lastCheck = time.Now()
	s.mode = classify(s.usedTokens, t.cfg.ContextWindow)
	return s.mode
}

// Mode returns the last recorded CompactMode for a session, or Normal
// if the session has no recorded usage.
func (t *Tracker) Mode(sessionID string) vtmodels.CompactMode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s := t.sessions[sessionID]
	if s == nil {
		return vtmodels.CompactModeNormal
	}
	return s.mode
}

// Usage returns the last recorded used-token count for a session.
func (t *Tracker) Usage(sessionID string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s := t.sessions[sessionID]
	if s == nil {
		return 0
	}
	return s.usedTokens
}

// Reset clears tracked usage for a session, e.g. after a successful
// compaction pass.
func (t *Tracker) Reset(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, sessionID)
}

func classify(used, window int) vtmodels.CompactMode {
	if window <= 0 {
		return vtmodels.CompactModeNormal
	}
	ratio := float64(used) / float64(window)
	switch {
	case ratio >= CheckpointThreshold:
		return vtmodels.CompactModeCheckpoint
	case ratio >= CompactThreshold:
		return vtmodels.CompactModeCompact
	default:
		return vtmodels.CompactModeNormal
	}
}
