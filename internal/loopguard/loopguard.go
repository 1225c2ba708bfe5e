// Package loopguard detects repetitive tool-call cycles within a
// session so the run-loop can break out instead of burning turns on
// a stuck agent.
package loopguard

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/vtcode/vtcode/pkg/vtmodels"
)

// Config bounds the detector's window and repeat tolerance.
type Config struct {
	// WindowSize is how many recent call signatures are retained per session.
	WindowSize int
	// RepeatThreshold is how many times an identical signature may
	// recur within the window before the guard trips (the spec's hard
	// limit — further calls return PolicyViolation).
	RepeatThreshold int
	// SoftThreshold, if set and below RepeatThreshold, is the repeat
	// count at which Observe reports an advisory instead of a trip
	// (spec §4.3's soft limit). 0 disables the advisory.
	SoftThreshold int
}

// DefaultConfig mirrors the spec's default loop-guarantee parameters
// (soft limit 5, hard limit 8).
func DefaultConfig() Config {
	return Config{WindowSize: 12, RepeatThreshold: 8, SoftThreshold: 5}
}

type sessionWindow struct {
	signatures []string
	counts     map[string]int
}

// Guard tracks per-session call-signature history.
type Guard struct {
	mu       sync.Mutex
	cfg      Config
	sessions map[string]*sessionWindow
}

// New creates a Guard.
func New(cfg Config) *Guard {
	if cfg.WindowSize <= 0 {
		cfg = DefaultConfig()
	}
	return &Guard{cfg: cfg, sessions: make(map[string]*sessionWindow)}
}

// Signature computes a stable signature for a tool call: its name
// plus a canonicalized (re-marshaled) form of its arguments, so
// key-order differences in the model's JSON don't defeat detection.
func Signature(call vtmodels.ToolCall) string {
	var canon any
	_ = json.Unmarshal(call.Input, &canon)
	normalized, _ := json.Marshal(canon)
	sum := sha256.Sum256(append([]byte(call.Name+"\x00"), normalized...))
	return hex.EncodeToString(sum[:])
}

// Observe records a tool call for a session and reports whether the
// loop guard has tripped: the same signature has recurred at least
// RepeatThreshold times within the last WindowSize calls.
func (g *Guard) Observe(sessionID string, call vtmodels.ToolCall) (tripped bool) {
	tripped, _ = g.ObserveStatus(sessionID, call)
	return tripped
}

// ObserveStatus is Observe plus the soft-limit advisory: soft is true
// once the repeat count reaches Config.SoftThreshold (and remains true
// until the guard trips and the caller resets), letting the run-loop
// surface an advisory message to the model before the hard block fires.
func (g *Guard) ObserveStatus(sessionID string, call vtmodels.ToolCall) (tripped, soft bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	w := g.sessions[sessionID]
	if w == nil {
		w = &sessionWindow{counts: make(map[string]int)}
		g.sessions[sessionID] = w
	}

	sig := Signature(call)
	w.signatures = append(w.signatures, sig)
	w.counts[sig]++

	if len(w.signatures) > g.cfg.WindowSize {
		dropped := w.signatures[0]
		w.signatures = w.signatures[1:]
		w.counts[dropped]--
		if w.counts[dropped] <= 0 {
			delete(w.counts, dropped)
		}
	}

	count := w.counts[sig]
	tripped = count >= g.cfg.RepeatThreshold
	soft = g.cfg.SoftThreshold > 0 && count >= g.cfg.SoftThreshold
	return tripped, soft
}

// Reset clears tracked history for a session, e.g. after a successful
// turn that made forward progress.
func (g *Guard) Reset(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sessions, sessionID)
}

// Tripped reports whether a call with this signature would currently
// be blocked, without recording a new observation.
func (g *Guard) Tripped(sessionID string, call vtmodels.ToolCall) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	w := g.sessions[sessionID]
	if w == nil {
		return false
	}
	return w.counts[Signature(call)] >= g.cfg.RepeatThreshold
}
