// Package approval implements the human-in-the-loop gateway (C5):
// evaluating a tool call against an allow/deny/require-approval
// policy and tracking pending approval requests until a human (or a
// durable "always allow" ledger entry) resolves them.
package approval

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vtcode/vtcode/internal/tools/policy"
	"github.com/vtcode/vtcode/pkg/vtmodels"
)

// Decision is the outcome of evaluating a tool call.
type Decision string

const (
	DecisionAllowed Decision = "allowed"
	DecisionDenied  Decision = "denied"
	DecisionPending Decision = "pending"
)

// Request is a pending approval request awaiting a human decision.
type Request struct {
	ID         string    `json:"id"`
	ToolCallID string    `json:"tool_call_id"`
	ToolName   string    `json:"tool_name"`
	Input      []byte    `json:"input,omitempty"`
	SessionID  string    `json:"session_id,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at,omitempty"`
	Decision   Decision  `json:"decision"`
	DecidedAt  time.Time `json:"decided_at,omitempty"`
	DecidedBy  string    `json:"decided_by,omitempty"`
}

// Policy configures HITL behavior: which tools are always allowed,
// always denied, always escalated, and what happens when no rule
// matches or no UI is attached to answer a prompt.
type Policy struct {
	Allowlist       []string `yaml:"allowlist" json:"allowlist"`
	Denylist        []string `yaml:"denylist" json:"denylist"`
	RequireApproval []string `yaml:"require_approval" json:"require_approval"`
	SafeBins        []string `yaml:"safe_bins" json:"safe_bins"`
	AskFallback     bool     `yaml:"ask_fallback" json:"ask_fallback"`
	DefaultDecision Decision `yaml:"default_decision" json:"default_decision"`
	RequestTTL      time.Duration `yaml:"request_ttl" json:"request_ttl"`
}

// DefaultPolicy mirrors the classifier's own read-only-tool allowlist
// so C1's Allow verdict and C5's safe-bin allowlist agree on the
// baseline set of commands that never need a human.
func DefaultPolicy() *Policy {
	return &Policy{
		SafeBins:        []string{"cat", "head", "tail", "wc", "sort", "uniq", "grep", "ls", "git_status", "git_log", "git_diff"},
		AskFallback:     true,
		DefaultDecision: DecisionPending,
		RequestTTL:      5 * time.Minute,
	}
}

// Store persists pending and decided approval requests.
type Store interface {
	Create(ctx context.Context, req *Request) error
	Get(ctx context.Context, id string) (*Request, error)
	Update(ctx context.Context, req *Request) error
	ListPending(ctx context.Context, sessionID string) ([]*Request, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Ledger remembers durable "always allow" decisions across sessions,
// so a tool approved once in permanent mode never re-prompts.
type Ledger interface {
	IsPermanentlyAllowed(ctx context.Context, toolName string) (bool, error)
	RememberAllow(ctx context.Context, toolName string) error
}

// Gateway evaluates tool calls against a Policy, escalating to a
// pending Request when the policy or the command-safety classifier
// leaves the verdict unresolved.
type Gateway struct {
	mu          sync.RWMutex
	policy      *Policy
	store       Store
	ledger      Ledger
	uiAvailable func() bool
}

// New creates a Gateway. A nil policy falls back to DefaultPolicy.
func New(p *Policy) *Gateway {
	return &Gateway{policy: normalize(p)}
}

// SetStore attaches a pending-request store.
func (g *Gateway) SetStore(s Store) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.store = s
}

// SetLedger attaches a durable allow-ledger.
func (g *Gateway) SetLedger(l Ledger) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ledger = l
}

// SetUIAvailableCheck sets the callback used to decide whether a
// pending request can actually be shown to a human right now.
func (g *Gateway) SetUIAvailableCheck(fn func() bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.uiAvailable = fn
}

// Evaluate decides a PolicyDecision for a tool call, consulting (in
// priority order) the deny list, the permanent-allow ledger, the
// allow list, safe bins, the require-approval list, then the default.
func (g *Gateway) Evaluate(ctx context.Context, call vtmodels.ToolCall) vtmodels.PolicyDecision {
	g.mu.RLock()
	p := g.policy
	ledger := g.ledger
	g.mu.RUnlock()

	name := call.Name

	if matchesPattern(p.Denylist, name) {
		return vtmodels.PolicyDecision{Action: vtmodels.PolicyActionDeny, Reason: "tool in denylist"}
	}

	if ledger != nil {
		if ok, _ := ledger.IsPermanentlyAllowed(ctx, name); ok {
			return vtmodels.PolicyDecision{Action: vtmodels.PolicyActionAllow, Reason: "permanently allowed"}
		}
	}

	if matchesPattern(p.Allowlist, name) {
		return vtmodels.PolicyDecision{Action: vtmodels.PolicyActionAllow, Reason: "tool in allowlist"}
	}

	if matchesPattern(p.SafeBins, name) {
		return vtmodels.PolicyDecision{Action: vtmodels.PolicyActionAllow, Reason: "tool is a safe bin"}
	}

	if matchesPattern(p.RequireApproval, name) {
		if !p.AskFallback && !g.uiReady() {
			return vtmodels.PolicyDecision{Action: vtmodels.PolicyActionDeny, Reason: "approval unavailable"}
		}
		return vtmodels.PolicyDecision{Action: vtmodels.PolicyActionRequireHITL, Reason: "tool requires approval"}
	}

	if p.DefaultDecision == DecisionAllowed {
		return vtmodels.PolicyDecision{Action: vtmodels.PolicyActionAllow, Reason: "default policy"}
	}
	if !p.AskFallback && !g.uiReady() {
		return vtmodels.PolicyDecision{Action: vtmodels.PolicyActionDeny, Reason: "approval unavailable"}
	}
	return vtmodels.PolicyDecision{Action: vtmodels.PolicyActionRequireHITL, Reason: "default policy"}
}

func (g *Gateway) uiReady() bool {
	g.mu.RLock()
	fn := g.uiAvailable
	g.mu.RUnlock()
	if fn == nil {
		return false
	}
	return fn()
}

// CreateRequest persists a pending Request for a call needing HITL.
func (g *Gateway) CreateRequest(ctx context.Context, sessionID string, call vtmodels.ToolCall, reason string) (*Request, error) {
	g.mu.RLock()
	p := g.policy
	store := g.store
	g.mu.RUnlock()

	ttl := p.RequestTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	req := &Request{
		ID:         call.ID + "-approval",
		ToolCallID: call.ID,
		ToolName:   call.Name,
		Input:      call.Input,
		SessionID:  sessionID,
		Reason:     reason,
		CreatedAt:  time.Now(),
		ExpiresAt:  time.Now().Add(ttl),
		Decision:   DecisionPending,
	}
	if store != nil {
		if err := store.Create(ctx, req); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// Approve resolves a pending request as allowed. If remember is true
// and a ledger is attached, the tool is allowed for all future
// sessions without prompting again.
func (g *Gateway) Approve(ctx context.Context, requestID, decidedBy string, remember bool) error {
	g.mu.RLock()
	store := g.store
	ledger := g.ledger
	g.mu.RUnlock()
	if store == nil {
		return nil
	}
	req, err := store.Get(ctx, requestID)
	if err != nil || req == nil {
		return err
	}
	req.Decision = DecisionAllowed
	req.DecidedAt = time.Now()
	req.DecidedBy = decidedBy
	if err := store.Update(ctx, req); err != nil {
		return err
	}
	if remember && ledger != nil {
		return ledger.RememberAllow(ctx, req.ToolName)
	}
	return nil
}

// Deny resolves a pending request as denied.
func (g *Gateway) Deny(ctx context.Context, requestID, decidedBy string) error {
	g.mu.RLock()
	store := g.store
	g.mu.RUnlock()
	if store == nil {
		return nil
	}
	req, err := store.Get(ctx, requestID)
	if err != nil || req == nil {
		return err
	}
	req.Decision = DecisionDenied
	req.DecidedAt = time.Now()
	req.DecidedBy = decidedBy
	return store.Update(ctx, req)
}

func matchesPattern(patterns []string, toolName string) bool {
	normalizedTool := policy.NormalizeTool(toolName)
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		np := policy.NormalizeTool(pattern)
		switch {
		case np == "*":
			return true
		case np == normalizedTool:
			return true
		case np == "mcp:*" && strings.HasPrefix(normalizedTool, "mcp:"):
			return true
		case len(np) > 1 && np[len(np)-1] == '*':
			if strings.HasPrefix(normalizedTool, np[:len(np)-1]) {
				return true
			}
		case len(np) > 1 && np[0] == '*':
			if strings.HasSuffix(normalizedTool, np[1:]) {
				return true
			}
		}
	}
	return false
}

func normalize(p *Policy) *Policy {
	defaults := DefaultPolicy()
	if p == nil {
		return defaults
	}
	merged := *defaults
	if len(p.Allowlist) > 0 {
		merged.Allowlist = append([]string(nil), p.Allowlist...)
	}
	if len(p.Denylist) > 0 {
		merged.Denylist = append([]string(nil), p.Denylist...)
	}
	if len(p.RequireApproval) > 0 {
		merged.RequireApproval = append([]string(nil), p.RequireApproval...)
	}
	if len(p.SafeBins) > 0 {
		merged.SafeBins = append([]string(nil), p.SafeBins...)
	}
	if p.DefaultDecision != "" {
		merged.DefaultDecision = p.DefaultDecision
	}
	if p.RequestTTL > 0 {
		merged.RequestTTL = p.RequestTTL
	}
	merged.AskFallback = p.AskFallback
	return &merged
}
