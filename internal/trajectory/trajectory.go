// Package trajectory implements the append-only, one-file-per-session event
// log described in spec §4.11: every meaningful transition in a turn is
// written as a typed JSON-lines record with a monotonic sequence number.
// The writer idiom (buffered writer, background flush, JSON marshal per
// line) follows internal/audit.Logger's pattern.
package trajectory

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/vtcode/vtcode/pkg/models"
)

// Kind enumerates the record types written to a session's trajectory file.
type Kind string

const (
	KindTurnStart       Kind = "turn_start"
	KindPromptBuilt     Kind = "prompt_built"
	KindProviderRequest Kind = "provider_request"
	KindProviderResp    Kind = "provider_response"
	KindToolCall        Kind = "tool_call"
	KindWarning         Kind = "warning"
	KindError           Kind = "error"
	KindTurnEnd         Kind = "turn_end"
)

// Record is one line of the trajectory file.
type Record struct {
	Seq     uint64    `json:"seq"`
	Ts      time.Time `json:"ts"`
	Turn    string    `json:"turn"`
	Kind    Kind      `json:"kind"`
	Payload any       `json:"payload,omitempty"`
}

// ToolCallPayload captures a single tool invocation for the trajectory.
type ToolCallPayload struct {
	Name       string `json:"tool"`
	Args       string `json:"args,omitempty"`
	Success    bool   `json:"success"`
	DurationMS int64  `json:"duration_ms"`
}

// ProviderResponsePayload captures usage/finish-reason for one provider turn.
type ProviderResponsePayload struct {
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	FinishReason     string `json:"finish_reason"`
}

// Recorder is a single-writer-per-turn append-only trajectory log.
// Writes within a turn are causally ordered; the underlying file is
// fsync'd once the turn ends so a crash mid-turn loses at most the
// in-flight buffered lines, never reorders committed ones.
type Recorder struct {
	mu   sync.Mutex
	file *os.File
	w    *bufio.Writer
	seq  atomic.Uint64
}

// Open creates (or appends to) the trajectory file for a session under dir,
// named "<sessionID>.jsonl".
func Open(dir, sessionID string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("trajectory: create dir: %w", err)
	}
	path := filepath.Join(dir, sessionID+".jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("trajectory: open %s: %w", path, err)
	}
	return &Recorder{file: f, w: bufio.NewWriter(f)}, nil
}

// Append writes one record, in causal order, to the buffered writer.
func (r *Recorder) Append(turn string, kind Kind, payload any) error {
	rec := Record{
		Seq:     r.seq.Add(1),
		Ts:      time.Now().UTC(),
		Turn:    turn,
		Kind:    kind,
		Payload: payload,
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("trajectory: marshal record: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.w.Write(line); err != nil {
		return err
	}
	return r.w.WriteByte('\n')
}

// FlushTurn is called at turn-end: flushes the buffered writer and fsyncs
// the underlying file so the turn's records survive a crash.
func (r *Recorder) FlushTurn() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.w.Flush(); err != nil {
		return err
	}
	return r.file.Sync()
}

// Close flushes and closes the underlying file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.w.Flush(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

// AddToolCall implements internal/agent.ToolEventStore: it records a
// tool-call record keyed by the session/turn identifiers.
func (r *Recorder) AddToolCall(ctx context.Context, sessionID, messageID string, call *models.ToolCall) error {
	if call == nil {
		return nil
	}
	return r.Append(messageID, KindToolCall, ToolCallPayload{
		Name: call.Name,
		Args: string(call.Input),
	})
}

// AddToolResult implements internal/agent.ToolEventStore.
func (r *Recorder) AddToolResult(ctx context.Context, sessionID, messageID string, call *models.ToolCall, result *models.ToolResult) error {
	success := result != nil && !result.IsError
	name := ""
	if call != nil {
		name = call.Name
	}
	return r.Append(messageID, KindToolCall, ToolCallPayload{
		Name:    name,
		Success: success,
	})
}

// NewTurnID returns an opaque identifier for a new turn.
func NewTurnID() string {
	return uuid.NewString()
}
