package acpport

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// stdioEnvelope is the newline-delimited JSON frame exchanged with a peer
// over stdio: either an outbound event or an outbound permission request,
// answered by exactly one inbound decision line.
type stdioEnvelope struct {
	Type     string                 `json:"type"`
	Event    *PeerEvent             `json:"event,omitempty"`
	Request  *PeerPermissionRequest `json:"request,omitempty"`
	Decision PeerPermissionDecision `json:"decision,omitempty"`
}

// StdioBridge implements PeerBridge over newline-delimited JSON on stdin
// and stdout, the simplest transport an IDE or orchestrator process can
// speak without a protocol library.
type StdioBridge struct {
	mu  sync.Mutex
	out *bufio.Writer
	in  *bufio.Scanner
}

// NewStdioBridge wires a PeerBridge to the given reader/writer pair.
func NewStdioBridge(out io.Writer, in io.Reader) *StdioBridge {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &StdioBridge{out: bufio.NewWriter(out), in: scanner}
}

func (b *StdioBridge) Notify(ctx context.Context, event PeerEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	payload, err := json.Marshal(stdioEnvelope{Type: "event", Event: &event})
	if err != nil {
		return err
	}
	if _, err := b.out.Write(payload); err != nil {
		return err
	}
	if err := b.out.WriteByte('\n'); err != nil {
		return err
	}
	return b.out.Flush()
}

func (b *StdioBridge) RequestPermission(ctx context.Context, req PeerPermissionRequest) (PeerPermissionDecision, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	payload, err := json.Marshal(stdioEnvelope{Type: "permission_request", Request: &req})
	if err != nil {
		return PeerPermissionDeny, err
	}
	if _, err := b.out.Write(payload); err != nil {
		return PeerPermissionDeny, err
	}
	if err := b.out.WriteByte('\n'); err != nil {
		return PeerPermissionDeny, err
	}
	if err := b.out.Flush(); err != nil {
		return PeerPermissionDeny, err
	}

	if !b.in.Scan() {
		if err := b.in.Err(); err != nil {
			return PeerPermissionDeny, err
		}
		return PeerPermissionDeny, fmt.Errorf("acpport: peer closed stdio before answering permission request")
	}
	var reply stdioEnvelope
	if err := json.Unmarshal(b.in.Bytes(), &reply); err != nil {
		return PeerPermissionDeny, fmt.Errorf("acpport: malformed permission reply: %w", err)
	}
	if reply.Decision == PeerPermissionApprove {
		return PeerPermissionApprove, nil
	}
	return PeerPermissionDeny, nil
}
