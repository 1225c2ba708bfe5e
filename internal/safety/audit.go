package safety

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/vtcode/vtcode/pkg/vtmodels"
)

// AuditRecord is a single append-only audit log entry for a safety
// decision, matching the doctor subsystem's JSONL audit-entry shape.
type AuditRecord struct {
	Timestamp time.Time              `json:"timestamp"`
	Command   string                 `json:"command"`
	Verdict   vtmodels.SafetyVerdict `json:"verdict"`
	Rule      string                 `json:"rule"`
	Reason    string                 `json:"reason"`
}

// AuditLog appends SafetyDecision records to a JSONL file.
type AuditLog struct {
	mu   sync.Mutex
	file *os.File
}

// OpenAuditLog opens (creating if needed) an append-only audit log at path.
func OpenAuditLog(path string) (*AuditLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return &AuditLog{file: f}, nil
}

// Record appends one decision for the given command.
func (a *AuditLog) Record(command string, decision vtmodels.SafetyDecision) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	rec := AuditRecord{
		Timestamp: time.Now(),
		Command:   command,
		Verdict:   decision.Verdict,
		Rule:      decision.Rule,
		Reason:    decision.Reason,
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	line = append(line, '\n')
	_, err = a.file.Write(line)
	return err
}

// Close closes the underlying file.
func (a *AuditLog) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.file.Close()
}
