package core

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditEntry captures a registry mutation for the audit trail.
type AuditEntry struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	Subject    string         `json:"subject"`
	Detail     map[string]any `json:"detail,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Audit actions recorded by the registries.
const (
	ActionInstallMod     = "install_mod"
	ActionRegisterRecipe = "register_recipe"
)

// AuditLogger records registry audit entries.
type AuditLogger interface {
	Record(ctx context.Context, entry AuditEntry)
}

// JSONAuditLogger writes entries as JSON lines and retains them for
// inspection.
type JSONAuditLogger struct {
	mu      sync.Mutex
	entries []AuditEntry
	enc     *json.Encoder
}

// NewJSONAuditLogger constructs an audit logger that encodes entries to the
// writer. A nil writer retains entries without emitting them.
func NewJSONAuditLogger(w io.Writer) *JSONAuditLogger {
	var enc *json.Encoder
	if w != nil {
		enc = json.NewEncoder(w)
	}
	return &JSONAuditLogger{enc: enc}
}

// Record implements AuditLogger. Entries without an ID or timestamp are
// completed before encoding.
func (l *JSONAuditLogger) Record(_ context.Context, entry AuditEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	if l.enc != nil {
		_ = l.enc.Encode(entry)
	}
	l.mu.Unlock()
}

// Entries returns a copy of all recorded entries.
func (l *JSONAuditLogger) Entries() []AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]AuditEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

type noopAudit struct{}

func (noopAudit) Record(context.Context, AuditEntry) {}
