package service

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// auditRecorderStub captures audit entries for assertions.
type auditRecorderStub struct {
	mu      sync.Mutex
	entries []AuditEntry
}

func (a *auditRecorderStub) Record(_ context.Context, entry AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *auditRecorderStub) byAction(action string) []AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	matched := make([]AuditEntry, 0)
	for _, entry := range a.entries {
		if entry.Action == action {
			matched = append(matched, entry)
		}
	}
	return matched
}
