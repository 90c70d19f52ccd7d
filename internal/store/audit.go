// Package store keeps the audit log in process memory. Entries are lost on
// restart and are not shared between instances.
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AngelCh415/atelier/internal/models"
)

const DefaultCapacity = 100

type Filter struct {
	TenantID string
	Action   string
	Limit    int
	Offset   int
}

// AuditLog guarda como máximo capacity entradas; al llenarse descarta las más viejas.
type AuditLog struct {
	mu       sync.RWMutex
	entries  []models.AuditEntry // más vieja primero
	capacity int
	now      func() time.Time
}

type Option func(*AuditLog)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option { return func(l *AuditLog) { l.now = now } }

func NewAuditLog(capacity int, opts ...Option) *AuditLog {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	l := &AuditLog{capacity: capacity, now: time.Now}
	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *AuditLog) Capacity() int { return l.capacity }

// Append completa ID y Timestamp si faltan y devuelve la entrada guardada.
func (l *AuditLog) Append(e models.AuditEntry) models.AuditEntry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = l.now().UTC()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	if over := len(l.entries) - l.capacity; over > 0 {
		// FIFO: copiamos para no retener el arreglo viejo
		l.entries = append([]models.AuditEntry(nil), l.entries[over:]...)
	}
	return e
}

// List devuelve las entradas más recientes primero.
func (l *AuditLog) List(f Filter) []models.AuditEntry {
	tenant := norm(f.TenantID)
	action := norm(f.Action)

	l.mu.RLock()
	rows := make([]models.AuditEntry, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if tenant != "" && norm(e.TenantID) != tenant {
			continue
		}
		if action != "" && norm(e.Action) != action {
			continue
		}
		rows = append(rows, e)
	}
	l.mu.RUnlock()

	limit, offset := clampLimitOffset(f.Limit, f.Offset, len(rows), l.capacity)
	return paginate(rows, limit, offset)
}

func (l *AuditLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *AuditLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func clampLimitOffset(limit, offset, n, ceil int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = n
	}
	if limit > ceil {
		limit = ceil
	}
	if offset > n {
		offset = n
	}
	return limit, offset
}
