package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/AngelCh415/atelier/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestAppendFillsIDAndTimestamp(t *testing.T) {
	fixed := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	l := NewAuditLog(10, WithClock(func() time.Time { return fixed }))

	e := l.Append(models.AuditEntry{Action: "quote.create"})
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, fixed, e.Timestamp)

	kept := l.Append(models.AuditEntry{ID: "abc", Action: "login", Timestamp: fixed.Add(time.Hour)})
	assert.Equal(t, "abc", kept.ID)
	assert.Equal(t, fixed.Add(time.Hour), kept.Timestamp)
}

func TestDefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, NewAuditLog(0).Capacity())
	assert.Equal(t, 7, NewAuditLog(7).Capacity())
}

func TestFIFOEviction(t *testing.T) {
	l := NewAuditLog(3)
	for i := 0; i < 5; i++ {
		l.Append(models.AuditEntry{Action: fmt.Sprintf("a%d", i)})
	}
	require.Equal(t, 3, l.Len())

	got := l.List(Filter{})
	require.Len(t, got, 3)
	assert.Equal(t, "a4", got[0].Action)
	assert.Equal(t, "a3", got[1].Action)
	assert.Equal(t, "a2", got[2].Action)
}

func TestListFilterAndPaginate(t *testing.T) {
	l := NewAuditLog(100)
	for i := 0; i < 6; i++ {
		tenant := "firm-a"
		if i%2 == 1 {
			tenant = "firm-b"
		}
		l.Append(models.AuditEntry{TenantID: tenant, Action: "optimize.spend", Resource: fmt.Sprint(i)})
	}
	l.Append(models.AuditEntry{TenantID: "firm-a", Action: "quote.create"})

	assert.Len(t, l.List(Filter{TenantID: "FIRM-A"}), 4)
	assert.Len(t, l.List(Filter{Action: "quote.create"}), 1)

	page := l.List(Filter{TenantID: "firm-a", Action: "optimize.spend", Limit: 2, Offset: 1})
	require.Len(t, page, 2)
	assert.Equal(t, "2", page[0].Resource)
	assert.Equal(t, "0", page[1].Resource)

	assert.Empty(t, l.List(Filter{Offset: 50}))
	assert.NotNil(t, l.List(Filter{Offset: 50}))
}

func TestReset(t *testing.T) {
	l := NewAuditLog(5)
	l.Append(models.AuditEntry{Action: "x"})
	l.Reset()
	assert.Zero(t, l.Len())
	assert.Empty(t, l.List(Filter{}))
}

func TestConcurrentAppendRespectsCapacity(t *testing.T) {
	l := NewAuditLog(50)
	var g errgroup.Group
	for w := 0; w < 8; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < 100; i++ {
				l.Append(models.AuditEntry{Action: fmt.Sprintf("w%d-%d", w, i)})
				_ = l.List(Filter{Limit: 5})
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 50, l.Len())
}
