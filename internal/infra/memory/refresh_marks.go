package memory

import (
	"context"
	"sync"
	"time"
)

// RefreshMarks is an in-memory implementation of app.RefreshMarkStore.
type RefreshMarks struct {
	mu     sync.RWMutex
	at     time.Time
	marked bool
}

func NewRefreshMarks() *RefreshMarks {
	return &RefreshMarks{}
}

func (m *RefreshMarks) LastRefresh(_ context.Context) (time.Time, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.at, m.marked, nil
}

func (m *RefreshMarks) SetLastRefresh(_ context.Context, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.at = at
	m.marked = true
	return nil
}
