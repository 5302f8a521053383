package message

import (
	"context"
	"strings"
	"sync"
	"time"

	domain "deskchat-server/internal/domain/message"
)

// InMemoryRepository is a thread-safe repository useful for tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	nextID  uint
	lastAt  time.Time
	entries []domain.Message
}

// NewInMemoryRepository creates an empty in-memory message store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

var _ domain.Repository = (*InMemoryRepository)(nil)

// Insert assigns a sequential id and a strictly increasing timestamp so
// ordering assertions behave like the database.
func (r *InMemoryRepository) Insert(ctx context.Context, msg domain.Message) (domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if !now.After(r.lastAt) {
		now = r.lastAt.Add(time.Millisecond)
	}
	r.lastAt = now

	msg.ID = r.nextID
	msg.CreatedAt = now
	r.nextID++
	r.entries = append(r.entries, msg)
	return msg, nil
}

// RecentHistory returns the last limit entries in insertion order.
func (r *InMemoryRepository) RecentHistory(ctx context.Context, limit int) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	start := 0
	if len(r.entries) > limit {
		start = len(r.entries) - limit
	}
	return append([]domain.Message(nil), r.entries[start:]...), nil
}

// Search mirrors the SQL predicates: ANDed case-insensitive substrings and
// exact date parts, newest-first, capped at searchResultCap.
func (r *InMemoryRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Message
	for i := len(r.entries) - 1; i >= 0 && len(out) < searchResultCap; i-- {
		if matches(r.entries[i], filter) {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func matches(msg domain.Message, filter domain.SearchFilter) bool {
	if filter.Nickname != "" &&
		!strings.Contains(strings.ToLower(msg.Nickname), strings.ToLower(filter.Nickname)) {
		return false
	}
	if filter.Keyword != "" &&
		!strings.Contains(strings.ToLower(msg.Content), strings.ToLower(filter.Keyword)) {
		return false
	}
	if filter.Year != 0 && msg.CreatedAt.Year() != filter.Year {
		return false
	}
	if filter.Month != 0 && int(msg.CreatedAt.Month()) != filter.Month {
		return false
	}
	if filter.Day != 0 && msg.CreatedAt.Day() != filter.Day {
		return false
	}
	return true
}
