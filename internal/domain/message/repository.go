package message

import "context"

// Repository abstracts message persistence.
type Repository interface {
	// Insert stores a message and returns the row with its db-assigned
	// id and created_at.
	Insert(ctx context.Context, msg Message) (Message, error)
	// RecentHistory returns the most recent limit messages in ascending
	// chronological order.
	RecentHistory(ctx context.Context, limit int) ([]Message, error)
	// Search returns matching messages newest-first, capped by the
	// repository.
	Search(ctx context.Context, filter SearchFilter) ([]Message, error)
}
