package task

import "context"

// Repository is the store port for task records. Every write is an
// independent, immediately visible commit scoped by id; no transaction spans
// multiple stage calls.
type Repository interface {
	// ListAll returns every record ordered by id descending.
	ListAll(ctx context.Context) ([]*Task, error)

	// GetByID returns a single record.
	GetByID(ctx context.Context, id int64) (*Task, error)

	// Update applies a partial field patch to one record.
	Update(ctx context.Context, id int64, patch Patch) error

	// Insert creates a new record with input fields only; the store assigns
	// the id and headers_final starts empty.
	Insert(ctx context.Context, keyword, language, aioPrompt string) (*Task, error)

	// Delete removes the records with the given ids.
	Delete(ctx context.Context, ids []int64) error

	// Upsert writes a full record; the id must already be assigned.
	Upsert(ctx context.Context, t *Task) error
}
