package repository

import (
	emaildomain "atix-backend/internal/email/domain"
)

// EmailRepository defines the interface for email data access
type EmailRepository interface {
	// UpsertBatch inserts or updates a batch of emails in one transaction,
	// keyed on (external_id, user_id). On conflict only the content fields
	// (sender, subject, body, received_at) are overwritten; classification
	// and board state survive a re-import.
	UpsertBatch(emails []*emaildomain.Email) error

	// CreateIfAbsent inserts an email unless one already exists for the same
	// (external_id, user_id). Returns true when a row was created.
	CreateIfAbsent(email *emaildomain.Email) (bool, error)

	// FindByID finds an email by primary key regardless of owner
	FindByID(id string) (*emaildomain.Email, error)

	// FindByIDs returns the subset of ids that exist and belong to the user
	FindByIDs(userID string, ids []string) ([]*emaildomain.Email, error)

	// ListByUser lists a user's emails, optionally filtered by a substring
	// match on sender/subject, ordered by received_at (sortAsc toggles the
	// direction), with limit/offset pagination. Also returns the total count.
	ListByUser(userID, query string, sortAsc bool, limit, offset int) ([]*emaildomain.Email, int64, error)

	// ListAllByUser lists up to cap matching emails without pagination, for
	// in-memory ranking modes
	ListAllByUser(userID, query string, cap int) ([]*emaildomain.Email, error)

	// ListTasks lists the user's emails with has_task=true (the board cards)
	ListTasks(userID string) ([]*emaildomain.Email, error)

	// ApplyClassifications merges classifier results into their emails and
	// marks them processed, all in one transaction
	ApplyClassifications(userID string, updates []emaildomain.ClassificationUpdate) error

	// MoveCards sets kanban status and lane position for each listed email
	// in one transaction
	MoveCards(userID string, status emaildomain.KanbanStatus, positions []emaildomain.CardPosition) error

	// Update persists manual edits to a single email
	Update(email *emaildomain.Email) error

	// Delete removes a single email by primary key
	Delete(id string) error

	// DeleteByIDs removes the given emails of the user in one transaction
	DeleteByIDs(userID string, ids []string) (int64, error)

	// DeleteByUser removes every email of the user
	DeleteByUser(userID string) (int64, error)

	// Stats returns the dashboard counters for the user
	Stats(userID string) (*emaildomain.Stats, error)
}
