package usecase

import (
	"context"

	emaildomain "atix-backend/internal/email/domain"
	emaildto "atix-backend/internal/email/dto"
)

// SortMode selects the ordering of a listing
type SortMode string

const (
	SortNewest    SortMode = "desc"
	SortOldest    SortMode = "asc"
	SortRelevance SortMode = "relevance"
	SortCategory  SortMode = "category"
)

// EmailUsecase is the application service over the classification and
// board-ordering pipeline
type EmailUsecase interface {
	// ImportJSON validates and upserts a bulk import payload, returning the
	// number of imported records. An invalid record rejects the whole batch.
	ImportJSON(userID string, records []emaildto.ImportRecord) (int, error)

	// ImportFromGmail pulls the user's Gmail messages and imports the ones
	// not seen before. Cancelling ctx stops the run; already-imported rows
	// stay committed.
	ImportFromGmail(ctx context.Context, userID string, req emaildto.GmailImportRequest) (*emaildomain.ImportReport, error)

	// ProcessEmails classifies up to 50 of the user's emails concurrently
	// and merges the results in one transaction
	ProcessEmails(ctx context.Context, userID string, ids []string) (*emaildto.ProcessResponse, error)

	// ListEmails lists a user's emails with substring search and the chosen
	// sort mode
	ListEmails(userID, query string, sort SortMode, limit, offset int) ([]*emaildomain.Email, int64, error)

	// ListBoardTasks returns the emails that appear on the Kanban board
	// (has_task=true), ordered by priority, category, recency and lane position
	ListBoardTasks(userID string) ([]*emaildomain.Email, error)

	// MoveCards applies a drag-and-drop move: the submitted list is the full
	// order of the destination lane. Returns the number of rows updated.
	MoveCards(userID string, status emaildomain.KanbanStatus, ids []string) (int, error)

	// UpdateEmail applies a manual classification correction
	UpdateEmail(userID, id string, req emaildto.UpdateRequest) (*emaildomain.Email, error)

	// DeleteEmail deletes one email; foreign or missing ids read as not found
	DeleteEmail(userID, id string) error

	// DeleteEmails deletes several emails; any foreign id rejects the batch
	DeleteEmails(userID string, ids []string) (int64, error)

	// DeleteAllEmails deletes every email of the user
	DeleteAllEmails(userID string) (int64, error)

	// GetStats returns the dashboard counters
	GetStats(userID string) (*emaildomain.Stats, error)
}
