package domain

import (
	"context"
	"time"
)

// Category is the commercial category assigned to an email by the classifier
type Category string

const (
	CategoryClient   Category = "cliente"
	CategoryLead     Category = "lead"
	CategoryInternal Category = "interno"
	CategorySpam     Category = "spam"
)

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryClient, CategoryLead, CategoryInternal, CategorySpam:
		return true
	}
	return false
}

// Priority is the urgency level assigned to an email by the classifier
type Priority string

const (
	PriorityHigh   Priority = "alta"
	PriorityMedium Priority = "media"
	PriorityLow    Priority = "baja"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// KanbanStatus is the board lane an email's task lives in
type KanbanStatus string

const (
	StatusTodo       KanbanStatus = "todo"
	StatusInProgress KanbanStatus = "in_progress"
	StatusDone       KanbanStatus = "done"
)

func (s KanbanStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Email is the central entity: an imported message plus its classification
// and board state. Content fields are immutable after import; classification
// fields are written by the batch processor, board fields by card moves.
type Email struct {
	ID         string `json:"id" gorm:"primaryKey"`
	UserID     string `json:"user_id" gorm:"uniqueIndex:idx_emails_external_user;index;not null"`
	ExternalID string `json:"external_id" gorm:"uniqueIndex:idx_emails_external_user;not null"`

	Sender     string    `json:"sender" gorm:"not null"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at" gorm:"index;not null"`

	Processed       bool      `json:"processed" gorm:"not null;default:false"`
	Category        *Category `json:"category,omitempty"`
	Priority        *Priority `json:"priority,omitempty"`
	HasTask         bool      `json:"has_task" gorm:"not null;default:false"`
	TaskDescription string    `json:"task_description,omitempty"`

	KanbanStatus KanbanStatus `json:"kanban_status" gorm:"not null;default:todo"`
	KanbanOrder  int          `json:"kanban_order" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClassificationUpdate carries one classifier result to be merged into an email
type ClassificationUpdate struct {
	EmailID         string
	Category        Category
	Priority        Priority
	HasTask         bool
	TaskDescription string
}

// CardPosition assigns a lane position to an email during a board move
type CardPosition struct {
	EmailID string
	Order   int
}

// Stats summarizes a user's mailbox for the dashboard
type Stats struct {
	TotalEmails       int64 `json:"total_emails"`
	UnprocessedEmails int64 `json:"unprocessed_emails"`
	PendingTasks      int64 `json:"pending_tasks"`
	CompletedTasks    int64 `json:"completed_tasks"`
}

// SourceMessage is a raw message pulled from an external mail source (Gmail)
type SourceMessage struct {
	ExternalID string
	Sender     string
	Subject    string
	Body       string
	ReceivedAt time.Time
}

// MailProvider lists and fetches messages from an external mail source.
// Implemented by pkg/gmail; the importer consumes it page by page.
type MailProvider interface {
	ListMessageIDs(ctx context.Context, refreshToken string, after *time.Time, max int) ([]string, error)
	GetMessage(ctx context.Context, refreshToken, id string) (*SourceMessage, error)
}

// ImportReport accounts for a full external-source import run
type ImportReport struct {
	Imported   int           `json:"imported"`
	TotalFound int           `json:"total_found"`
	Errors     []ImportError `json:"errors"`
}

// ImportError records a single message that could not be imported
type ImportError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}
