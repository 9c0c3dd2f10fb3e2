package dto

import (
	emaildomain "atix-backend/internal/email/domain"
)

// ImportRecord is one email in a bulk JSON import payload. Field-level
// validation happens in the usecase so errors can name the exact path.
type ImportRecord struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	ReceivedAt string `json:"received_at"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
}

// GmailImportRequest selects the date range for a Gmail import
type GmailImportRequest struct {
	Range string `json:"range,omitempty"` // "week", "month" or "custom"
	After string `json:"after,omitempty"` // ISO date, used with range "custom"
}

// ProcessRequest names the emails to classify in one batch
type ProcessRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,max=50"`
}

// MoveRequest submits the full ordered id list of the destination lane
type MoveRequest struct {
	Status string   `json:"status" binding:"required,oneof=todo in_progress done"`
	IDs    []string `json:"ids" binding:"required,min=1"`
}

// DeleteRequest supports single-id, multi-id and delete-all forms
type DeleteRequest struct {
	ID        string   `json:"id,omitempty"`
	IDs       []string `json:"ids,omitempty"`
	DeleteAll bool     `json:"deleteAll,omitempty"`
}

// UpdateRequest carries a manual correction of classification fields
type UpdateRequest struct {
	Category        *string `json:"category,omitempty"`
	Priority        *string `json:"priority,omitempty"`
	HasTask         *bool   `json:"has_task,omitempty"`
	TaskDescription *string `json:"task_description,omitempty"`
}

// EmailsResponse is a paginated email listing
type EmailsResponse struct {
	Emails []*emaildomain.Email `json:"emails"`
	Total  int64                `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

// ClassifiedItem is one per-email result of a classification batch
type ClassifiedItem struct {
	ID              string `json:"id"`
	Category        string `json:"category"`
	Priority        string `json:"priority"`
	HasTask         bool   `json:"has_task"`
	TaskDescription string `json:"task_description,omitempty"`
}

// ProcessResponse reports a classification batch
type ProcessResponse struct {
	Processed int              `json:"processed"`
	Total     int              `json:"total"`
	Results   []ClassifiedItem `json:"results"`
}
