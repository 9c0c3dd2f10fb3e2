package usecase

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"time"

	emaildomain "atix-backend/internal/email/domain"
	emaildto "atix-backend/internal/email/dto"
)

const (
	// importChunkSize bounds how many upserts go into one transaction
	importChunkSize = 100
	// maxGmailImport caps how many messages one Gmail import may fetch
	maxGmailImport = 1000
)

var receivedAtFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseReceivedAt(value string) (time.Time, error) {
	for _, format := range receivedAtFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO date")
}

// validateRecords checks the whole payload before anything is persisted.
// The returned error names the first failing field, so an invalid batch is
// rejected wholesale.
func validateRecords(records []emaildto.ImportRecord) ([]time.Time, error) {
	if len(records) == 0 {
		return nil, &emaildomain.ValidationError{Field: "records", Message: "at least one record is required"}
	}

	receivedAts := make([]time.Time, len(records))
	for i, rec := range records {
		if rec.ID == "" {
			return nil, &emaildomain.ValidationError{Field: fmt.Sprintf("records[%d].id", i), Message: "required"}
		}
		if rec.Email == "" {
			return nil, &emaildomain.ValidationError{Field: fmt.Sprintf("records[%d].email", i), Message: "required"}
		}
		if _, err := mail.ParseAddress(rec.Email); err != nil {
			return nil, &emaildomain.ValidationError{Field: fmt.Sprintf("records[%d].email", i), Message: "not a valid email address"}
		}
		t, err := parseReceivedAt(rec.ReceivedAt)
		if err != nil {
			return nil, &emaildomain.ValidationError{Field: fmt.Sprintf("records[%d].received_at", i), Message: "must be an ISO date"}
		}
		receivedAts[i] = t
	}
	return receivedAts, nil
}

// ImportJSON upserts a validated bulk payload in chunks. Each chunk is one
// transaction, retried once on failure; a failed chunk does not block the
// chunks after it. Re-imported records keep their classification and board
// state, only content fields are overwritten.
func (u *emailUsecase) ImportJSON(userID string, records []emaildto.ImportRecord) (int, error) {
	receivedAts, err := validateRecords(records)
	if err != nil {
		return 0, err
	}

	emails := make([]*emaildomain.Email, len(records))
	for i, rec := range records {
		emails[i] = &emaildomain.Email{
			UserID:       userID,
			ExternalID:   rec.ID,
			Sender:       rec.Email,
			Subject:      rec.Subject,
			Body:         rec.Body,
			ReceivedAt:   receivedAts[i],
			KanbanStatus: emaildomain.StatusTodo,
			KanbanOrder:  i,
		}
	}

	imported := 0
	for start := 0; start < len(emails); start += importChunkSize {
		end := start + importChunkSize
		if end > len(emails) {
			end = len(emails)
		}
		chunk := emails[start:end]

		err := u.emailRepo.UpsertBatch(chunk)
		if err != nil {
			log.Printf("[Import] chunk %d-%d failed: %v, retrying once", start, end, err)
			err = u.emailRepo.UpsertBatch(chunk)
		}
		if err != nil {
			log.Printf("[Import] chunk %d-%d failed after retry: %v", start, end, err)
			continue
		}
		imported += len(chunk)
	}

	return imported, nil
}

func resolveAfter(req emaildto.GmailImportRequest) (*time.Time, error) {
	now := time.Now()
	switch req.Range {
	case "":
		return nil, nil
	case "week":
		t := now.AddDate(0, 0, -7)
		return &t, nil
	case "month":
		t := now.AddDate(0, 0, -30)
		return &t, nil
	case "custom":
		t, err := parseReceivedAt(req.After)
		if err != nil {
			return nil, &emaildomain.ValidationError{Field: "after", Message: "must be an ISO date"}
		}
		return &t, nil
	default:
		return nil, &emaildomain.ValidationError{Field: "range", Message: fmt.Sprintf("unknown range %q", req.Range)}
	}
}

// ImportFromGmail lists the user's Gmail messages (capped, optionally date
// filtered) and imports the ones not seen before. An existing
// (external id, user) pair means "already imported" and is skipped
// silently. Per-message failures land in the report's error list without
// aborting the run. Cancelling ctx stops further fetching; rows already
// upserted stay committed.
func (u *emailUsecase) ImportFromGmail(ctx context.Context, userID string, req emaildto.GmailImportRequest) (*emaildomain.ImportReport, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.GoogleRefreshToken == "" {
		return nil, &emaildomain.ValidationError{Field: "account", Message: "no linked Google account with refresh token"}
	}

	after, err := resolveAfter(req)
	if err != nil {
		return nil, err
	}

	ids, err := u.mailProvider.ListMessageIDs(ctx, user.GoogleRefreshToken, after, maxGmailImport)
	if err != nil {
		return nil, fmt.Errorf("failed to list Gmail messages: %w", err)
	}

	report := &emaildomain.ImportReport{TotalFound: len(ids), Errors: []emaildomain.ImportError{}}

	for _, id := range ids {
		if ctx.Err() != nil {
			log.Printf("[GmailImport] cancelled after %d/%d messages for user %s", report.Imported, report.TotalFound, userID)
			return report, nil
		}

		msg, err := u.mailProvider.GetMessage(ctx, user.GoogleRefreshToken, id)
		if err != nil {
			report.Errors = append(report.Errors, emaildomain.ImportError{ID: id, Error: err.Error()})
			continue
		}

		if after != nil && msg.ReceivedAt.Before(*after) {
			continue
		}

		created, err := u.emailRepo.CreateIfAbsent(&emaildomain.Email{
			UserID:       userID,
			ExternalID:   msg.ExternalID,
			Sender:       msg.Sender,
			Subject:      msg.Subject,
			Body:         msg.Body,
			ReceivedAt:   msg.ReceivedAt,
			KanbanStatus: emaildomain.StatusTodo,
		})
		if err != nil {
			report.Errors = append(report.Errors, emaildomain.ImportError{ID: id, Error: err.Error()})
			continue
		}
		if created {
			report.Imported++
		}
	}

	return report, nil
}
