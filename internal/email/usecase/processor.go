package usecase

import (
	"context"
	"log"
	"sync"

	emaildomain "atix-backend/internal/email/domain"
	emaildto "atix-backend/internal/email/dto"
	"atix-backend/pkg/ai"
)

// maxBatchSize caps how many classifier calls one batch may fan out
const maxBatchSize = 50

type classifiedEmail struct {
	id     string
	result *ai.ClassificationResult
}

// ProcessEmails classifies the given emails concurrently and merges every
// settled result into the store in one transaction. Results are matched
// back by id, not position. The classifier itself never fails (it degrades
// to a safe default), but a call that dies outright only loses its own
// item: the email stays unprocessed and retryable while the rest of the
// batch goes through.
func (u *emailUsecase) ProcessEmails(ctx context.Context, userID string, ids []string) (*emaildto.ProcessResponse, error) {
	if len(ids) == 0 {
		return nil, &emaildomain.ValidationError{Field: "ids", Message: "at least one id is required"}
	}
	if len(ids) > maxBatchSize {
		return nil, &emaildomain.ValidationError{Field: "ids", Message: "at most 50 ids per batch"}
	}

	emails, err := u.emailRepo.FindByIDs(userID, ids)
	if err != nil {
		return nil, err
	}

	results := make(chan classifiedEmail, len(emails))
	var wg sync.WaitGroup
	for _, email := range emails {
		wg.Add(1)
		go func(e *emaildomain.Email) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[Process] classification of email %s panicked: %v", e.ID, r)
				}
			}()

			result, err := u.classifier.ClassifyEmail(ctx, e.Sender, e.Subject, e.Body)
			if err != nil {
				log.Printf("[Process] classification of email %s failed: %v", e.ID, err)
				return
			}
			results <- classifiedEmail{id: e.ID, result: result}
		}(email)
	}
	wg.Wait()
	close(results)

	updates := make([]emaildomain.ClassificationUpdate, 0, len(emails))
	items := make([]emaildto.ClassifiedItem, 0, len(emails))
	for r := range results {
		updates = append(updates, emaildomain.ClassificationUpdate{
			EmailID:         r.id,
			Category:        emaildomain.Category(r.result.Category),
			Priority:        emaildomain.Priority(r.result.Priority),
			HasTask:         r.result.HasTask,
			TaskDescription: r.result.TaskDescription,
		})
		items = append(items, emaildto.ClassifiedItem{
			ID:              r.id,
			Category:        r.result.Category,
			Priority:        r.result.Priority,
			HasTask:         r.result.HasTask,
			TaskDescription: r.result.TaskDescription,
		})
	}

	if err := u.emailRepo.ApplyClassifications(userID, updates); err != nil {
		return nil, err
	}

	return &emaildto.ProcessResponse{
		Processed: len(items),
		Total:     len(emails),
		Results:   items,
	}, nil
}
