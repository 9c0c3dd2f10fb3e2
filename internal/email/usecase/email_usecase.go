package usecase

import (
	"fmt"

	authrepo "atix-backend/internal/auth/repository"
	emaildomain "atix-backend/internal/email/domain"
	emaildto "atix-backend/internal/email/dto"
	"atix-backend/internal/email/repository"
	"atix-backend/pkg/ai"
)

// listRankingCap bounds how many emails are pulled into memory for the
// relevance/category sort modes.
const listRankingCap = 500

// emailUsecase implements EmailUsecase
type emailUsecase struct {
	emailRepo    repository.EmailRepository
	userRepo     authrepo.UserRepository
	mailProvider emaildomain.MailProvider
	classifier   ai.Classifier
}

// NewEmailUsecase creates a new instance of emailUsecase
func NewEmailUsecase(emailRepo repository.EmailRepository, userRepo authrepo.UserRepository, mailProvider emaildomain.MailProvider, classifier ai.Classifier) EmailUsecase {
	return &emailUsecase{
		emailRepo:    emailRepo,
		userRepo:     userRepo,
		mailProvider: mailProvider,
		classifier:   classifier,
	}
}

func (u *emailUsecase) ListEmails(userID, query string, sort SortMode, limit, offset int) ([]*emaildomain.Email, int64, error) {
	switch sort {
	case SortRelevance, SortCategory:
		emails, err := u.emailRepo.ListAllByUser(userID, query, listRankingCap)
		if err != nil {
			return nil, 0, err
		}
		if sort == SortRelevance {
			emaildomain.SortByRelevance(emails)
		} else {
			emaildomain.SortByCategory(emails)
		}
		total := int64(len(emails))
		if offset >= len(emails) {
			return []*emaildomain.Email{}, total, nil
		}
		end := offset + limit
		if end > len(emails) {
			end = len(emails)
		}
		return emails[offset:end], total, nil

	case SortOldest:
		return u.emailRepo.ListByUser(userID, query, true, limit, offset)

	default:
		return u.emailRepo.ListByUser(userID, query, false, limit, offset)
	}
}

func (u *emailUsecase) ListBoardTasks(userID string) ([]*emaildomain.Email, error) {
	emails, err := u.emailRepo.ListTasks(userID)
	if err != nil {
		return nil, err
	}
	emaildomain.SortByCategory(emails)
	return emails, nil
}

// MoveCards persists a drag-and-drop move. The submitted list is
// authoritative for the destination lane: each id gets its index as lane
// position. Cards already at the submitted (status, position) are left
// untouched, so their updated_at is not bumped. The source lane is not
// renumbered; gaps in kanban_order are harmless since ordering is relative.
func (u *emailUsecase) MoveCards(userID string, status emaildomain.KanbanStatus, ids []string) (int, error) {
	if !status.Valid() {
		return 0, &emaildomain.ValidationError{Field: "status", Message: fmt.Sprintf("unknown lane %q", status)}
	}

	emails, err := u.emailRepo.FindByIDs(userID, ids)
	if err != nil {
		return 0, err
	}
	if len(emails) != len(ids) {
		return 0, &emaildomain.AuthorizationError{Requested: len(ids), Found: len(emails)}
	}

	byID := make(map[string]*emaildomain.Email, len(emails))
	for _, e := range emails {
		byID[e.ID] = e
	}

	positions := make([]emaildomain.CardPosition, 0, len(ids))
	for i, id := range ids {
		e := byID[id]
		if e.KanbanStatus == status && e.KanbanOrder == i {
			continue
		}
		positions = append(positions, emaildomain.CardPosition{EmailID: id, Order: i})
	}

	if err := u.emailRepo.MoveCards(userID, status, positions); err != nil {
		return 0, err
	}
	return len(positions), nil
}

func (u *emailUsecase) UpdateEmail(userID, id string, req emaildto.UpdateRequest) (*emaildomain.Email, error) {
	email, err := u.emailRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if email == nil || email.UserID != userID {
		return nil, emaildomain.ErrNotFound
	}

	if req.Category != nil {
		category := emaildomain.Category(*req.Category)
		if !category.Valid() {
			return nil, &emaildomain.ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", *req.Category)}
		}
		email.Category = &category
	}
	if req.Priority != nil {
		priority := emaildomain.Priority(*req.Priority)
		if !priority.Valid() {
			return nil, &emaildomain.ValidationError{Field: "priority", Message: fmt.Sprintf("unknown priority %q", *req.Priority)}
		}
		email.Priority = &priority
	}
	if req.HasTask != nil {
		email.HasTask = *req.HasTask
	}
	if req.TaskDescription != nil {
		email.TaskDescription = *req.TaskDescription
	}
	if !email.HasTask {
		email.TaskDescription = ""
	}

	if err := u.emailRepo.Update(email); err != nil {
		return nil, err
	}
	return email, nil
}

func (u *emailUsecase) DeleteEmail(userID, id string) error {
	email, err := u.emailRepo.FindByID(id)
	if err != nil {
		return err
	}
	if email == nil || email.UserID != userID {
		return emaildomain.ErrNotFound
	}
	return u.emailRepo.Delete(id)
}

func (u *emailUsecase) DeleteEmails(userID string, ids []string) (int64, error) {
	emails, err := u.emailRepo.FindByIDs(userID, ids)
	if err != nil {
		return 0, err
	}
	if len(emails) != len(ids) {
		return 0, &emaildomain.AuthorizationError{Requested: len(ids), Found: len(emails)}
	}
	return u.emailRepo.DeleteByIDs(userID, ids)
}

func (u *emailUsecase) DeleteAllEmails(userID string) (int64, error) {
	return u.emailRepo.DeleteByUser(userID)
}

func (u *emailUsecase) GetStats(userID string) (*emaildomain.Stats, error) {
	return u.emailRepo.Stats(userID)
}
