package repository

import (
	"errors"
	"time"

	emaildomain "atix-backend/internal/email/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type emailRepository struct {
	db *gorm.DB
}

func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepository{db: db}
}

// contentColumns are the only columns a re-import may overwrite
var contentColumns = []string{"sender", "subject", "body", "received_at", "updated_at"}

func (r *emailRepository) UpsertBatch(emails []*emaildomain.Email) error {
	if len(emails) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, email := range emails {
			if email.ID == "" {
				email.ID = uuid.New().String()
			}
			now := time.Now()
			email.CreatedAt = now
			email.UpdatedAt = now

			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "external_id"}, {Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns(contentColumns),
			}).Create(email).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *emailRepository) CreateIfAbsent(email *emaildomain.Email) (bool, error) {
	if email.ID == "" {
		email.ID = uuid.New().String()
	}
	now := time.Now()
	email.CreatedAt = now
	email.UpdatedAt = now

	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(email)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *emailRepository) FindByID(id string) (*emaildomain.Email, error) {
	var email emaildomain.Email
	err := r.db.Where("id = ?", id).First(&email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

func (r *emailRepository) FindByIDs(userID string, ids []string) ([]*emaildomain.Email, error) {
	var emails []*emaildomain.Email
	err := r.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *emailRepository) ListByUser(userID, query string, sortAsc bool, limit, offset int) ([]*emaildomain.Email, int64, error) {
	q := r.scopedQuery(userID, query)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "received_at DESC"
	if sortAsc {
		order = "received_at ASC"
	}

	var emails []*emaildomain.Email
	err := q.Order(order).Limit(limit).Offset(offset).Find(&emails).Error
	if err != nil {
		return nil, 0, err
	}
	return emails, total, nil
}

func (r *emailRepository) ListAllByUser(userID, query string, cap int) ([]*emaildomain.Email, error) {
	var emails []*emaildomain.Email
	err := r.scopedQuery(userID, query).Order("received_at DESC").Limit(cap).Find(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *emailRepository) scopedQuery(userID, query string) *gorm.DB {
	q := r.db.Model(&emaildomain.Email{}).Where("user_id = ?", userID)
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("sender ILIKE ? OR subject ILIKE ?", pattern, pattern)
	}
	return q
}

func (r *emailRepository) ListTasks(userID string) ([]*emaildomain.Email, error) {
	var emails []*emaildomain.Email
	err := r.db.Where("user_id = ? AND has_task = ?", userID, true).
		Order("received_at DESC").Find(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *emailRepository) ApplyClassifications(userID string, updates []emaildomain.ClassificationUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			err := tx.Model(&emaildomain.Email{}).
				Where("id = ? AND user_id = ?", u.EmailID, userID).
				Updates(map[string]interface{}{
					"processed":        true,
					"category":         u.Category,
					"priority":         u.Priority,
					"has_task":         u.HasTask,
					"task_description": u.TaskDescription,
					"updated_at":       time.Now(),
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *emailRepository) MoveCards(userID string, status emaildomain.KanbanStatus, positions []emaildomain.CardPosition) error {
	if len(positions) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range positions {
			err := tx.Model(&emaildomain.Email{}).
				Where("id = ? AND user_id = ?", p.EmailID, userID).
				Updates(map[string]interface{}{
					"kanban_status": status,
					"kanban_order":  p.Order,
					"updated_at":    time.Now(),
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *emailRepository) Update(email *emaildomain.Email) error {
	email.UpdatedAt = time.Now()
	return r.db.Save(email).Error
}

func (r *emailRepository) Delete(id string) error {
	return r.db.Delete(&emaildomain.Email{}, "id = ?", id).Error
}

func (r *emailRepository) DeleteByIDs(userID string, ids []string) (int64, error) {
	res := r.db.Where("user_id = ? AND id IN ?", userID, ids).Delete(&emaildomain.Email{})
	return res.RowsAffected, res.Error
}

func (r *emailRepository) DeleteByUser(userID string) (int64, error) {
	res := r.db.Where("user_id = ?", userID).Delete(&emaildomain.Email{})
	return res.RowsAffected, res.Error
}

func (r *emailRepository) Stats(userID string) (*emaildomain.Stats, error) {
	var stats emaildomain.Stats

	model := func() *gorm.DB { return r.db.Model(&emaildomain.Email{}) }

	if err := model().Where("user_id = ?", userID).Count(&stats.TotalEmails).Error; err != nil {
		return nil, err
	}
	if err := model().Where("user_id = ? AND processed = ?", userID, false).Count(&stats.UnprocessedEmails).Error; err != nil {
		return nil, err
	}
	if err := model().Where("user_id = ? AND has_task = ? AND kanban_status IN ?", userID, true,
		[]emaildomain.KanbanStatus{emaildomain.StatusTodo, emaildomain.StatusInProgress}).Count(&stats.PendingTasks).Error; err != nil {
		return nil, err
	}
	if err := model().Where("user_id = ? AND has_task = ? AND kanban_status = ?", userID, true,
		emaildomain.StatusDone).Count(&stats.CompletedTasks).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
