package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	authdomain "atix-backend/internal/auth/domain"
	emaildomain "atix-backend/internal/email/domain"
	"atix-backend/pkg/ai"
)

// mockEmailRepo is an in-memory EmailRepository. Upserts mirror the
// production conflict rule: content fields overwrite, classification and
// board state survive.
type mockEmailRepo struct {
	mu     sync.Mutex
	emails map[string]*emaildomain.Email // by primary key
	nextID int

	// failing upserts: each call decrements the counter and errors while
	// it is positive
	upsertFailures int
	upsertCalls    int
}

func newMockEmailRepo() *mockEmailRepo {
	return &mockEmailRepo{emails: make(map[string]*emaildomain.Email)}
}

func (m *mockEmailRepo) findByExternal(userID, externalID string) *emaildomain.Email {
	for _, e := range m.emails {
		if e.UserID == userID && e.ExternalID == externalID {
			return e
		}
	}
	return nil
}

func (m *mockEmailRepo) UpsertBatch(emails []*emaildomain.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.upsertCalls++
	if m.upsertFailures > 0 {
		m.upsertFailures--
		return fmt.Errorf("injected upsert failure")
	}

	for _, e := range emails {
		if existing := m.findByExternal(e.UserID, e.ExternalID); existing != nil {
			existing.Sender = e.Sender
			existing.Subject = e.Subject
			existing.Body = e.Body
			existing.ReceivedAt = e.ReceivedAt
			existing.UpdatedAt = time.Now()
			continue
		}
		m.nextID++
		clone := *e
		clone.ID = fmt.Sprintf("id-%d", m.nextID)
		m.emails[clone.ID] = &clone
	}
	return nil
}

func (m *mockEmailRepo) CreateIfAbsent(e *emaildomain.Email) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findByExternal(e.UserID, e.ExternalID) != nil {
		return false, nil
	}
	m.nextID++
	clone := *e
	clone.ID = fmt.Sprintf("id-%d", m.nextID)
	m.emails[clone.ID] = &clone
	return true, nil
}

func (m *mockEmailRepo) FindByID(id string) (*emaildomain.Email, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.emails[id]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, nil
}

func (m *mockEmailRepo) FindByIDs(userID string, ids []string) ([]*emaildomain.Email, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*emaildomain.Email
	for _, id := range ids {
		if e, ok := m.emails[id]; ok && e.UserID == userID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *mockEmailRepo) listMatching(userID, query string) []*emaildomain.Email {
	var out []*emaildomain.Email
	for _, e := range m.emails {
		if e.UserID != userID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(e.Sender), strings.ToLower(query)) &&
			!strings.Contains(strings.ToLower(e.Subject), strings.ToLower(query)) {
			continue
		}
		clone := *e
		out = append(out, &clone)
	}
	return out
}

func (m *mockEmailRepo) ListByUser(userID, query string, sortAsc bool, limit, offset int) ([]*emaildomain.Email, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.listMatching(userID, query)
	sort.Slice(out, func(i, j int) bool {
		if sortAsc {
			return out[i].ReceivedAt.Before(out[j].ReceivedAt)
		}
		return out[i].ReceivedAt.After(out[j].ReceivedAt)
	})

	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (m *mockEmailRepo) ListAllByUser(userID, query string, cap int) ([]*emaildomain.Email, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.listMatching(userID, query)
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	if len(out) > cap {
		out = out[:cap]
	}
	return out, nil
}

func (m *mockEmailRepo) ListTasks(userID string) ([]*emaildomain.Email, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*emaildomain.Email
	for _, e := range m.emails {
		if e.UserID == userID && e.HasTask {
			clone := *e
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	return out, nil
}

func (m *mockEmailRepo) ApplyClassifications(userID string, updates []emaildomain.ClassificationUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range updates {
		e, ok := m.emails[u.EmailID]
		if !ok || e.UserID != userID {
			continue
		}
		category, priority := u.Category, u.Priority
		e.Processed = true
		e.Category = &category
		e.Priority = &priority
		e.HasTask = u.HasTask
		e.TaskDescription = u.TaskDescription
		e.UpdatedAt = time.Now()
	}
	return nil
}

func (m *mockEmailRepo) MoveCards(userID string, status emaildomain.KanbanStatus, positions []emaildomain.CardPosition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range positions {
		e, ok := m.emails[p.EmailID]
		if !ok || e.UserID != userID {
			continue
		}
		e.KanbanStatus = status
		e.KanbanOrder = p.Order
		e.UpdatedAt = time.Now()
	}
	return nil
}

func (m *mockEmailRepo) Update(email *emaildomain.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *email
	clone.UpdatedAt = time.Now()
	m.emails[email.ID] = &clone
	return nil
}

func (m *mockEmailRepo) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.emails, id)
	return nil
}

func (m *mockEmailRepo) DeleteByIDs(userID string, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for _, id := range ids {
		if e, ok := m.emails[id]; ok && e.UserID == userID {
			delete(m.emails, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *mockEmailRepo) DeleteByUser(userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, e := range m.emails {
		if e.UserID == userID {
			delete(m.emails, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *mockEmailRepo) Stats(userID string) (*emaildomain.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &emaildomain.Stats{}
	for _, e := range m.emails {
		if e.UserID != userID {
			continue
		}
		stats.TotalEmails++
		if !e.Processed {
			stats.UnprocessedEmails++
		}
		if e.HasTask {
			if e.KanbanStatus == emaildomain.StatusDone {
				stats.CompletedTasks++
			} else {
				stats.PendingTasks++
			}
		}
	}
	return stats, nil
}

func (m *mockEmailRepo) findByExternalForTest(userID, externalID string) *emaildomain.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e := m.findByExternal(userID, externalID); e != nil {
		clone := *e
		return &clone
	}
	return nil
}

func (m *mockEmailRepo) get(id string) *emaildomain.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.emails[id]; ok {
		clone := *e
		return &clone
	}
	return nil
}

func (m *mockEmailRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.emails)
}

// mockUserRepo is an in-memory UserRepository covering what the email
// pipeline needs.
type mockUserRepo struct {
	users map[string]*authdomain.User
}

func newMockUserRepo(users ...*authdomain.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[string]*authdomain.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) Create(user *authdomain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByID(id string) (*authdomain.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepo) FindByEmail(email string) (*authdomain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Update(user *authdomain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) CreateRefreshToken(*authdomain.RefreshToken) error { return nil }
func (m *mockUserRepo) FindRefreshToken(string) (*authdomain.RefreshToken, error) {
	return nil, nil
}
func (m *mockUserRepo) RevokeRefreshToken(string) error { return nil }

// mockClassifier routes each call through a per-sender behavior function
type mockClassifier struct {
	classify func(sender string) (*ai.ClassificationResult, error)
	mu       sync.Mutex
	calls    int
}

func (m *mockClassifier) ClassifyEmail(ctx context.Context, sender, subject, body string) (*ai.ClassificationResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.classify != nil {
		return m.classify(sender)
	}
	return &ai.ClassificationResult{Category: "cliente", Priority: "alta", HasTask: true, TaskDescription: "follow up"}, nil
}

// mockMailProvider serves a fixed message set keyed by id
type mockMailProvider struct {
	ids      []string
	messages map[string]*emaildomain.SourceMessage
	fetchErr map[string]error

	listErr error
	onFetch func(id string) // hook for cancellation tests
}

func (m *mockMailProvider) ListMessageIDs(ctx context.Context, refreshToken string, after *time.Time, max int) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if len(m.ids) > max {
		return m.ids[:max], nil
	}
	return m.ids, nil
}

func (m *mockMailProvider) GetMessage(ctx context.Context, refreshToken, id string) (*emaildomain.SourceMessage, error) {
	if m.onFetch != nil {
		m.onFetch(id)
	}
	if err, ok := m.fetchErr[id]; ok {
		return nil, err
	}
	if msg, ok := m.messages[id]; ok {
		return msg, nil
	}
	return nil, fmt.Errorf("message %s not found", id)
}
