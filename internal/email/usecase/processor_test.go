package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	emaildomain "atix-backend/internal/email/domain"
	"atix-backend/pkg/ai"
)

const testUser = "user-1"

func seedEmails(t *testing.T, repo *mockEmailRepo, n int) []string {
	t.Helper()
	records := make([]*emaildomain.Email, n)
	for i := 0; i < n; i++ {
		records[i] = &emaildomain.Email{
			UserID:       testUser,
			ExternalID:   fmt.Sprintf("ext-%d", i),
			Sender:       fmt.Sprintf("sender%d@corp.com", i),
			Subject:      fmt.Sprintf("subject %d", i),
			Body:         "body",
			ReceivedAt:   time.Now().Add(-time.Duration(i) * time.Hour),
			KanbanStatus: emaildomain.StatusTodo,
		}
	}
	require.NoError(t, repo.UpsertBatch(records))

	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		e := repo.findByExternalForTest(testUser, fmt.Sprintf("ext-%d", i))
		require.NotNil(t, e)
		ids = append(ids, e.ID)
	}
	return ids
}

func newTestUsecase(repo *mockEmailRepo, classifier ai.Classifier, provider emaildomain.MailProvider, userRepo *mockUserRepo) EmailUsecase {
	if userRepo == nil {
		userRepo = newMockUserRepo()
	}
	return NewEmailUsecase(repo, userRepo, provider, classifier)
}

func TestProcessEmails_AllSucceed(t *testing.T) {
	repo := newMockEmailRepo()
	ids := seedEmails(t, repo, 5)

	classifier := &mockClassifier{}
	uc := newTestUsecase(repo, classifier, nil, nil)

	resp, err := uc.ProcessEmails(context.Background(), testUser, ids)
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, 5, resp.Processed)
	assert.Len(t, resp.Results, 5)
	assert.Equal(t, 5, classifier.calls)

	for _, id := range ids {
		e := repo.get(id)
		require.NotNil(t, e)
		assert.True(t, e.Processed)
		require.NotNil(t, e.Category)
		assert.Equal(t, emaildomain.CategoryClient, *e.Category)
		assert.True(t, e.HasTask)
	}
}

func TestProcessEmails_OneFailureDoesNotBlockTheRest(t *testing.T) {
	repo := newMockEmailRepo()
	ids := seedEmails(t, repo, 4)

	failing := repo.get(ids[1]).Sender
	classifier := &mockClassifier{classify: func(sender string) (*ai.ClassificationResult, error) {
		if sender == failing {
			return nil, fmt.Errorf("provider exploded")
		}
		return &ai.ClassificationResult{Category: "lead", Priority: "media"}, nil
	}}

	uc := newTestUsecase(repo, classifier, nil, nil)
	resp, err := uc.ProcessEmails(context.Background(), testUser, ids)
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 3, resp.Processed)

	failed := repo.get(ids[1])
	assert.False(t, failed.Processed, "the failed email stays unprocessed and retryable")
	for _, id := range []string{ids[0], ids[2], ids[3]} {
		assert.True(t, repo.get(id).Processed)
	}
}

func TestProcessEmails_PanicIsIsolated(t *testing.T) {
	repo := newMockEmailRepo()
	ids := seedEmails(t, repo, 3)

	panicking := repo.get(ids[0]).Sender
	classifier := &mockClassifier{classify: func(sender string) (*ai.ClassificationResult, error) {
		if sender == panicking {
			panic("boom")
		}
		return &ai.ClassificationResult{Category: "interno", Priority: "baja"}, nil
	}}

	uc := newTestUsecase(repo, classifier, nil, nil)
	resp, err := uc.ProcessEmails(context.Background(), testUser, ids)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Processed)
	assert.False(t, repo.get(ids[0]).Processed)
}

func TestProcessEmails_ResultsMatchedByID(t *testing.T) {
	repo := newMockEmailRepo()
	ids := seedEmails(t, repo, 3)

	target := repo.get(ids[2]).Sender
	classifier := &mockClassifier{classify: func(sender string) (*ai.ClassificationResult, error) {
		if sender == target {
			return &ai.ClassificationResult{Category: "cliente", Priority: "alta", HasTask: true, TaskDescription: "send quote"}, nil
		}
		return &ai.ClassificationResult{Category: "spam", Priority: "baja"}, nil
	}}

	uc := newTestUsecase(repo, classifier, nil, nil)
	_, err := uc.ProcessEmails(context.Background(), testUser, ids)
	require.NoError(t, err)

	e := repo.get(ids[2])
	require.NotNil(t, e.Category)
	assert.Equal(t, emaildomain.CategoryClient, *e.Category)
	assert.Equal(t, "send quote", e.TaskDescription)
}

func TestProcessEmails_SizeValidation(t *testing.T) {
	repo := newMockEmailRepo()
	uc := newTestUsecase(repo, &mockClassifier{}, nil, nil)

	_, err := uc.ProcessEmails(context.Background(), testUser, nil)
	var validationErr *emaildomain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "ids", validationErr.Field)

	tooMany := make([]string, 51)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("id-%d", i)
	}
	_, err = uc.ProcessEmails(context.Background(), testUser, tooMany)
	require.ErrorAs(t, err, &validationErr)
}

func TestProcessEmails_ForeignIDsAreIgnored(t *testing.T) {
	repo := newMockEmailRepo()
	ids := seedEmails(t, repo, 2)

	require.NoError(t, repo.UpsertBatch([]*emaildomain.Email{{
		UserID: "other-user", ExternalID: "foreign", Sender: "x@y.com", ReceivedAt: time.Now(),
	}}))
	foreign := repo.findByExternalForTest("other-user", "foreign")

	uc := newTestUsecase(repo, &mockClassifier{}, nil, nil)
	resp, err := uc.ProcessEmails(context.Background(), testUser, append(ids, foreign.ID))
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 2, resp.Processed)
	assert.False(t, repo.get(foreign.ID).Processed)
}
