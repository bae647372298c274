package repositories_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/myrjola/deepinsight/internal/models"
	"github.com/myrjola/deepinsight/internal/repositories"
	"github.com/stretchr/testify/require"
)

func newQuestionRepo(t *testing.T) *repositories.QuestionRepository {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return repositories.NewQuestionRepository(newTestDB(t), logger)
}

func TestQuestionRepository_ListBase(t *testing.T) {
	t.Parallel()
	repo := newQuestionRepo(t)
	ctx := context.Background()

	// A follow-up must not show up in the base question order.
	err := repo.Create(ctx, models.Question{
		ID:          "q-follow-up",
		Content:     "Can you expand on that?",
		BusinessID:  "acme",
		InterviewID: sql.NullString{String: "itv-ada", Valid: true},
		IsFollowUp:  true,
		OrderIndex:  sql.NullInt64{Int64: 1, Valid: true},
	})
	require.NoError(t, err)

	questions, err := repo.ListBase(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, questions, 3)

	wantIDs := []string{"q-background", "q-strengths", "q-challenge"}
	for i, question := range questions {
		require.Equal(t, wantIDs[i], question.ID, "base question order mismatch")
		require.False(t, question.IsFollowUp)
		require.Equal(t, int64(i*models.BaseQuestionStride), question.OrderIndex.Int64)
	}
}

func TestQuestionRepository_ListBase_nullIndexSortsLast(t *testing.T) {
	t.Parallel()
	repo := newQuestionRepo(t)
	ctx := context.Background()

	err := repo.Create(ctx, models.Question{
		ID:         "q-unindexed",
		Content:    "A question without a position.",
		BusinessID: "acme",
	})
	require.NoError(t, err)

	questions, err := repo.ListBase(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, questions, 4)
	require.Equal(t, "q-unindexed", questions[3].ID, "question without order index should sort last")
}

func TestQuestionRepository_FollowUpSlot(t *testing.T) {
	t.Parallel()
	repo := newQuestionRepo(t)
	ctx := context.Background()

	_, err := repo.GetFollowUpBySlot(ctx, "itv-ada", 1)
	require.ErrorIs(t, err, models.ErrNoRecord, "open slot should report no record")

	followUp := models.Question{
		ID:          "q-follow-up",
		Content:     "What did you learn from that?",
		BusinessID:  "acme",
		InterviewID: sql.NullString{String: "itv-ada", Valid: true},
		IsFollowUp:  true,
		OrderIndex:  sql.NullInt64{Int64: 1, Valid: true},
	}
	require.NoError(t, repo.Create(ctx, followUp))

	got, err := repo.GetFollowUpBySlot(ctx, "itv-ada", 1)
	require.NoError(t, err)
	require.Equal(t, followUp.ID, got.ID)

	// The slot is assigned at most once per interview.
	err = repo.Create(ctx, models.Question{
		ID:          "q-duplicate",
		Content:     "Duplicate slot.",
		BusinessID:  "acme",
		InterviewID: sql.NullString{String: "itv-ada", Valid: true},
		IsFollowUp:  true,
		OrderIndex:  sql.NullInt64{Int64: 1, Valid: true},
	})
	require.Error(t, err, "duplicate follow-up slot should violate the unique index")
}

func TestQuestionRepository_NextBaseOrderIndex(t *testing.T) {
	t.Parallel()
	repo := newQuestionRepo(t)
	ctx := context.Background()

	next, err := repo.NextBaseOrderIndex(ctx, "acme")
	require.NoError(t, err)
	require.Equal(t, int64(9), next)

	next, err = repo.NextBaseOrderIndex(ctx, "no-such-business")
	require.NoError(t, err)
	require.Equal(t, int64(0), next)
}

func TestQuestionRepository_Get(t *testing.T) {
	t.Parallel()
	repo := newQuestionRepo(t)
	ctx := context.Background()

	question, err := repo.Get(ctx, "q-background")
	require.NoError(t, err)
	require.Equal(t, "Tell me about your background.", question.Content)

	_, err = repo.Get(ctx, "nonexistent")
	require.ErrorIs(t, err, models.ErrNoRecord)
}
