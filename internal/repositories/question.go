package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/myrjola/deepinsight/internal/errors"
	"github.com/myrjola/deepinsight/internal/models"
	"github.com/myrjola/deepinsight/sqlite"
)

type QuestionRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewQuestionRepository(dbs *sqlite.Database, logger *slog.Logger) *QuestionRepository {
	return &QuestionRepository{
		dbs:    dbs,
		logger: logger.With("source", "QuestionRepository"),
	}
}

func (r *QuestionRepository) Create(ctx context.Context, question models.Question) error {
	stmt := `INSERT INTO questions (id, content, business_id, interview_id, is_follow_up, order_index)
	VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.dbs.ReadWrite.ExecContext(ctx, stmt,
		question.ID, question.Content, question.BusinessID,
		question.InterviewID, question.IsFollowUp, question.OrderIndex)
	if err != nil {
		return errors.Wrap(err, "insert question", slog.String("question_id", question.ID))
	}
	return nil
}

func (r *QuestionRepository) Get(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	stmt := `SELECT id, content, business_id, interview_id, is_follow_up, order_index
	FROM questions WHERE id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &question, stmt, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(models.ErrNoRecord, "question not found", slog.String("question_id", id))
		}
		return nil, errors.Wrap(err, "read question", slog.String("question_id", id))
	}
	return &question, nil
}

// ListBase returns the base questions of a business ordered by order index.
// Questions without an order index sort last. They should not occur for base
// questions, this is defensive.
func (r *QuestionRepository) ListBase(ctx context.Context, businessID string) ([]models.Question, error) {
	var questions []models.Question
	stmt := `SELECT id, content, business_id, interview_id, is_follow_up, order_index
	FROM questions
	WHERE business_id = ? AND is_follow_up = 0
	ORDER BY order_index IS NULL, order_index`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &questions, stmt, businessID); err != nil {
		return nil, errors.Wrap(err, "list base questions", slog.String("business_id", businessID))
	}
	return questions, nil
}

// GetFollowUpBySlot looks up the follow-up question already generated for the
// given order-index slot of an interview. It returns models.ErrNoRecord when
// the slot is still open.
func (r *QuestionRepository) GetFollowUpBySlot(
	ctx context.Context,
	interviewID string,
	orderIndex int64,
) (*models.Question, error) {
	var question models.Question
	stmt := `SELECT id, content, business_id, interview_id, is_follow_up, order_index
	FROM questions
	WHERE interview_id = ? AND order_index = ? AND is_follow_up = 1`
	if err := r.dbs.ReadOnly.GetContext(ctx, &question, stmt, interviewID, orderIndex); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(models.ErrNoRecord, "follow-up slot open",
				slog.String("interview_id", interviewID), slog.Int64("order_index", orderIndex))
		}
		return nil, errors.Wrap(err, "read follow-up by slot", slog.String("interview_id", interviewID))
	}
	return &question, nil
}

// NextBaseOrderIndex computes the order index for the next authored base
// question, leaving two open slots after every existing one.
func (r *QuestionRepository) NextBaseOrderIndex(ctx context.Context, businessID string) (int64, error) {
	var maxIndex sql.NullInt64
	stmt := `SELECT MAX(order_index) FROM questions WHERE business_id = ? AND is_follow_up = 0`
	if err := r.dbs.ReadOnly.GetContext(ctx, &maxIndex, stmt, businessID); err != nil {
		return 0, errors.Wrap(err, "read max base order index", slog.String("business_id", businessID))
	}
	if !maxIndex.Valid {
		return 0, nil
	}
	return maxIndex.Int64 + models.BaseQuestionStride, nil
}
