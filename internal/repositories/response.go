package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/myrjola/deepinsight/internal/errors"
	"github.com/myrjola/deepinsight/internal/models"
	"github.com/myrjola/deepinsight/sqlite"
)

type ResponseRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewResponseRepository(dbs *sqlite.Database, logger *slog.Logger) *ResponseRepository {
	return &ResponseRepository{
		dbs:    dbs,
		logger: logger.With("source", "ResponseRepository"),
	}
}

// Upsert records an answer for a question within an interview. Answering the
// same question again overwrites the content while keeping the row's position
// in the creation order.
func (r *ResponseRepository) Upsert(ctx context.Context, response models.QuestionResponse) error {
	stmt := `INSERT INTO responses (interview_id, employee_id, question_id, content)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (interview_id, question_id) DO UPDATE SET content = excluded.content`
	_, err := r.dbs.ReadWrite.ExecContext(ctx, stmt,
		response.InterviewID, response.EmployeeID, response.QuestionID, response.Content)
	if err != nil {
		return errors.Wrap(err, "upsert response",
			slog.String("interview_id", response.InterviewID),
			slog.String("question_id", response.QuestionID))
	}
	return nil
}

// History returns the answered questions of an interview in creation order,
// each joined with the question it answered. A response whose question can no
// longer be resolved yields models.ErrUnknownQuestion instead of being
// silently skipped.
func (r *ResponseRepository) History(ctx context.Context, interviewID string) ([]models.AnsweredQuestion, error) {
	var (
		history []models.AnsweredQuestion
		rows    *sql.Rows
		err     error
	)

	stmt := `SELECT r.question_id, r.content,
	       q.id, q.content, q.business_id, q.interview_id, q.is_follow_up, q.order_index
	FROM responses r
	LEFT JOIN questions q ON q.id = r.question_id
	WHERE r.interview_id = ?
	ORDER BY r.id`
	if rows, err = r.dbs.ReadOnly.QueryContext(ctx, stmt, interviewID); err != nil {
		return nil, errors.Wrap(err, "query responses", slog.String("interview_id", interviewID))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			r.logger.Error("could not close rows", errors.SlogError(closeErr))
		}
	}()

	for rows.Next() {
		var (
			answered   models.AnsweredQuestion
			questionID sql.NullString
			answer     string
			question   struct {
				ID         sql.NullString
				Content    sql.NullString
				BusinessID sql.NullString
				Interview  sql.NullString
				IsFollowUp sql.NullBool
				OrderIndex sql.NullInt64
			}
		)
		if err = rows.Scan(&questionID, &answer,
			&question.ID, &question.Content, &question.BusinessID,
			&question.Interview, &question.IsFollowUp, &question.OrderIndex); err != nil {
			return nil, errors.Wrap(err, "scan response")
		}
		if !question.ID.Valid {
			return nil, errors.Wrap(models.ErrUnknownQuestion, "resolve response question",
				slog.String("interview_id", interviewID),
				slog.String("question_id", questionID.String))
		}
		answered = models.AnsweredQuestion{
			Question: models.Question{
				ID:          question.ID.String,
				Content:     question.Content.String,
				BusinessID:  question.BusinessID.String,
				InterviewID: question.Interview,
				IsFollowUp:  question.IsFollowUp.Bool,
				OrderIndex:  question.OrderIndex,
			},
			Answer: answer,
		}
		history = append(history, answered)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows error")
	}

	return history, nil
}
