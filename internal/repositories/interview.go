package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/myrjola/deepinsight/internal/errors"
	"github.com/myrjola/deepinsight/internal/models"
	"github.com/myrjola/deepinsight/sqlite"
)

type InterviewRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewInterviewRepository(dbs *sqlite.Database, logger *slog.Logger) *InterviewRepository {
	return &InterviewRepository{
		dbs:    dbs,
		logger: logger.With("source", "InterviewRepository"),
	}
}

func (r *InterviewRepository) Create(ctx context.Context, interview models.Interview) error {
	stmt := `INSERT INTO interviews (id, business_id, employee_id) VALUES (?, ?, ?)`
	_, err := r.dbs.ReadWrite.ExecContext(ctx, stmt,
		interview.ID, interview.BusinessID, interview.EmployeeID)
	if err != nil {
		return errors.Wrap(err, "insert interview", slog.String("interview_id", interview.ID))
	}
	return nil
}

func (r *InterviewRepository) Get(ctx context.Context, id string) (*models.Interview, error) {
	var interview models.Interview
	stmt := `SELECT id, business_id, employee_id FROM interviews WHERE id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &interview, stmt, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(models.ErrNoRecord, "interview not found", slog.String("interview_id", id))
		}
		return nil, errors.Wrap(err, "read interview", slog.String("interview_id", id))
	}
	return &interview, nil
}
