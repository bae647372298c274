package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/myrjola/deepinsight/internal/errors"
	"github.com/myrjola/deepinsight/internal/models"
	"github.com/myrjola/deepinsight/sqlite"
)

type BusinessRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewBusinessRepository(dbs *sqlite.Database, logger *slog.Logger) *BusinessRepository {
	return &BusinessRepository{
		dbs:    dbs,
		logger: logger.With("source", "BusinessRepository"),
	}
}

func (r *BusinessRepository) Create(ctx context.Context, business models.Business) error {
	stmt := `INSERT INTO businesses (id, name) VALUES (?, ?)`
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, business.ID, business.Name); err != nil {
		return errors.Wrap(err, "insert business", slog.String("business_id", business.ID))
	}
	return nil
}

func (r *BusinessRepository) Get(ctx context.Context, id string) (*models.Business, error) {
	var business models.Business
	stmt := `SELECT id, name FROM businesses WHERE id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &business, stmt, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(models.ErrNoRecord, "business not found", slog.String("business_id", id))
		}
		return nil, errors.Wrap(err, "read business", slog.String("business_id", id))
	}
	return &business, nil
}
