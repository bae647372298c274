package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/myrjola/deepinsight/internal/errors"
	"github.com/myrjola/deepinsight/internal/models"
	"github.com/myrjola/deepinsight/sqlite"
)

type EmployeeRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewEmployeeRepository(dbs *sqlite.Database, logger *slog.Logger) *EmployeeRepository {
	return &EmployeeRepository{
		dbs:    dbs,
		logger: logger.With("source", "EmployeeRepository"),
	}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee models.Employee) error {
	stmt := `INSERT INTO employees (id, email, bio, business_id) VALUES (?, ?, ?, ?)`
	_, err := r.dbs.ReadWrite.ExecContext(ctx, stmt,
		employee.ID, employee.Email, employee.Bio, employee.BusinessID)
	if err != nil {
		return errors.Wrap(err, "insert employee", slog.String("employee_id", employee.ID))
	}
	return nil
}

func (r *EmployeeRepository) Get(ctx context.Context, id string) (*models.Employee, error) {
	var employee models.Employee
	stmt := `SELECT id, email, bio, business_id FROM employees WHERE id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &employee, stmt, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(models.ErrNoRecord, "employee not found", slog.String("employee_id", id))
		}
		return nil, errors.Wrap(err, "read employee", slog.String("employee_id", id))
	}
	return &employee, nil
}

// ListForBusiness returns all employees of the business in insertion order.
func (r *EmployeeRepository) ListForBusiness(ctx context.Context, businessID string) ([]models.Employee, error) {
	var employees []models.Employee
	stmt := `SELECT id, email, bio, business_id FROM employees WHERE business_id = ? ORDER BY rowid`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &employees, stmt, businessID); err != nil {
		return nil, errors.Wrap(err, "list employees", slog.String("business_id", businessID))
	}
	return employees, nil
}
