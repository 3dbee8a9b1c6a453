package employees

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gauravitis/quotecms/internal/platform/httpx"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, employee Employee) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	// CountQuotations reports how many quotations reference the employee as
	// their creator. The service refuses deletion while the count is non-zero.
	CountQuotations(ctx context.Context, employeeID int64) (int, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db dbtx
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const employeeColumns = "id, name, phone, email, created_at, updated_at"

func scanEmployee(row pgx.Row) (*Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.Name, &e.Phone, &e.Email, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: employee", httpx.ErrNotFound)
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Employee, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM employees WHERE id = $1", employeeColumns), id)
	return scanEmployee(row)
}

func (r *repository) List(ctx context.Context) ([]Employee, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf("SELECT %s FROM employees ORDER BY name, id", employeeColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

func (r *repository) Create(ctx context.Context, e Employee) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO employees (name, phone, email)
		VALUES ($1, $2, $3)
		RETURNING id
	`, e.Name, e.Phone, e.Email).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert employee: %w", err)
	}
	return id, nil
}

var employeeUpdateColumns = []string{"name", "phone", "email"}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE employees SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range employeeUpdateColumns {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: employee %d", httpx.ErrNotFound, id)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: employee %d", httpx.ErrNotFound, id)
	}
	return nil
}

func (r *repository) CountQuotations(ctx context.Context, employeeID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM quotations WHERE employee_id = $1", employeeID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
