package quotations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gauravitis/quotecms/internal/platform/db"
	"github.com/gauravitis/quotecms/internal/platform/httpx"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Quotation, error)
	// List returns quotations newest first, optionally scoped to one company
	// (companyID 0 means all).
	List(ctx context.Context, companyID int64) ([]Quotation, error)
	Create(ctx context.Context, q Quotation) (int64, error)
	Delete(ctx context.Context, id int64) error
	// IncrementCompanyQuoteNumber advances the company's last_quote_number
	// from expected to expected+1 with a conditional update, so it shares the
	// transaction of the quotation insert when called through WithTx. It
	// returns httpx.ErrConflict when the stored value no longer matches
	// expected (lost race) and httpx.ErrNotFound when the company is gone.
	IncrementCompanyQuoteNumber(ctx context.Context, companyID int64, expected int) (int, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
	return mapTxError(err)
}

const pgSerializationFailure = "40001"

// mapTxError normalizes transaction aborts. At RepeatableRead the losing
// writer is killed with a serialization failure before the conditional
// counter update can observe a stale value, so it must surface as the same
// conflict the RowsAffected path reports.
func mapTxError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgSerializationFailure {
		return fmt.Errorf("%w: %s", httpx.ErrConflict, pgErr.Message)
	}
	return err
}

const quotationColumns = `id, company_id, client_id, employee_id, ref_number,
	quote_date, items, sub_total, total_gst, grand_total, created_at, updated_at`

func scanQuotation(row pgx.Row) (*Quotation, error) {
	var q Quotation
	var items []byte
	err := row.Scan(
		&q.ID, &q.CompanyID, &q.ClientID, &q.EmployeeID, &q.RefNumber,
		&q.QuoteDate, &items, &q.SubTotal, &q.TotalGST, &q.GrandTotal,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: quotation", httpx.ErrNotFound)
		}
		return nil, err
	}
	if err := json.Unmarshal(items, &q.Items); err != nil {
		return nil, fmt.Errorf("decode quotation items: %w", err)
	}
	return &q, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Quotation, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM quotations WHERE id = $1", quotationColumns), id)
	return scanQuotation(row)
}

func (r *repository) List(ctx context.Context, companyID int64) ([]Quotation, error) {
	query := fmt.Sprintf("SELECT %s FROM quotations", quotationColumns)
	var args []interface{}
	if companyID > 0 {
		query += " WHERE company_id = $1"
		args = append(args, companyID)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotations []Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, err
		}
		quotations = append(quotations, *q)
	}
	return quotations, rows.Err()
}

func (r *repository) Create(ctx context.Context, q Quotation) (int64, error) {
	items, err := json.Marshal(q.Items)
	if err != nil {
		return 0, fmt.Errorf("encode quotation items: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO quotations (company_id, client_id, employee_id, ref_number,
			quote_date, items, sub_total, total_gst, grand_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`,
		q.CompanyID, q.ClientID, q.EmployeeID, q.RefNumber,
		q.QuoteDate, items, q.SubTotal, q.TotalGST, q.GrandTotal,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert quotation: %w", err)
	}
	return id, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM quotations WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: quotation %d", httpx.ErrNotFound, id)
	}
	return nil
}

func (r *repository) IncrementCompanyQuoteNumber(ctx context.Context, companyID int64, expected int) (int, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE companies
		SET last_quote_number = $1, updated_at = NOW()
		WHERE id = $2 AND last_quote_number = $3
	`, expected+1, companyID, expected)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)", companyID).Scan(&exists); err != nil {
			return 0, err
		}
		if !exists {
			return 0, fmt.Errorf("%w: company %d", httpx.ErrNotFound, companyID)
		}
		return 0, fmt.Errorf("%w: quote number moved past %d for company %d", httpx.ErrConflict, expected, companyID)
	}
	return expected + 1, nil
}
