package companies

import (
	"context"
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
	Get(ctx context.Context, id int64) (*Company, error)
	List(ctx context.Context) ([]Company, error)
	Create(ctx context.Context, company Company) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
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
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const companyColumns = `id, name, email, phone, address, pan_number, gst_number,
	bank_name, account_number, ifsc_code, branch_code, micr_code, account_type,
	seal_image_url, ref_format, last_quote_number, payment_terms, created_at, updated_at`

func scanCompany(row pgx.Row) (*Company, error) {
	var c Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.PANNumber, &c.GSTNumber,
		&c.BankName, &c.AccountNumber, &c.IFSCCode, &c.BranchCode, &c.MICRCode, &c.AccountType,
		&c.SealImageURL, &c.RefFormat, &c.LastQuoteNumber, &c.PaymentTerms, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: company", httpx.ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Company, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM companies WHERE id = $1", companyColumns), id)
	return scanCompany(row)
}

func (r *repository) List(ctx context.Context) ([]Company, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf("SELECT %s FROM companies ORDER BY name, id", companyColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

func (r *repository) Create(ctx context.Context, c Company) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO companies (name, email, phone, address, pan_number, gst_number,
			bank_name, account_number, ifsc_code, branch_code, micr_code, account_type,
			seal_image_url, ref_format, last_quote_number, payment_terms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 0, $15)
		RETURNING id
	`,
		c.Name, c.Email, c.Phone, c.Address, c.PANNumber, c.GSTNumber,
		c.BankName, c.AccountNumber, c.IFSCCode, c.BranchCode, c.MICRCode, c.AccountType,
		c.SealImageURL, c.RefFormat, c.PaymentTerms,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert company: %w", err)
	}
	return id, nil
}

var companyUpdateColumns = []string{
	"name", "email", "phone", "address", "pan_number", "gst_number",
	"bank_name", "account_number", "ifsc_code", "branch_code", "micr_code",
	"account_type", "seal_image_url", "ref_format", "payment_terms",
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE companies SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range companyUpdateColumns {
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
		return fmt.Errorf("%w: company %d", httpx.ErrNotFound, id)
	}
	return nil
}

// Delete removes the company row; clients and quotations cascade at the
// database level (ON DELETE CASCADE).
func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM companies WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: company %d", httpx.ErrNotFound, id)
	}
	return nil
}
