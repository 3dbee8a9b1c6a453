package items

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
	Get(ctx context.Context, id int64) (*Item, error)
	List(ctx context.Context, search string) ([]Item, error)
	Create(ctx context.Context, item Item) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
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

const itemColumns = "id, catalogue_id, description, pack_size, cas_number, hsn_code, brand, price, gst_percentage, created_at, updated_at"

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	err := row.Scan(
		&it.ID, &it.CatalogueID, &it.Description, &it.PackSize, &it.CASNumber,
		&it.HSNCode, &it.Brand, &it.Price, &it.GSTPercentage, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: item", httpx.ErrNotFound)
		}
		return nil, err
	}
	return &it, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Item, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM items WHERE id = $1", itemColumns), id)
	return scanItem(row)
}

func (r *repository) List(ctx context.Context, search string) ([]Item, error) {
	query := fmt.Sprintf("SELECT %s FROM items", itemColumns)
	var args []interface{}
	if search != "" {
		query += " WHERE catalogue_id ILIKE $1 OR description ILIKE $1 OR cas_number ILIKE $1"
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY catalogue_id, id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *repository) Create(ctx context.Context, it Item) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO items (catalogue_id, description, pack_size, cas_number, hsn_code, brand, price, gst_percentage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, it.CatalogueID, it.Description, it.PackSize, it.CASNumber, it.HSNCode, it.Brand, it.Price, it.GSTPercentage).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	return id, nil
}

var itemUpdateColumns = []string{
	"catalogue_id", "description", "pack_size", "cas_number", "hsn_code",
	"brand", "price", "gst_percentage",
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE items SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range itemUpdateColumns {
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
		return fmt.Errorf("%w: item %d", httpx.ErrNotFound, id)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM items WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %d", httpx.ErrNotFound, id)
	}
	return nil
}
