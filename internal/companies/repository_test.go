package companies

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauravitis/quotecms/internal/platform/db"
)

// TestDeleteCompanyCascades verifies the ON DELETE CASCADE wiring in the
// schema: removing a company removes its clients and quotations. Runs only
// against a real database loaded with scripts/schema.sql.
func TestDeleteCompanyCascades(t *testing.T) {
	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		t.Skip("TEST_PG_DSN not set")
	}

	ctx := context.Background()
	pool, err := db.New(ctx, dsn, 2)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := NewRepository(pool)
	companyID, err := repo.Create(ctx, Company{Name: "Cascade Test Co"})
	require.NoError(t, err)

	var clientID int64
	require.NoError(t, pool.QueryRow(ctx,
		"INSERT INTO clients (company_id, name) VALUES ($1, $2) RETURNING id",
		companyID, "Cascade Test Client",
	).Scan(&clientID))

	var quotationID int64
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO quotations (company_id, client_id, ref_number)
		VALUES ($1, $2, $3)
		RETURNING id
	`, companyID, clientID, "QT-CASCADE-0001").Scan(&quotationID))

	require.NoError(t, repo.Delete(ctx, companyID))

	var count int
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM clients WHERE id = $1", clientID).Scan(&count))
	assert.Zero(t, count, "client rows survive company deletion")

	require.NoError(t, pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM quotations WHERE id = $1", quotationID).Scan(&count))
	assert.Zero(t, count, "quotation rows survive company deletion")
}
