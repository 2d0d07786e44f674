package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"famick/internal/model"
	"famick/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{"id", "tenant_id", "name", "barcode", "brand", "category", "quantity_unit", "energy_kcal", "image_url", "default_location", "created_at"}

func productRow(id, tenant, name, barcode string) *sqlmock.Rows {
	return sqlmock.NewRows(productCols).
		AddRow(id, tenant, name, barcode, "", "", "", 0.0, "", "", time.Now())
}

func TestProductPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	p := &model.Product{
		ID:       "prod-1",
		TenantID: "tenant-1",
		Name:     "Milk",
		Barcode:  "4000000000001",
	}

	mock.ExpectQuery("INSERT INTO products").
		WithArgs(p.ID, p.TenantID, p.Name, p.Barcode, "", "", "", 0.0, "", "", sqlmock.AnyArg()).
		WillReturnRows(productRow(p.ID, p.TenantID, p.Name, p.Barcode))

	p.CreatedAt = now
	result, err := repo.Create(ctx, p)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "prod-1", result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductPostgres_Create_MultipleWithoutBarcode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductPostgres(db)
	ctx := context.Background()

	// Barcode-less products are the manual-entry case; a second one in the
	// same household must insert cleanly.
	for _, id := range []string{"prod-1", "prod-2"} {
		mock.ExpectQuery("INSERT INTO products").
			WithArgs(id, "tenant-1", "Leftovers "+id, "", "", "", "", 0.0, "", "", sqlmock.AnyArg()).
			WillReturnRows(productRow(id, "tenant-1", "Leftovers "+id, ""))

		p, err := repo.Create(ctx, &model.Product{ID: id, TenantID: "tenant-1", Name: "Leftovers " + id})
		require.NoError(t, err)
		assert.Empty(t, p.Barcode)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products WHERE tenant_id = (.+) AND id = ?").
			WithArgs("tenant-1", "prod-1").
			WillReturnRows(productRow("prod-1", "tenant-1", "Milk", ""))

		p, err := repo.FindByID(ctx, "tenant-1", "prod-1")

		assert.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Milk", p.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products WHERE tenant_id = (.+) AND id = ?").
			WithArgs("tenant-1", "missing").
			WillReturnError(sql.ErrNoRows)

		p, err := repo.FindByID(ctx, "tenant-1", "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, p)
	})
}

func TestProductPostgres_FindByBarcode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products WHERE tenant_id = (.+) AND barcode = ?").
			WithArgs("tenant-1", "4000000000001").
			WillReturnRows(productRow("prod-1", "tenant-1", "Milk", "4000000000001"))

		p, err := repo.FindByBarcode(ctx, "tenant-1", "4000000000001")

		assert.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "4000000000001", p.Barcode)
	})

	t.Run("miss is not an error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products WHERE tenant_id = (.+) AND barcode = ?").
			WithArgs("tenant-1", "0000").
			WillReturnError(sql.ErrNoRows)

		p, err := repo.FindByBarcode(ctx, "tenant-1", "0000")

		assert.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestProductPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products WHERE tenant_id = ?").
		WithArgs("tenant-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery("SELECT (.+) FROM products WHERE tenant_id = (.+) ORDER BY name").
		WithArgs("tenant-1", 10, 0).
		WillReturnRows(productRow("prod-1", "tenant-1", "Milk", ""))

	res, err := repo.List(ctx, "tenant-1", repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductPostgres(db)

	mock.ExpectExec("DELETE FROM products WHERE tenant_id = (.+) AND id = ?").
		WithArgs("tenant-1", "prod-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(context.Background(), "tenant-1", "prod-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
