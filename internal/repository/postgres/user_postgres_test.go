package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famick/internal/model"
	"famick/internal/repository"
)

var userCols = []string{"id", "tenant_id", "email", "display_name", "password_hash", "created_at"}

func TestUserPostgres_CreateTenantWithUser(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	user := &model.User{
		ID:           "user-1",
		Email:        "a@example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
	}

	t.Run("commits tenant and user together", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewUserPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO tenants").
			WithArgs("Smith Household").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("tenant-1"))
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("user-1", "tenant-1", "a@example.com", "", "hash", now).
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow("user-1", "tenant-1", "a@example.com", "", "hash", now))
		mock.ExpectCommit()

		stored, err := repo.CreateTenantWithUser(ctx, "Smith Household", user)

		require.NoError(t, err)
		assert.Equal(t, "tenant-1", stored.TenantID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("taken email rolls back the tenant", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewUserPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO tenants").
			WithArgs("Smith Household").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("tenant-1"))
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
		mock.ExpectRollback()

		stored, err := repo.CreateTenantWithUser(ctx, "Smith Household", user)

		assert.Nil(t, stored)
		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
