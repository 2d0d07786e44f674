package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"famick/internal/auth"
	"famick/internal/config"
	"famick/internal/model"
	"famick/internal/repository"
	repoMocks "famick/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestIssuer(t *testing.T) *auth.TokenIssuer {
	t.Helper()
	issuer, err := auth.NewTokenIssuer(config.JWTConfig{Secret: "test-secret", AccessTTLMin: 15, RefreshTTLHours: 1})
	require.NoError(t, err)
	return issuer
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mUsers, newTestIssuer(t))

		mUsers.On("CreateTenantWithUser", ctx, "Smith Household", mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "a@example.com" && u.PasswordHash != "secret-password"
		})).Return(&model.User{ID: "user-1", TenantID: "tenant-1", Email: "a@example.com"}, nil)

		pair, err := svc.Register(ctx, "Smith Household", "A@Example.com", "secret-password")

		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		mUsers.AssertExpectations(t)
	})

	t.Run("taken email maps to conflict", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mUsers, newTestIssuer(t))

		mUsers.On("CreateTenantWithUser", ctx, "Smith Household", mock.Anything).
			Return(nil, repository.ErrDuplicate)

		_, err := svc.Register(ctx, "Smith Household", "a@example.com", "secret-password")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewAuthService(new(repoMocks.MockUserRepository), newTestIssuer(t))

		_, err := svc.Register(ctx, "h", "", "secret-password")
		assert.ErrorIs(t, err, ErrEmailRequired)

		_, err = svc.Register(ctx, "h", "a@example.com", "short")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{ID: "user-1", TenantID: "tenant-1", Email: "a@example.com", PasswordHash: string(hash)}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(m *repoMocks.MockUserRepository)
		wantErr    error
	}{
		{
			name:     "happy path",
			email:    "a@example.com",
			password: "correct-password",
			setupMocks: func(m *repoMocks.MockUserRepository) {
				m.On("FindByEmail", ctx, "a@example.com").Return(user, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "a@example.com",
			password: "wrong-password",
			setupMocks: func(m *repoMocks.MockUserRepository) {
				m.On("FindByEmail", ctx, "a@example.com").Return(user, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "b@example.com",
			password: "correct-password",
			setupMocks: func(m *repoMocks.MockUserRepository) {
				m.On("FindByEmail", ctx, "b@example.com").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:       "empty credentials",
			setupMocks: func(m *repoMocks.MockUserRepository) {},
			wantErr:    ErrInvalidCredentials,
		},
		{
			name:     "repository error",
			email:    "a@example.com",
			password: "correct-password",
			setupMocks: func(m *repoMocks.MockUserRepository) {
				m.On("FindByEmail", ctx, "a@example.com").Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mUsers := new(repoMocks.MockUserRepository)
			svc := NewAuthService(mUsers, newTestIssuer(t))
			tt.setupMocks(mUsers)

			pair, err := svc.Login(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrInvalidCredentials) {
					assert.ErrorIs(t, err, ErrInvalidCredentials)
				} else {
					assert.Error(t, err)
				}
				assert.Nil(t, pair)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, pair.AccessToken)
			}
			mUsers.AssertExpectations(t)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	issuer := newTestIssuer(t)
	user := &model.User{ID: "user-1", TenantID: "tenant-1", Email: "a@example.com"}

	pair, err := issuer.IssuePair(user)
	require.NoError(t, err)

	t.Run("happy path", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mUsers, issuer)
		mUsers.On("FindByID", ctx, "user-1").Return(user, nil)

		fresh, err := svc.Refresh(ctx, pair.RefreshToken)

		require.NoError(t, err)
		assert.NotEmpty(t, fresh.AccessToken)
		mUsers.AssertExpectations(t)
	})

	t.Run("access token rejected", func(t *testing.T) {
		svc := NewAuthService(new(repoMocks.MockUserRepository), issuer)

		_, err := svc.Refresh(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("deleted user cannot refresh", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mUsers, issuer)
		mUsers.On("FindByID", ctx, "user-1").Return(nil, sql.ErrNoRows)

		_, err := svc.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
