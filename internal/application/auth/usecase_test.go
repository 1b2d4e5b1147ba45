package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/invoiceflow/invoiceflow-api/internal/application/auth"
	"github.com/invoiceflow/invoiceflow-api/internal/application/dto"
	"github.com/invoiceflow/invoiceflow-api/internal/domain"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
	"github.com/invoiceflow/invoiceflow-api/pkg/jwt"
)

const (
	testSecret   = "auth-usecase-test-secret"
	testPassword = "correct-horse-battery"
)

type memUserRepo struct {
	users map[string]*entity.User
}

func (r *memUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

type memTokenRepo struct {
	revoked map[string]time.Time
}

func (r *memTokenRepo) Revoke(jti string, expiresAt time.Time) error {
	if _, ok := r.revoked[jti]; !ok {
		r.revoked[jti] = expiresAt
	}
	return nil
}

func (r *memTokenRepo) IsRevoked(jti string) (bool, error) {
	_, ok := r.revoked[jti]
	return ok, nil
}

func newAuthUC() (*auth.AuthUseCase, *memUserRepo, *memTokenRepo) {
	users := &memUserRepo{users: map[string]*entity.User{}}
	tokens := &memTokenRepo{revoked: map[string]time.Time{}}
	uc := auth.NewAuthUseCase(users, tokens, auth.JWTConfig{
		Secret:         testSecret,
		AccessMinutes:  15,
		RefreshMinutes: 60,
		Issuer:         "invoiceflow-test",
	})
	return uc, users, tokens
}

func register(t *testing.T, uc *auth.AuthUseCase) *dto.AuthResponse {
	t.Helper()
	out, err := uc.Register(dto.RegisterRequest{
		Email:           "dana@studio.test",
		Password:        testPassword,
		PasswordConfirm: testPassword,
		FirstName:       "Dana",
		LastName:        "Rivera",
		BusinessName:    "Rivera Design Studio",
	})
	require.NoError(t, err)
	return out
}

func TestRegister_HashesPasswordAndIssuesTokens(t *testing.T) {
	uc, users, _ := newAuthUC()

	out := register(t, uc)
	assert.Equal(t, "dana@studio.test", out.User.Email)
	assert.Equal(t, "USD", out.User.Currency)
	assert.NotEmpty(t, out.Tokens.Access)
	assert.NotEmpty(t, out.Tokens.Refresh)

	stored := users.users[out.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, testPassword, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(testPassword)))

	// The pair must be one access and one refresh token
	_, err := jwt.ParseType(testSecret, out.Tokens.Access, jwt.TypeAccess)
	assert.NoError(t, err)
	_, err = jwt.ParseType(testSecret, out.Tokens.Refresh, jwt.TypeRefresh)
	assert.NoError(t, err)
}

func TestRegister_Validation(t *testing.T) {
	uc, _, _ := newAuthUC()

	_, err := uc.Register(dto.RegisterRequest{Email: "a@b.test", Password: "short", PasswordConfirm: "short"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(dto.RegisterRequest{Email: "a@b.test", Password: testPassword, PasswordConfirm: "different-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(dto.RegisterRequest{Password: testPassword, PasswordConfirm: testPassword})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, _, _ := newAuthUC()
	register(t, uc)

	// Same address with different case still collides
	_, err := uc.Register(dto.RegisterRequest{
		Email:           "DANA@studio.test",
		Password:        testPassword,
		PasswordConfirm: testPassword,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	uc, _, _ := newAuthUC()
	register(t, uc)

	out, err := uc.Login(dto.LoginRequest{Email: "dana@studio.test", Password: testPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Tokens.Access)

	_, err = uc.Login(dto.LoginRequest{Email: "dana@studio.test", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nobody@studio.test", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh(t *testing.T) {
	uc, _, _ := newAuthUC()
	out := register(t, uc)

	refreshed, err := uc.Refresh(dto.RefreshRequest{RefreshToken: out.Tokens.Refresh})
	require.NoError(t, err)

	claims, err := jwt.ParseType(testSecret, refreshed.Access, jwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)

	// An access token is not exchangeable
	_, err = uc.Refresh(dto.RefreshRequest{RefreshToken: out.Tokens.Access})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Refresh(dto.RefreshRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	uc, _, _ := newAuthUC()
	out := register(t, uc)

	require.NoError(t, uc.Logout(dto.LogoutRequest{RefreshToken: out.Tokens.Refresh}))

	_, err := uc.Refresh(dto.RefreshRequest{RefreshToken: out.Tokens.Refresh})
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)

	// Logging out twice is a no-op
	assert.NoError(t, uc.Logout(dto.LogoutRequest{RefreshToken: out.Tokens.Refresh}))
}

func TestChangePassword(t *testing.T) {
	uc, _, _ := newAuthUC()
	out := register(t, uc)
	userID := out.User.ID

	err := uc.ChangePassword(userID, dto.ChangePasswordRequest{
		OldPassword:        "wrong",
		NewPassword:        "a-new-password-123",
		NewPasswordConfirm: "a-new-password-123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.ChangePassword(userID, dto.ChangePasswordRequest{
		OldPassword:        testPassword,
		NewPassword:        "a-new-password-123",
		NewPasswordConfirm: "mismatch",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.ChangePassword(userID, dto.ChangePasswordRequest{
		OldPassword:        testPassword,
		NewPassword:        "a-new-password-123",
		NewPasswordConfirm: "a-new-password-123",
	})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "dana@studio.test", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "dana@studio.test", Password: "a-new-password-123"})
	assert.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	uc, _, _ := newAuthUC()
	out := register(t, uc)
	userID := out.User.ID

	currency := "eur"
	address := "100 Market St"
	updated, err := uc.UpdateProfile(userID, dto.UpdateProfileRequest{
		Currency:        &currency,
		BusinessAddress: &address,
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", updated.Currency)
	assert.Equal(t, "100 Market St", updated.BusinessAddress)
	// untouched fields keep their value
	assert.Equal(t, "Rivera Design Studio", updated.BusinessName)

	bad := "EURO"
	_, err = uc.UpdateProfile(userID, dto.UpdateProfileRequest{Currency: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
