package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/invoiceflow/invoiceflow-api/internal/application/dto"
	"github.com/invoiceflow/invoiceflow-api/internal/domain"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/repository"
	"github.com/invoiceflow/invoiceflow-api/pkg/jwt"
)

// MinPasswordLength applies to registration and password changes.
const MinPasswordLength = 8

// JWTConfig carries the token-issuance settings the use case needs.
type JWTConfig struct {
	Secret         string
	AccessMinutes  int
	RefreshMinutes int
	Issuer         string
}

// AuthUseCase implements registration, login, token refresh/revocation and
// profile management.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tokenRepo: tokenRepo, jwtCfg: jwtCfg}
}

// Register creates an account: validates the input, hashes the password with
// bcrypt, persists the user and issues a token pair. Returns
// ErrEmailAlreadyExists when the email is taken.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, MinPasswordLength)
	}
	if in.Password != in.PasswordConfirm {
		return nil, fmt.Errorf("%w: passwords do not match", domain.ErrInvalidInput)
	}

	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		BusinessName: in.BusinessName,
		Phone:        in.Phone,
		Currency:     "USD",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	tokens, err := uc.issueTokens(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: *toUserResponse(user), Tokens: *tokens}, nil
}

// Login verifies email/password and issues a fresh token pair.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	tokens, err := uc.issueTokens(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: *toUserResponse(user), Tokens: *tokens}, nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new access token.
func (uc *AuthUseCase) Refresh(in dto.RefreshRequest) (*dto.AccessTokenResponse, error) {
	claims, err := jwt.ParseType(uc.jwtCfg.Secret, in.RefreshToken, jwt.TypeRefresh)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	revoked, err := uc.tokenRepo.IsRevoked(claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	access, err := jwt.GenerateAccess(uc.jwtCfg.Secret, claims.UserID, uc.jwtCfg.Issuer, uc.jwtCfg.AccessMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AccessTokenResponse{Access: access}, nil
}

// Logout revokes the refresh token by jti. Revoking an already-revoked token
// is a no-op; an invalid token is rejected.
func (uc *AuthUseCase) Logout(in dto.LogoutRequest) error {
	claims, err := jwt.ParseType(uc.jwtCfg.Secret, in.RefreshToken, jwt.TypeRefresh)
	if err != nil {
		return domain.ErrUnauthorized
	}
	return uc.tokenRepo.Revoke(claims.ID, claims.ExpiresAt.Time)
}

// ChangePassword verifies the current password and stores a new hash.
func (uc *AuthUseCase) ChangePassword(userID string, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, MinPasswordLength)
	}
	if in.NewPassword != in.NewPasswordConfirm {
		return fmt.Errorf("%w: passwords do not match", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return fmt.Errorf("%w: old password is incorrect", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

// GetProfile returns the authenticated user's business profile.
func (uc *AuthUseCase) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// UpdateProfile applies a partial update to the business profile. Only
// fields present in the request change.
func (uc *AuthUseCase) UpdateProfile(userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.BusinessName != nil {
		user.BusinessName = *in.BusinessName
	}
	if in.BusinessAddress != nil {
		user.BusinessAddress = *in.BusinessAddress
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Currency != nil {
		if len(*in.Currency) != 3 {
			return nil, fmt.Errorf("%w: currency must be a 3-letter code", domain.ErrInvalidInput)
		}
		user.Currency = strings.ToUpper(*in.Currency)
	}
	if in.TaxRate != nil {
		if in.TaxRate.IsNegative() {
			return nil, fmt.Errorf("%w: tax_rate must not be negative", domain.ErrInvalidInput)
		}
		user.TaxRate = *in.TaxRate
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) issueTokens(userID string) (*dto.TokenPair, error) {
	access, err := jwt.GenerateAccess(uc.jwtCfg.Secret, userID, uc.jwtCfg.Issuer, uc.jwtCfg.AccessMinutes)
	if err != nil {
		return nil, err
	}
	refresh, _, _, err := jwt.GenerateRefresh(uc.jwtCfg.Secret, userID, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPair{Access: access, Refresh: refresh}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		BusinessName:    u.BusinessName,
		BusinessAddress: u.BusinessAddress,
		Phone:           u.Phone,
		Currency:        u.Currency,
		TaxRate:         u.TaxRate,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
