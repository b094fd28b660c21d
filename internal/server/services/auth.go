// Package services contains server-side business logic. This file
// implements AuthService, which handles signup, signin with session-token
// issuance, and token-authenticated profile resolution.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/psidorov/interviewhub/internal/common"
	"github.com/psidorov/interviewhub/internal/server/auth"
	"github.com/psidorov/interviewhub/internal/server/config"
	"github.com/psidorov/interviewhub/internal/server/models"
	"github.com/psidorov/interviewhub/internal/server/repositories/repomanager"
	"github.com/psidorov/interviewhub/internal/server/validation"
)

// AuthService provides the account operations behind the HTTP gateway:
// - SignUp: create accounts with hashed passwords
// - SignIn: verify credentials, record the login, mint a session token
// - Profile: resolve a session token to an existing account
type AuthService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:     db,
		repos:  m,
		hasher: auth.NewPasswordHasher(cfg.BcryptCost),
		tokens: auth.NewTokenManager(cfg.SecretKey, cfg.TokenValidity),
	}
}

// SignUp creates a new account from an already-validated request.
// The pre-write lookup gives duplicates a clean error before hashing;
// the storage-level unique index remains the authority under races, so a
// concurrent duplicate insert still comes back as ErrorAlreadyExists.
func (s *AuthService) SignUp(ctx context.Context, req validation.SignupRequest) error {
	repo := s.repos.Users(s.db)

	_, err := repo.GetByEmail(ctx, req.Email)
	if err == nil {
		return common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error checking existing account: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}

	if _, err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// SignIn verifies the credentials and, on success, records the login and
// returns the account together with a fresh session token. Unknown email
// and wrong password are indistinguishable to the caller: both yield
// ErrorUnauthorized.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", common.ErrorUnauthorized
	}

	if err := repo.RecordLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		return nil, "", common.ErrorInternal
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Profile resolves rawToken to an existing account. The token's embedded
// snapshot is not trusted: the account is re-read by ID, and a token for
// a deleted account fails with ErrorUnauthorized.
func (s *AuthService) Profile(ctx context.Context, rawToken string) (*models.User, error) {
	claims, err := s.tokens.Parse(rawToken)
	if err != nil {
		return nil, err
	}

	repo := s.repos.Users(s.db)

	user, err := repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}
