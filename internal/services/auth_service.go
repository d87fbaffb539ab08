package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikhilmandava/authgate/internal/models"
	"github.com/nikhilmandava/authgate/internal/repositories"
	"github.com/nikhilmandava/authgate/internal/utils"
	"github.com/nikhilmandava/authgate/internal/validation"
)

var (
	// ErrInvalidCredentials covers both an unregistered email and a wrong
	// password. Callers must not be able to tell the two apart, otherwise
	// login becomes an account-enumeration oracle.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidSession     = errors.New("invalid session")
)

// AuthService orchestrates sign-up, login, session validation and logout
// over the injected stores. It holds no state of its own.
type AuthService struct {
	accountRepo repositories.AccountRepository
	sessionRepo repositories.SessionRepository
	sessionTTL  time.Duration
}

func NewAuthService(
	accountRepo repositories.AccountRepository,
	sessionRepo repositories.SessionRepository,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
	}
}

// NormalizeEmail canonicalizes an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp validates the credentials, hashes the password and creates the
// account. No session is issued; the caller must log in afterwards.
func (s *AuthService) SignUp(ctx context.Context, email string, password *string) error {
	email = NormalizeEmail(email)
	if err := validation.ValidateCredentials(email, password); err != nil {
		return err
	}

	hashedPassword, err := utils.HashPassword(*password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Email:        email,
		PasswordHash: hashedPassword,
	}

	err = s.accountRepo.Create(ctx, account)
	if errors.Is(err, repositories.ErrDuplicateEmail) {
		return ErrEmailExists
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// LogIn authenticates the credentials and issues a fresh session. Every
// successful login gets its own token.
func (s *AuthService) LogIn(ctx context.Context, email string, password *string) (*models.Session, error) {
	email = NormalizeEmail(email)
	if err := validation.ValidateCredentials(email, password); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if !utils.CheckPassword(account.PasswordHash, *password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	session := &models.Session{
		Token:     uuid.New().String(),
		Email:     account.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// ValidateSession resolves a token to its owner email. Unknown, expired and
// revoked tokens all come back as ErrInvalidSession; the session is also
// rejected if its account no longer exists.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (string, error) {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", ErrInvalidSession
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}

	if session.Expired(time.Now()) {
		return "", ErrInvalidSession
	}

	_, err = s.accountRepo.GetByEmail(ctx, session.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", ErrInvalidSession
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve session owner: %w", err)
	}
	return session.Email, nil
}

// Logout revokes a session, reporting whether a live session was revoked.
// Revoking an unknown or already-revoked token is a no-op, not an error.
func (s *AuthService) Logout(ctx context.Context, token string) (bool, error) {
	revoked, err := s.sessionRepo.Delete(ctx, token)
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	return revoked, nil
}

// LogoutAll revokes every live session belonging to the token's owner,
// including the presented one.
func (s *AuthService) LogoutAll(ctx context.Context, token string) error {
	email, err := s.ValidateSession(ctx, token)
	if err != nil {
		return err
	}
	if err := s.sessionRepo.DeleteAllForEmail(ctx, email); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}
