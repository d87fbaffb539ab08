package repositories

import (
	"context"
	"errors"

	"github.com/nikhilmandava/authgate/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// AccountRepository stores accounts keyed by normalized email. Create must
// be atomic with respect to the uniqueness check: of two concurrent creates
// for the same email exactly one succeeds and the other gets
// ErrDuplicateEmail.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}

// SessionRepository stores sessions keyed by opaque token. GetByToken must
// not return expired sessions. Delete reports whether a live session was
// removed and is idempotent: deleting an unknown or expired token is a
// no-op, not an error.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) (bool, error)
	DeleteAllForEmail(ctx context.Context, email string) error
}
