package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikhilmandava/authgate/internal/models"
)

// MemoryAccountRepository is a mutex-guarded in-memory account store. The
// mutex is held across the existence check and the insert, which is what
// makes Create atomic under concurrent sign-ups.
type MemoryAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{accounts: make(map[string]*models.Account)}
}

func (r *MemoryAccountRepository) Create(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Email]; exists {
		return ErrDuplicateEmail
	}

	now := time.Now()
	account.ID = uuid.New()
	account.CreatedAt = now
	account.UpdatedAt = now

	stored := *account
	r.accounts[account.Email] = &stored
	return nil
}

func (r *MemoryAccountRepository) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, exists := r.accounts[email]
	if !exists {
		return nil, ErrNotFound
	}
	copied := *account
	return &copied, nil
}

// MemorySessionRepository keeps sessions in a token-keyed map with a
// per-email index mirroring the Redis layout. Expired sessions are reaped
// lazily on lookup.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
	byEmail  map[string]map[string]struct{}
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]*models.Session),
		byEmail:  make(map[string]map[string]struct{}),
	}
}

func (r *MemorySessionRepository) Create(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *session
	r.sessions[session.Token] = &stored

	if r.byEmail[session.Email] == nil {
		r.byEmail[session.Email] = make(map[string]struct{})
	}
	r.byEmail[session.Email][session.Token] = struct{}{}
	return nil
}

func (r *MemorySessionRepository) GetByToken(_ context.Context, token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.sessions[token]
	if !exists {
		return nil, ErrNotFound
	}
	if session.Expired(time.Now()) {
		r.deleteLocked(token, session.Email)
		return nil, ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *MemorySessionRepository) Delete(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.sessions[token]
	if !exists {
		return false, nil
	}
	live := !session.Expired(time.Now())
	r.deleteLocked(token, session.Email)
	return live, nil
}

func (r *MemorySessionRepository) DeleteAllForEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token := range r.byEmail[email] {
		r.deleteLocked(token, email)
	}
	return nil
}

func (r *MemorySessionRepository) deleteLocked(token, email string) {
	delete(r.sessions, token)
	if tokens, ok := r.byEmail[email]; ok {
		delete(tokens, token)
		if len(tokens) == 0 {
			delete(r.byEmail, email)
		}
	}
}
