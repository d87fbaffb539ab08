package repositories

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikhilmandava/authgate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPostgresAccountRepository_CreateAndLookup tests the insert/lookup
// round trip against a real database.
func TestPostgresAccountRepository_CreateAndLookup(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresAccountRepository(pool)
	ctx := context.Background()

	email := testEmail()
	defer cleanupTestAccount(t, pool, ctx, email)

	// ACT: Create the account
	account := &models.Account{Email: email, PasswordHash: "digest"}
	err := repo.Create(ctx, account)

	// ASSERT: Should succeed and populate identity fields
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, account.ID, "ID should be generated")
	assert.False(t, account.CreatedAt.IsZero(), "CreatedAt should be set")

	retrieved, err := repo.GetByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, account.ID, retrieved.ID)
	assert.Equal(t, "digest", retrieved.PasswordHash)
}

// TestPostgresAccountRepository_DuplicateEmail tests that the unique
// constraint surfaces as ErrDuplicateEmail.
func TestPostgresAccountRepository_DuplicateEmail(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresAccountRepository(pool)
	ctx := context.Background()

	email := testEmail()
	defer cleanupTestAccount(t, pool, ctx, email)

	first := &models.Account{Email: email, PasswordHash: "digest"}
	require.NoError(t, repo.Create(ctx, first))

	// ACT: Insert a second account for the same email
	second := &models.Account{Email: email, PasswordHash: "other"}
	err := repo.Create(ctx, second)

	// ASSERT: Should map the unique violation
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestPostgresAccountRepository_LookupAbsent(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresAccountRepository(pool)

	_, err := repo.GetByEmail(context.Background(), testEmail())
	assert.ErrorIs(t, err, ErrNotFound)
}

// Helper functions for test setup

// getTestPool returns a pgx pool for testing, skipping the test when no
// test database is configured or reachable. The accounts schema from
// schema.sql must be applied to the target database.
func getTestPool(t *testing.T) *pgxpool.Pool {
	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("skipping: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, databaseURL)
	require.NoError(t, err)

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("skipping: test database not available: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// testEmail returns a unique address so tests never collide on the unique
// constraint.
func testEmail() string {
	return fmt.Sprintf("test-%s@example.com", uuid.New().String())
}

// cleanupTestAccount removes test data
func cleanupTestAccount(t *testing.T, pool *pgxpool.Pool, ctx context.Context, email string) {
	if _, err := pool.Exec(ctx, `DELETE FROM accounts WHERE email = $1`, email); err != nil {
		t.Logf("Warning: failed to cleanup test account: %v", err)
	}
}
