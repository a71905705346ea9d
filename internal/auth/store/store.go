package store

import (
	"context"
	"errors"
	"time"

	"github.com/duetmatch/duet/internal/auth/domain"
)

var (
	ErrNotFound = errors.New("store: not found")

	// ErrEmailTaken is returned by CreateUser when the email already belongs
	// to a live account. Matching is case-insensitive, the schema enforces it
	// with a unique index so concurrent sign-ups can't race past the check.
	ErrEmailTaken = errors.New("store: email already registered")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and to leave room for more repos without touching every caller.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a live user by id. Soft-deleted accounts are
	// invisible here and report ErrNotFound.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during email login. Lookup is case-insensitive
	// and skips soft-deleted accounts.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrEmailTaken when the email is already registered.
	CreateUser(ctx context.Context, u domain.User) error

	// SoftDeleteUser stamps deleted_at without removing the row, so the
	// account can be restored until the purge window passes.
	SoftDeleteUser(ctx context.Context, userID string) error

	// PurgeDeletedBefore permanently removes accounts soft-deleted before
	// cutoff. Returns the number of rows purged (housekeeping).
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
