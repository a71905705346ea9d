package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/duetmatch/duet/internal/auth/domain"
	"github.com/duetmatch/duet/internal/auth/store"
)

type usersRepo struct {
	db dbtx
}

// userColumns is the canonical SELECT list; scanUser must stay in sync.
const userColumns = `id, email, nickname, credential_kind, password_hash,
	oauth_provider, oauth_subject, is_admin, is_premium,
	created_at, updated_at, deleted_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = ? AND deleted_at IS NULL
	`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	// email is declared COLLATE NOCASE so the comparison is case-insensitive
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = ? AND deleted_at IS NULL
	`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	query := `
		INSERT INTO users (
			id, email, nickname, credential_kind, password_hash,
			oauth_provider, oauth_subject, is_admin, is_premium,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Email,
		u.Nickname,
		string(u.Credential.Kind),
		mapStringNull(u.Credential.PasswordHash),
		mapStringNull(u.Credential.OAuthProvider),
		mapStringNull(u.Credential.OAuthSubject),
		u.IsAdmin,
		u.IsPremium,
		now,
		now,
	)
	if isUniqueViolation(err) {
		return store.ErrEmailTaken
	}
	return err
}

func (r *usersRepo) SoftDeleteUser(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, now, now, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM users
		WHERE deleted_at IS NOT NULL AND deleted_at < ?
	`

	res, err := r.db.ExecContext(ctx, query, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u             domain.User
		kind          string
		passwordHash  sql.NullString
		oauthProvider sql.NullString
		oauthSubject  sql.NullString
		deletedAt     sql.NullTime
	)

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Nickname,
		&kind,
		&passwordHash,
		&oauthProvider,
		&oauthSubject,
		&u.IsAdmin,
		&u.IsPremium,
		&u.CreatedAt,
		&u.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Credential = domain.Credential{
		Kind:          domain.CredentialKind(kind),
		PasswordHash:  mapNullString(passwordHash),
		OAuthProvider: mapNullString(oauthProvider),
		OAuthSubject:  mapNullString(oauthSubject),
	}
	u.DeletedAt = mapNullTimePtr(deletedAt)
	return u, nil
}
