package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/mulan-edu/mulan/internal/apperror"
	"github.com/mulan-edu/mulan/internal/model"
	"github.com/mulan-edu/mulan/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new user. The ID (an xid) and timestamps are assigned
// here; the caller's struct is updated in place. A taken username or
// email surfaces as apperror.ErrConflict.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.LastSeen = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, about_me, last_seen, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.AboutMe,
		user.LastSeen,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", user.Username)
		}
		return fmt.Errorf("sqlite: inserting user %s: %w", user.Username, err)
	}

	return nil
}

const userColumns = `id, username, email, password_hash, about_me, last_seen, created_at, updated_at`

func (db *DB) scanUser(row *sql.Row, key string) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.AboutMe,
		&u.LastSeen,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", key)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", key, err)
	}
	return &u, nil
}

// GetUserByID retrieves a user by internal ID.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return db.scanUser(row, id)
}

// GetUserByUsername retrieves a user by their unique username.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return db.scanUser(row, username)
}

// GetUserByEmail retrieves a user by their unique email address.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return db.scanUser(row, email)
}

// UpdateProfile saves the mutable profile fields. A username collision
// surfaces as apperror.ErrConflict; a vanished user as ErrNotFound.
func (db *DB) UpdateProfile(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE users SET username = ?, about_me = ?, updated_at = ? WHERE id = ?`,
		user.Username,
		user.AboutMe,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", user.Username)
		}
		return fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user", user.ID)
	}

	return nil
}

// TouchLastSeen refreshes the last-seen timestamp. Called on every
// authenticated request; a missing user is not an error here.
func (db *DB) TouchLastSeen(ctx context.Context, id string, seen time.Time) error {
	_, err := db.conn.ExecContext(ctx,
		`UPDATE users SET last_seen = ? WHERE id = ?`,
		seen.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: touching last_seen for user %s: %w", id, err)
	}
	return nil
}
