package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mulan-edu/mulan/internal/apperror"
	"github.com/mulan-edu/mulan/internal/model"
	"github.com/mulan-edu/mulan/internal/repository"
)

// compile-time check that *DB implements repository.EnterpriseRepository
var _ repository.EnterpriseRepository = (*DB)(nil)

// CreateEnterprise inserts a new enterprise. The GUID is assigned by the
// service (uniqueness is a property of generation, not of the store); the
// id column receives its 32-char hex form through GUID.Value. Timestamps
// are assigned here; name or symbol collisions surface as
// apperror.ErrConflict.
func (db *DB) CreateEnterprise(ctx context.Context, e *model.Enterprise) error {
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO enterprises (id, name, description, symbol, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Name,
		e.Description,
		e.Symbol,
		e.UserID,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("enterprise", e.Name)
		}
		return fmt.Errorf("sqlite: inserting enterprise %s: %w", e.Name, err)
	}

	return nil
}

const enterpriseColumns = `id, name, description, symbol, user_id, created_at, updated_at`

func scanEnterprise(row *sql.Row, key string) (*model.Enterprise, error) {
	var e model.Enterprise
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Description,
		&e.Symbol,
		&e.UserID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("enterprise", key)
		}
		// A scan failure here can also be a corrupt stored GUID, which
		// GUID.Scan reports as apperror.ErrFormat. Let it through intact.
		return nil, fmt.Errorf("sqlite: getting enterprise %s: %w", key, err)
	}
	return &e, nil
}

// GetEnterpriseByName retrieves an enterprise by its unique name.
func (db *DB) GetEnterpriseByName(ctx context.Context, name string) (*model.Enterprise, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+enterpriseColumns+` FROM enterprises WHERE name = ?`, name)
	return scanEnterprise(row, name)
}

// GetEnterpriseBySymbol retrieves an enterprise by its unique symbol.
func (db *DB) GetEnterpriseBySymbol(ctx context.Context, symbol string) (*model.Enterprise, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+enterpriseColumns+` FROM enterprises WHERE symbol = ?`, symbol)
	return scanEnterprise(row, symbol)
}

// ListEnterprises returns a window of enterprises, newest first. The id
// tie-break keeps the order stable when creation times collide.
func (db *DB) ListEnterprises(ctx context.Context, opts repository.ListOptions) ([]model.Enterprise, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+enterpriseColumns+`
		 FROM enterprises
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing enterprises: %w", err)
	}
	defer rows.Close()

	enterprises := make([]model.Enterprise, 0, limit)
	for rows.Next() {
		var e model.Enterprise
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Description, &e.Symbol, &e.UserID,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning enterprise row: %w", err)
		}
		enterprises = append(enterprises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating enterprises: %w", err)
	}

	return enterprises, nil
}

// CountEnterprises returns the total number of enterprise records.
func (db *DB) CountEnterprises(ctx context.Context) (int64, error) {
	var count int64
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM enterprises`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting enterprises: %w", err)
	}
	return count, nil
}

// UpdateEnterprise saves name, description and symbol by ID.
func (db *DB) UpdateEnterprise(ctx context.Context, e *model.Enterprise) error {
	e.UpdatedAt = time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE enterprises SET name = ?, description = ?, symbol = ?, updated_at = ?
		 WHERE id = ?`,
		e.Name,
		e.Description,
		e.Symbol,
		e.UpdatedAt,
		e.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("enterprise", e.Name)
		}
		return fmt.Errorf("sqlite: updating enterprise %s: %w", e.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("enterprise", e.ID.String())
	}

	return nil
}

// DeleteEnterpriseByName removes the enterprise; the join rows in
// values_enterprises go with it via ON DELETE CASCADE. A missing name is
// apperror.ErrNotFound, never a silent no-op.
func (db *DB) DeleteEnterpriseByName(ctx context.Context, name string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM enterprises WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("sqlite: deleting enterprise %s: %w", name, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("enterprise", name)
	}

	return nil
}

// ReplaceValues sets the enterprise's value tags inside one transaction:
// upsert each name into values_table, then rewrite the join rows.
func (db *DB) ReplaceValues(ctx context.Context, enterpriseID model.GUID, names []string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning values transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM values_enterprises WHERE enterprise_id = ?`, enterpriseID); err != nil {
		return fmt.Errorf("sqlite: clearing values for enterprise %s: %w", enterpriseID, err)
	}

	for _, name := range names {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO values_table (name, created_at) VALUES (?, ?)
			 ON CONFLICT(name) DO NOTHING`,
			name, time.Now().UTC(),
		); err != nil {
			return fmt.Errorf("sqlite: upserting value %s: %w", name, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO values_enterprises (value_id, enterprise_id)
			 SELECT id, ? FROM values_table WHERE name = ?`,
			enterpriseID, name,
		); err != nil {
			return fmt.Errorf("sqlite: linking value %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing values transaction: %w", err)
	}
	return nil
}

// ValuesFor returns the enterprise's value tags in name order.
func (db *DB) ValuesFor(ctx context.Context, enterpriseID model.GUID) ([]model.Value, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT v.id, v.name, v.created_at
		 FROM values_table v
		 JOIN values_enterprises ve ON ve.value_id = v.id
		 WHERE ve.enterprise_id = ?
		 ORDER BY v.name`,
		enterpriseID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing values for enterprise %s: %w", enterpriseID, err)
	}
	defer rows.Close()

	var values []model.Value
	for rows.Next() {
		var v model.Value
		if err := rows.Scan(&v.ID, &v.Name, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning value row: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating values: %w", err)
	}

	return values, nil
}
