package model

import "time"

// Enterprise is a course-provider record owned by exactly one User.
//
// Name is unique and doubles as the external lookup key in routes, so the
// GUID never appears in a URL. Symbol is a short exchange-style ticker,
// also unique. CreatedAt drives the listing order (newest first).
type Enterprise struct {
	ID          GUID      `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Symbol      string    `db:"symbol"`
	UserID      string    `db:"user_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Value is a named tag attached to enterprises (many-to-many). Names are
// stored lowercase and deduplicated; the table is called values_table
// because "values" is reserved in SQL.
type Value struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}
