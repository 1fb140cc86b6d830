package model

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/mulan-edu/mulan/internal/apperror"
)

// GUID is the 128-bit enterprise identifier. The store has no native
// UUID column type, so a GUID travels to and from the database as a
// 32-character lowercase hex string in a CHAR(32) column. Value and
// Scan are exact inverses: storing and reloading always yields the
// identical identifier.
type GUID [16]byte

// NewGUID returns a fresh random identifier.
func NewGUID() GUID {
	return GUID(uuid.New())
}

// ParseGUID parses either the dashed canonical form or the plain
// 32-hex storage form. Anything else is an ErrFormat.
func ParseGUID(s string) (GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, apperror.Corrupt("guid", fmt.Sprintf("cannot parse %q", s))
	}
	return GUID(u), nil
}

// String returns the dashed canonical form, for logs and URLs.
func (g GUID) String() string {
	return uuid.UUID(g).String()
}

// Hex returns the 32-character lowercase hex storage form.
func (g GUID) Hex() string {
	return hex.EncodeToString(g[:])
}

// IsZero reports whether g is the all-zero identifier.
func (g GUID) IsZero() bool {
	return g == GUID{}
}

// Value implements driver.Valuer, producing the storage form.
func (g GUID) Value() (driver.Value, error) {
	return g.Hex(), nil
}

// Scan implements sql.Scanner. Only the exact storage form is
// accepted; a column holding anything else is corrupt data, reported
// as ErrFormat rather than silently coerced.
func (g *GUID) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return apperror.Corrupt("guid", fmt.Sprintf("unsupported column type %T", src))
	}

	if len(s) != 32 {
		return apperror.Corrupt("guid", fmt.Sprintf("stored value %q is not 32 hex characters", s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return apperror.Corrupt("guid", fmt.Sprintf("stored value %q is not valid hex", s))
	}

	copy(g[:], raw)
	return nil
}

var (
	_ driver.Valuer = GUID{}
	_ fmt.Stringer  = GUID{}
)
