package sqlite

import (
	"context"
	"testing"

	"github.com/mulan-edu/mulan/internal/model"
)

// newTestDB opens a throwaway in-memory database with the full schema
// applied.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(\":memory:\") error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// createTestUser inserts a user with defaults suitable for tests.
func createTestUser(t *testing.T, db *DB, username string) *model.User {
	t.Helper()

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$04$notarealhashnotarealhashnotarealhash",
	}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) error = %v", username, err)
	}
	return user
}

// createTestEnterprise inserts an enterprise owned by the given user.
func createTestEnterprise(t *testing.T, db *DB, ownerID, name, symbol string) *model.Enterprise {
	t.Helper()

	enterprise := &model.Enterprise{
		ID:          model.NewGUID(),
		Name:        name,
		Description: "a description of " + name,
		Symbol:      symbol,
		UserID:      ownerID,
	}
	if err := db.CreateEnterprise(context.Background(), enterprise); err != nil {
		t.Fatalf("CreateEnterprise(%s) error = %v", name, err)
	}
	return enterprise
}
