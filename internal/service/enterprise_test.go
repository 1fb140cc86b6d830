package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mulan-edu/mulan/internal/apperror"
)

func newTestEnterpriseService(repo *mockEnterpriseRepo) *EnterpriseService {
	return NewEnterpriseService(repo, discardLogger(), DefaultPerPage)
}

func TestCreateEnterprise(t *testing.T) {
	repo := newMockEnterpriseRepo()
	svc := newTestEnterpriseService(repo)
	ctx := context.Background()

	enterprise, err := svc.Create(ctx, "user-1", "Acme School", "teaches things", "ACS", []string{"honesty"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if enterprise.ID.IsZero() {
		t.Error("Create() did not assign a GUID")
	}
	if enterprise.UserID != "user-1" {
		t.Errorf("owner = %q, want user-1", enterprise.UserID)
	}

	values, err := svc.Values(ctx, enterprise.ID)
	if err != nil {
		t.Fatalf("Values() error = %v", err)
	}
	if len(values) != 1 || values[0].Name != "honesty" {
		t.Errorf("values = %v, want [honesty]", values)
	}
}

func TestCreateEnterprise_UniqueGUIDs(t *testing.T) {
	svc := newTestEnterpriseService(newMockEnterpriseRepo())
	ctx := context.Background()

	a, err := svc.Create(ctx, "user-1", "Acme School", "one", "AAA", nil)
	if err != nil {
		t.Fatalf("Create(a) error = %v", err)
	}
	b, err := svc.Create(ctx, "user-1", "Beta School", "two", "BBB", nil)
	if err != nil {
		t.Fatalf("Create(b) error = %v", err)
	}

	if a.ID == b.ID {
		t.Error("two enterprises received the same GUID")
	}
}

func TestCreateEnterprise_Validation(t *testing.T) {
	svc := newTestEnterpriseService(newMockEnterpriseRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-1", "Acme School", "desc", "ACS", nil); err != nil {
		t.Fatalf("Create(first) error = %v", err)
	}

	tests := []struct {
		name      string
		entName   string
		symbol    string
		wantField string
	}{
		{"duplicate name", "Acme School", "OTH", "name"},
		{"duplicate symbol", "Other School", "ACS", "symbol"},
		{"reserved symbol", "Big Blue School", "IBM", "symbol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "user-1", tt.entName, "desc", tt.symbol, nil)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("Create() error = %v, want ErrValidation", err)
			}
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) || appErr.Field != tt.wantField {
				t.Errorf("error field = %v, want %s", err, tt.wantField)
			}
		})
	}
}

func TestList_Pagination(t *testing.T) {
	svc := newTestEnterpriseService(newMockEnterpriseRepo())
	ctx := context.Background()

	// Seven records across a page size of three: pages of 3, 3, 1.
	for i := 0; i < 7; i++ {
		name := fmt.Sprintf("School %d", i)
		symbol := fmt.Sprintf("S%02d", i)
		if _, err := svc.Create(ctx, "user-1", name, "desc", symbol, nil); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
	}

	page1, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("List(1) error = %v", err)
	}
	if len(page1.Items) != 3 {
		t.Errorf("page 1 has %d items, want 3", len(page1.Items))
	}
	if page1.Total != 7 || page1.TotalPages != 3 {
		t.Errorf("total = %d pages = %d, want 7 and 3", page1.Total, page1.TotalPages)
	}
	if page1.HasPrev() {
		t.Error("page 1 claims a previous page")
	}
	if !page1.HasNext() || page1.NextNumber() != 2 {
		t.Error("page 1 should point at page 2")
	}
	if page1.Items[0].Name != "School 6" {
		t.Errorf("page 1 starts with %q, want newest %q", page1.Items[0].Name, "School 6")
	}

	page3, err := svc.List(ctx, 3)
	if err != nil {
		t.Fatalf("List(3) error = %v", err)
	}
	if len(page3.Items) != 1 {
		t.Errorf("page 3 has %d items, want 1", len(page3.Items))
	}
	if page3.HasNext() {
		t.Error("last page claims a next page")
	}
	if !page3.HasPrev() || page3.PrevNumber() != 2 {
		t.Error("page 3 should point back at page 2")
	}
}

func TestList_OutOfRange(t *testing.T) {
	svc := newTestEnterpriseService(newMockEnterpriseRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-1", "Acme School", "desc", "ACS", nil); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Pages past the end render empty instead of failing.
	page, err := svc.List(ctx, 99)
	if err != nil {
		t.Fatalf("List(99) error = %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("out-of-range page has %d items, want 0", len(page.Items))
	}
	if page.HasNext() {
		t.Error("out-of-range page claims a next page")
	}

	// Page numbers below one clamp to the first page.
	page, err = svc.List(ctx, 0)
	if err != nil {
		t.Fatalf("List(0) error = %v", err)
	}
	if page.Number != 1 || len(page.Items) != 1 {
		t.Errorf("List(0) = page %d with %d items, want page 1 with 1 item", page.Number, len(page.Items))
	}
}

func TestEdit(t *testing.T) {
	svc := newTestEnterpriseService(newMockEnterpriseRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", "Acme School", "desc", "ACS", nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := svc.Edit(ctx, "Acme School", "Acme Academy", "renamed", "ACA")
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if updated.ID != created.ID {
		t.Error("Edit() changed the GUID")
	}
	if updated.Name != "Acme Academy" || updated.Symbol != "ACA" {
		t.Errorf("Edit() = %+v, want Acme Academy/ACA", updated)
	}
}

func TestEdit_UnchangedFieldsPass(t *testing.T) {
	svc := newTestEnterpriseService(newMockEnterpriseRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-1", "Acme School", "desc", "ACS", nil); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Saving the form without changes must not trip the uniqueness
	// checks against the record itself.
	if _, err := svc.Edit(ctx, "Acme School", "Acme School", "new description", "ACS"); err != nil {
		t.Errorf("Edit(unchanged name and symbol) error = %v", err)
	}
}

func TestEdit_Collisions(t *testing.T) {
	svc := newTestEnterpriseService(newMockEnterpriseRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-1", "Acme School", "desc", "ACS", nil); err != nil {
		t.Fatalf("Create(acme) error = %v", err)
	}
	if _, err := svc.Create(ctx, "user-1", "Beta School", "desc", "BTS", nil); err != nil {
		t.Fatalf("Create(beta) error = %v", err)
	}

	if _, err := svc.Edit(ctx, "Beta School", "Acme School", "desc", "BTS"); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Edit(name collision) error = %v, want ErrValidation", err)
	}
	if _, err := svc.Edit(ctx, "Beta School", "Beta School", "desc", "ACS"); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Edit(symbol collision) error = %v, want ErrValidation", err)
	}
	if _, err := svc.Edit(ctx, "Beta School", "Beta School", "desc", "IBM"); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Edit(reserved symbol) error = %v, want ErrValidation", err)
	}
}

func TestEdit_Missing(t *testing.T) {
	svc := newTestEnterpriseService(newMockEnterpriseRepo())

	_, err := svc.Edit(context.Background(), "Ghost School", "Ghost School", "desc", "GHO")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Edit(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	svc := newTestEnterpriseService(newMockEnterpriseRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-1", "Acme School", "desc", "ACS", nil); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(ctx, "Acme School"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if err := svc.Delete(ctx, "Acme School"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSymbolReserved(t *testing.T) {
	if !SymbolReserved("IBM") {
		t.Error("SymbolReserved(IBM) = false, want true")
	}
	if SymbolReserved("QQZ") {
		t.Error("SymbolReserved(QQZ) = true, want false")
	}
}
