package form

import (
	"net/url"
	"reflect"
	"strings"
	"testing"
)

func TestParseLogin(t *testing.T) {
	f := ParseLogin(url.Values{
		"username":    {"  alice  "},
		"password":    {"secret"},
		"remember_me": {"on"},
		"next":        {"/edit_profile"},
	})

	if !f.Valid() {
		t.Fatalf("errors = %v, want none", f.Errors)
	}
	if f.Username != "alice" {
		t.Errorf("username = %q, want trimmed %q", f.Username, "alice")
	}
	if !f.RememberMe {
		t.Error("remember_me not captured")
	}
	if f.Next != "/edit_profile" {
		t.Errorf("next = %q, want /edit_profile", f.Next)
	}
}

func TestParseLogin_MissingFields(t *testing.T) {
	f := ParseLogin(url.Values{})
	if f.Valid() {
		t.Fatal("empty login form passed validation")
	}
	if f.Errors["username"] == "" || f.Errors["password"] == "" {
		t.Errorf("errors = %v, want username and password messages", f.Errors)
	}
}

func TestParseRegistration(t *testing.T) {
	tests := []struct {
		name      string
		values    url.Values
		wantField string
	}{
		{
			"valid",
			url.Values{
				"username":  {"alice"},
				"email":     {"alice@example.com"},
				"password":  {"longenough"},
				"password2": {"longenough"},
			},
			"",
		},
		{
			"username too long",
			url.Values{
				"username":  {strings.Repeat("a", 65)},
				"email":     {"alice@example.com"},
				"password":  {"longenough"},
				"password2": {"longenough"},
			},
			"username",
		},
		{
			"bad email",
			url.Values{
				"username":  {"alice"},
				"email":     {"not-an-address"},
				"password":  {"longenough"},
				"password2": {"longenough"},
			},
			"email",
		},
		{
			"short password",
			url.Values{
				"username":  {"alice"},
				"email":     {"alice@example.com"},
				"password":  {"short"},
				"password2": {"short"},
			},
			"password",
		},
		{
			"password over 72 bytes",
			url.Values{
				"username":  {"alice"},
				"email":     {"alice@example.com"},
				"password":  {strings.Repeat("x", 73)},
				"password2": {strings.Repeat("x", 73)},
			},
			"password",
		},
		{
			"mismatched passwords",
			url.Values{
				"username":  {"alice"},
				"email":     {"alice@example.com"},
				"password":  {"longenough"},
				"password2": {"different1"},
			},
			"password2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ParseRegistration(tt.values)
			if tt.wantField == "" {
				if !f.Valid() {
					t.Errorf("errors = %v, want none", f.Errors)
				}
				return
			}
			if f.Valid() {
				t.Fatal("form passed validation")
			}
			if f.Errors[tt.wantField] == "" {
				t.Errorf("errors = %v, want message on %q", f.Errors, tt.wantField)
			}
		})
	}
}

func TestParseEnterprise(t *testing.T) {
	f := ParseEnterprise(url.Values{
		"name":        {"Acme School"},
		"description": {"teaches things"},
		"symbol":      {"ACS"},
		"values":      {"Honesty, rigour , honesty,, kindness"},
	})

	if !f.Valid() {
		t.Fatalf("errors = %v, want none", f.Errors)
	}
	want := []string{"honesty", "rigour", "kindness"}
	if !reflect.DeepEqual(f.Values, want) {
		t.Errorf("values = %v, want %v", f.Values, want)
	}
	if f.ValueString() != "honesty, rigour, kindness" {
		t.Errorf("ValueString() = %q", f.ValueString())
	}
}

func TestParseEnterprise_SymbolShape(t *testing.T) {
	tests := []struct {
		symbol string
		ok     bool
	}{
		{"ACS", true},
		{"acs", false},
		{"AC", false},
		{"ACSX", false},
		{"A1S", false},
		{"", false},
	}

	for _, tt := range tests {
		f := ParseEnterprise(url.Values{
			"name":        {"Acme School"},
			"description": {"teaches things"},
			"symbol":      {tt.symbol},
		})
		if got := f.Errors["symbol"] == ""; got != tt.ok {
			t.Errorf("symbol %q: valid = %v, want %v (%v)", tt.symbol, got, tt.ok, f.Errors)
		}
	}
}

func TestParseEnterprise_TooManyValues(t *testing.T) {
	var names []string
	for i := 0; i < MaxValues+1; i++ {
		names = append(names, string(rune('a'+i)))
	}

	f := ParseEnterprise(url.Values{
		"name":        {"Acme School"},
		"description": {"teaches things"},
		"symbol":      {"ACS"},
		"values":      {strings.Join(names, ",")},
	})
	if f.Errors["values"] == "" {
		t.Errorf("errors = %v, want a values message", f.Errors)
	}
}

func TestParseEditEnterprise_IgnoresValues(t *testing.T) {
	f := ParseEditEnterprise(url.Values{
		"name":        {"Acme School"},
		"description": {"teaches things"},
		"symbol":      {"ACS"},
		"values":      {"honesty"},
	})

	if !f.Valid() {
		t.Fatalf("errors = %v, want none", f.Errors)
	}
	if f.Values != nil {
		t.Errorf("edit form captured values %v, want none", f.Values)
	}
}

func TestParseValueList(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"one", []string{"one"}},
		{"One, TWO, one", []string{"one", "two"}},
		{", ,a,,b,", []string{"a", "b"}},
	}

	for _, tt := range tests {
		if got := ParseValueList(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseValueList(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
