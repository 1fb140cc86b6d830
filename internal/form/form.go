// Package form holds the declarative form definitions for every page.
//
// Each form parses itself from url.Values, trims what users paste in,
// and collects per-field messages in Errors. Format rules live here;
// uniqueness rules (username taken, symbol in use) belong to the service
// layer, which has the repositories to check them.
package form

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/mulan-edu/mulan/internal/model"
)

// symbolPattern is the exchange ticker shape: exactly three capitals.
var symbolPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// MinPasswordLength is the registration password policy.
const MinPasswordLength = 8

// MaxValues caps the number of value tags per enterprise.
const MaxValues = 10

// Errors maps field name to the message rendered next to it.
type Errors map[string]string

// LoginForm authenticates an existing user. Next is the captured
// redirect target and passes through untouched; it is validated at
// redirect time, not here.
type LoginForm struct {
	Username   string
	Password   string
	RememberMe bool
	Next       string
	Errors     Errors
}

// ParseLogin builds and validates a LoginForm from submitted values.
func ParseLogin(values url.Values) *LoginForm {
	f := &LoginForm{
		Username:   strings.TrimSpace(values.Get("username")),
		Password:   values.Get("password"),
		RememberMe: values.Get("remember_me") != "",
		Next:       values.Get("next"),
		Errors:     Errors{},
	}

	if f.Username == "" {
		f.Errors["username"] = "username is required"
	}
	if f.Password == "" {
		f.Errors["password"] = "password is required"
	}
	return f
}

func (f *LoginForm) Valid() bool { return len(f.Errors) == 0 }

// RegistrationForm creates a new account.
type RegistrationForm struct {
	Username  string
	Email     string
	Password  string
	Password2 string
	Errors    Errors
}

// ParseRegistration builds and validates a RegistrationForm.
func ParseRegistration(values url.Values) *RegistrationForm {
	f := &RegistrationForm{
		Username:  strings.TrimSpace(values.Get("username")),
		Email:     strings.TrimSpace(values.Get("email")),
		Password:  values.Get("password"),
		Password2: values.Get("password2"),
		Errors:    Errors{},
	}

	switch {
	case f.Username == "":
		f.Errors["username"] = "username is required"
	case len(f.Username) > model.MaxUsernameLength:
		f.Errors["username"] = fmt.Sprintf("username must be %d characters or less", model.MaxUsernameLength)
	}

	switch {
	case f.Email == "":
		f.Errors["email"] = "email is required"
	case len(f.Email) > model.MaxEmailLength:
		f.Errors["email"] = fmt.Sprintf("email must be %d characters or less", model.MaxEmailLength)
	default:
		if _, err := mail.ParseAddress(f.Email); err != nil {
			f.Errors["email"] = "email address is not valid"
		}
	}

	switch {
	case f.Password == "":
		f.Errors["password"] = "password is required"
	case len(f.Password) < MinPasswordLength:
		f.Errors["password"] = fmt.Sprintf("password must be at least %d characters", MinPasswordLength)
	case len(f.Password) > 72:
		f.Errors["password"] = "password must be 72 bytes or fewer"
	}

	if f.Errors["password"] == "" && f.Password2 != f.Password {
		f.Errors["password2"] = "passwords do not match"
	}
	return f
}

func (f *RegistrationForm) Valid() bool { return len(f.Errors) == 0 }

// EditProfileForm updates the signed-in user's username and about-me
// text.
type EditProfileForm struct {
	Username string
	AboutMe  string
	Errors   Errors
}

// ParseEditProfile builds and validates an EditProfileForm.
func ParseEditProfile(values url.Values) *EditProfileForm {
	f := &EditProfileForm{
		Username: strings.TrimSpace(values.Get("username")),
		AboutMe:  strings.TrimSpace(values.Get("about_me")),
		Errors:   Errors{},
	}

	switch {
	case f.Username == "":
		f.Errors["username"] = "username is required"
	case len(f.Username) > model.MaxUsernameLength:
		f.Errors["username"] = fmt.Sprintf("username must be %d characters or less", model.MaxUsernameLength)
	}

	if len(f.AboutMe) > model.MaxAboutMeLength {
		f.Errors["about_me"] = fmt.Sprintf("about me must be %d characters or less", model.MaxAboutMeLength)
	}
	return f
}

func (f *EditProfileForm) Valid() bool { return len(f.Errors) == 0 }

// EnterpriseForm creates an enterprise; EditEnterpriseForm is the same
// form minus the value-tag list, which is only set at creation.
type EnterpriseForm struct {
	Name        string
	Description string
	Symbol      string
	Values      []string
	Errors      Errors
}

// ParseEnterprise builds and validates an EnterpriseForm.
func ParseEnterprise(values url.Values) *EnterpriseForm {
	f := &EnterpriseForm{
		Name:        strings.TrimSpace(values.Get("name")),
		Description: strings.TrimSpace(values.Get("description")),
		Symbol:      strings.TrimSpace(values.Get("symbol")),
		Values:      ParseValueList(values.Get("values")),
		Errors:      Errors{},
	}
	f.validateCore()

	if len(f.Values) > MaxValues {
		f.Errors["values"] = fmt.Sprintf("an enterprise can have at most %d values", MaxValues)
	}
	return f
}

// ParseEditEnterprise builds and validates the edit variant.
func ParseEditEnterprise(values url.Values) *EnterpriseForm {
	f := &EnterpriseForm{
		Name:        strings.TrimSpace(values.Get("name")),
		Description: strings.TrimSpace(values.Get("description")),
		Symbol:      strings.TrimSpace(values.Get("symbol")),
		Errors:      Errors{},
	}
	f.validateCore()
	return f
}

func (f *EnterpriseForm) validateCore() {
	switch {
	case f.Name == "":
		f.Errors["name"] = "enterprise name is required"
	case len(f.Name) > model.MaxEnterpriseName:
		f.Errors["name"] = fmt.Sprintf("enterprise name must be %d characters or less", model.MaxEnterpriseName)
	}

	switch {
	case f.Description == "":
		f.Errors["description"] = "description is required"
	case len(f.Description) > model.MaxDescriptionLength:
		f.Errors["description"] = fmt.Sprintf("description must be %d characters or less", model.MaxDescriptionLength)
	}

	switch {
	case f.Symbol == "":
		f.Errors["symbol"] = "symbol is required"
	case len(f.Symbol) > model.MaxSymbolLength:
		f.Errors["symbol"] = fmt.Sprintf("symbol must be %d characters or less", model.MaxSymbolLength)
	case !symbolPattern.MatchString(f.Symbol):
		f.Errors["symbol"] = "symbol must be three capital letters"
	}
}

func (f *EnterpriseForm) Valid() bool { return len(f.Errors) == 0 }

// ValueString re-joins the value list for re-rendering the form.
func (f *EnterpriseForm) ValueString() string {
	return strings.Join(f.Values, ", ")
}

// ParseValueList splits a comma-separated value list, trimming each
// entry, lowercasing, and dropping duplicates while keeping first-seen
// order.
func ParseValueList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
