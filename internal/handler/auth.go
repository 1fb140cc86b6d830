package handler

import (
	"errors"
	"net/http"

	"github.com/mulan-edu/mulan/internal/apperror"
	"github.com/mulan-edu/mulan/internal/auth"
	"github.com/mulan-edu/mulan/internal/form"
	"github.com/mulan-edu/mulan/internal/service"
)

// AuthHandler serves the login, logout and registration pages.
type AuthHandler struct {
	render   *Renderer
	auth     *service.AuthService
	sessions *auth.Sessions
}

func NewAuthHandler(render *Renderer, authSvc *service.AuthService, sessions *auth.Sessions) *AuthHandler {
	return &AuthHandler{
		render:   render,
		auth:     authSvc,
		sessions: sessions,
	}
}

// LoginPage renders the login form. Already signed-in users are sent to
// the main page instead.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserFromContext(r.Context()); ok {
		http.Redirect(w, r, "/index", http.StatusSeeOther)
		return
	}

	f := &form.LoginForm{Next: r.URL.Query().Get("next"), Errors: form.Errors{}}
	h.render.Render(w, r, http.StatusOK, "login.html", map[string]any{"Form": f})
}

// Login authenticates the submitted credentials, establishes the
// session, and honours the captured next target.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render.Error(w, r, err)
		return
	}

	f := form.ParseLogin(r.PostForm)
	if !f.Valid() {
		h.render.Render(w, r, http.StatusUnprocessableEntity, "login.html", map[string]any{"Form": f})
		return
	}

	user, err := h.auth.Login(r.Context(), f.Username, f.Password)
	if err != nil {
		if errors.Is(err, apperror.ErrAuth) {
			h.sessions.AddFlash(w, r, "Invalid username or password")
			h.render.Render(w, r, http.StatusUnauthorized, "login.html", map[string]any{"Form": f})
			return
		}
		h.render.Error(w, r, err)
		return
	}

	if err := h.sessions.SignIn(w, r, user.ID, f.RememberMe); err != nil {
		h.render.Error(w, r, err)
		return
	}

	http.Redirect(w, r, auth.SafeNext(f.Next), http.StatusSeeOther)
}

// Logout drops the session. The main page bounces the now-anonymous
// request on to the login form.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(w, r); err != nil {
		h.render.Error(w, r, err)
		return
	}
	http.Redirect(w, r, "/index", http.StatusSeeOther)
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserFromContext(r.Context()); ok {
		http.Redirect(w, r, "/index", http.StatusSeeOther)
		return
	}

	f := &form.RegistrationForm{Errors: form.Errors{}}
	h.render.Render(w, r, http.StatusOK, "register.html", map[string]any{"Form": f})
}

// Register creates the account and sends the new user to the login page.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render.Error(w, r, err)
		return
	}

	f := form.ParseRegistration(r.PostForm)
	if !f.Valid() {
		h.render.Render(w, r, http.StatusUnprocessableEntity, "register.html", map[string]any{"Form": f})
		return
	}

	if _, err := h.auth.Register(r.Context(), f.Username, f.Email, f.Password); err != nil {
		if attachFieldError(f.Errors, err) {
			h.render.Render(w, r, http.StatusUnprocessableEntity, "register.html", map[string]any{"Form": f})
			return
		}
		h.render.Error(w, r, err)
		return
	}

	h.sessions.AddFlash(w, r, "Congratulations, you are now a registered user!")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// attachFieldError folds a service-level validation failure back into
// the form's field errors. Returns false when err is not a validation
// error, in which case the caller should treat it as internal.
func attachFieldError(errs form.Errors, err error) bool {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && errors.Is(err, apperror.ErrValidation) && appErr.Field != "" {
		errs[appErr.Field] = appErr.Message
		return true
	}
	return false
}
