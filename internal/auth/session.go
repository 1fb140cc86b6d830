package auth

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "mulan-session"

	userIDKeyName = "user_id"

	// rememberMaxAge keeps the session alive across browser restarts when
	// the user ticks "remember me" at login.
	rememberMaxAge = 30 * 24 * 60 * 60 // 30 days in seconds
)

// Sessions wraps a gorilla CookieStore. The cookie is signed client-side
// state: it carries only the user ID and any pending flash messages, and
// tampering invalidates the signature, so there is no server-side session
// table.
type Sessions struct {
	store *sessions.CookieStore
}

// NewSessions creates the session manager. The secret signs every cookie;
// rotating it logs everyone out.
func NewSessions(secret string) (*Sessions, error) {
	if len(secret) < 16 {
		return nil, fmt.Errorf("auth: session secret must be at least 16 characters")
	}

	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store}, nil
}

// SignIn establishes the authenticated session. With remember set the
// cookie persists for 30 days; otherwise it dies with the browser.
func (s *Sessions) SignIn(w http.ResponseWriter, r *http.Request, userID string, remember bool) error {
	session, _ := s.store.Get(r, sessionName)
	session.Values[userIDKeyName] = userID
	if remember {
		opts := *session.Options
		opts.MaxAge = rememberMaxAge
		session.Options = &opts
	}
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("auth: saving session: %w", err)
	}
	return nil
}

// SignOut drops the session cookie.
func (s *Sessions) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, sessionName)
	delete(session.Values, userIDKeyName)
	opts := *session.Options
	opts.MaxAge = -1
	session.Options = &opts
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("auth: clearing session: %w", err)
	}
	return nil
}

// UserID returns the signed-in user's ID, or ("", false) for anonymous
// requests. A cookie that fails signature verification counts as
// anonymous; gorilla hands back a fresh session in that case.
func (s *Sessions) UserID(r *http.Request) (string, bool) {
	session, _ := s.store.Get(r, sessionName)
	id, ok := session.Values[userIDKeyName].(string)
	return id, ok && id != ""
}

// AddFlash queues a one-shot message shown on the next rendered page.
func (s *Sessions) AddFlash(w http.ResponseWriter, r *http.Request, message string) {
	session, _ := s.store.Get(r, sessionName)
	session.AddFlash(message)
	// Save errors here would only lose a banner message.
	_ = session.Save(r, w)
}

// Flashes drains and returns the queued messages. Draining mutates the
// session, so the cookie is re-saved.
func (s *Sessions) Flashes(w http.ResponseWriter, r *http.Request) []string {
	session, _ := s.store.Get(r, sessionName)
	raw := session.Flashes()
	if len(raw) > 0 {
		_ = session.Save(r, w)
	}
	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}

// SafeNext validates a post-login redirect target. Only host-relative
// paths are honoured; anything carrying a scheme or host (or a
// protocol-relative "//host" form) falls back to the main page, which
// keeps the next parameter from becoming an open redirect.
func SafeNext(next string) string {
	const fallback = "/index"
	if next == "" {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	if len(next) < 1 || next[0] != '/' || (len(next) > 1 && next[1] == '/') {
		return fallback
	}
	return next
}
