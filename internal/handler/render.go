// Package handler contains the HTTP handlers for the web UI. Handlers parse
// and validate form input, call into the service layer, and render HTML
// templates. Invalid input re-renders the submitted form with field errors;
// successful mutations redirect so that a refresh never repeats a POST.
package handler

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/mulan-edu/mulan/internal/apperror"
	"github.com/mulan-edu/mulan/internal/auth"
	"github.com/mulan-edu/mulan/web"
)

// Renderer holds the parsed page templates. Each page template is parsed
// together with the base layout so that "content" blocks from different
// pages never collide.
type Renderer struct {
	pages    map[string]*template.Template
	sessions *auth.Sessions
	logger   *slog.Logger
}

func NewRenderer(sessions *auth.Sessions, logger *slog.Logger) (*Renderer, error) {
	names := []string{
		"login.html", "register.html", "index.html", "user.html",
		"edit_profile.html", "edit_enterprise.html", "404.html", "500.html",
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		tmpl, err := template.ParseFS(web.Templates, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages, sessions: sessions, logger: logger}, nil
}

// Render writes the given page with the base layout. The current user and
// any pending flash messages are added to the template data under "User"
// and "Flashes".
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data map[string]any) {
	tmpl, ok := rn.pages[page]
	if !ok {
		rn.logger.Error("unknown template", "page", page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = make(map[string]any)
	}
	if _, ok := data["User"]; !ok {
		if user, ok := auth.UserFromContext(r.Context()); ok {
			data["User"] = user
		}
	}
	data["Flashes"] = rn.sessions.Flashes(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		rn.logger.Error("render template", "page", page, "error", err)
	}
}

// Error renders the error page matching err. Unknown errors are logged and
// shown as a generic 500 page so that internal details never reach the
// client.
func (rn *Renderer) Error(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperror.ErrNotFound) {
		rn.NotFound(w, r, err)
		return
	}

	rn.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	rn.Render(w, r, http.StatusInternalServerError, "500.html", nil)
}

// NotFound renders the 404 page. The error message, when present, is shown
// to the user.
func (rn *Renderer) NotFound(w http.ResponseWriter, r *http.Request, err error) {
	data := make(map[string]any)
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		data["Message"] = appErr.Message
	}
	rn.Render(w, r, http.StatusNotFound, "404.html", data)
}
