package handler

import (
	"net/http"

	"github.com/mulan-edu/mulan/internal/auth"
	"github.com/mulan-edu/mulan/internal/form"
	"github.com/mulan-edu/mulan/internal/service"
)

// ProfileHandler serves the user profile page and the profile editor.
type ProfileHandler struct {
	render   *Renderer
	auth     *service.AuthService
	sessions *auth.Sessions
}

func NewProfileHandler(render *Renderer, authSvc *service.AuthService, sessions *auth.Sessions) *ProfileHandler {
	return &ProfileHandler{
		render:   render,
		auth:     authSvc,
		sessions: sessions,
	}
}

// Show renders the profile page for the username in the URL.
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	profile, err := h.auth.GetUserByUsername(r.Context(), username)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.Render(w, r, http.StatusOK, "user.html", map[string]any{"Profile": profile})
}

// EditPage renders the profile editor pre-filled with the signed-in
// user's current values.
func (h *ProfileHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	f := &form.EditProfileForm{
		Username: user.Username,
		AboutMe:  user.AboutMe,
		Errors:   form.Errors{},
	}
	h.render.Render(w, r, http.StatusOK, "edit_profile.html", map[string]any{"Form": f})
}

// Edit applies the submitted profile changes.
func (h *ProfileHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.render.Error(w, r, err)
		return
	}

	f := form.ParseEditProfile(r.PostForm)
	if !f.Valid() {
		h.render.Render(w, r, http.StatusUnprocessableEntity, "edit_profile.html", map[string]any{"Form": f})
		return
	}

	if _, err := h.auth.EditProfile(r.Context(), user.ID, f.Username, f.AboutMe); err != nil {
		if attachFieldError(f.Errors, err) {
			h.render.Render(w, r, http.StatusUnprocessableEntity, "edit_profile.html", map[string]any{"Form": f})
			return
		}
		h.render.Error(w, r, err)
		return
	}

	h.sessions.AddFlash(w, r, "Your changes have been saved.")
	http.Redirect(w, r, "/user/"+f.Username, http.StatusSeeOther)
}
