package handler

import (
	"net/http"
	"strconv"

	"github.com/mulan-edu/mulan/internal/auth"
	"github.com/mulan-edu/mulan/internal/form"
	"github.com/mulan-edu/mulan/internal/service"
)

// EnterpriseHandler serves the enterprise listing and its CRUD pages.
type EnterpriseHandler struct {
	render      *Renderer
	enterprises *service.EnterpriseService
	sessions    *auth.Sessions
}

func NewEnterpriseHandler(render *Renderer, enterprises *service.EnterpriseService, sessions *auth.Sessions) *EnterpriseHandler {
	return &EnterpriseHandler{
		render:      render,
		enterprises: enterprises,
		sessions:    sessions,
	}
}

// Index renders the paginated listing with the creation form. The page
// number comes from ?page=N; anything unparseable means page 1.
func (h *EnterpriseHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page = n
		}
	}

	listing, err := h.enterprises.List(r.Context(), page)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	f := &form.EnterpriseForm{Errors: form.Errors{}}
	h.render.Render(w, r, http.StatusOK, "index.html", map[string]any{
		"Page": listing,
		"Form": f,
	})
}

// Create handles the creation form posted from the listing page. On
// validation failure the listing is re-rendered with the submitted
// values so nothing the user typed is lost.
func (h *EnterpriseHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.render.Error(w, r, err)
		return
	}

	f := form.ParseEnterprise(r.PostForm)
	if f.Valid() {
		_, err := h.enterprises.Create(r.Context(), user.ID, f.Name, f.Description, f.Symbol, f.Values)
		if err == nil {
			h.sessions.AddFlash(w, r, "Enterprise "+f.Name+" has been added.")
			http.Redirect(w, r, "/index", http.StatusSeeOther)
			return
		}
		if !attachFieldError(f.Errors, err) {
			h.render.Error(w, r, err)
			return
		}
	}

	listing, err := h.enterprises.List(r.Context(), 1)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	h.render.Render(w, r, http.StatusUnprocessableEntity, "index.html", map[string]any{
		"Page": listing,
		"Form": f,
	})
}

// EditPage renders the edit form pre-filled from the stored enterprise.
func (h *EnterpriseHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	enterprise, err := h.enterprises.GetByName(r.Context(), name)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	f := &form.EnterpriseForm{
		Name:        enterprise.Name,
		Description: enterprise.Description,
		Symbol:      enterprise.Symbol,
		Errors:      form.Errors{},
	}
	h.render.Render(w, r, http.StatusOK, "edit_enterprise.html", map[string]any{
		"Name": enterprise.Name,
		"Form": f,
	})
}

// Edit applies the submitted changes to the enterprise named in the URL.
func (h *EnterpriseHandler) Edit(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	if err := r.ParseForm(); err != nil {
		h.render.Error(w, r, err)
		return
	}

	f := form.ParseEditEnterprise(r.PostForm)
	if !f.Valid() {
		h.render.Render(w, r, http.StatusUnprocessableEntity, "edit_enterprise.html", map[string]any{
			"Name": name,
			"Form": f,
		})
		return
	}

	if _, err := h.enterprises.Edit(r.Context(), name, f.Name, f.Description, f.Symbol); err != nil {
		if attachFieldError(f.Errors, err) {
			h.render.Render(w, r, http.StatusUnprocessableEntity, "edit_enterprise.html", map[string]any{
				"Name": name,
				"Form": f,
			})
			return
		}
		h.render.Error(w, r, err)
		return
	}

	h.sessions.AddFlash(w, r, "Enterprise "+f.Name+" has been updated.")
	http.Redirect(w, r, "/index", http.StatusSeeOther)
}

// Delete removes the enterprise named in the URL and returns to the
// listing.
func (h *EnterpriseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	if err := h.enterprises.Delete(r.Context(), name); err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.sessions.AddFlash(w, r, "Enterprise "+name+" has been deleted.")
	http.Redirect(w, r, "/index", http.StatusSeeOther)
}
