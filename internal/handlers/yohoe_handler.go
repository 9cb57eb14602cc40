package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/service"
)

// YohoeHandler handles yohoe group management
type YohoeHandler struct {
	yohoeService *service.YohoeService
	middleware   *Middleware
	templates    *template.Template
}

// NewYohoeHandler creates a new yohoe handler
func NewYohoeHandler(yohoeService *service.YohoeService, middleware *Middleware, templates *template.Template) *YohoeHandler {
	return &YohoeHandler{
		yohoeService: yohoeService,
		middleware:   middleware,
		templates:    templates,
	}
}

// List renders the yohoe management page
func (h *YohoeHandler) List(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, "")
}

func (h *YohoeHandler) renderList(w http.ResponseWriter, r *http.Request, errorMsg string) {
	groups, err := h.yohoeService.ListYohoe()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to list yohoe", err)
		return
	}

	data := YohoeListViewData{
		Title:     "요회 관리",
		User:      GetUserFromContext(r.Context()),
		Groups:    groups,
		CSRFToken: h.middleware.CSRFToken(r),
		Error:     errorMsg,
	}

	if err := h.templates.ExecuteTemplate(w, "yohoe.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to render yohoe template", err)
	}
}

// Create handles yohoe creation form submission
func (h *YohoeHandler) Create(w http.ResponseWriter, r *http.Request) {
	name, shepherd, leaderCount, orderNum, err := parseYohoeForm(r)
	if err != nil {
		h.renderList(w, r, err.Error())
		return
	}

	if _, err := h.yohoeService.CreateYohoe(name, shepherd, leaderCount, orderNum); err != nil {
		h.renderList(w, r, err.Error())
		return
	}

	http.Redirect(w, r, "/yohoe", http.StatusSeeOther)
}

// Update handles yohoe edit form submission
func (h *YohoeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid yohoe ID", "", nil)
		return
	}

	name, shepherd, leaderCount, orderNum, err := parseYohoeForm(r)
	if err != nil {
		h.renderList(w, r, err.Error())
		return
	}

	if err := h.yohoeService.UpdateYohoe(id, name, shepherd, leaderCount, orderNum); err != nil {
		h.renderList(w, r, err.Error())
		return
	}

	http.Redirect(w, r, "/yohoe", http.StatusSeeOther)
}

// Delete removes a yohoe group. Its reports are kept and show up in the
// dashboard's orphan count.
func (h *YohoeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid yohoe ID", "", nil)
		return
	}

	if err := h.yohoeService.DeleteYohoe(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to delete yohoe", err)
		return
	}

	http.Redirect(w, r, "/yohoe", http.StatusSeeOther)
}

func parseYohoeForm(r *http.Request) (name, shepherd string, leaderCount int, orderNum *int64, err error) {
	if err = r.ParseForm(); err != nil {
		return "", "", 0, nil, err
	}

	name = r.FormValue("name")
	shepherd = r.FormValue("shepherd")

	if raw := r.FormValue("leader_count"); raw != "" {
		leaderCount, err = strconv.Atoi(raw)
		if err != nil {
			return "", "", 0, nil, err
		}
	}

	if raw := r.FormValue("order_num"); raw != "" {
		n, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			return "", "", 0, nil, parseErr
		}
		orderNum = &n
	}

	return name, shepherd, leaderCount, orderNum, nil
}
