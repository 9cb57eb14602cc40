package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/repository"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/service"
)

// AdminHandler handles user management and site settings
type AdminHandler struct {
	authService  *service.AuthService
	settingsRepo *repository.SettingsRepository
	middleware   *Middleware
	templates    *template.Template
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authService *service.AuthService, settingsRepo *repository.SettingsRepository, middleware *Middleware, templates *template.Template) *AdminHandler {
	return &AdminHandler{
		authService:  authService,
		settingsRepo: settingsRepo,
		middleware:   middleware,
		templates:    templates,
	}
}

// ShowUsers renders the user management page
func (h *AdminHandler) ShowUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to list users", err)
		return
	}

	data := AdminUsersViewData{
		Title:     "사용자 관리",
		User:      GetUserFromContext(r.Context()),
		Users:     users,
		OrgName:   h.settingsRepo.OrgName(),
		CSRFToken: h.middleware.CSRFToken(r),
	}

	if err := h.templates.ExecuteTemplate(w, "admin_users.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to render admin users template", err)
	}
}

// UpdateUser handles user edit form submission
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", "", nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	name := r.FormValue("name")
	isAdmin := r.FormValue("is_admin") == "on" || r.FormValue("is_admin") == "true"

	if err := h.authService.UpdateUser(id, name, isAdmin); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to update user", err)
		return
	}

	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// DeleteUser removes a user and their sessions
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", "", nil)
		return
	}

	// An admin deleting themselves would lock the account out mid-session
	if current := GetUserFromContext(r.Context()); current != nil && current.ID == id {
		respondWithError(w, http.StatusBadRequest, "Cannot delete your own account", "", nil)
		return
	}

	if err := h.authService.DeleteUser(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to delete user", err)
		return
	}

	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// UpdateSettings handles the site settings form
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	if orgName := r.FormValue("org_name"); orgName != "" {
		if err := h.settingsRepo.SetSetting(repository.SettingOrgName, orgName); err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to save org name", err)
			return
		}
	}

	if raw := r.FormValue("history_weeks"); raw != "" {
		weeks, err := strconv.Atoi(raw)
		if err != nil || weeks < 1 {
			respondWithError(w, http.StatusBadRequest, "Invalid history weeks", "", nil)
			return
		}
		if err := h.settingsRepo.SetSetting(repository.SettingHistoryWeeks, raw); err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to save history weeks", err)
			return
		}
	}

	if recipient := r.FormValue("report_recipient"); recipient != "" {
		if err := h.settingsRepo.SetSetting(repository.SettingReportRecipient, recipient); err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to save report recipient", err)
			return
		}
	}

	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}
