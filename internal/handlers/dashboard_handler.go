package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/kst"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/repository"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/service"
)

// DashboardHandler renders the weekly attendance dashboard
type DashboardHandler struct {
	reportService *service.ReportService
	settingsRepo  *repository.SettingsRepository
	middleware    *Middleware
	templates     *template.Template
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(reportService *service.ReportService, settingsRepo *repository.SettingsRepository, middleware *Middleware, templates *template.Template) *DashboardHandler {
	return &DashboardHandler{
		reportService: reportService,
		settingsRepo:  settingsRepo,
		middleware:    middleware,
		templates:     templates,
	}
}

// targetDate resolves the ?date= query parameter, defaulting to today.
// The date is an explicit input on every request; nothing is stored
// server-side about which week a client is looking at.
func targetDate(r *http.Request) string {
	if date := r.URL.Query().Get("date"); date != "" {
		return date
	}
	day, _ := kst.Day(time.Now())
	return day
}

// Dashboard renders the week view for the requested date
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.reportService.BuildDashboard(targetDate(r))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			respondWithError(w, http.StatusBadRequest, "Invalid date", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to build dashboard", err)
		return
	}

	data := DashboardViewData{
		Title:     "주간 요회 보고",
		User:      GetUserFromContext(r.Context()),
		OrgName:   h.settingsRepo.OrgName(),
		View:      view,
		CSRFToken: h.middleware.CSRFToken(r),
	}

	if err := h.templates.ExecuteTemplate(w, "dashboard.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to render dashboard template", err)
	}
}

// UpdateTheme upserts the weekly theme for the week containing the posted date
func (h *DashboardHandler) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	date := r.FormValue("date")
	theme := r.FormValue("theme")

	if err := h.reportService.SetWeeklyTheme(date, theme); err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			respondWithError(w, http.StatusBadRequest, "Invalid date", "", nil)
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error(), "failed to update weekly theme", err)
		return
	}

	http.Redirect(w, r, "/dashboard?date="+date, http.StatusSeeOther)
}
