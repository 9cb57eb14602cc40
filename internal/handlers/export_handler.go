package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/repository"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/security"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/service"
)

// ShareLinkValidity is how long a minted share link stays valid.
const ShareLinkValidity = 14 * 24 * time.Hour

// ExportHandler handles Excel export, share links and the summary email
type ExportHandler struct {
	reportService *service.ReportService
	exportService *service.ExportService
	emailService  *service.EmailService
	settingsRepo  *repository.SettingsRepository
	shareTokens   *security.ShareTokenIssuer
	templates     *template.Template
}

// NewExportHandler creates a new export handler
func NewExportHandler(
	reportService *service.ReportService,
	exportService *service.ExportService,
	emailService *service.EmailService,
	settingsRepo *repository.SettingsRepository,
	shareTokens *security.ShareTokenIssuer,
	templates *template.Template,
) *ExportHandler {
	return &ExportHandler{
		reportService: reportService,
		exportService: exportService,
		emailService:  emailService,
		settingsRepo:  settingsRepo,
		shareTokens:   shareTokens,
		templates:     templates,
	}
}

// ExportXLSX streams the weekly report as an Excel workbook
func (h *ExportHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	view, err := h.reportService.BuildDashboard(targetDate(r))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			respondWithError(w, http.StatusBadRequest, "Invalid date", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to build export view", err)
		return
	}

	filename := fmt.Sprintf("yohoe-report-%s.xlsx", view.Week.Sunday)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := h.exportService.WriteWorkbook(view, w); err != nil {
		// Headers are already out; all we can do is log.
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to write workbook", err)
	}
}

// CreateShare mints a signed read-only link for the week containing the
// posted date and shows it on the dashboard redirect.
func (h *ExportHandler) CreateShare(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	view, err := h.reportService.BuildDashboard(r.FormValue("date"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid date", "", err)
		return
	}

	token, err := h.shareTokens.Issue(view.Week.Sunday, ShareLinkValidity)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to issue share token", err)
		return
	}

	http.Redirect(w, r, "/dashboard?date="+view.Week.Sunday+"&share_token="+token, http.StatusSeeOther)
}

// Shared renders the read-only dashboard behind a share link. No session
// required; the token alone scopes access to one week.
func (h *ExportHandler) Shared(w http.ResponseWriter, r *http.Request) {
	weekDate, err := h.shareTokens.Verify(r.PathValue("token"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Share link is invalid or expired", "", nil)
		return
	}

	view, err := h.reportService.BuildDashboard(weekDate)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to build shared view", err)
		return
	}

	data := SharedViewData{
		Title:   "주간 요회 보고",
		OrgName: h.settingsRepo.OrgName(),
		View:    view,
	}

	if err := h.templates.ExecuteTemplate(w, "shared.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to render shared template", err)
	}
}

// SendEmail sends the weekly summary to the configured recipient
func (h *ExportHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	if !h.emailService.IsEnabled() {
		respondWithError(w, http.StatusConflict, "Email is not configured", "", nil)
		return
	}

	recipient := h.settingsRepo.ReportRecipient()
	if recipient == "" {
		respondWithError(w, http.StatusConflict, "No report recipient configured", "", nil)
		return
	}

	date := r.FormValue("date")
	view, err := h.reportService.BuildDashboard(date)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid date", "", err)
		return
	}

	if err := h.emailService.SendWeeklySummary(r.Context(), recipient, h.settingsRepo.OrgName(), view); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to send weekly summary", err)
		return
	}

	http.Redirect(w, r, "/dashboard?date="+view.Week.Sunday, http.StatusSeeOther)
}
