package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/kst"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/models"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/service"
)

// ReportHandler handles weekly report CRUD
type ReportHandler struct {
	reportService *service.ReportService
	yohoeService  *service.YohoeService
	middleware    *Middleware
	templates     *template.Template
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, yohoeService *service.YohoeService, middleware *Middleware, templates *template.Template) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		yohoeService:  yohoeService,
		middleware:    middleware,
		templates:     templates,
	}
}

// New renders the report submission form
func (h *ReportHandler) New(w http.ResponseWriter, r *http.Request) {
	groups, err := h.yohoeService.ListYohoe()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to list yohoe", err)
		return
	}

	// Default the form to the current week's Sunday
	today, _ := kst.Day(time.Now())
	weekDate := ""
	if week, ok := kst.WeekRangeOf(today); ok {
		weekDate = week.Sunday
	}

	data := ReportFormViewData{
		Title:     "보고서 작성",
		User:      GetUserFromContext(r.Context()),
		Groups:    groups,
		WeekDate:  weekDate,
		CSRFToken: h.middleware.CSRFToken(r),
	}

	if err := h.templates.ExecuteTemplate(w, "report_form.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to render report form", err)
	}
}

// Create handles report form submission. Resubmitting for the same week
// adds a new row; the latest submission wins at read time.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	report, err := parseReportForm(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	created, err := h.reportService.CreateReport(report)
	if err != nil {
		h.reportError(w, r, report, err)
		return
	}

	http.Redirect(w, r, "/dashboard?date="+created.ReportDate, http.StatusSeeOther)
}

// Show renders the edit form for an existing report
func (h *ReportHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid report ID", "", nil)
		return
	}

	report, err := h.reportService.GetReport(id)
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			respondWithError(w, http.StatusNotFound, "Report not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to load report", err)
		return
	}

	groups, err := h.yohoeService.ListYohoe()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to list yohoe", err)
		return
	}

	data := ReportFormViewData{
		Title:     "보고서 수정",
		User:      GetUserFromContext(r.Context()),
		Groups:    groups,
		Report:    report,
		WeekDate:  report.ReportDate,
		CSRFToken: h.middleware.CSRFToken(r),
	}

	if err := h.templates.ExecuteTemplate(w, "report_form.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to render report form", err)
	}
}

// Update handles report edit form submission
func (h *ReportHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid report ID", "", nil)
		return
	}

	report, err := parseReportForm(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}
	report.ID = id

	if err := h.reportService.UpdateReport(report); err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			respondWithError(w, http.StatusNotFound, "Report not found", "", nil)
			return
		}
		h.reportError(w, r, report, err)
		return
	}

	http.Redirect(w, r, "/dashboard?date="+report.ReportDate, http.StatusSeeOther)
}

// Delete removes a report
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid report ID", "", nil)
		return
	}

	if err := h.reportService.DeleteReport(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to delete report", err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// reportError re-renders the form with the submitted values and an error
func (h *ReportHandler) reportError(w http.ResponseWriter, r *http.Request, report *models.Report, cause error) {
	groups, err := h.yohoeService.ListYohoe()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to list yohoe", err)
		return
	}

	message := "보고서 저장에 실패했습니다"
	switch {
	case errors.Is(cause, service.ErrInvalidDate):
		message = "날짜 형식이 올바르지 않습니다"
	case errors.Is(cause, service.ErrYohoeNotFound):
		message = "존재하지 않는 요회입니다"
	}

	data := ReportFormViewData{
		Title:     "보고서 작성",
		User:      GetUserFromContext(r.Context()),
		Groups:    groups,
		Report:    report,
		WeekDate:  report.ReportDate,
		CSRFToken: h.middleware.CSRFToken(r),
		Error:     message,
	}

	if err := h.templates.ExecuteTemplate(w, "report_form.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to render report form", err)
	}
}

func parseReportForm(r *http.Request) (*models.Report, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	yohoeID, err := strconv.ParseInt(r.FormValue("yohoe_id"), 10, 64)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		YohoeID:                yohoeID,
		ReportDate:             r.FormValue("report_date"),
		AttendedGraduatesNames: r.FormValue("attended_graduates_names"),
		AttendedStudentsNames:  r.FormValue("attended_students_names"),
		AttendedFreshmenNames:  r.FormValue("attended_freshmen_names"),
		AttendedOthersNames:    r.FormValue("attended_others_names"),
		AbsentLeadersNames:     r.FormValue("absent_leaders_names"),
	}

	counts := []struct {
		field string
		dst   *int
	}{
		{"attended_leaders_count", &report.AttendedLeadersCount},
		{"absent_leaders_count", &report.AbsentLeadersCount},
		{"attended_graduates_count", &report.AttendedGraduatesCount},
		{"attended_students_count", &report.AttendedStudentsCount},
		{"attended_freshmen_count", &report.AttendedFreshmenCount},
		{"attended_others_count", &report.AttendedOthersCount},
		{"one_to_one_count", &report.OneToOneCount},
	}
	for _, c := range counts {
		raw := r.FormValue(c.field)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}

	return report, nil
}
