package handlers

import (
	"github.com/pond75jnu/AttendanceReport-sub000/internal/models"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/service"
)

type LoginViewData struct {
	Title          string
	OAuthProviders []OAuthProviderView
	Error          string
	Email          string
	Success        string
}

type RegisterViewData struct {
	Title          string
	OAuthProviders []OAuthProviderView
	Error          string
	Email          string
	Name           string
}

type DashboardViewData struct {
	Title     string
	User      *models.User
	OrgName   string
	View      *service.DashboardView
	CSRFToken string
}

// SharedViewData renders the read-only dashboard behind a share link. No
// user, no csrf token, no mutating controls.
type SharedViewData struct {
	Title   string
	OrgName string
	View    *service.DashboardView
}

type YohoeListViewData struct {
	Title     string
	User      *models.User
	Groups    []models.Yohoe
	CSRFToken string
	Error     string
}

type ReportFormViewData struct {
	Title     string
	User      *models.User
	Groups    []models.Yohoe
	Report    *models.Report
	WeekDate  string
	CSRFToken string
	Error     string
}

type AdminUsersViewData struct {
	Title     string
	User      *models.User
	Users     []models.User
	OrgName   string
	CSRFToken string
	Error     string
}
