package main

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/pond75jnu/AttendanceReport-sub000/internal/config"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/database"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/handlers"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/repository"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/security"
	"github.com/pond75jnu/AttendanceReport-sub000/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	yohoeRepo := repository.NewYohoeRepository(db)
	reportRepo := repository.NewReportRepository(db)
	themeRepo := repository.NewThemeRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.SessionDuration)
	yohoeService := service.NewYohoeService(yohoeRepo)
	historyWeeks := settingsRepo.HistoryWeeks(cfg.HistoryWeeks)
	reportService := service.NewReportService(reportRepo, yohoeRepo, themeRepo, settingsRepo, historyWeeks)
	exportService := service.NewExportService(settingsRepo)
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	if !emailService.IsEnabled() {
		log.Println("Email summary is disabled (SES_FROM_EMAIL not set)")
	}

	oauthProviders := map[string]handlers.OAuthProvider{
		"google": {
			Name:  "google",
			Label: "Google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "email", "profile"},
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
	}

	// Initialize handlers
	csrf := security.NewCSRFGenerator(cfg.CSRFSecret)
	rateLimiter := security.NewRateLimiter(10, time.Minute)
	shareTokens := security.NewShareTokenIssuer(cfg.ShareSecret)

	middleware := handlers.NewMiddleware(authService, csrf, rateLimiter)
	authHandler := handlers.NewAuthHandler(authService, templates, oauthProviders, cfg.OAuthRedirectBaseURL)
	dashboardHandler := handlers.NewDashboardHandler(reportService, settingsRepo, middleware, templates)
	yohoeHandler := handlers.NewYohoeHandler(yohoeService, middleware, templates)
	reportHandler := handlers.NewReportHandler(reportService, yohoeService, middleware, templates)
	exportHandler := handlers.NewExportHandler(reportService, exportService, emailService, settingsRepo, shareTokens, templates)
	adminHandler := handlers.NewAdminHandler(authService, settingsRepo, middleware, templates)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Public routes
	mux.HandleFunc("GET /", authHandler.Home)
	mux.HandleFunc("GET /login", authHandler.ShowLogin)
	mux.HandleFunc("POST /login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /register", authHandler.ShowRegister)
	mux.HandleFunc("POST /register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("GET /auth/{provider}/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/{provider}/callback", authHandler.OAuthCallback)
	mux.HandleFunc("GET /shared/{token}", exportHandler.Shared)

	// Dashboard
	mux.HandleFunc("GET /dashboard", middleware.RequireAuth(dashboardHandler.Dashboard))
	mux.HandleFunc("POST /theme/update", middleware.RequireAuth(middleware.CSRFProtect(dashboardHandler.UpdateTheme)))

	// Yohoe management
	mux.HandleFunc("GET /yohoe", middleware.RequireAuth(yohoeHandler.List))
	mux.HandleFunc("POST /yohoe/create", middleware.RequireAuth(middleware.CSRFProtect(yohoeHandler.Create)))
	mux.HandleFunc("POST /yohoe/{id}/update", middleware.RequireAuth(middleware.CSRFProtect(yohoeHandler.Update)))
	mux.HandleFunc("POST /yohoe/{id}/delete", middleware.RequireAuth(middleware.CSRFProtect(yohoeHandler.Delete)))

	// Weekly reports
	mux.HandleFunc("GET /reports/new", middleware.RequireAuth(reportHandler.New))
	mux.HandleFunc("POST /reports/create", middleware.RequireAuth(middleware.CSRFProtect(reportHandler.Create)))
	mux.HandleFunc("GET /reports/{id}", middleware.RequireAuth(reportHandler.Show))
	mux.HandleFunc("POST /reports/{id}/update", middleware.RequireAuth(middleware.CSRFProtect(reportHandler.Update)))
	mux.HandleFunc("POST /reports/{id}/delete", middleware.RequireAuth(middleware.CSRFProtect(reportHandler.Delete)))

	// Export and sharing
	mux.HandleFunc("GET /export/xlsx", middleware.RequireAuth(exportHandler.ExportXLSX))
	mux.HandleFunc("POST /share", middleware.RequireAuth(middleware.CSRFProtect(exportHandler.CreateShare)))
	mux.HandleFunc("POST /email/send", middleware.RequireAuth(middleware.CSRFProtect(exportHandler.SendEmail)))

	// Admin routes
	mux.HandleFunc("GET /admin/users", middleware.RequireAdmin(adminHandler.ShowUsers))
	mux.HandleFunc("POST /admin/users/{id}/update", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.UpdateUser)))
	mux.HandleFunc("POST /admin/users/{id}/delete", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.DeleteUser)))
	mux.HandleFunc("POST /admin/settings", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.UpdateSettings)))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	pattern := filepath.Join(templatesPath, "*.tmpl")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found in %s", templatesPath)
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"formatDate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"deref": func(n *int64) int64 {
			if n == nil {
				return 0
			}
			return *n
		},
		"join": strings.Join,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return tmpl, nil
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired sessions cleaned up")
		}
	}
}
