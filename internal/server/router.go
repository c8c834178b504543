package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mbodji/metallerie-backend/internal/auth"
	"github.com/mbodji/metallerie-backend/internal/handlers"
	"github.com/mbodji/metallerie-backend/internal/httpx"
	"github.com/mbodji/metallerie-backend/internal/models"
	"github.com/mbodji/metallerie-backend/internal/ratelimit"
	"github.com/mbodji/metallerie-backend/internal/services"
)

// Deps bundles what the router needs; main wires the concrete pieces.
type Deps struct {
	DB      *gorm.DB
	Quotes  *services.QuoteService
	PDF     services.PDFRenderer
	Limiter *ratelimit.Limiter
}

// New constructs the root http.Handler with all routes and middlewares applied.
func New(d Deps) http.Handler {
	mux := http.NewServeMux()

	// RequireAdmin checks the session against a live admin account.
	auth.SetAdminVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := d.DB.Model(&models.User{}).Where("id = ? AND is_admin = ?", uid, true).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		// Lightweight DB check (SELECT 1) – ignore detailed errors in body
		if err := d.DB.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Catalog
	ch := handlers.NewCatalogHandler()
	mux.HandleFunc("GET /catalog/families", ch.List)
	mux.HandleFunc("GET /catalog/families/{slug}", ch.Get)

	// Quotes
	qh := handlers.NewQuoteHandler(d.Quotes, d.PDF)
	mux.Handle("POST /quotes", withRateLimit(d.Limiter, http.HandlerFunc(qh.Submit)))
	mux.HandleFunc("GET /quotes", qh.List)
	mux.HandleFunc("GET /quotes/{id}", qh.Detail)
	mux.HandleFunc("GET /quotes/{id}/pdf", qh.DownloadPDF)
	mux.HandleFunc("POST /quotes/{id}/messages", qh.AddMessage)
	mux.Handle("PATCH /quotes/{id}", auth.RequireAdmin(http.HandlerFunc(qh.Patch)))

	// Back-office auth
	ah := handlers.NewAdminHandler(d.DB)
	mux.HandleFunc("POST /admin/login", ah.Login)
	mux.HandleFunc("POST /admin/logout", ah.Logout)

	return auth.Middleware(withRecover(withLogging(mux)))
}

// withRateLimit throttles quote submissions per client IP.
func withRateLimit(l *ratelimit.Limiter, next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			httpx.JSONError(w, http.StatusTooManyRequests, "too_many_requests", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i > 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic: %v", rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
