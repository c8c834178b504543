package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mbodji/metallerie-backend/internal/config"
	"github.com/mbodji/metallerie-backend/internal/db"
	"github.com/mbodji/metallerie-backend/internal/pdf"
	"github.com/mbodji/metallerie-backend/internal/ratelimit"
	"github.com/mbodji/metallerie-backend/internal/server"
	"github.com/mbodji/metallerie-backend/internal/services"

	mailpkg "github.com/mbodji/metallerie-backend/internal/mail"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	if *migrateOnlyFlag {
		if _, err := db.ConnectAndMigrate(); err != nil {
			log.Fatalf("migrate-only failed: %v", err)
		}
		log.Println("migrations completed; exiting as requested")
		return
	}
	cfg := config.Load()
	dbConn, err := db.ConnectAndMigrate()
	if err != nil {
		log.Fatalf("Erreur connexion DB: %v", err)
	}
	log.Printf("Starting server env=%s port=%s", cfg.Env, cfg.Port)

	generator := pdf.NewGenerator("Métallerie Durand", "12 rue des Forges, 69007 Lyon — contact@metallerie-durand.fr")
	quoteSvc := services.NewQuoteService(dbConn, cfg.TVARate, cfg.QuoteValidityDays)
	quoteSvc.PDF = generator
	quoteSvc.Notifier = mailpkg.NewMailer(cfg.SendgridAPIKey, cfg.MailFrom, cfg.MailWorkshop)

	limiter := ratelimit.New(ratelimit.NewMemoryStore(), cfg.RateLimitMax, cfg.RateLimitWindow)
	limiter.Start()
	defer limiter.Stop()

	handler := server.New(server.Deps{DB: dbConn, Quotes: quoteSvc, PDF: generator, Limiter: limiter})
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
