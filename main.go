package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "rideshare/internal/config"
	"rideshare/internal/db"
	router "rideshare/internal/http"
	"rideshare/internal/http/middleware"
	"rideshare/internal/repositories"
	"rideshare/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	conn := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	adminHash, err := services.HashPassword("password")
	if err != nil {
		log.Fatalf("failed to hash bootstrap password: %v", err)
	}
	if err := db.Bootstrap(conn, adminHash); err != nil {
		log.Fatalf("failed to bootstrap schema: %v", err)
	}
	if env.SeedDemoData {
		if err := db.SeedDemoData(conn, adminHash, adminHash); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
	}

	sessions := repositories.SessionRepository{DB: conn}
	if err := sessions.PurgeExpired(); err != nil {
		log.Printf("warning: failed to purge expired sessions: %v", err)
	}

	manager := middleware.SessionManager{
		Sessions: sessions,
		Secret:   []byte(env.SessionSecret),
		TTL:      time.Duration(env.SessionTTLHours) * time.Hour,
	}

	r := router.NewRouter(env, manager,
		repositories.AccountRepository{DB: conn},
		repositories.AreaRepository{DB: conn},
		repositories.RouteRepository{DB: conn},
		repositories.BookingRepository{DB: conn},
	)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly")
}
