package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "charter/internal/config"
	intdb "charter/internal/db"
	router "charter/internal/http"
	"charter/internal/http/handlers"
	"charter/internal/utils"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	for _, w := range env.Warnings() {
		utils.Logger.Warn(w)
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		utils.Logger.WithError(err).Fatal("database connection failed")
	}
	defer intconfig.CloseDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = intdb.EnsureSchema(ctx, db, env.BookingConfig().UpsertCustomers())
	cancel()
	if err != nil {
		utils.Logger.WithError(err).Fatal("schema setup failed")
	}

	r := router.NewRouter(env, handlers.New(env, db))
	handlers.SetRouter(r)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20*time.Second + env.NotifyTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.Logger.Infof("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	utils.Logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Logger.WithError(err).Fatal("server shutdown failed")
	}

	utils.Logger.Info("server stopped")
}
