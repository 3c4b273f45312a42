package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"practicehub/internal/logger"
	synchub "practicehub/internal/sync"
	"practicehub/pkg/utils"
)

func main() {
	cfg := utils.LoadConfig()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.LogMode == "prod" || cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	hub := synchub.NewHub(log)
	app := newApp(cfg, hub, log)

	// warm the cache so the first visitor does not pay for the fetch
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if _, err := app.svc.Index(warmCtx); err != nil {
		log.Warn("initial catalog load failed", "error", err)
	}
	warmCancel()

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	var tcpSrv *synchub.Server
	if cfg.SyncAddr != "" {
		tcpSrv = synchub.NewServer(cfg.SyncAddr, hub, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := tcpSrv.Run(); err != nil {
				errCh <- err
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("HTTP API server listening", "addr", cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		log.Error("server error", "error", err)
	}

	log.Info("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown error", "error", err)
	}
	if tcpSrv != nil {
		if err := tcpSrv.Close(); err != nil {
			log.Warn("tcp shutdown error", "error", err)
		}
	} else {
		hub.Close()
	}

	wg.Wait()
	log.Info("servers stopped")
}
