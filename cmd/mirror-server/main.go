package main

import (
	"errors"
	"flag"
	"net/http"
	"time"

	"practicehub/internal/cms"
	"practicehub/internal/logger"
)

func main() {
	addr := flag.String("addr", ":9000", "listen address")
	dataPath := flag.String("file", "data/practices.yaml", "snapshot file to serve")
	mode := flag.String("log", "dev", "log mode (dev|prod)")
	flag.Parse()

	log, err := logger.New(*mode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	router := newMirrorRouter(cms.NewFileSource(*dataPath), log)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info("mirror-server listening", "addr", *addr, "file", *dataPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("mirror-server stopped", "error", err)
	}
}
