package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MJE43/wheel-sim-go/internal/api"
	"github.com/MJE43/wheel-sim-go/internal/store"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", "wheelsim.db", "path to the sqlite configuration store")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.LUTC)

	db, err := store.NewSQLiteDB(*dbPath)
	if err != nil {
		log.Fatalf("store_open_failed path=%s error=%v", *dbPath, err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("store_migrate_failed path=%s error=%v", *dbPath, err)
	}
	log.Printf("store_ready path=%s", *dbPath)

	server := api.NewServer(db)
	httpServer := &http.Server{
		Addr:    *addr,
		Handler: server.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server_listening addr=%s engine_version=%s", *addr, api.EngineVersion)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Printf("server_shutdown signal=%s", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Fatalf("server_shutdown_failed error=%v", err)
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server_failed error=%v", err)
		}
	}
}
