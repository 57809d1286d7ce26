package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"industrybrief/internal/httpapi"
	"industrybrief/internal/industry"
	"industrybrief/internal/render"
	"industrybrief/internal/session"
	"industrybrief/internal/tracing"
	"industrybrief/internal/wikipedia"
)

func main() {
	dbFlag := flag.String("db", "", "path to SQLite session database (overrides DB_PATH env var)")
	noRender := flag.Bool("no-render", false, "disable PDF rendering even when Chrome is installed")
	flag.Parse()

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, shutdownTracing, err := tracing.NewProvider(ctx, tracing.Config{
		Endpoint:    os.Getenv("TRACING_ENDPOINT"),
		APIKey:      os.Getenv("TRACING_API_KEY"),
		ServiceName: "industrybrief",
		Insecure:    os.Getenv("TRACING_INSECURE") == "true",
	})
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	dbPath := *dbFlag
	if dbPath == "" {
		dbPath = os.Getenv("DB_PATH")
	}
	if dbPath == "" {
		dbPath = "./data/sessions.db"
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		log.Fatalf("failed to create data directory for %s: %v", dbPath, err)
	}
	store, err := session.NewStore(dbPath)
	if err != nil {
		log.Fatalf("failed to initialize session store (%s): %v", dbPath, err)
	}
	defer store.Close()
	log.Printf("using session store at %s", dbPath)

	retriever := wikipedia.NewClient(wikipedia.Config{
		BaseURL:   os.Getenv("WIKIPEDIA_API_URL"),
		Language:  os.Getenv("WIKIPEDIA_LANGUAGE"),
		UserAgent: os.Getenv("WIKIPEDIA_USER_AGENT"),
	})
	validator := industry.NewValidator(retriever, industry.ValidatorConfig{}, tp)

	var renderer httpapi.Renderer
	if !*noRender {
		renderer = render.NewChromiumPDFRenderer()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewServer(validator, store, renderer, tp),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("industrybrief listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Printf("tracing shutdown: %v", err)
	}
}
