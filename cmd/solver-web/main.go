package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	httpadapter "svw.info/gridsolver/internal/adapters/http"
	"svw.info/gridsolver/internal/generator"
	"svw.info/gridsolver/internal/hint"
	"svw.info/gridsolver/internal/infrastructure/storage"
	"svw.info/gridsolver/internal/metrics"
	"svw.info/gridsolver/internal/ports"
	"svw.info/gridsolver/internal/solver"
	"svw.info/gridsolver/internal/usecase"
	"svw.info/gridsolver/internal/validator"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", time.Since(start).Round(time.Millisecond),
		)
	})
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	persist := flag.String("persist-path", "./data", "save directory for the fs backend")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	storageKind := flag.String("storage", "fs", "puzzle storage backend: fs|redis")
	redisURL := flag.String("redis-url", "redis://localhost:6379/0", "redis URL for the redis backend")
	solveTimeout := flag.Duration("solve-timeout", 10*time.Second, "per-request solve deadline")
	maxNodes := flag.Int("max-nodes", 0, "branch budget per solve, 0 = unlimited")
	flag.Parse()

	lvl := slog.LevelInfo
	switch strings.ToLower(*levelStr) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))

	s := solver.NewConstraintSolver()
	s.MaxNodes = *maxNodes

	var st ports.Storage
	switch strings.ToLower(strings.TrimSpace(*storageKind)) {
	case "redis":
		rs, err := storage.NewRedis(context.Background(), *redisURL)
		if err != nil {
			logger.Error("redis storage init", "err", err)
			os.Exit(1)
		}
		defer rs.Close()
		st = rs
	default:
		if err := os.MkdirAll(*persist, 0o755); err != nil {
			logger.Error("create persist dir", "err", err)
			os.Exit(1)
		}
		st = storage.NewFS(*persist)
	}

	// Wire providers → use cases → HTTP adapter
	uc := usecase.NewService(s, generator.NewUniqueGenerator(s), validator.New(), hint.NewSingles(), st)
	h := httpadapter.New(uc, metrics.New(), *solveTimeout)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           requestLogger(logger, h.Router()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", *addr, "storage", *storageKind)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
}
