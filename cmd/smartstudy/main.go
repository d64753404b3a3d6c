package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"smartstudy/internal/app"
	"smartstudy/internal/httputil"
)

const shutdownTimeout = 10 * time.Second

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer deps.Close()

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("smartstudy listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		deps.Log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func newRouter(deps app.Deps) chi.Router {
	// Generation can run up to LLMTimeout; leave room for extraction and rendering.
	r := httputil.NewRouter(deps.Log, deps.Config.LLMTimeout+30*time.Second)

	r.Get("/", pageHandler(deps))
	r.Post("/", pageSubmitHandler(deps))
	r.Post("/api/extract", extractHandler(deps))
	r.Post("/api/submit", submitHandler(deps))
	r.Get("/api/tasks", tasksHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps))

	return r
}
