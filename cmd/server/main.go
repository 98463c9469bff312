package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"goodtime/internal/achievement"
	"goodtime/internal/friendship"
	"goodtime/internal/game"
	"goodtime/internal/league"
	"goodtime/internal/platform/config"
	"goodtime/internal/platform/httpserver"
	"goodtime/internal/platform/logger"
	"goodtime/internal/platform/metrics"
	"goodtime/internal/settings"
	"goodtime/internal/task"
	httptransport "goodtime/internal/transport/http"
	"goodtime/internal/user"
)

// main wires the dependency graph and runs the HTTP server next to the
// season worker. Business rules live in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	m := metrics.New()

	userStore := user.NewInMemoryStore()
	taskStore := task.NewInMemoryStore()
	friendStore := friendship.NewInMemoryStore()
	settingsSvc := settings.NewService(settings.NewInMemoryStore())

	users := user.NewService(userStore, user.WithLogger(log), user.WithMetrics(m))
	tasks := task.NewService(taskStore, task.WithLogger(log), task.WithMetrics(m))
	boards := league.NewService(userStore, settingsSvc, league.NewInMemoryHallOfFame(),
		league.WithLogger(log), league.WithMetrics(m))
	friendships := friendship.NewService(friendStore, userStore,
		friendship.WithLogger(log), friendship.WithMetrics(m))
	games := game.NewService(userStore, tasks, settingsSvc, achievement.NewCatalog(),
		game.WithLogger(log), game.WithMetrics(m))

	router := httptransport.NewRouter(httptransport.Deps{
		Users:       users,
		Tasks:       tasks,
		Game:        games,
		League:      boards,
		Friendships: friendships,
		Metrics:     m,
		Logger:      log,
	})
	srv := httpserver.New(cfg.Addr, router)
	worker := league.NewSeasonWorker(boards, settingsSvc, cfg.SeasonCheckTick,
		league.WithWorkerLogger(log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return worker.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
