package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/agroth3/nfl-playoff-picks/config"
	"github.com/agroth3/nfl-playoff-picks/controller"
	"github.com/agroth3/nfl-playoff-picks/db"
	"github.com/agroth3/nfl-playoff-picks/limiter"
	"github.com/agroth3/nfl-playoff-picks/logging"
	"github.com/agroth3/nfl-playoff-picks/web"
	"github.com/itbasis/go-clock"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer logger.Sync()

	clock := clock.New()
	db, err := db.New(context.Background(), cfg.ConnString, clock)
	if err != nil {
		logger.Fatal("cannot connect to DB", zap.Error(err))
	}

	// Join attempts are only limited when redis is configured.
	var joinLimiter limiter.Limiter = limiter.Noop{}
	if cfg.RedisURL != "" {
		rdb, err := limiter.Connect(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Fatal("cannot connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		joinLimiter = limiter.NewRedis(rdb, "join", cfg.JoinAttempts, time.Hour)
	} else {
		logger.Warn("REDIS_URL is not set, league join attempts are not rate limited")
	}

	ctrl, err := controller.New(db, joinLimiter, logger)
	if err != nil {
		logger.Fatal("error creating a new controller", zap.Error(err))
	}

	sessions := web.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL, cfg.SecureCookies(), clock)
	server, err := web.NewServer(cfg.Port, ctrl, sessions, logger)
	if err != nil {
		logger.Fatal("error creating new web server", zap.Error(err))
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			logger.Error("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	logger.Info("starting server", zap.Int("port", cfg.Port), zap.String("environment", cfg.Environment))

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	logger.Info("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
