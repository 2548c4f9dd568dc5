package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/emotion-detector/internal/config"
	"github.com/zhouzirui/emotion-detector/internal/handler"
	"github.com/zhouzirui/emotion-detector/internal/handler/site"
	emotionservice "github.com/zhouzirui/emotion-detector/internal/service/emotion"
	"github.com/zhouzirui/emotion-detector/pkg/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Warn("failed to load .env file, continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.Server.LogLevel); err != nil {
		logrus.Warnf("invalid LOG_LEVEL %q, keeping %s", cfg.Server.LogLevel, logrus.GetLevel())
	} else {
		logrus.SetLevel(level)
	}

	m := metrics.New()

	classifier, err := emotionservice.NewClassifier(ctx, cfg.Detector, cfg.AI)
	if err != nil {
		logrus.Fatalf("failed to initialize classifier: %v", err)
	}
	logrus.Infof("emotion classifier %s initialized", classifier.Name())

	detector := emotionservice.NewService(classifier, emotionservice.Config{
		SimulationEnabled: cfg.Detector.SimulationEnabled,
	}, m)
	if detector.SimulationEnabled() {
		logrus.Warn("simulation mode enabled: classifier failures return keyword-based canned scores")
	}

	siteHandler, err := site.New(site.Options{Simulation: cfg.Detector.SimulationEnabled})
	if err != nil {
		logrus.Fatalf("failed to render index page: %v", err)
	}

	router := handler.NewRouter(detector, siteHandler, m, cfg.Server.Debug)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logrus.WithField("debug", serverCfg.Debug).Infof("emotion detector listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
