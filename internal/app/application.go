package app

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kritik8/pixgonzDIP/internal/algorithms"
	"github.com/kritik8/pixgonzDIP/internal/algorithms/calibrate"
	"github.com/kritik8/pixgonzDIP/internal/algorithms/coloradjust"
	"github.com/kritik8/pixgonzDIP/internal/algorithms/segment"
	"github.com/kritik8/pixgonzDIP/internal/config"
	"github.com/kritik8/pixgonzDIP/internal/history"
	"github.com/kritik8/pixgonzDIP/internal/logger"
	"github.com/kritik8/pixgonzDIP/internal/pipeline"
	"github.com/kritik8/pixgonzDIP/internal/server"
)

const (
	AppName    = "PixGonz Backend"
	AppVersion = "1.0.0"

	shutdownTimeout = 10 * time.Second
)

type Application struct {
	cfg          config.Config
	logger       logger.Logger
	coordinator  *pipeline.Coordinator
	historyStore *history.Store
	httpServer   *http.Server
	ctx          context.Context
	cancel       context.CancelFunc
	shutdown     chan struct{}
}

func NewApplication() (*Application, error) {
	cfg := config.FromEnv()
	log := logger.NewConsoleLogger(cfg.LogLevel)

	log.Info("Application", "starting application", map[string]interface{}{
		"version":       AppVersion,
		"addr":          cfg.Addr,
		"log_level":     cfg.LogLevel.String(),
		"history_depth": cfg.HistoryDepth,
	})

	historyStore, err := history.NewStore(cfg.HistoryDepth, log)
	if err != nil {
		return nil, err
	}

	algorithmManager := algorithms.NewManager()
	seed := rand.New(rand.NewSource(time.Now().UnixNano()))
	algorithmManager.Register(segment.NewThresholdProcessor())
	algorithmManager.Register(segment.NewKMeansProcessor(seed))
	algorithmManager.Register(segment.NewWatershedProcessor(seed))
	algorithmManager.Register(coloradjust.NewProcessor(log))
	algorithmManager.Register(calibrate.NewProcessor())

	coordinator := pipeline.NewCoordinator(algorithmManager, historyStore, log)
	srv := server.NewServer(coordinator, log)

	ctx, cancel := context.WithCancel(context.Background())

	application := &Application{
		cfg:          cfg,
		logger:       log,
		coordinator:  coordinator,
		historyStore: historyStore,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           srv.Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		ctx:      ctx,
		cancel:   cancel,
		shutdown: make(chan struct{}),
	}

	application.setupSignalHandling()
	log.Info("Application", "initialization complete", nil)
	return application, nil
}

func (a *Application) setupSignalHandling() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		select {
		case sig := <-sigChan:
			a.logger.Info("Application", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			a.initiateShutdown()
		case <-a.ctx.Done():
			return
		}
	}()
}

// Run serves HTTP until a shutdown signal arrives, then drains in-flight
// requests.
func (a *Application) Run() error {
	errChan := make(chan error, 1)

	go func() {
		a.logger.Info("Application", "listening", map[string]interface{}{
			"addr": a.cfg.Addr,
		})
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		a.cancel()
		return err
	case <-a.shutdown:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Application", err, map[string]interface{}{
			"operation": "http_shutdown",
		})
	}

	a.historyStore.Close()
	a.cancel()

	a.logger.Info("Application", "shutdown completed", nil)
	return nil
}

func (a *Application) initiateShutdown() {
	select {
	case <-a.shutdown:
		return
	default:
		close(a.shutdown)
	}

	a.logger.Info("Application", "shutdown sequence initiated", nil)
}
