package server

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	domrepo "MarketPulse/internal/domain/repository"
	"MarketPulse/internal/handler/api"
	"MarketPulse/internal/repository"
	icache "MarketPulse/internal/service/cache"
	"MarketPulse/internal/services/provider"
	"MarketPulse/internal/usecase"
	pkgcache "MarketPulse/pkg/cache"
	pkgch "MarketPulse/pkg/clickhouse"
	"MarketPulse/pkg/config"
	xhttp "MarketPulse/pkg/http"
	pkgkafka "MarketPulse/pkg/kafka"
	applogger "MarketPulse/pkg/logger"
	pkgmetrics "MarketPulse/pkg/metrics"
	pkgqueue "MarketPulse/pkg/queue"

	"github.com/redis/go-redis/v9"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	collector   *usecase.ObservationCollector
	consumer    *pkgkafka.Consumer
	kh          pkgkafka.MessageHandler
	chClient    *pkgch.Client
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
	metrics     domrepo.Metrics
	scanQueue   *pkgqueue.RedisQueue
	ObsProc     *usecase.ObservationProcessor
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	collector *usecase.ObservationCollector,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		collector: collector,
		consumer:  consumer,
		kh:        kh,
		chClient:  chClient,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// SetMetrics injects the shared metrics recorder.
func (a *App) SetMetrics(m domrepo.Metrics) { a.metrics = m }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// init app logger (console info by default)
	l, _ := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})

	// Setup Echo HTTP server using pkg/http and register routes via handler
	var httpHandler xhttp.Handler
	if a.httpHandler != nil {
		httpHandler = a.httpHandler
	} else if a.cfg.Provider.BaseURL != "" {
		httpProvider := provider.NewHTTPProvider(a.cfg)
		var snaps = provider.NewCompositeProvider(httpProvider, nil)
		if a.chClient != nil {
			store := repository.NewCHSeriesStore(a.chClient, "")
			store.SetLogger(l)
			snaps = provider.NewCompositeProvider(httpProvider, store)
		}

		m := a.metrics
		if m == nil {
			m = pkgmetrics.New()
		}
		agg := usecase.NewPulseAggregator(snaps, m)
		agg.SetLogger(l)
		if a.chClient != nil {
			agg.SetStore(repository.NewCHPulseStore(a.chClient.DB(), ""))
		}
		scan := usecase.NewPulseScanUseCase(agg)

		var history *usecase.HistoryUseCase
		if a.chClient != nil {
			history = usecase.NewHistoryUseCase(repository.NewCHPulseStore(a.chClient.DB(), ""))
		}

		h := api.NewPulseHandler(l, agg, scan, history)
		h.SetCache(buildResultCache(a.cfg))
		if locker := buildLocker(a.cfg); locker != nil {
			h.SetLocker(locker)
		}

		// Background scan queue rides on the same Redis instance.
		if a.cfg.Pulse.Redis.Enabled && a.cfg.Pulse.Redis.Addr != "" {
			rdb := redis.NewClient(&redis.Options{
				Addr:     a.cfg.Pulse.Redis.Addr,
				Password: a.cfg.Pulse.Redis.Password,
				DB:       a.cfg.Pulse.Redis.DB,
			})
			a.scanQueue = pkgqueue.NewRedisQueue(l, &pkgqueue.QueueConfig{Workers: 2, RetryLimit: 2}, rdb, pkgqueue.ModeProducerConsumer)
			a.scanQueue.RegisterJob(usecase.NewScanJob(scan, l))
			if err := a.scanQueue.Start(); err != nil {
				l.Warn("scan queue start failed", applogger.Error(err))
				a.scanQueue = nil
			} else {
				h.SetQueue(a.scanQueue)
			}
		}
		httpHandler = h
	}

	a.httpServer = xhttp.NewServer(httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Start collector
	go func() {
		if err := a.collector.Start(ctx); err != nil {
			l.Error("collector error", applogger.Error(err))
		}
	}()
	l.Info("collector started", applogger.Strings("keywords", a.cfg.Feed.Keywords))

	// Start consumer if configured
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// buildResultCache picks the Redis-backed cache when enabled, in-process TTL
// cache otherwise.
func buildResultCache(cfg *config.Config) icache.BytesCache {
	if cfg.Pulse.Redis.Enabled && cfg.Pulse.Redis.Addr != "" {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Pulse.Redis.Addr,
			Password: cfg.Pulse.Redis.Password,
			DB:       cfg.Pulse.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// buildLocker creates the shared-lock cache service used for single-flight.
func buildLocker(cfg *config.Config) pkgcache.Service {
	if !cfg.Pulse.Redis.Enabled || cfg.Pulse.Redis.Addr == "" {
		return pkgcache.NewMemoryCache()
	}
	host, port := splitHostPort(cfg.Pulse.Redis.Addr)
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Pulse.Redis.Password),
		pkgcache.WithRedisDB(cfg.Pulse.Redis.DB),
	)
	if err != nil {
		return pkgcache.NewMemoryCache()
	}
	return rc
}

func splitHostPort(addr string) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 6379
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 6379
	}
	return host, port
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	// best-effort logging via stdout
	l, err := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		log.Printf("failed to create logger: %v", err)
		return err
	}
	l.Info("shutting down...")

	// Stop collector (pipeline + stream)
	if err := a.collector.Shutdown(ctx); err != nil {
		l.Warn("collector stop error", applogger.Error(err))
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	// Close infrastructure clients
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	// Stop consumer
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	// Stop background scan queue
	if a.scanQueue != nil {
		if err := a.scanQueue.Stop(shutdownCtx); err != nil {
			l.Warn("scan queue stop error", applogger.Error(err))
		}
	}

	// Close observation processor resources (publisher/storage)
	if a.ObsProc != nil {
		a.ObsProc.Close()
	}

	l.Info("shutdown complete")
	return nil
}
