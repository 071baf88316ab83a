package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/council-backend/internal/adapter/membership"
	"github.com/heartmarshall/council-backend/internal/adapter/notify"
	"github.com/heartmarshall/council-backend/internal/adapter/postgres"
	broadcastrepo "github.com/heartmarshall/council-backend/internal/adapter/postgres/broadcast"
	"github.com/heartmarshall/council-backend/internal/adapter/postgres/receipt"
	versionrepo "github.com/heartmarshall/council-backend/internal/adapter/postgres/version"
	"github.com/heartmarshall/council-backend/internal/auth"
	"github.com/heartmarshall/council-backend/internal/config"
	"github.com/heartmarshall/council-backend/internal/event"
	"github.com/heartmarshall/council-backend/internal/service/analytics"
	"github.com/heartmarshall/council-backend/internal/service/audience"
	"github.com/heartmarshall/council-backend/internal/service/broadcast"
	"github.com/heartmarshall/council-backend/internal/service/lifecycle"
	"github.com/heartmarshall/council-backend/internal/service/readtracker"
	"github.com/heartmarshall/council-backend/internal/service/version"
	"github.com/heartmarshall/council-backend/internal/transport/middleware"
	"github.com/heartmarshall/council-backend/internal/transport/rest"
)

const rateLimitCleanup = 5 * time.Minute

// Run is the application entry point. It loads configuration, connects to
// the database, and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	a := New(cfg, logger, pool)
	return a.Serve(ctx)
}

// App holds the wired components of the server.
type App struct {
	cfg *config.Config
	log *slog.Logger

	handler http.Handler
	hub     *event.Hub
	relay   *event.RedisRelay
	redis   *redis.Client
	service *broadcast.Service
	limiter *middleware.RateLimiter
}

// New wires repositories, services and transport over pool.
func New(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) *App {
	a := &App{cfg: cfg, log: logger}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Repositories.
	txm := postgres.NewTxManager(pool)
	broadcasts := broadcastrepo.New(pool)
	receipts := receipt.New(pool)
	versions := versionrepo.New(pool)

	// Membership and audience matching.
	members := membership.NewClient(logger, cfg.Membership.BaseURL, cfg.Membership.Timeout, cfg.Membership.Token)
	resolver := audience.NewResolver(logger, members)

	// Event delivery. With a relay configured every event goes through Redis
	// so all instances, this one included, deliver it the same way.
	a.hub = event.NewHub(logger, event.HubConfig{
		QueueSize:        cfg.Events.QueueSize,
		Workers:          cfg.Events.Workers,
		SubscriberBuffer: cfg.Events.SubscriberBuffer,
	}, registry)
	a.hub.SetFilter(broadcast.AudienceFilter(resolver))

	var publisher event.Publisher = a.hub
	if cfg.Redis.Enabled() {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.relay = event.NewRedisRelay(logger, a.redis, cfg.Redis.Channel, a.hub)
		publisher = a.relay
	}

	// Services.
	tracker := readtracker.NewTracker(logger, receipts, publisher)
	recorder := version.NewRecorder(logger, broadcasts, versions, txm, cfg.Broadcast.HistoryLimit)
	manager := lifecycle.NewManager(logger, broadcasts, recorder, txm)
	aggregator := analytics.NewAggregator(broadcasts)

	deps := broadcast.Deps{
		Broadcasts: broadcasts,
		Audience:   resolver,
		Reads:      tracker,
		Versions:   recorder,
		Lifecycle:  manager,
		Analytics:  aggregator,
		Events:     publisher,
	}
	if cfg.Broadcast.EmailNotifications {
		deps.Notifier = notify.NewNotifier(logger, members, notify.NewMailer(logger, cfg.SMTP))
	}

	a.service = broadcast.NewService(logger, broadcast.Config{
		FeedLimit:          cfg.Broadcast.FeedLimit,
		EmailNotifications: cfg.Broadcast.EmailNotifications,
	}, deps)

	// Transport.
	health := rest.NewHealthHandler(pool, BuildVersion())
	if a.redis != nil {
		rdb := a.redis
		health.WithComponent("redis", rest.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	rest.NewBroadcastHandler(a.service, logger).Register(mux)
	mux.Handle("GET /api/feed/stream", middleware.RequireUser(
		rest.NewStreamHandler(a.hub, cfg.CORS.AllowedOrigins, logger),
	))

	var limit middleware.Middleware
	if cfg.Server.WriteRateLimit > 0 {
		a.limiter = middleware.NewRateLimiter(rateLimitCleanup)
		limit = a.limiter.Limit(cfg.Server.WriteRateLimit)
	}
	a.handler = middleware.Chain(
		middleware.RequestID,
		middleware.CORS(cfg.CORS),
		middleware.Auth(auth.NewValidator(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		limit,
	)(mux)

	return a
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Serve runs the HTTP server and the event relay until ctx is cancelled,
// then drains in-flight work.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port)),
		Handler:      a.handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if a.relay != nil {
		g.Go(func() error {
			return a.relay.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		a.Close()
		return err
	})

	return g.Wait()
}

// Close stops background workers. It waits for pending notification emails
// and relay publishes, then closes the event hub so open streams end.
func (a *App) Close() {
	a.service.Wait()
	if a.relay != nil {
		a.relay.Wait()
	}
	a.hub.Stop()
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("close redis", slog.String("error", err.Error()))
		}
	}
}
