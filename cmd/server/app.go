package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	authhandler "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/auth/handler"
	authservice "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/auth/service"
	sessionstore "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/auth/store/session"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/adapters"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/codec"
	biometrichandler "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/handler"
	biometricservice "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/service"
	templatestore "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/store/template"
	httpapi "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/http"
	jwttoken "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/jwt_token"
	nomineehandler "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/handler"
	nomineeservice "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/service"
	nomineestore "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/store"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/token"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/notification"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/platform/config"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/platform/httpserver"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/platform/kafka"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/platform/logger"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/platform/metrics"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/platform/postgres"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/platform/redis"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/principal"
	principalstore "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/principal/store"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/ratelimit"
	ratelimitmw "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/ratelimit/middleware"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/ratelimit/store/bucket"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/storage"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/audit"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/audit/publishers/compliance"
	auditmemory "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/audit/store/memory"
	auditpostgres "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/audit/store/postgres"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/audit/worker"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/circuit"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/tx"
)

// app holds the long-lived resources opened by serve.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	metrics  *metrics.Metrics
	db       *sql.DB
	redis    *redis.Client
	producer *kafka.Producer
	relay    *worker.Relay
	handler  http.Handler
}

func loadConfig(c *cli.Context) (config.Config, error) {
	if path := c.String("config"); path != "" {
		if err := os.Setenv("CONFIG_FILE", path); err != nil {
			return config.Config{}, err
		}
	}
	return config.Load()
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := build(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		return err
	}
	defer a.close()

	srv := httpserver.New(cfg.Server.Addr, a.handler)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", "addr", cfg.Server.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if a.relay != nil {
		g.Go(func() error {
			if err := a.relay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("outbox relay: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		return err
	}
	log.Info("server stopped")
	return nil
}

func migrateUp(c *cli.Context) error {
	return withDatabase(c, postgres.Migrate)
}

func migrateDown(c *cli.Context) error {
	return withDatabase(c, postgres.MigrateDown)
}

func withDatabase(c *cli.Context, fn func(context.Context, *sql.DB) error) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL is required for migrations")
	}
	db, err := postgres.Open(c.Context, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(c.Context, db)
}

// build wires every store, service and handler. Without DATABASE_URL all
// state lives in memory; without REDIS_URL sessions do too; without Kafka
// brokers notifications are logged and the outbox relay is off.
func build(ctx context.Context, cfg config.Config, log *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: log, metrics: metrics.New()}
	ok := false
	defer func() {
		if !ok {
			a.close()
		}
	}()

	var (
		principals interface {
			principal.Directory
			principalstore.Creator
			biometricservice.PrincipalStore
			nomineeservice.PrincipalDirectory
		}
		templates   biometricservice.TemplateStore
		nominees    nomineeservice.NomineeStore
		auditStore  audit.Store
		runner      tx.Runner
		outboxStore *auditpostgres.Store
	)

	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.db = db
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				return nil, err
			}
		}
		principals = principalstore.NewPostgres(db)
		templates = templatestore.NewPostgres(db)
		nominees = nomineestore.NewPostgres(db)
		outboxStore = auditpostgres.New(db)
		auditStore = outboxStore
		runner = tx.NewSQLRunner(db)
	} else {
		log.Warn("DATABASE_URL not set; using in-memory stores")
		principals = principalstore.NewInMemory()
		templates = templatestore.NewInMemory()
		nominees = nomineestore.NewInMemory()
		auditStore = auditmemory.NewInMemoryStore()
		runner = tx.NewLocalRunner()
	}

	if cfg.Principal.SeedFile != "" {
		n, err := principalstore.SeedFromFile(ctx, principals, cfg.Principal.SeedFile)
		if err != nil {
			return nil, err
		}
		log.Info("principals seeded", "created", n, "file", cfg.Principal.SeedFile)
	}

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	a.redis = rc
	var sessions authservice.SessionStore = sessionstore.NewInMemory()
	if rc != nil {
		sessions = sessionstore.NewRedis(rc.Client)
	}

	producer, err := kafka.NewProducer(ctx, cfg.Kafka, log)
	if err != nil {
		return nil, err
	}
	a.producer = producer

	var dispatcher notification.Dispatcher = notification.NewLogDispatcher(log)
	if producer != nil {
		if cfg.Kafka.EnsureTopics {
			if err := producer.EnsureTopics(ctx, cfg.Kafka.Partitions, cfg.Kafka.Replication,
				cfg.Kafka.MessageTopic, cfg.Kafka.VoiceTopic, cfg.Kafka.AuditTopic); err != nil {
				return nil, err
			}
		}
		dispatcher = notification.NewKafkaDispatcher(producer,
			map[notification.Channel]string{
				notification.ChannelMessage: cfg.Kafka.MessageTopic,
				notification.ChannelVoice:   cfg.Kafka.VoiceTopic,
			},
			notification.WithKafkaLogger(log),
			notification.WithBreakerOptions(
				circuit.WithFailureThreshold(cfg.Notification.BreakerFailures),
				circuit.WithSuccessThreshold(cfg.Notification.BreakerSuccesses),
				circuit.WithCooldown(cfg.Notification.BreakerCooldown),
			),
		)
		if outboxStore != nil {
			a.relay = worker.NewRelay(outboxStore, producer, runner, cfg.Kafka.AuditTopic,
				worker.WithLogger(log),
				worker.WithMetrics(a.metrics),
				worker.WithBatchSize(cfg.Kafka.OutboxBatch),
				worker.WithPollInterval(cfg.Kafka.OutboxInterval),
			)
		}
	}
	notifier := notification.NewNotifier(dispatcher,
		notification.WithLogger(log),
		notification.WithMetrics(a.metrics),
		notification.WithTimeout(cfg.Notification.DispatchTimeout),
	)

	documents, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	auditPublisher := compliance.New(auditStore,
		compliance.WithLogger(log),
		compliance.WithMetrics(compliance.NewMetrics()),
	)

	jwtService := jwttoken.NewJWTService(cfg.Session.SigningKey, cfg.Session.Issuer, cfg.Session.Audience)
	authService := authservice.New(sessions, jwtService,
		authservice.WithLogger(log),
		authservice.WithAuditPublisher(auditPublisher),
		authservice.WithSessionTTL(cfg.Session.TTL),
	)

	templateCodec, err := codec.New(cfg.Biometric.EncryptionSecret, cfg.Biometric.KDFSalt)
	if err != nil {
		return nil, fmt.Errorf("biometric codec: %w", err)
	}
	biometricService := biometricservice.New(templates, templateCodec, principal.NewResolver(principals), principals,
		biometricservice.WithLogger(log),
		biometricservice.WithMetrics(a.metrics),
		biometricservice.WithAuditPublisher(auditPublisher),
		biometricservice.WithSessionIssuer(adapters.NewSessionAdapter(authService)),
		biometricservice.WithTxRunner(runner),
		biometricservice.WithThreshold(cfg.Biometric.MatchThreshold),
	)

	nomineeService := nomineeservice.New(nominees, principals,
		token.NewIssuer(cfg.Nominee.TokenSecret), notifier, documents,
		nomineeservice.WithLogger(log),
		nomineeservice.WithMetrics(a.metrics),
		nomineeservice.WithAuditPublisher(auditPublisher),
		nomineeservice.WithTxRunner(runner),
		nomineeservice.WithRejectedBlocksReregistration(cfg.Nominee.RejectedBlocksReregistration),
		nomineeservice.WithTokenTTL(cfg.Nominee.TokenTTL),
		nomineeservice.WithVerificationURL(cfg.Nominee.VerificationURL),
	)

	nominee := nomineehandler.New(nomineeService, log,
		nomineehandler.WithMaxUploadBytes(cfg.Storage.MaxUploadBytes))

	var middleware []func(http.Handler) http.Handler
	if cfg.RateLimit.Enabled {
		middleware = append(middleware, a.rateLimit(log))
	}

	a.handler = httpapi.NewRouter(httpapi.Config{
		Logger:         log,
		AdminToken:     cfg.Admin.Token,
		Public:         []httpapi.Registrar{biometrichandler.New(biometricService, log), nominee},
		Admin:          []httpapi.AdminRegistrar{nominee},
		Authenticated:  []httpapi.Registrar{authhandler.New(authService, log)},
		TokenValidator: jwttoken.NewJWTServiceAdapter(jwtService),
		Sessions:       authService,
		Checks:         a.checks(),
		Middleware:     middleware,
	})

	ok = true
	return a, nil
}

func openStorage(ctx context.Context, cfg config.StorageConfig) (nomineeservice.DocumentStorage, error) {
	switch cfg.Backend {
	case "s3":
		return storage.NewS3FromConfig(ctx, cfg)
	default:
		return storage.NewFileBackend(cfg.Dir)
	}
}

// rateLimit throttles the routes that accept guessable secrets. Windows are
// shared through Redis when it is configured.
func (a *app) rateLimit(log *slog.Logger) func(http.Handler) http.Handler {
	var store ratelimit.Store = bucket.NewInMemory()
	if a.redis != nil {
		store = bucket.NewRedis(a.redis.Client)
	}
	window := a.cfg.RateLimit.Window
	limiter := ratelimit.NewLimiter(store, map[ratelimit.Class]ratelimit.Limit{
		ratelimit.ClassVerification: {Requests: a.cfg.RateLimit.Verification, Window: window},
		ratelimit.ClassBiometric:    {Requests: a.cfg.RateLimit.Biometric, Window: window},
		ratelimit.ClassWrite:        {Requests: a.cfg.RateLimit.Write, Window: window},
	})
	return ratelimitmw.RateLimit(limiter, ratelimitmw.ByRoute(map[string]ratelimit.Class{
		"/nominees/verify": ratelimit.ClassVerification,
		"/face/verify":     ratelimit.ClassBiometric,
		"/face/login":      ratelimit.ClassBiometric,
		"/face/enroll":     ratelimit.ClassBiometric,
		"/nominees":        ratelimit.ClassWrite,
	}), log)
}

func (a *app) checks() map[string]httpapi.Check {
	checks := map[string]httpapi.Check{}
	if a.db != nil {
		checks["postgres"] = a.db.PingContext
	}
	if a.redis != nil {
		checks["redis"] = a.redis.Health
	}
	if a.producer != nil {
		checks["kafka"] = a.producer.Ping
	}
	return checks
}

func (a *app) close() {
	if a.producer != nil {
		a.producer.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("redis close failed", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("database close failed", "error", err)
		}
	}
}
