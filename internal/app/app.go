// Package app wires configuration into a running registry: storage backend,
// the four registries plus funds, the audit relay and the HTTP surface.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	assethandler "landregistry/internal/asset/handler"
	assetmetrics "landregistry/internal/asset/metrics"
	assetservice "landregistry/internal/asset/service"
	assetstore "landregistry/internal/asset/store"
	disputehandler "landregistry/internal/dispute/handler"
	disputemetrics "landregistry/internal/dispute/metrics"
	disputeservice "landregistry/internal/dispute/service"
	disputestore "landregistry/internal/dispute/store"
	"landregistry/internal/funds"
	httpapi "landregistry/internal/http"
	"landregistry/internal/identity/cache"
	identityhandler "landregistry/internal/identity/handler"
	identitymetrics "landregistry/internal/identity/metrics"
	identityservice "landregistry/internal/identity/service"
	identitystore "landregistry/internal/identity/store"
	jwttoken "landregistry/internal/jwt_token"
	"landregistry/internal/ledger"
	"landregistry/internal/platform/config"
	"landregistry/internal/platform/httpserver"
	"landregistry/internal/platform/kafka"
	platformmetrics "landregistry/internal/platform/metrics"
	"landregistry/internal/platform/postgres"
	"landregistry/internal/platform/redis"
	"landregistry/internal/ratelimit"
	transferhandler "landregistry/internal/transfer/handler"
	transfermetrics "landregistry/internal/transfer/metrics"
	transferservice "landregistry/internal/transfer/service"
	transferstore "landregistry/internal/transfer/store"
	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/platform/audit"
	auditmemory "landregistry/pkg/platform/audit/store/memory"
	auditpostgres "landregistry/pkg/platform/audit/store/postgres"
	"landregistry/pkg/platform/audit/worker"
	"landregistry/pkg/requestcontext"
)

// defaultEngine is the transfer engine principal when none is configured. It
// is stable across restarts so a persisted allow-list keeps matching.
var defaultEngine = id.AccountID(uuid.NewSHA1(uuid.NameSpaceURL, []byte("landregistry:transfer-engine")))

type App struct {
	Config    config.Config
	Logger    *slog.Logger
	Metrics   *prometheus.Registry
	Identity  *identityservice.Service
	Assets    *assetservice.Service
	Transfers *transferservice.Service
	Disputes  *disputeservice.Service
	Funds     *funds.Service
	Tokens    *jwttoken.JWTService
	Engine    id.AccountID
	Handler   http.Handler

	db       *sql.DB
	redis    *redis.Client
	producer *kafka.Producer
	relay    *worker.Relay
}

type backend struct {
	ledger    ledger.Ledger
	seq       ledger.Sequencer
	audit     audit.Store
	outbox    worker.Outbox
	identity  identityservice.Store
	assets    assetservice.Store
	transfers transferservice.Store
	disputes  disputeservice.Store
	balances  funds.Store
}

func memoryBackend(cfg config.Config) backend {
	var (
		l         = ledger.NewMemory(ledger.WithTimeout(cfg.Registry.TxTimeout))
		events    = auditmemory.NewInMemoryStore()
		identity  = identitystore.NewInMemoryStore()
		assets    = assetstore.NewInMemoryStore()
		transfers = transferstore.NewInMemoryStore()
		disputes  = disputestore.NewInMemoryStore()
		balances  = funds.NewInMemoryStore()
	)
	l.Register(events, identity, assets, transfers, disputes, balances)
	return backend{
		ledger:    l,
		seq:       ledger.NewMemorySequencer(),
		audit:     events,
		identity:  identity,
		assets:    assets,
		transfers: transfers,
		disputes:  disputes,
		balances:  balances,
	}
}

func postgresBackend(cfg config.Config, db *sql.DB) backend {
	outbox := auditpostgres.New(db)
	return backend{
		ledger:    ledger.NewPostgres(db, ledger.WithTimeout(cfg.Registry.TxTimeout)),
		seq:       ledger.NewPostgresSequencer(db),
		audit:     outbox,
		outbox:    outbox,
		identity:  identitystore.NewPostgres(db),
		assets:    assetstore.NewPostgres(db),
		transfers: transferstore.NewPostgres(db),
		disputes:  disputestore.NewPostgres(db),
		balances:  funds.NewPostgres(db),
	}
}

// Build connects the configured infrastructure and constructs every service.
// An empty DATABASE_URL selects the in-memory backend.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger, Metrics: prometheus.NewRegistry(), Engine: defaultEngine}
	a.Metrics.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if cfg.Registry.EngineAccountID != "" {
		engine, err := id.ParseAccountID(cfg.Registry.EngineAccountID)
		if err != nil {
			return nil, fmt.Errorf("engine account id: %w", err)
		}
		a.Engine = engine
	}

	var b backend
	if cfg.Database.URL == "" {
		logger.InfoContext(ctx, "using in-memory storage")
		b = memoryBackend(cfg)
	} else {
		db, err := postgres.Open(ctx, postgres.Config{
			URL:             cfg.Database.URL,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		a.db = db
		b = postgresBackend(cfg, db)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.redis = redisClient

	if cfg.RelayEnabled() && b.outbox != nil {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.producer = producer
		a.relay = worker.NewRelay(b.outbox, producer, logger,
			worker.WithInterval(cfg.Kafka.RelayInterval))
	}

	a.buildServices(b)
	a.Handler = a.buildRouter()
	return a, nil
}

func (a *App) buildServices(b backend) {
	publisher := audit.NewPublisher(b.audit,
		audit.WithLogger(a.Logger),
		audit.WithHashKey([]byte(a.Config.Auth.AuditHashKey)),
	)

	identityOpts := []identityservice.Option{
		identityservice.WithLogger(a.Logger),
		identityservice.WithAuditPublisher(publisher),
		identityservice.WithMetrics(identitymetrics.New(a.Metrics)),
	}
	if a.redis != nil {
		identityOpts = append(identityOpts, identityservice.WithStatusCache(
			cache.NewRedisStatusCache(a.redis.Client, cache.WithTTL(a.Config.Redis.StatusCacheTTL))))
	}
	a.Identity = identityservice.New(b.identity, b.ledger, b.seq, identityOpts...)
	guard := a.Identity.Guard()

	a.Funds = funds.New(b.balances, b.ledger, guard,
		funds.WithLogger(a.Logger),
		funds.WithAuditPublisher(publisher),
	)
	a.Assets = assetservice.New(b.assets, b.ledger, b.seq, guard,
		assetservice.WithLogger(a.Logger),
		assetservice.WithAuditPublisher(publisher),
		assetservice.WithMetrics(assetmetrics.New(a.Metrics)),
		assetservice.WithMaxDocuments(a.Config.Registry.MaxLandDocuments),
	)
	a.Transfers = transferservice.New(b.transfers, b.ledger, b.seq, guard, a.Assets, a.Funds, a.Engine,
		transferservice.WithLogger(a.Logger),
		transferservice.WithAuditPublisher(publisher),
		transferservice.WithMetrics(transfermetrics.New(a.Metrics)),
	)
	a.Disputes = disputeservice.New(b.disputes, b.ledger, b.seq, guard, a.Assets,
		disputeservice.WithLogger(a.Logger),
		disputeservice.WithAuditPublisher(publisher),
		disputeservice.WithMetrics(disputemetrics.New(a.Metrics)),
	)
	a.Tokens = jwttoken.NewJWTService(a.Config.Auth.JWTSigningKey, a.Config.Auth.Issuer, a.Config.Auth.Audience)
}

func (a *App) buildRouter() http.Handler {
	var health []httpapi.HealthCheck
	if a.db != nil {
		health = append(health, a.db.PingContext)
	}
	if a.redis != nil {
		health = append(health, a.redis.Health)
	}
	return httpapi.NewRouter(httpapi.Options{
		Logger:    a.Logger,
		Validator: jwttoken.NewJWTServiceAdapter(a.Tokens),
		Metrics:   platformmetrics.New(a.Metrics),
		Gatherer:  a.Metrics,
		Health:    health,
		RateLimit: a.rateLimit(),
	},
		identityhandler.New(a.Identity, a.Logger),
		assethandler.New(a.Assets, a.Logger),
		transferhandler.New(a.Transfers, a.Logger),
		disputehandler.New(a.Disputes, a.Logger),
		funds.NewHandler(a.Funds, a.Logger),
	)
}

// rateLimit shares counters through Redis when it is configured and keeps
// limiting in-process while Redis is unreachable.
func (a *App) rateLimit() func(http.Handler) http.Handler {
	cfg := a.Config.RateLimit
	if cfg.Requests <= 0 {
		return nil
	}
	m := ratelimit.NewMetrics(a.Metrics)
	var store ratelimit.Store = ratelimit.NewMemoryStore()
	if a.redis != nil {
		store = ratelimit.NewFailoverStore(ratelimit.NewRedisStore(a.redis.Client), store, a.Logger,
			ratelimit.WithStateObserver(m.SetDegraded))
	}
	return ratelimit.New(store, cfg.Requests, cfg.Window, a.Logger, ratelimit.WithMetrics(m)).Middleware
}

// Bootstrap installs owner and puts the transfer engine on the asset
// allow-list. Running it against an already bootstrapped registry with the
// same owner only re-asserts the allow-list entry.
func (a *App) Bootstrap(ctx context.Context, owner id.AccountID) error {
	err := a.Identity.Bootstrap(ctx, owner)
	if err != nil && !dErrors.HasCode(err, dErrors.CodeInvalidState) {
		return err
	}
	if err := a.Assets.AuthorizeContract(requestcontext.WithCaller(ctx, owner), a.Engine); err != nil {
		return fmt.Errorf("authorize transfer engine: %w", err)
	}
	a.Logger.InfoContext(ctx, "registry bootstrapped",
		"owner_account_id", owner.String(),
		"engine_account_id", a.Engine.String(),
	)
	return nil
}

// Migrate applies the Postgres schema. It is an error on the memory backend.
func (a *App) Migrate(ctx context.Context) error {
	if a.db == nil {
		return errors.New("migrate requires DATABASE_URL")
	}
	return postgres.Migrate(ctx, a.db)
}

// Run serves HTTP and, when configured, relays the audit outbox until ctx is
// cancelled or either fails.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	srv := httpserver.New(a.Config.Server, a.Handler)
	g.Go(func() error {
		a.Logger.InfoContext(ctx, "starting landregistry", "addr", a.Config.Server.Addr)
		return httpserver.Run(ctx, srv, a.Config.Server.ShutdownTimeout)
	})
	if a.relay != nil {
		g.Go(func() error {
			if err := a.producer.EnsureTopic(ctx, a.Config.Kafka.Partitions, a.Config.Kafka.Replication); err != nil {
				return err
			}
			err := a.relay.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}
	return g.Wait()
}

func (a *App) Close() {
	if a.producer != nil {
		a.producer.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}
