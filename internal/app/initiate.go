package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/shandysiswandi/passlab/internal/account/outbound/store"
	"github.com/shandysiswandi/passlab/internal/account/scheme"
	"github.com/shandysiswandi/passlab/internal/pkg/clock"
	"github.com/shandysiswandi/passlab/internal/pkg/config"
	"github.com/shandysiswandi/passlab/internal/pkg/hash"
	"github.com/shandysiswandi/passlab/internal/pkg/instrument"
	"github.com/shandysiswandi/passlab/internal/pkg/router"
	"github.com/shandysiswandi/passlab/internal/pkg/uid"
	"github.com/shandysiswandi/passlab/internal/pkg/validator"
)

func (a *App) initConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "path", path, "error", err)
		os.Exit(1)
	}

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(a.ctx, &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.salt = hash.NewCryptoSalt()

	v, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = v
}

func (a *App) initSchemes() {
	reg, err := newSchemeRegistry(a.config, a.salt)
	if err != nil {
		slog.Error("failed to init credential schemes", "default", a.config.GetString("account.default_scheme"), "error", err)
		os.Exit(1)
	}
	a.schemes = reg
}

func newSchemeRegistry(cfg config.Config, salt hash.SaltSource) (*scheme.Registry, error) {
	defaultName := strings.TrimSpace(cfg.GetString("account.default_scheme"))
	if defaultName == "" {
		defaultName = scheme.NameSaltedHMAC
	}

	return scheme.NewRegistry(defaultName,
		scheme.NewPlaintext(),
		scheme.NewSHA256(),
		scheme.NewHMACSecret(cfg.GetString("hash.hmac.secret")),
		scheme.NewSaltedHMAC(salt),
		scheme.NewBcrypt(cfg.GetInt("hash.bcrypt.cost"), cfg.GetString("hash.bcrypt.pepper")),
		scheme.NewArgon2id(cfg.GetString("hash.argon2id.pepper")),
	)
}

func (a *App) initStore() {
	driver := strings.TrimSpace(a.config.GetString("store.driver"))

	s, err := a.openStore(driver)
	if err != nil {
		slog.Error("failed to init user record store", "driver", driver, "error", err)
		os.Exit(1)
	}

	slog.Info("user record store ready", "driver", driver)
	a.store = s
}

func (a *App) retryPolicy() store.RetryPolicy {
	return store.RetryPolicy{
		Attempts: a.config.GetUint64("store.retry.attempts"),
		Base:     a.config.GetMillisecond("store.retry.base_ms"),
		Cap:      a.config.GetMillisecond("store.retry.cap_ms"),
	}
}

func (a *App) openStore(driver string) (store.Store, error) {
	switch driver {
	case "", store.DriverMemory:
		return store.NewMemory(), nil

	case store.DriverBolt:
		return store.OpenBolt(a.config.GetString("store.bolt.path"), a.ins)

	case store.DriverRedis:
		opt, err := redis.ParseURL(a.config.GetString("store.redis.url"))
		if err != nil {
			return nil, err
		}
		rdb := redis.NewClient(opt)

		pingCtx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, err
		}

		return store.NewRedis(rdb, a.config.GetString("store.redis.prefix"), a.retryPolicy(), a.ins), nil

	case store.DriverPostgres:
		poolCfg, err := pgxpool.ParseConfig(a.config.GetString("store.postgres.url"))
		if err != nil {
			return nil, err
		}
		if v := a.config.GetInt32("store.postgres.max_conns"); v > 0 {
			poolCfg.MaxConns = v
		}
		if v := a.config.GetSecond("store.postgres.max_conn_idle_seconds"); v > 0 {
			poolCfg.MaxConnIdleTime = v
		}

		pool, err := pgxpool.NewWithConfig(a.ctx, poolCfg)
		if err != nil {
			return nil, err
		}

		pingCtx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			return nil, err
		}

		return store.NewPostgres(a.ctx, pool, a.retryPolicy(), a.ins)

	default:
		return nil, errUnknownDriver
	}
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
	})

	a.router.GET("/health", func(*router.Request) (any, error) {
		return map[string]string{"status": "ok"}, nil
	})

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", router.HeaderCorrelationID, router.HeaderRequestID},
		ExposedHeaders: []string{router.HeaderCorrelationID},
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []closer{
		{
			name: "Store",
			fn: func(context.Context) error {
				return a.store.Close()
			},
		},
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
