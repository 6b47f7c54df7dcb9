package bootstrap

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jobtrackr/auth-service/internal/application/auth"
	"github.com/jobtrackr/auth-service/internal/application/credential"
	"github.com/jobtrackr/auth-service/internal/audit"
	"github.com/jobtrackr/auth-service/internal/config"
	"github.com/jobtrackr/auth-service/internal/infrastructure/db/postgres"
	"github.com/jobtrackr/auth-service/internal/infrastructure/memory"
	"github.com/jobtrackr/auth-service/internal/infrastructure/redis"
	"github.com/jobtrackr/auth-service/internal/infrastructure/security"
	"github.com/jobtrackr/auth-service/internal/logger"
	"github.com/jobtrackr/auth-service/internal/transport/http/handlers"
	"github.com/jobtrackr/auth-service/internal/transport/http/middleware"
	"github.com/jobtrackr/auth-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	// NewDB opens the identity database. Unused (and may be nil) when the
	// config has no DBAddr, which selects the in-memory store in dev.
	NewDB func(addr string) (*sql.DB, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewRouter func(router.Deps) http.Handler
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()

	// 1) identity store
	var store auth.IdentityStore
	healthH := handlers.NewHealthHandler(logger.Logger)

	if cfg.DBAddr == "" {
		logger.Logger.Warn().Msg("no DB_ADDR configured; using in-memory identity store")
		store = memory.NewIdentityRepo()
	} else {
		db, err := deps.NewDB(cfg.DBAddr)
		if err != nil {
			return nil, nil, err
		}
		cleanupFns = append(cleanupFns, func() { _ = db.Close() })

		repo := postgres.NewIdentityRepo(db)
		store = repo
		healthH.Attach("postgres", repo)
	}

	// 2) redis (best-effort; only the rate limiter depends on it)
	var limiter *redis.Limiter
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; rate limiting disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			if rc, ok := c.(*redis.Client); ok {
				limiter = redis.NewLimiter(rc)
				healthH.Attach("redis", rc)
			}
		}
	}

	// 3) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	codec, err := security.NewTokenCodec(cfg.TokenSecret, cfg.TokenTTL, logger.Logger)
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 4) application services
	auditLog := audit.New(logger.Logger)
	vault := credential.NewVault(store, auditLog)
	svc := auth.NewService(store, hasher, codec, vault, auditLog)

	// 5) handlers + middleware
	authH := handlers.NewAuthHandler(svc, logger.Logger)
	authMW := middleware.NewAuthenticator(codec, store, logger.Logger).Middleware

	rl := func(scope string, limit int) func(http.Handler) http.Handler {
		if limiter == nil {
			return nil
		}
		return middleware.RateLimit(limiter, scope, limit, cfg.AuthRateWindow, logger.Logger)
	}

	// 6) router
	mux := deps.NewRouter(router.Deps{
		Auth:   authH,
		Health: healthH,
		AuthMW: authMW,

		RegisterLimit: rl("register", cfg.AuthRateLimit),
		LoginLimit:    rl("login", cfg.AuthRateLimit),
	})

	// 7) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return srv, func() { runCleanup(cleanupFns) }, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string) (*sql.DB, error) {
			db, err := sql.Open("pgx", addr)
			if err != nil {
				return nil, err
			}
			db.SetMaxOpenConns(10)
			db.SetConnMaxIdleTime(5 * time.Minute)
			return db, nil
		},
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewRouter: router.New,
	}
}

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
