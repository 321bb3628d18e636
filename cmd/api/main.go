package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	"github.com/BruksfildServices01/expert-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/expert-scheduler/internal/db"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/handlers"
	"github.com/BruksfildServices01/expert-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/expert-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/expert-scheduler/internal/logger"
	"github.com/BruksfildServices01/expert-scheduler/internal/middleware"
	"github.com/BruksfildServices01/expert-scheduler/internal/routes"
	"github.com/BruksfildServices01/expert-scheduler/internal/telemetry"
	"github.com/BruksfildServices01/expert-scheduler/internal/validators"
)

const serviceName = "expert-scheduler"

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg)
	if err != nil {
		log.Fatal("failed to set up tracing", zap.Error(err))
	}

	var resolver validators.Resolver
	if cfg.EmailDNSCheck {
		resolver = net.DefaultResolver
	}
	if err := validators.Register(resolver); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}

	deps := routes.Deps{
		Config:    cfg,
		Readiness: map[string]handlers.Pinger{},
	}

	// --------------------------------------------------
	// Storage
	// --------------------------------------------------
	var auditStore audit.Store
	if cfg.DBUrl == dbpkg.MemoryDSN {
		log.Warn("running on the in-memory repository, data is not persisted")
		mem := infraRepo.NewMemoryRepository()
		deps.Repo = mem
		deps.Users = mem
		memLogs := audit.NewMemoryStore()
		auditStore = memLogs
		deps.AuditLogs = memLogs
	} else {
		db, err := dbpkg.NewDB(cfg, log)
		if err != nil {
			log.Fatal("failed to connect database", zap.Error(err))
		}
		deps.Repo = infraRepo.NewAvailabilityGormRepository(db)
		deps.Users = infraRepo.NewUserGormRepository(db)
		deps.Readiness["postgres"] = dbpkg.Pinger{DB: db}
		dbLogs := audit.New(db)
		auditStore = dbLogs
		deps.AuditLogs = dbLogs
	}

	// --------------------------------------------------
	// Month cache
	// --------------------------------------------------
	var monthCache domain.MonthCache = cache.NopMonthCache{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		redisCache := cache.NewRedisMonthCache(rdb, 0, log)
		monthCache = redisCache
		deps.Readiness["redis"] = redisCache
	}
	deps.Cache = monthCache

	dispatcher := audit.NewDispatcher(auditStore, log, 256)
	deps.Auditor = dispatcher

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Fatal("invalid TRUSTED_PROXIES", zap.Error(err))
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, serviceName),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	dispatcher.Close()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown failed", zap.Error(err))
	}
}
