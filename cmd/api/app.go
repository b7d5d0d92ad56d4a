package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-goals/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-goals/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-goals/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-goals/internal/config"
	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
	"github.com/comitanigiacomo/kanso-goals/internal/core/services"
	"github.com/comitanigiacomo/kanso-goals/internal/core/workers"
)

func connectDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// app is the wired HTTP surface plus the worker retrying failed report purges.
type app struct {
	router      *gin.Engine
	invalidator *workers.ReportInvalidator
}

// buildApp wires repositories, services and handlers. rdb may be nil, in
// which case reports and habit lists are served uncached and requests are
// not rate limited.
func buildApp(cfg *config.Config, db *sqlx.DB, rdb *redis.Client, log *zap.Logger) *app {
	effortRepo := repository.NewPostgresEffortRepository(db)
	var habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	userRepo := repository.NewPostgresUserRepository(db.DB)
	goalRepo := repository.NewPostgresGoalRepository(db)
	objectiveRepo := repository.NewPostgresObjectiveRepository(db)
	supportRepo := repository.NewPostgresSupportRepository(db)

	if rdb != nil {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, rdb, log)
	}

	var analytics services.Analytics = services.NewAnalyticsService(habitRepo, effortRepo, goalRepo, objectiveRepo)
	var invalidator *workers.ReportInvalidator
	var reportInvalidator services.ReportInvalidator
	if rdb != nil {
		cached := cache.NewCachedAnalytics(analytics, rdb, cfg.ReportCacheTTL, log)
		analytics = cached
		invalidator = workers.NewReportInvalidator(cached, log)
		reportInvalidator = invalidator
	}

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL, userRepo)
	authService := services.NewAuthService(userRepo)
	habitService := services.NewHabitService(habitRepo, reportInvalidator)
	effortService := services.NewEffortService(effortRepo, habitRepo, reportInvalidator)
	goalService := services.NewGoalService(goalRepo, objectiveRepo, reportInvalidator)
	supportService := services.NewSupportService(supportRepo)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(authService, tokenService),
		HabitHandler:     adapterHTTP.NewHabitHandler(habitService, nil),
		EffortHandler:    adapterHTTP.NewEffortHandler(effortService, nil),
		GoalHandler:      adapterHTTP.NewGoalHandler(goalService, nil),
		SupportHandler:   adapterHTTP.NewSupportHandler(supportService, userRepo, nil),
		AnalyticsHandler: adapterHTTP.NewAnalyticsHandler(analytics, nil),
		TokenService:     tokenService,
		DB:               db,
		Redis:            rdb,
		Logger:           log,
		RateLimit:        cfg.RateLimit,
		RateLimitWindow:  cfg.RateLimitWindow,
		StartTime:        time.Now(),
	})

	return &app{router: router, invalidator: invalidator}
}

// start launches the purge retry worker, if any.
func (a *app) start(ctx context.Context) {
	if a.invalidator != nil {
		a.invalidator.Start(ctx)
	}
}

func (a *app) wait() {
	if a.invalidator != nil {
		a.invalidator.Wait()
	}
}
