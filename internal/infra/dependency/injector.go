// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/auth"
	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/application/usecase/report"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case rate limiting is kept in process.
// clock may be nil, in which case the system clock is used.
func NewInjector(cfg *config.Config, gormDB *gorm.DB, redisClient *redis.Client, clock adapter.Clock) *Injector {
	if clock == nil {
		clock = adapters.NewSystemClock()
	}

	// Create repositories
	userRepo := persistence.NewUserRepository(gormDB)
	tokenRepo := persistence.NewTokenRepository(gormDB)
	expenseRepo := persistence.NewExpenseRepository(gormDB)
	reportRepo := persistence.NewReportRepository(gormDB)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(cfg.Security.BcryptCost)
	tokenService := adapters.NewTokenService(adapters.TokenConfig{
		Secret:        cfg.JWT.Secret,
		AccessExpiry:  cfg.JWT.AccessTokenExpiry,
		RefreshExpiry: cfg.JWT.RefreshTokenExpiry,
	}, tokenRepo, clock)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, clock)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	getCurrentUserUseCase := auth.NewGetCurrentUserUseCase(userRepo)

	// Create expense use cases
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)
	getExpenseUseCase := expense.NewGetExpenseUseCase(expenseRepo)
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, clock)
	updateExpenseUseCase := expense.NewUpdateExpenseUseCase(expenseRepo, clock)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo)

	// Create report use cases
	categoryReportUseCase := report.NewGetCategoryReportUseCase(reportRepo)
	monthlyReportUseCase := report.NewGetMonthlyReportUseCase(reportRepo, clock)
	trendReportUseCase := report.NewGetTrendReportUseCase(reportRepo, clock)
	summaryReportUseCase := report.NewGetSummaryReportUseCase(reportRepo, clock)

	// Create controllers
	dbHealthChecker := func(ctx context.Context) bool {
		sqlDB, err := gormDB.DB()
		if err != nil {
			return false
		}
		return sqlDB.PingContext(ctx) == nil
	}
	var redisHealthChecker controller.HealthChecker
	if redisClient != nil {
		redisHealthChecker = db.RedisHealthCheck(redisClient)
	}
	healthController := controller.NewHealthController(dbHealthChecker, redisHealthChecker)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)
	userController := controller.NewUserController(getCurrentUserUseCase)
	expenseController := controller.NewExpenseController(
		listExpensesUseCase,
		getExpenseUseCase,
		createExpenseUseCase,
		updateExpenseUseCase,
		deleteExpenseUseCase,
	)
	reportController := controller.NewReportController(
		categoryReportUseCase,
		monthlyReportUseCase,
		trendReportUseCase,
		summaryReportUseCase,
	)

	// Create middleware
	var rateLimitStore middleware.RateLimitStore
	if redisClient != nil {
		rateLimitStore = middleware.NewRedisStore(redisClient)
	} else {
		rateLimitStore = middleware.NewMemoryStore()
	}
	loginRateLimiter := middleware.NewRateLimiter(
		rateLimitStore,
		cfg.RateLimit.MaxAttempts,
		cfg.RateLimit.Window,
		!cfg.IsTest(),
	)
	slog.Debug("Login rate limiter configured",
		"redis", redisClient != nil,
		"max_attempts", cfg.RateLimit.MaxAttempts,
		"window", cfg.RateLimit.Window,
	)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		userController,
		expenseController,
		reportController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     gormDB,
		Router: r,
	}
}
