// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	healthController  *controller.HealthController
	authController    *controller.AuthController
	userController    *controller.UserController
	expenseController *controller.ExpenseController
	reportController  *controller.ReportController
	loginRateLimiter  *middleware.RateLimiter
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	expenseController *controller.ExpenseController,
	reportController *controller.ReportController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:  healthController,
		authController:    authController,
		userController:    userController,
		expenseController: expenseController,
		reportController:  reportController,
		loginRateLimiter:  loginRateLimiter,
		authMiddleware:    authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authController.Logout)
		}

		users := v1.Group("/users")
		users.Use(r.authMiddleware.Authenticate())
		{
			users.GET("/me", r.userController.Me)
		}

		expenses := v1.Group("/expenses")
		expenses.Use(r.authMiddleware.Authenticate())
		{
			expenses.GET("", r.expenseController.List)
			expenses.POST("", r.expenseController.Create)
			expenses.GET("/categories", r.expenseController.Categories)
			expenses.GET("/:id", r.expenseController.Get)
			expenses.PATCH("/:id", r.expenseController.Update)
			expenses.DELETE("/:id", r.expenseController.Delete)
		}

		reports := v1.Group("/reports")
		reports.Use(r.authMiddleware.Authenticate())
		{
			reports.GET("/category", r.reportController.GetCategoryReport)
			reports.GET("/monthly", r.reportController.GetMonthlyReport)
			reports.GET("/trends", r.reportController.GetTrendReport)
			reports.GET("/summary", r.reportController.GetSummaryReport)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
