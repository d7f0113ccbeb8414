// Package server assembles the Fiber application: middleware, routes, and the
// dependency graph from repositories to handlers.
package server

import (
	"time"

	"techmarket/internal/database"
	"techmarket/internal/handlers"
	"techmarket/internal/middleware"
	"techmarket/internal/repositories"
	"techmarket/internal/services"
	"techmarket/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const banner = "You are using TechMarket API"

// Options tunes the application. The zero value is usable.
type Options struct {
	// Publisher receives catalog events; nil disables publication.
	Publisher services.EventPublisher
	// AccessLog enables the per-request access log line.
	AccessLog bool
}

// New builds the application on top of an open store.
func New(db *gorm.DB, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "TechMarket API",
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			zap.L().Error("panic recovered", zap.Any("panic", e), zap.String("path", c.Path()))
		},
	}))
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.New().String() },
	}))
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path} ${error}\n",
		}))
	}
	app.Use(cors.New())

	// --- Initialize Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)

	// --- Initialize Services ---
	productService := services.NewProductService(productRepo, categoryRepo, reviewRepo, opts.Publisher)
	categoryService := services.NewCategoryService(categoryRepo, productRepo, opts.Publisher)
	userService := services.NewUserService(userRepo, reviewRepo, opts.Publisher)
	reviewService := services.NewReviewService(reviewRepo, productRepo, userRepo, opts.Publisher)

	// --- Initialize Handlers ---
	validate := validation.New()
	api := app.Group("/api")
	handlers.NewProductHandler(productService, validate).RegisterRoutes(api)
	handlers.NewCategoryHandler(categoryService, validate).RegisterRoutes(api)
	handlers.NewUserHandler(userService, validate).RegisterRoutes(api)
	handlers.NewReviewHandler(reviewService, validate).RegisterRoutes(api)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(banner)
	})
	app.Get("/health", health(db))

	app.Use(middleware.NotFound())
	return app
}

func health(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, state, code := "healthy", "up", fiber.StatusOK
		if err := database.Ping(db); err != nil {
			zap.L().Warn("health check failed", zap.Error(err))
			status, state, code = "unhealthy", "down", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"database": state,
			"time":     time.Now().Format(time.RFC3339),
		})
	}
}
