// Package main is the entry point for the SGA server. It loads
// configuration, connects to PostgreSQL, runs pending migrations and wires
// every HTTP route.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/brenio55/SGA/internal/config"
	"github.com/brenio55/SGA/internal/database"
	"github.com/brenio55/SGA/internal/handlers"
	"github.com/brenio55/SGA/internal/middleware"
	"github.com/brenio55/SGA/internal/models"
	"github.com/brenio55/SGA/internal/security"
	"github.com/brenio55/SGA/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 && os.Args[1] == "rollback" {
		if err := database.RollbackMigration(cfg.DatabaseURL); err != nil {
			logger.Error("rollback failed", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx := context.Background()
	if err := database.Connect(ctx, database.DefaultConfig(cfg.DatabaseURL)); err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	tokens := services.NewTokenService(cfg.JWTSecret)
	auth := services.NewAuthService()
	lockout := security.NewLoginLockout(10, 30*time.Minute)

	// 5 login attempts per minute per IP, 20 responses per minute per IP
	loginLimiter := security.NewRateLimiter(5, 12*time.Second)
	defer loginLimiter.Stop()
	respondLimiter := security.NewRateLimiter(20, 3*time.Second)
	defer respondLimiter.Stop()

	authHandler := handlers.NewAuthHandler(auth, tokens, lockout)
	companyHandler := handlers.NewCompanyHandler()
	departmentHandler := handlers.NewDepartmentHandler()
	groupHandler := handlers.NewGroupHandler()
	userHandler := handlers.NewUserHandler(auth)
	notificationHandler := handlers.NewNotificationHandler()

	app := fiber.New(fiber.Config{
		AppName: "sga",
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.RequestLogger(logger))

	app.Get("/health", handlers.Health)
	app.Post("/api/auth/login", security.Limit(loginLimiter), authHandler.Login)

	api := app.Group("/api", middleware.AuthRequired(tokens))
	manager := middleware.RoleRequired(models.RoleManager)

	companies := api.Group("/companies")
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.Get)
	companies.Post("/", manager, companyHandler.Create)
	companies.Put("/:id", manager, companyHandler.Update)
	companies.Delete("/:id", manager, companyHandler.Delete)

	departments := api.Group("/departments")
	departments.Get("/", departmentHandler.List)
	departments.Get("/:id", departmentHandler.Get)
	departments.Post("/", manager, departmentHandler.Create)
	departments.Put("/:id", manager, departmentHandler.Update)
	departments.Delete("/:id", manager, departmentHandler.Delete)

	groups := api.Group("/groups")
	groups.Get("/", groupHandler.List)
	groups.Get("/:id", groupHandler.Get)
	groups.Post("/", manager, groupHandler.Create)
	groups.Put("/:id", manager, groupHandler.Update)
	groups.Delete("/:id", manager, groupHandler.Delete)

	users := api.Group("/users")
	users.Get("/", userHandler.List)
	users.Get("/group/:group_id", userHandler.ListByGroup)
	users.Get("/:id", userHandler.Get)
	users.Post("/", manager, userHandler.Create)
	users.Put("/:id", manager, userHandler.Update)
	users.Delete("/:id", manager, userHandler.Delete)

	notifications := api.Group("/notifications")
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/overview", notificationHandler.Overview)
	notifications.Get("/user/:user_id/company/:company_id", notificationHandler.Pending)
	notifications.Get("/user/:user_id/company/:company_id/stats", notificationHandler.Stats)
	notifications.Get("/user/:user_id/company/:company_id/viewed", notificationHandler.History)
	notifications.Post("/", manager, notificationHandler.Create)
	notifications.Get("/:id", notificationHandler.Get)
	notifications.Put("/:id", manager, notificationHandler.Update)
	notifications.Delete("/:id", manager, notificationHandler.Delete)
	notifications.Post("/:id/view", notificationHandler.View)
	notifications.Post("/:id/respond", security.Limit(respondLimiter), notificationHandler.Respond)
	notifications.Get("/:id/views", notificationHandler.Views)
	notifications.Get("/:id/responses", notificationHandler.Responses)
	notifications.Get("/:id/audience", manager, notificationHandler.Audience)

	api.Get("/views/user/:user_id", notificationHandler.UserViews)
	api.Get("/responses/user/:user_id", notificationHandler.UserResponses)

	addr := ":" + cfg.Port
	logger.Info("server starting", "addr", addr, "env", cfg.Env)
	if err := app.Listen(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
