package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "agentdesk/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"agentdesk/internal/auth"
	"agentdesk/internal/cache"
	"agentdesk/internal/config"
	"agentdesk/internal/db"
	"agentdesk/internal/gateway"
	"agentdesk/internal/handler"
	"agentdesk/internal/model"
	"agentdesk/internal/repository"
	"agentdesk/internal/router"
	"agentdesk/internal/service"
	"agentdesk/internal/storage"
)

// @title AgentDesk API
// @version 1.0
// @description Marketing site and agent dashboard backend with cookie session authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey ServiceAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the gateway service token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Session{},
			&model.Account{},
			&model.Task{},
			&model.Contact{},
			&model.Post{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Account{},
		&model.Session{},
		&model.Post{},
		&model.Task{},
		&model.Contact{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	store, err := storage.New(context.Background(), cfg.S3Region, cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	gatewayClient := gateway.New(cfg.GatewayURL, cfg.GatewayToken)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	accountRepo := repository.NewAccountRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)
	txRunner := repository.NewTxRunner(gormDB)

	// Initialize auth components
	hasher := auth.NewHasher(cfg.SessionSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, accountRepo, sessionRepo, txRunner, hasher)
	userService := service.NewUserService(userRepo, cacheClient)
	postService := service.NewPostService(postRepo, cacheClient)
	taskService := service.NewTaskService(taskRepo, gatewayClient)
	settingsService := service.NewSettingsService(cacheClient)
	fileService := service.NewFileService(store)
	contactService := service.NewContactService(contactRepo)
	metricsService := service.NewMetricsService(gatewayClient, taskRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	taskHandler := handler.NewTaskHandler(taskService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	fileHandler := handler.NewFileHandler(fileService)
	contactHandler := handler.NewContactHandler(contactService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	// Register routes
	router.Register(
		e,
		cfg,
		authService,
		authHandler,
		userHandler,
		postHandler,
		taskHandler,
		settingsHandler,
		fileHandler,
		contactHandler,
		metricsHandler,
	)

	// Log swagger full path
	var swaggerURL string
	if cfg.SwaggerHost != "" {
		// SwaggerHost may already include scheme (http:// or https://)
		if len(cfg.SwaggerHost) >= 7 && cfg.SwaggerHost[:7] == "http://" {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else if len(cfg.SwaggerHost) >= 8 && cfg.SwaggerHost[:8] == "https://" {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else {
			swaggerURL = "http://" + cfg.SwaggerHost + "/swagger/index.html"
		}
	} else {
		swaggerURL = "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
