package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"agentdesk/internal/auth"
	"agentdesk/internal/config"
	"agentdesk/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	resolver auth.SessionResolver,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	taskHandler *handler.TaskHandler,
	settingsHandler *handler.SettingsHandler,
	fileHandler *handler.FileHandler,
	contactHandler *handler.ContactHandler,
	metricsHandler *handler.MetricsHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/sign-up", authHandler.SignUp)
	api.POST("/auth/sign-in", authHandler.SignIn)
	api.GET("/auth/get-session", authHandler.GetSession)
	api.POST("/auth/sign-out", authHandler.SignOut)

	api.POST("/contact", contactHandler.SubmitContact)

	api.GET("/users", userHandler.ListUsers)
	api.GET("/users/:id", userHandler.GetUser)
	api.POST("/users", userHandler.CreateUser)

	api.GET("/posts", postHandler.ListPosts)
	api.GET("/posts/:id", postHandler.GetPost)

	// Session routes (require a signed-in visitor)
	session := api.Group("", auth.RequireSession(resolver, ""))

	session.POST("/posts", postHandler.CreatePost)
	session.PUT("/posts/:id", postHandler.UpdatePost)
	session.DELETE("/posts/:id", postHandler.DeletePost)

	session.GET("/settings", settingsHandler.ListSettings)
	session.GET("/settings/cached/:key", settingsHandler.GetCachedValue)
	session.DELETE("/settings/cached/:key", settingsHandler.ClearCache)
	session.GET("/settings/:key", settingsHandler.GetSetting)
	session.PUT("/settings/:key", settingsHandler.SetSetting)
	session.DELETE("/settings/:key", settingsHandler.DeleteSetting)

	session.GET("/files", fileHandler.ListFiles)
	session.POST("/files/upload", fileHandler.UploadFile)
	session.GET("/files/url", fileHandler.GetFileURL)
	session.DELETE("/files/:key", fileHandler.DeleteFile)

	// Service routes (gateway token or cookie session)
	service := api.Group("", auth.RequireServiceAuth(resolver, cfg.GatewayToken))

	service.GET("/tasks", taskHandler.ListTasks)
	service.POST("/tasks", taskHandler.CreateTask)
	service.PUT("/tasks/:id", taskHandler.UpdateTask)
	service.DELETE("/tasks/:id", taskHandler.DeleteTask)

	service.GET("/metrics/status", metricsHandler.Status)
	service.GET("/metrics/cost", metricsHandler.Cost)
	service.GET("/metrics/models", metricsHandler.Models)
	service.GET("/metrics/agents", metricsHandler.Agents)
	service.GET("/metrics/cron", metricsHandler.ListCronJobs)
	service.POST("/metrics/cron", metricsHandler.AddCronJob)
	service.DELETE("/metrics/cron/:id", metricsHandler.DeleteCronJob)
	service.POST("/metrics/heartbeat", metricsHandler.TriggerHeartbeat)
	service.POST("/metrics/restart", metricsHandler.RestartGateway)
	// Legacy alias kept for older dashboard builds.
	service.POST("/metrics/gateway-restart", metricsHandler.RestartGateway)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
