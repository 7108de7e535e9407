package app

import (
	"context"
	"fmt"
	"strings"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// bodyLimit leaves room for a resume and a cover letter in one multipart body.
const bodyLimit = 12 * 1024 * 1024

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: bodyLimit,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container, starts background workers and returns the
// HTTP app with a cleanup func that stops them in reverse order.
func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init container: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go c.Hub.Run(ctx)

	if err := c.Scheduler.Start(ctx); err != nil {
		cancel()
		_ = c.Close()
		return nil, nil, err
	}

	app := New(c)
	cleanup := func() error {
		c.Scheduler.Stop()
		cancel()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(errMw.Middleware())

	accessLog := middleware.NewAccessLogMiddleware(logger)
	app.Use(accessLog.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	wsHandler := ws.NewHandler(c.Hub, c.JWT, c.Logger)

	registry := routes.NewRegistry(routes.Handlers{
		Health:        handler.NewHealthHandler(c.DB, c.Cache),
		Auth:          handler.NewAuthHandler(c.AuthUC),
		Users:         handler.NewUserHandler(c.UserUC),
		Jobs:          handler.NewJobHandler(c.JobUC, c.RecommendationUC),
		Applications:  handler.NewApplicationHandler(c.ApplicationUC),
		Stats:         handler.NewStatsHandler(c.StatsUC),
		Notifications: wsHandler.HandleNotifications,
	}, middleware.NewAuthMiddleware(c.JWT))
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
