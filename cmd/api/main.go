package main

import (
	"context"
	"time"

	"github.com/Behyna/saldo-service/internal/api"
	v1 "github.com/Behyna/saldo-service/internal/api/v1"
	"github.com/Behyna/saldo-service/internal/api/validator"
	"github.com/Behyna/saldo-service/internal/bootstrap"
	"github.com/Behyna/saldo-service/internal/config"
	"github.com/Behyna/saldo-service/internal/errors"
	"github.com/Behyna/saldo-service/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const collectInterval = 15 * time.Second

func main() {
	fx.New(
		bootstrap.Engine,
		fx.Provide(
			NewFiber,
			validator.NewValidate,
			validator.NewXValidator,
			v1.NewHandler,
			metrics.NewCollector,
		),
		fx.Invoke(startServer),
	).Run()
}

func NewFiber(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.API.ServiceName,
		ErrorHandler: errors.ErrorHandler(logger),
	})

	app.Use(metrics.HTTPMetricsMiddleware(m, logger))
	app.Use(metrics.HealthCheckMiddleware(cfg.API.ServiceName))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return app
}

func startServer(app *fiber.App, handler *v1.Handler, collector *metrics.Collector, cfg *config.Config,
	logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			collector.Start(collectInterval)
			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("http server exited", zap.Error(err))
				}
			}()

			logger.Info("saldo api started", zap.String("port", cfg.API.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			collector.Stop()
			return app.ShutdownWithContext(ctx)
		},
	})
}
