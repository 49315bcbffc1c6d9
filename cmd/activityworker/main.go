package main

import (
	"context"
	"log/slog"
	"os"

	"todoapp/config"
	"todoapp/internal/delivery"
	"todoapp/internal/delivery/worker"
	"todoapp/internal/delivery/worker/handler"
	logs "todoapp/internal/infra/log"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			handler.NewPushHandler,
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start worker", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
