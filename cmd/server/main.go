package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linemk/secondhand-shop/internal/app"
	"github.com/linemk/secondhand-shop/internal/broker"
	"github.com/linemk/secondhand-shop/internal/config"
	"github.com/linemk/secondhand-shop/internal/lib/logger"
	"github.com/linemk/secondhand-shop/internal/tracing"
	"github.com/pkg/errors"
)

// очередь, из которой сервер сам читает события о новых заказах
const notificationQueue = "order.notification"

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	shutdownTracing, err := tracing.Init(log, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
	if err != nil {
		log.Error("failed to init tracing", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to init tracing"))
	}

	// загружаем объект приложения, конфигом и подключением к БД
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.Close()

	ctx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	if rmq, ok := application.Publisher.(*broker.RabbitMQ); ok {
		go func() {
			err := rmq.Consume(ctx, notificationQueue, func(e broker.OrderCreated) {
				log.Info("order created notification",
					slog.String("order_no", e.OrderNo),
					slog.Int64("buyer_id", e.BuyerID),
					slog.Int64("seller_id", e.SellerID),
				)
			})
			if err != nil {
				log.Error("notification consumer stopped", slog.Any("error", err))
			}
		}()
	}

	router := app.NewRouter(log, cfg.JWT.Secret, application.Services)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	stopConsumer()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
