package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/linemk/secondhand-shop/internal/broker"
	"github.com/linemk/secondhand-shop/internal/config"
	"github.com/linemk/secondhand-shop/internal/security"
	"github.com/linemk/secondhand-shop/internal/service"
	"github.com/linemk/secondhand-shop/internal/storage"
)

// App — собранный эталонный API: конфиг, БД, брокер и сервисы.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	DB        *sql.DB
	Publisher broker.Publisher
	Services  Services
}

// DSN собирает строку подключения к PostgreSQL.
func DSN(db config.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
	)
}

// NewApp создаёт новый экземпляр App
func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	db, err := sql.Open("postgres", DSN(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	tokens, err := security.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}

	publisher := newPublisher(log, cfg.Broker)

	return &App{
		Config:    cfg,
		Logger:    log,
		DB:        db,
		Publisher: publisher,
		Services:  NewServices(log, db, tokens, publisher),
	}, nil
}

// newPublisher подключается к RabbitMQ; без брокера заказы всё равно создаются.
func newPublisher(log *slog.Logger, cfg config.BrokerConfig) broker.Publisher {
	if cfg.URL == "" {
		log.Info("broker url is empty, order events are disabled")
		return broker.Nop{Log: log}
	}
	rmq, err := broker.NewRabbitMQ(log, cfg.URL, cfg.Exchange, cfg.RoutingKey)
	if err != nil {
		log.Warn("broker unavailable, order events are disabled", slog.Any("error", err))
		return broker.Nop{Log: log}
	}
	return rmq
}

// NewServices связывает репозитории с сервисами.
func NewServices(log *slog.Logger, db *sql.DB, tokens *security.TokenIssuer, publisher broker.Publisher) Services {
	userRepo := storage.NewUserRepository(db)
	productRepo := storage.NewProductRepository(db)
	orderRepo := storage.NewOrderRepository(db)
	commentRepo := storage.NewCommentRepository(db)

	return Services{
		Auth:     service.NewAuthService(log, userRepo, tokens),
		Users:    service.NewUserService(log, userRepo),
		Products: service.NewProductService(log, productRepo),
		Orders:   service.NewOrderService(log, db, orderRepo, productRepo, publisher),
		Comments: service.NewCommentService(log, commentRepo, orderRepo, productRepo),
	}
}

func (a *App) Close() {
	if err := a.Publisher.Close(); err != nil {
		a.Logger.Warn("failed to close broker", slog.Any("error", err))
	}
	if err := a.DB.Close(); err != nil {
		a.Logger.Warn("failed to close database", slog.Any("error", err))
	}
}
