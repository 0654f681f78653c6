package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/secondhand-shop/internal/app/handlers"
	"github.com/linemk/secondhand-shop/internal/lib/logger/handlers/urllog"
	"github.com/linemk/secondhand-shop/internal/metrics"
	"github.com/linemk/secondhand-shop/internal/security/jwtmiddleware"
	"github.com/linemk/secondhand-shop/internal/service"
)

type Services struct {
	Auth     service.AuthService
	Users    service.UserService
	Products service.ProductService
	Orders   service.OrderService
	Comments service.CommentService
}

// NewRouter описывает маршруты эталонного API под /api.
func NewRouter(log *slog.Logger, jwtSecret string, svc Services) http.Handler {
	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware)

	router.Get("/healthz", handlers.Health)
	router.Handle("/metrics", metrics.Handler())

	router.Route("/api", func(r chi.Router) {
		// открытые эндпоинты
		r.Post("/auth/login", handlers.LoginHandler(log, svc.Auth))
		r.Post("/auth/register", handlers.RegisterHandler(log, svc.Auth))
		r.Get("/product", handlers.ListProductsHandler(log, svc.Products))
		r.Get("/product/{id}", handlers.GetProductHandler(log, svc.Products))
		r.Get("/comment/product/{id}", handlers.ListCommentsHandler(log, svc.Comments))

		r.Group(func(r chi.Router) {
			r.Use(jwtmiddleware.NewJWTMiddleware(jwtSecret))

			r.Post("/product", handlers.CreateProductHandler(log, svc.Products))
			r.Get("/product/seller/{id}", handlers.ListSellerProductsHandler(log, svc.Products))

			r.Post("/order", handlers.CreateOrderHandler(log, svc.Orders))
			r.Get("/order/{id}", handlers.GetOrderHandler(log, svc.Orders))
			r.Get("/order/buyer/{id}", handlers.ListBuyerOrdersHandler(log, svc.Orders))
			r.Get("/order/seller/{id}", handlers.ListSellerOrdersHandler(log, svc.Orders))
			r.Put("/order/{id}/pay", handlers.PayOrderHandler(log, svc.Orders))
			r.Put("/order/{id}/ship", handlers.ShipOrderHandler(log, svc.Orders))
			r.Put("/order/{id}/finish", handlers.FinishOrderHandler(log, svc.Orders))
			r.Delete("/order/{id}", handlers.CancelOrderHandler(log, svc.Orders))

			r.Get("/users/{id}", handlers.GetUserHandler(log, svc.Users))
			r.Put("/users/{id}", handlers.UpdateUserHandler(log, svc.Users))

			r.Post("/comment", handlers.CreateCommentHandler(log, svc.Comments))
		})
	})

	return router
}
