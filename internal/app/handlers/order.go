package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/linemk/secondhand-shop/internal/lib/api/response"
	"github.com/linemk/secondhand-shop/internal/service"
)

// CreateOrderHandler – POST /api/order. Покупатель — владелец токена.
func CreateOrderHandler(log *slog.Logger, orders service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.CreateOrderHandler"))

		buyerID, ok := userID(w, r, logger)
		if !ok {
			return
		}
		req := models.CreateOrderRequest{UserID: buyerID, Quantity: 1}
		if !decode(w, r, logger, &req) {
			return
		}

		order, err := orders.Create(r.Context(), buyerID, req)
		if err != nil {
			fail(w, logger, err)
			return
		}
		response.OK(w, order)
	}
}

func GetOrderHandler(log *slog.Logger, orders service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.GetOrderHandler"))

		uid, ok := userID(w, r, logger)
		if !ok {
			return
		}
		id, ok := idParam(w, r, logger, "id")
		if !ok {
			return
		}
		order, err := orders.Get(r.Context(), uid, id)
		if err != nil {
			fail(w, logger, err)
			return
		}
		response.OK(w, order)
	}
}

type transitionFunc func(ctx context.Context, userID, orderID int64) (*models.Order, error)

// transitionHandler общий для pay/ship/finish: PUT /api/order/{id}/<action>.
func transitionHandler(log *slog.Logger, op string, do transitionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", op))

		uid, ok := userID(w, r, logger)
		if !ok {
			return
		}
		id, ok := idParam(w, r, logger, "id")
		if !ok {
			return
		}
		order, err := do(r.Context(), uid, id)
		if err != nil {
			fail(w, logger, err)
			return
		}
		response.OK(w, order)
	}
}

func PayOrderHandler(log *slog.Logger, orders service.OrderService) http.HandlerFunc {
	return transitionHandler(log, "handlers.PayOrderHandler", orders.Pay)
}

func ShipOrderHandler(log *slog.Logger, orders service.OrderService) http.HandlerFunc {
	return transitionHandler(log, "handlers.ShipOrderHandler", orders.Ship)
}

func FinishOrderHandler(log *slog.Logger, orders service.OrderService) http.HandlerFunc {
	return transitionHandler(log, "handlers.FinishOrderHandler", orders.Finish)
}

// CancelOrderHandler – DELETE /api/order/{id}, data в ответе нет.
func CancelOrderHandler(log *slog.Logger, orders service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.CancelOrderHandler"))

		uid, ok := userID(w, r, logger)
		if !ok {
			return
		}
		id, ok := idParam(w, r, logger, "id")
		if !ok {
			return
		}
		if err := orders.Cancel(r.Context(), uid, id); err != nil {
			fail(w, logger, err)
			return
		}
		response.OK(w, nil)
	}
}

type listFunc func(ctx context.Context, userID, ownerID int64) ([]models.Order, error)

func listOrdersHandler(log *slog.Logger, op string, list listFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", op))

		uid, ok := userID(w, r, logger)
		if !ok {
			return
		}
		ownerID, ok := idParam(w, r, logger, "id")
		if !ok {
			return
		}
		result, err := list(r.Context(), uid, ownerID)
		if err != nil {
			fail(w, logger, err)
			return
		}
		response.OK(w, result)
	}
}

func ListBuyerOrdersHandler(log *slog.Logger, orders service.OrderService) http.HandlerFunc {
	return listOrdersHandler(log, "handlers.ListBuyerOrdersHandler", orders.ListByBuyer)
}

func ListSellerOrdersHandler(log *slog.Logger, orders service.OrderService) http.HandlerFunc {
	return listOrdersHandler(log, "handlers.ListSellerOrdersHandler", orders.ListBySeller)
}
