package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/linemk/secondhand-shop/internal/lib/api/response"
	"github.com/linemk/secondhand-shop/internal/service"
)

func ListProductsHandler(log *slog.Logger, products service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.ListProductsHandler"))

		list, err := products.List(r.Context())
		if err != nil {
			fail(w, logger, err)
			return
		}
		response.OK(w, list)
	}
}

func GetProductHandler(log *slog.Logger, products service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.GetProductHandler"))

		id, ok := idParam(w, r, logger, "id")
		if !ok {
			return
		}
		product, err := products.Get(r.Context(), id)
		if err != nil {
			fail(w, logger, err)
			return
		}
		response.OK(w, product)
	}
}

// CreateProductHandler – POST /api/product, продавец берётся из токена.
func CreateProductHandler(log *slog.Logger, products service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.CreateProductHandler"))

		sellerID, ok := userID(w, r, logger)
		if !ok {
			return
		}
		req := models.CreateProductRequest{SellerID: sellerID}
		if !decode(w, r, logger, &req) {
			return
		}

		product, err := products.Create(r.Context(), sellerID, req)
		if err != nil {
			fail(w, logger, err)
			return
		}
		response.OK(w, product)
	}
}

func ListSellerProductsHandler(log *slog.Logger, products service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.ListSellerProductsHandler"))

		sellerID, ok := idParam(w, r, logger, "id")
		if !ok {
			return
		}
		list, err := products.ListBySeller(r.Context(), sellerID)
		if err != nil {
			fail(w, logger, err)
			return
		}
		response.OK(w, list)
	}
}
