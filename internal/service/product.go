package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/linemk/secondhand-shop/internal/storage"
)

type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, sellerID int64, req models.CreateProductRequest) (*models.Product, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]models.Product, error)
}

type productService struct {
	log         *slog.Logger
	productRepo storage.ProductStorage
}

func NewProductService(log *slog.Logger, productRepo storage.ProductStorage) ProductService {
	return &productService{log: log, productRepo: productRepo}
}

func (s *productService) List(ctx context.Context) ([]models.Product, error) {
	const op = "service.ProductService.List"

	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *productService) Get(ctx context.Context, id int64) (*models.Product, error) {
	const op = "service.ProductService.Get"

	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

// Create публикует товар от имени вызывающего; чужой sellerId в теле запрещён.
func (s *productService) Create(ctx context.Context, sellerID int64, req models.CreateProductRequest) (*models.Product, error) {
	const op = "service.ProductService.Create"
	logger := s.log.With(slog.String("op", op), slog.Int64("sellerID", sellerID))

	if req.SellerID != 0 && req.SellerID != sellerID {
		logger.Warn("seller mismatch", slog.Int64("requested", req.SellerID))
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}
	if !req.Price.IsPositive() {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidPrice)
	}

	product, err := s.productRepo.CreateProduct(ctx, &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		SellerID:    sellerID,
	})
	if err != nil {
		logger.Error("failed to create product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("product created", slog.Int64("productID", product.ID))
	return product, nil
}

func (s *productService) ListBySeller(ctx context.Context, sellerID int64) ([]models.Product, error) {
	const op = "service.ProductService.ListBySeller"

	products, err := s.productRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		s.log.Error("failed to list seller products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}
