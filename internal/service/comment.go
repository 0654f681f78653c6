package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/linemk/secondhand-shop/internal/storage"
)

type CommentService interface {
	Create(ctx context.Context, userID int64, req models.CreateCommentRequest) (*models.Comment, error)
	ListByProduct(ctx context.Context, productID int64) ([]models.Comment, error)
}

type commentService struct {
	log         *slog.Logger
	commentRepo storage.CommentStorage
	orderRepo   storage.OrderStorage
	productRepo storage.ProductStorage
}

func NewCommentService(
	log *slog.Logger,
	commentRepo storage.CommentStorage,
	orderRepo storage.OrderStorage,
	productRepo storage.ProductStorage,
) CommentService {
	return &commentService{
		log:         log,
		commentRepo: commentRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// Create сохраняет отзыв. Автор должен иметь оплаченный заказ на этот товар;
// orderId из запроса не проверяется, клиенты присылают 0.
func (s *commentService) Create(ctx context.Context, userID int64, req models.CreateCommentRequest) (*models.Comment, error) {
	const op = "service.CommentService.Create"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("userID", userID),
		slog.Int64("productID", req.ProductID),
	)

	if req.UserID != userID {
		logger.Warn("author mismatch", slog.Int64("requested", req.UserID))
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	if _, err := s.productRepo.GetProduct(ctx, req.ProductID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	paid, err := s.orderRepo.HasPaidOrder(ctx, userID, req.ProductID)
	if err != nil {
		logger.Error("failed to check orders", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to check orders: %w", op, err)
	}
	if !paid {
		logger.Info("comment rejected, no paid order")
		return nil, fmt.Errorf("%s: %w", op, ErrNotEligible)
	}

	comment, err := s.commentRepo.CreateComment(ctx, &models.Comment{
		ProductID: req.ProductID,
		UserID:    userID,
		OrderID:   req.OrderID,
		Content:   req.Content,
		Rating:    req.Rating,
	})
	if err != nil {
		logger.Error("failed to create comment", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("comment created", slog.Int64("commentID", comment.ID))
	return comment, nil
}

func (s *commentService) ListByProduct(ctx context.Context, productID int64) ([]models.Comment, error) {
	const op = "service.CommentService.ListByProduct"

	comments, err := s.commentRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.log.Error("failed to list comments", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return comments, nil
}
