package workflow

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/linemk/secondhand-shop/internal/domain/models"
)

var errNegativeAmount = errors.New("amount must not be negative")

var commentMessages = map[string]string{
	"Rating":  "rating must be between 1 and 5",
	"Content": "comment content must not be empty",
}

type CommentService interface {
	SubmitComment(ctx context.Context, productID, userID int64, content string, rating int) (*models.Comment, error)
	ListComments(ctx context.Context, productID int64) ([]models.Comment, error)
}

type commentService struct {
	log *slog.Logger
	api CommentAPI
}

func NewCommentService(log *slog.Logger, api CommentAPI) CommentService {
	return &commentService{log: log, api: api}
}

// SubmitComment проверяет оценку и текст до вызова сети. orderId всегда 0.
func (s *commentService) SubmitComment(ctx context.Context, productID, userID int64, content string, rating int) (*models.Comment, error) {
	const op = "workflow.CommentService.SubmitComment"
	logger := s.log.With(slog.String("op", op), slog.Int64("product_id", productID))

	req, err := commentRequest(op, productID, userID, content, rating)
	if err != nil {
		return nil, err
	}

	sess, err := requireSession(ctx, op)
	if err != nil {
		return nil, err
	}

	comment, err := s.api.CreateComment(ctx, sess.Token, req)
	if err != nil {
		logger.Info("submit comment failed", slog.Any("error", err))
		return nil, err
	}
	return comment, nil
}

// ListComments — отзывы товара, новые сверху.
func (s *commentService) ListComments(ctx context.Context, productID int64) ([]models.Comment, error) {
	comments, err := s.api.ListComments(ctx, productID)
	if err != nil {
		return nil, err
	}
	models.SortCommentsNewestFirst(comments)
	return comments, nil
}

// ValidateComment — проверки SubmitComment без вызова сети.
func ValidateComment(productID, userID int64, content string, rating int) error {
	_, err := commentRequest("workflow.ValidateComment", productID, userID, content, rating)
	return err
}

func commentRequest(op string, productID, userID int64, content string, rating int) (models.CreateCommentRequest, error) {
	req := models.CreateCommentRequest{
		ProductID: productID,
		UserID:    userID,
		OrderID:   0,
		Content:   strings.TrimSpace(content),
		Rating:    rating,
	}
	if err := validate.Struct(req); err != nil {
		return req, validationError(op, err, commentMessages)
	}
	return req, nil
}
