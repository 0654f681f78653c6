package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/linemk/secondhand-shop/internal/lib/api/response"
	"github.com/linemk/secondhand-shop/internal/service"
)

func ListCommentsHandler(log *slog.Logger, comments service.CommentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.ListCommentsHandler"))

		productID, ok := idParam(w, r, logger, "id")
		if !ok {
			return
		}
		list, err := comments.ListByProduct(r.Context(), productID)
		if err != nil {
			fail(w, logger, err)
			return
		}
		response.OK(w, list)
	}
}

// CreateCommentHandler – POST /api/comment. Рейтинг 1..5, текст не пустой.
func CreateCommentHandler(log *slog.Logger, comments service.CommentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.CreateCommentHandler"))

		uid, ok := userID(w, r, logger)
		if !ok {
			return
		}
		var req models.CreateCommentRequest
		if !decode(w, r, logger, &req) {
			return
		}
		req.Content = strings.TrimSpace(req.Content)
		if req.Content == "" {
			response.Error(w, http.StatusBadRequest, "content is required")
			return
		}

		comment, err := comments.Create(r.Context(), uid, req)
		if err != nil {
			fail(w, logger, err)
			return
		}
		response.OK(w, comment)
	}
}
