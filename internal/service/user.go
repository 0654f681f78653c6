package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/linemk/secondhand-shop/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Get(ctx context.Context, id int64) (*models.UserInfo, error)
	Update(ctx context.Context, callerID, id int64, req models.UpdateUserRequest) (*models.UserInfo, error)
}

type userService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
}

func NewUserService(log *slog.Logger, userRepo storage.UserStorage) UserService {
	return &userService{log: log, userRepo: userRepo}
}

func (s *userService) Get(ctx context.Context, id int64) (*models.UserInfo, error) {
	const op = "service.UserService.Get"

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user.Info(), nil
}

// Update меняет профиль владельца. Пустой пароль оставляет прежний хэш,
// nil в phone/address оставляет прежнее значение.
func (s *userService) Update(ctx context.Context, callerID, id int64, req models.UpdateUserRequest) (*models.UserInfo, error) {
	const op = "service.UserService.Update"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", id))

	if callerID != id {
		logger.Warn("foreign profile update", slog.Int64("callerID", callerID))
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user.Username = req.Username
	user.Email = req.Email
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("failed to hash password", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
		}
		user.PassHash = hash
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		logger.Error("failed to update user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("profile updated")
	return user.Info(), nil
}
