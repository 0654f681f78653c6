package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/linemk/secondhand-shop/internal/security"
	"github.com/linemk/secondhand-shop/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// статусы пользователя
const (
	userDisabled = 0
	userActive   = 1
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.UserInfo, error)
}

type authService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
	tokens   *security.TokenIssuer
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, tokens *security.TokenIssuer) AuthService {
	return &authService{
		log:      log,
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Login проверяет пароль через bcrypt и выдаёт JWT.
// Неизвестный пользователь и неверный пароль неразличимы для клиента.
func (a *authService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	const op = "service.AuthService.Login"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("username", username),
	)
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Warn("user not found")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if user.Status == userDisabled {
		logger.Warn("user is disabled")
		return nil, fmt.Errorf("%s: %w", op, ErrUserDisabled)
	}

	token, err := a.tokens.NewToken(user)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.Int64("userID", user.ID))
	return &models.LoginResponse{
		Token:     token,
		Username:  user.Username,
		UserID:    user.ID,
		ExpiresIn: int64(a.tokens.TTL().Seconds()),
	}, nil
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.UserInfo, error) {
	const op = "service.AuthService.Register"
	logger := a.log.With(slog.String("op", op), slog.String("username", req.Username))

	passHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user, err := a.userRepo.CreateUser(ctx, &models.User{
		Username: req.Username,
		Email:    req.Email,
		PassHash: passHash,
		Status:   userActive,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			logger.Info("username or email taken")
		} else {
			logger.Error("failed to create user", slog.Any("error", err))
		}
		return nil, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	logger.Info("user registered", slog.Int64("userID", user.ID))
	return user.Info(), nil
}
