package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"infinity-realms-shop/internal/dto"
	"infinity-realms-shop/internal/logger"
	"infinity-realms-shop/internal/model"
	"infinity-realms-shop/internal/repository"
)

const tokenTTL = 24 * time.Hour

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type UserService interface {
	Register(ctx context.Context, username, email string) (string, error)
	Login(ctx context.Context, username, email, token string) (*dto.UserInfo, error)
	// LoginAlternative implements the OpenRegistrationOnLogin policy: it
	// never fails on a missing account, it creates one on the fly.
	LoginAlternative(ctx context.Context, username, email string) (*dto.UserInfo, error)
	VerifyToken(token string) (*dto.UserInfo, error)
	List(ctx context.Context) ([]*model.User, error)
}

type userServiceImpl struct {
	log       *logger.Logger
	userRepo  repository.UserRepository
	jwtSecret string
}

func NewUserService(
	log *logger.Logger,
	userRepo repository.UserRepository,
	jwtSecret string,
) UserService {
	return &userServiceImpl{
		log:       log.With("service", "user"),
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, username, email string) (string, error) {
	if username == "" || email == "" {
		return "", fmt.Errorf("%w: username and email are required", model.ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return "", fmt.Errorf("%w: invalid email format", model.ErrValidation)
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return "", fmt.Errorf("%w: username or email already exists", model.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("check username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return "", fmt.Errorf("%w: username or email already exists", model.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("check email: %w", err)
	}

	if err := s.userRepo.Create(ctx, &model.User{Username: username, Email: email}); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.generateToken(username, email)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	s.log.Infow("user registered", "username", username)
	return token, nil
}

func (s *userServiceImpl) Login(ctx context.Context, username, email, token string) (*dto.UserInfo, error) {
	if username == "" || email == "" || token == "" {
		return nil, fmt.Errorf("%w: username, email, and token are required", model.ErrValidation)
	}

	claims, err := s.VerifyToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Username != username || claims.Email != email {
		return nil, fmt.Errorf("%w: token does not match provided username and email", model.ErrUnauthorized)
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", model.ErrUnauthorized)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	s.log.Infow("user logged in", "username", username)
	return &dto.UserInfo{Username: username, Email: email}, nil
}

func (s *userServiceImpl) LoginAlternative(ctx context.Context, username, email string) (*dto.UserInfo, error) {
	if username == "" || email == "" {
		return nil, fmt.Errorf("%w: username and email are required", model.ErrValidation)
	}

	_, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.userRepo.Create(ctx, &model.User{Username: username, Email: email}); err != nil {
			return nil, fmt.Errorf("auto-provision user: %w", err)
		}
		s.log.Infow("auto-provisioned user on login", "username", username)
	} else if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &dto.UserInfo{Username: username, Email: email}, nil
}

func (s *userServiceImpl) VerifyToken(token string) (*dto.UserInfo, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token", model.ErrUnauthorized)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", model.ErrUnauthorized)
	}
	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)
	if username == "" {
		return nil, fmt.Errorf("%w: invalid token claims", model.ErrUnauthorized)
	}

	return &dto.UserInfo{Username: username, Email: email}, nil
}

func (s *userServiceImpl) List(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userServiceImpl) generateToken(username, email string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"email":    email,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
}
