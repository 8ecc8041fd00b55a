package user

import (
	"context"
	"fmt"
	"time"

	userRepo "sparklewash/database/repository/user"
	"sparklewash/models"
	"sparklewash/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService supplies the explicit identity the booking flow carries.
type UserService interface {
	Register(ctx context.Context, name, email, phone, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

// AuthResponse is returned on successful login.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

func (s *DefaultUserService) Register(ctx context.Context, name, email, phone, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	userRec, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(userRec.ID, userRec.Email, 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{User: userRec, Token: token}, nil
}

func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetByID(ctx, userID)
}
