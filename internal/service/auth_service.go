package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/mockinterview/internal/model"
	"github.com/lshigami/mockinterview/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Signup(name, email, password string) (*model.User, error)
	Login(email, password string) (string, error)
	CurrentUser(userID uint) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenService
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenService) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Signup(name, email, password string) (*model.User, error) {
	email = normalizeEmail(email)

	_, err := s.userRepo.FindByEmail(email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{Name: strings.TrimSpace(name), Email: email, PasswordHash: hash}
	if err := s.userRepo.Create(user); err != nil {
		// Unique index catches a concurrent signup for the same address.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		log.Error().Err(err).Str("email", email).Msg("Failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	log.Info().Uint("userID", user.ID).Msg("User signed up")
	return user, nil
}

func (s *authService) Login(email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if !VerifyPassword(user.PasswordHash, password) {
		log.Warn().Uint("userID", user.ID).Msg("Login rejected: wrong password")
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(user.ID)
}

func (s *authService) CurrentUser(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	return user, nil
}
