package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"giphyexplorer/internal/config"
	"giphyexplorer/internal/microservices/http-api/apperror"
	"giphyexplorer/internal/microservices/http-api/models"
	"giphyexplorer/internal/microservices/http-api/repository"
	"giphyexplorer/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNameInUse          = errors.New("username already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrEmailInUse         = errors.New("email already in use")
)

const tokenIssuer = "giphy-explorer"

// Claims is the payload of every bearer token we issue.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(tokenString string) (*Claims, error)
	GetCurrentUser(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  cfg.JWTExpiry, // 7 days by default
		now:       time.Now,
	}
}

// Register creates a user with a bcrypt-hashed password and returns it with a fresh token.
func (s *authService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	// Check if user exists
	if err := s.ensureAvailable(ctx, s.userRepo.FindByUsername, username, ErrNameInUse); err != nil {
		return nil, "", err
	}

	// Check if email exists
	if err := s.ensureAvailable(ctx, s.userRepo.FindByEmail, email, ErrEmailInUse); err != nil {
		return nil, "", err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Password: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration for the same name or email
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", apperror.Wrap(apperror.Conflict, "User already exists", err)
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) ensureAvailable(ctx context.Context, find func(context.Context, string) (*models.User, error), value string, inUse error) error {
	_, err := find(ctx, value)
	if err == nil {
		return apperror.Wrap(apperror.Conflict, "User already exists", inUse)
	}
	if !repository.IsNotFound(err) {
		return fmt.Errorf("lookup user: %w", err)
	}
	return nil
}

// Login authenticates by email. Unknown email and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !repository.IsNotFound(err) {
			return nil, "", fmt.Errorf("lookup user: %w", err)
		}
		// User not found, compare anyway so both failures take the same time
		auth.BurnPassword(password)
		return nil, "", invalidCredentials()
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return nil, "", invalidCredentials()
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func invalidCredentials() error {
	return apperror.Wrap(apperror.Unauthorized, "Invalid credentials", ErrInvalidCredentials)
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature, algorithm, issuer and expiry.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.Wrap(apperror.Unauthorized, "Token expired", ErrExpiredToken)
		}
		return nil, apperror.Wrap(apperror.Unauthorized, "Invalid token", errors.Join(ErrInvalidToken, err))
	}

	if !token.Valid || claims.Subject == "" || claims.UserID != claims.Subject {
		return nil, apperror.Wrap(apperror.Unauthorized, "Invalid token", ErrInvalidToken)
	}

	return claims, nil
}

// GetCurrentUser returns the public profile of an authenticated identity.
func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NewNotFound("User not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
