package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
	"golang.org/x/crypto/bcrypt"
)

const AccessTokenTTL = 24 * time.Hour

type AuthService struct {
	userRepo  ports.UserRepository
	jwtSecret []byte
	now       Clock
}

func NewAuthService(userRepo ports.UserRepository, jwtSecret string, clock Clock) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		now:       orNow(clock),
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// ParseToken verifies the token and resolves the actor from the stored user
// record, so demotion, deletion and revocation apply to tokens already issued.
func (s *AuthService) ParseToken(ctx context.Context, token string) (domain.Actor, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return domain.Actor{}, fmt.Errorf("invalid token: %w", err)
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: bad subject", domain.ErrInvalidToken)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Actor{}, fmt.Errorf("%w: unknown user", domain.ErrInvalidToken)
		}
		return domain.Actor{}, fmt.Errorf("failed to get user: %w", err)
	}

	// MapClaims decodes JSON numbers as float64.
	version, ok := claims["ver"].(float64)
	if !ok || int64(version) != user.TokenVersion {
		return domain.Actor{}, fmt.Errorf("%w: revoked", domain.ErrInvalidToken)
	}

	return domain.Actor{UserID: user.ID, Username: user.Username, IsStaff: user.IsStaff}, nil
}

// Logout revokes every token issued to the actor, not only the one in use.
func (s *AuthService) Logout(ctx context.Context, actor domain.Actor) error {
	if err := s.userRepo.RevokeTokens(ctx, actor.UserID); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}

func (s *AuthService) generateAccessToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"ver":      user.TokenVersion,
		"exp":      now.Add(AccessTokenTTL).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
