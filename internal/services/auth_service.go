package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sigelp/backend/internal/config"
	"github.com/sigelp/backend/internal/models"
	"github.com/sigelp/backend/pkg/crypto"
	jwtpkg "github.com/sigelp/backend/pkg/jwt"
	"gorm.io/gorm"
)

type AuthService struct {
	db    *gorm.DB
	redis *redis.Client
	cfg   *config.Config
}

func NewAuthService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{
		db:    db,
		redis: redisClient,
		cfg:   cfg,
	}
}

// Login authenticates a user and returns an access/refresh token pair
func (s *AuthService) Login(username, password string) (string, string, *models.User, error) {
	var user models.User

	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", nil, errors.New("invalid credentials")
		}
		return "", "", nil, err
	}

	if !user.IsActive {
		return "", "", nil, errors.New("account is deactivated")
	}

	if !crypto.CheckPassword(password, user.Password) {
		return "", "", nil, errors.New("invalid credentials")
	}

	accessToken, err := jwtpkg.GenerateToken(user.ID.String(), user.Role, jwtpkg.AccessToken, s.cfg.JWTSecret, s.cfg.JWTAccessTokenDuration)
	if err != nil {
		return "", "", nil, err
	}

	refreshToken, err := jwtpkg.GenerateToken(user.ID.String(), user.Role, jwtpkg.RefreshToken, s.cfg.JWTSecret, s.cfg.JWTRefreshTokenDuration)
	if err != nil {
		return "", "", nil, err
	}

	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshTokenDuration),
	}

	if err := s.db.Create(refreshTokenModel).Error; err != nil {
		return "", "", nil, err
	}

	return accessToken, refreshToken, &user, nil
}

// RefreshToken exchanges a valid refresh token for a new access token
func (s *AuthService) RefreshToken(refreshToken string) (string, error) {
	claims, err := jwtpkg.ValidateToken(refreshToken, s.cfg.JWTSecret)
	if err != nil {
		return "", errors.New("invalid refresh token")
	}
	if claims.TokenType != jwtpkg.RefreshToken {
		return "", errors.New("invalid token type")
	}

	var stored models.RefreshToken
	if err := s.db.Where("token = ?", refreshToken).First(&stored).Error; err != nil {
		return "", errors.New("refresh token not found")
	}
	if time.Now().After(stored.ExpiresAt) {
		s.db.Delete(&stored)
		return "", errors.New("refresh token expired")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return "", errors.New("user not found")
	}
	if !user.IsActive {
		return "", errors.New("account is deactivated")
	}

	return jwtpkg.GenerateToken(user.ID.String(), user.Role, jwtpkg.AccessToken, s.cfg.JWTSecret, s.cfg.JWTAccessTokenDuration)
}

// Logout deletes the stored refresh token and revokes the current access
// token for its remaining lifetime
func (s *AuthService) Logout(accessToken, refreshToken string) error {
	if refreshToken != "" {
		s.db.Where("token = ?", refreshToken).Delete(&models.RefreshToken{})
	}

	claims, err := jwtpkg.ValidateToken(accessToken, s.cfg.JWTSecret)
	if err != nil {
		return nil
	}

	if s.redis != nil && claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl > 0 {
			key := fmt.Sprintf("revoked:%s", accessToken)
			_ = s.redis.Set(context.Background(), key, "1", ttl).Err()
		}
	}
	return nil
}

// IsRevoked reports whether an access token has been revoked by logout
func (s *AuthService) IsRevoked(accessToken string) bool {
	if s.redis == nil {
		return false
	}
	key := fmt.Sprintf("revoked:%s", accessToken)
	exists, err := s.redis.Exists(context.Background(), key).Result()
	return err == nil && exists > 0
}

// ValidateAccessToken verifies an access token and loads its user
func (s *AuthService) ValidateAccessToken(tokenString string) (*models.User, error) {
	claims, err := jwtpkg.ValidateToken(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return nil, errors.New("invalid token")
	}
	if claims.TokenType != jwtpkg.AccessToken {
		return nil, errors.New("invalid token type")
	}
	if s.IsRevoked(tokenString) {
		return nil, errors.New("token revoked")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		return nil, errors.New("user not found")
	}
	if !user.IsActive {
		return nil, errors.New("account is deactivated")
	}
	return &user, nil
}

// ChangePassword verifies the old password and stores a new hash
func (s *AuthService) ChangePassword(userID string, oldPassword, newPassword string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return errors.New("user not found")
	}

	if !crypto.CheckPassword(oldPassword, user.Password) {
		return errors.New("incorrect password")
	}

	hashed, err := crypto.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	return s.db.Model(&user).Update("password", hashed).Error
}
