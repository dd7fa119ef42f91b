package service

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apperrors "repair-system/pkg/errors"
)

// JwtCustomClaim - claims токена, выпущенного сервисом авторизации.
type JwtCustomClaim struct {
	UserID         uint64 `json:"userId"`
	RoleID         uint64 `json:"roleId"`
	IsRefreshToken bool   `json:"isRefreshToken,omitempty"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateToken(userID, roleID uint64) (string, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	GetAccessTokenTTL() time.Duration
}

type jwtService struct {
	secretKey      []byte
	accessTokenExp time.Duration
	logger         *zap.Logger
}

func NewJWTService(secretKey string, accessTokenExp time.Duration, logger *zap.Logger) JWTService {
	return &jwtService{
		secretKey:      []byte(secretKey),
		accessTokenExp: accessTokenExp,
		logger:         logger,
	}
}

// GenerateToken нужен утилитам и тестам: в проде токены выпускает сервис авторизации.
func (s *jwtService) GenerateToken(userID, roleID uint64) (string, error) {
	now := time.Now()
	claims := &JwtCustomClaim{
		UserID: userID,
		RoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenExp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(s.secretKey)
}

func (s *jwtService) GetAccessTokenTTL() time.Duration {
	return s.accessTokenExp
}

func (s *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return s.secretKey, nil
	})
	if err != nil {
		s.logger.Debug("Ошибка парсинга или проверки подписи токена", zap.Error(err))
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		case errors.Is(err, apperrors.ErrInvalidSigningMethod):
			return nil, apperrors.ErrInvalidSigningMethod
		default:
			return nil, apperrors.ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
