package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/pkg/api"
	"repair-system/pkg/contextkeys"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/service"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth проверяет Bearer-токен и кладет UserID и RoleID в контекст запроса.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return api.ErrorResponse(c, apperrors.ErrEmptyAuthHeader)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return api.ErrorResponse(c, apperrors.ErrInvalidAuthHeader)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return api.ErrorResponse(c, err)
		}

		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: Попытка доступа с refresh токеном", zap.Uint64("userID", claims.UserID))
			return api.ErrorResponse(c, apperrors.ErrInvalidToken)
		}

		ctx := context.WithValue(c.Request().Context(), contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.RoleIDKey, claims.RoleID)
		c.SetRequest(c.Request().WithContext(ctx))

		m.logger.Debug("AuthMiddleware: Пользователь аутентифицирован", zap.Uint64("userID", claims.UserID))
		return next(c)
	}
}
