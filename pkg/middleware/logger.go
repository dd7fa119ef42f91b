// pkg/middleware/logger.go

package middleware

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/pkg/api"
	"repair-system/pkg/contextkeys"
	"repair-system/pkg/utils"
)

// InjectLogger кладет в echo.Context логгер с request_id и пишет строку
// о каждом запросе после его обработки. Для аутентифицированных запросов
// в строку попадают user_id и role_id из токена.
func InjectLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			reqLogger := logger.With(zap.String("request_id", requestID))
			c.Set(api.LoggerContextKey, reqLogger)
			c.SetRequest(c.Request().WithContext(
				context.WithValue(c.Request().Context(), contextkeys.RequestIDKey, requestID),
			))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			}
			// Auth заменяет запрос, поэтому контекст читаем уже после next
			reqCtx := c.Request().Context()
			if userID, err := utils.GetUserIDFromCtx(reqCtx); err == nil {
				fields = append(fields, zap.Uint64("user_id", userID))
				if roleID, err := utils.GetRoleIDFromCtx(reqCtx); err == nil {
					fields = append(fields, zap.Uint64("role_id", roleID))
				}
			}
			reqLogger.Info("HTTP запрос", fields...)
			return nil
		}
	}
}
