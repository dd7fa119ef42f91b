package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Pinger - все, что умеет проверить соединение (pgxpool.Pool, redis).
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db     Pinger
	logger *zap.Logger
}

func NewHealthController(db Pinger, logger *zap.Logger) *HealthController {
	return &HealthController{db: db, logger: logger}
}

func (c *HealthController) Health(ctx echo.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
	defer cancel()

	if err := c.db.Ping(pingCtx); err != nil {
		c.logger.Error("База данных недоступна", zap.Error(err))
		return ctx.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
