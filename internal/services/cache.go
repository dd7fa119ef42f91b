package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"repair-system/internal/repositories"
)

// jsonCache - чтение и запись JSON через кеш. Кеш необязателен: при nil
// или недоступном Redis данные просто берутся из БД.
type jsonCache struct {
	repo   repositories.CacheRepositoryInterface
	logger *zap.Logger
}

func (c jsonCache) get(ctx context.Context, key string, dest interface{}) bool {
	if c.repo == nil {
		return false
	}
	cached, err := c.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			c.logger.Warn("Ошибка чтения кеша", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		c.logger.Warn("Поврежденные данные в кеше", zap.String("key", key), zap.Error(err))
		return false
	}
	c.logger.Debug("Данные получены из кеша", zap.String("key", key))
	return true
}

// generation читает счетчик поколения. Отсутствующий ключ - поколение "0".
// false означает, что кеш недоступен и пользоваться им нельзя.
func (c jsonCache) generation(ctx context.Context, key string) (string, bool) {
	if c.repo == nil {
		return "", false
	}
	gen, err := c.repo.Get(ctx, key)
	if errors.Is(err, repositories.ErrCacheMiss) {
		return "0", true
	}
	if err != nil {
		c.logger.Warn("Ошибка чтения поколения кеша", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return gen, true
}

func (c jsonCache) set(ctx context.Context, key string, data interface{}, ttl time.Duration) {
	if c.repo == nil {
		return
	}
	serialized, err := json.Marshal(data)
	if err != nil {
		c.logger.Warn("Не удалось сериализовать данные для кеша", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.repo.Set(ctx, key, serialized, ttl); err != nil {
		c.logger.Warn("Ошибка записи в кеш", zap.String("key", key), zap.Error(err))
	}
}
