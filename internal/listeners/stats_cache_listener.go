package listeners

import (
	"context"

	"go.uber.org/zap"

	"repair-system/internal/events"
	"repair-system/internal/repositories"
	"repair-system/pkg/constants"
	"repair-system/pkg/eventbus"
)

// StatsCacheListener сбрасывает кеш сводной статистики после любых изменений
// заявок и журналов. Подписка синхронная: мутация возвращается клиенту уже
// после сброса.
type StatsCacheListener struct {
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
}

func NewStatsCacheListener(cacheRepo repositories.CacheRepositoryInterface, logger *zap.Logger) *StatsCacheListener {
	return &StatsCacheListener{cacheRepo: cacheRepo, logger: logger}
}

func (l *StatsCacheListener) Register(bus *eventbus.Bus) {
	bus.SubscribeSync(events.RepairChangedEvent{}.Name(), l.handle)
	bus.SubscribeSync(events.LedgerChangedEvent{}.Name(), l.handle)
	l.logger.Info("StatsCacheListener подписан на события заявок и журналов")
}

func (l *StatsCacheListener) handle(ctx context.Context, event eventbus.Event) error {
	if l.cacheRepo == nil {
		return nil
	}
	// сначала поколение: расчет, начатый до мутации, не сможет записать свой результат
	gen, err := l.cacheRepo.Incr(ctx, constants.CacheKeyRepairSummaryGeneration)
	if err != nil {
		return err
	}
	if err := l.cacheRepo.Del(ctx, constants.CacheKeyRepairSummaryStats); err != nil {
		return err
	}

	fields := []zap.Field{zap.String("event", event.Name()), zap.Int64("generation", gen)}
	switch e := event.(type) {
	case events.RepairChangedEvent:
		fields = append(fields, zap.Uint64("repairID", e.RepairID), zap.String("kind", e.Kind))
	case events.LedgerChangedEvent:
		fields = append(fields, zap.Uint64("deviceID", e.DeviceID), zap.String("kind", e.Kind))
	}
	l.logger.Debug("Кеш статистики сброшен", fields...)
	return nil
}
