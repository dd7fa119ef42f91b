package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event - любое событие, публикуемое сервисами после успешного коммита.
type Event interface {
	Name() string
}

type Listener func(ctx context.Context, event Event) error

// Bus - внутрипроцессная шина. Обычные слушатели вызываются асинхронно,
// синхронные (SubscribeSync) - до возврата из Publish. Ошибки только логируются.
type Bus struct {
	listeners map[string][]Listener
	sync      map[string][]Listener
	mu        sync.RWMutex
	wg        sync.WaitGroup
	timeout   time.Duration
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		sync:      make(map[string][]Listener),
		timeout:   time.Minute,
		logger:    logger,
	}
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// SubscribeSync регистрирует слушателя, который выполняется в горутине
// публикующего. Нужен там, где следующий запрос клиента должен видеть результат
// обработки (сброс кеша).
func (b *Bus) SubscribeSync(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sync[eventName] = append(b.sync[eventName], listener)
}

// Publish ждет только синхронных слушателей. Отмена контекста запроса до них
// не доходит: изменение уже закоммичено. Асинхронным слушателям контекст
// запроса не передается вовсе.
func (b *Bus) Publish(ctx context.Context, event Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	eventName := event.Name()
	for _, listener := range b.sync[eventName] {
		syncCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.timeout)
		err := listener(syncCtx, event)
		cancel()
		if err != nil {
			b.logger.Error("Ошибка в синхронном обработчике события",
				zap.String("event", eventName),
				zap.Error(err),
			)
		}
	}

	for _, listener := range b.listeners[eventName] {
		b.wg.Add(1)
		go func(l Listener) {
			defer b.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
			defer cancel()

			if err := l(ctx, event); err != nil {
				b.logger.Error("Ошибка в обработчике события",
					zap.String("event", eventName),
					zap.Error(err),
				)
			}
		}(listener)
	}
}

// Wait дожидается завершения уже запущенных обработчиков (graceful shutdown, тесты).
func (b *Bus) Wait() {
	b.wg.Wait()
}
