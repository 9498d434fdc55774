package cache

import (
	"context"
	"time"
)

// Store хранилище байтовых значений с TTL и счётчиками версий
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Version возвращает текущую версию области, 0 если версия ещё не выставлялась
	Version(ctx context.Context, scope string) (int64, error)
	// Bump увеличивает версию области, делая недоступными все ключи предыдущей версии
	Bump(ctx context.Context, scope string) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}
