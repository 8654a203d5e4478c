package worker

import (
	"context"
)

// Worker интерфейс для фоновых задач сервиса
type Worker interface {
	// Start запускает воркер и блокируется до завершения работы
	Start(ctx context.Context) error

	// Stop останавливает воркер
	Stop() error

	// Name возвращает имя воркера
	Name() string
}
