package ports

import (
	"context"

	"github.com/GoArmGo/UserApp/internal/messaging/payloads"
)

// UserEventPublisher определяет методы для публикации событий жизненного цикла пользователя.
// Используется usecase-слоем: публикация best-effort, ошибка публикации не
// должна ронять HTTP-запрос.
type UserEventPublisher interface {
	PublishUserEvent(ctx context.Context, payload payloads.UserEventPayload) error
}

// UserEventConsumer определяет методы для потребления событий пользователя,
// будет использоваться воркером для получения задач из очереди
type UserEventConsumer interface {
	// StartConsumingUserEvents начинает прослушивание очереди событий пользователя,
	// принимает функцию-обработчик, которая вызывается для каждого сообщения
	StartConsumingUserEvents(ctx context.Context, handler func(context.Context, payloads.UserEventPayload) error) error
}
