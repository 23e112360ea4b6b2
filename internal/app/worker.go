package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/UserApp/internal/config"
	"github.com/GoArmGo/UserApp/internal/core/ports"
	"github.com/GoArmGo/UserApp/internal/messaging/payloads"
)

// runWorker запускает потребителя RabbitMQ и обрабатывает события пользователей:
// на user.created отправляется приветствие, на user.deleted чистится аватар в MinIO
func runWorker(
	ctx context.Context,
	cfg *config.Config,
	eventConsumer ports.UserEventConsumer,
	fileStorage ports.FileStorage,
	logger *slog.Logger,
) error {
	logger.Info("worker started, waiting for user events")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	// Функция-обработчик для событий пользователя
	messageHandler := func(ctx context.Context, payload payloads.UserEventPayload) error {
		switch payload.Event {
		case payloads.UserCreated:
			// TODO: подключить реальную отправку писем, когда появится SMTP-шлюз
			logger.Info("welcome message scheduled", "user_id", payload.UserID, "email", payload.Email)
			return nil

		case payloads.UserDeleted:
			if payload.AvatarKey == "" {
				return nil
			}
			if err := fileStorage.DeleteFile(ctx, payload.AvatarKey); err != nil {
				logger.Error("failed to delete avatar object", "key", payload.AvatarKey, "error", err)
				return err
			}
			logger.Info("avatar object deleted", "key", payload.AvatarKey, "user_id", payload.UserID)
			return nil

		default:
			// Неизвестные события не возвращаем в очередь
			logger.Warn("unknown user event, skipping", "event", payload.Event)
			return nil
		}
	}

	// Запускаем потребление сообщений
	if err := eventConsumer.StartConsumingUserEvents(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	// Graceful Shutdown для воркера
	<-ctx.Done()

	logger.Info("shutdown signal received, stopping worker")
	cancelWorker()

	logger.Info("worker stopped gracefully")
	return nil
}
