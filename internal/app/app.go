package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/UserApp/internal/config"
	"github.com/GoArmGo/UserApp/internal/core/ports"
	"github.com/GoArmGo/UserApp/internal/usecase"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Config        *config.Config
	logger        *slog.Logger
	db            *sqlx.DB
	userUseCase   usecase.UserUseCase
	eventConsumer ports.UserEventConsumer
	fileStorage   ports.FileStorage
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	db *sqlx.DB,
	userUseCase usecase.UserUseCase,
	eventConsumer ports.UserEventConsumer,
	fileStorage ports.FileStorage,
) *App {
	return &App{
		Config:        cfg,
		logger:        logger,
		db:            db,
		userUseCase:   userUseCase,
		eventConsumer: eventConsumer,
		fileStorage:   fileStorage,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, mode *string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("application run", "mode", *mode)

	var err error

	switch *mode {
	case "server":
		err = runServer(ctx, a.Config, a.userUseCase, a.logger)

	case "worker":
		err = runWorker(ctx, a.Config, a.eventConsumer, a.fileStorage, a.logger)

	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", *mode)
	}

	if err != nil {
		return err
	}

	a.logger.Info("shutting down")

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	a.logger.Info("shutdown complete")
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}

	// если consumer имеет метод Close — вызываем его
	if closer, ok := a.eventConsumer.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	return nil
}
