package di

import (
	"github.com/GoArmGo/UserApp/internal/adapter/storage/minio"
	"github.com/GoArmGo/UserApp/internal/app"
	"github.com/GoArmGo/UserApp/internal/config"
	"github.com/GoArmGo/UserApp/internal/core/ports"
	"github.com/GoArmGo/UserApp/internal/database/client"
	"github.com/GoArmGo/UserApp/internal/database/postgres"
	"github.com/GoArmGo/UserApp/internal/database/storage"
	"github.com/GoArmGo/UserApp/internal/logger"
	"github.com/GoArmGo/UserApp/internal/rabbitmq"
	"github.com/GoArmGo/UserApp/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента (sqlx + миграции)
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилища пользователей (реализация по DB_DRIVER)
	var userStorage ports.UserStorage
	if cfg.DBDriver == "gorm" {
		gormDB, err := postgres.NewGormDB(cfg)
		if err != nil {
			return nil, err
		}
		userStorage = postgres.NewGormUserStorage(gormDB, slogger)
	} else {
		userStorage = storage.NewUserStorage(dbClient.DB, slogger)
	}
	slogger.Info("user storage initialized", "driver", cfg.DBDriver)

	// 4. Инициализация файлового хранилища (MinIO / S3)
	fileStorage, err := minio.NewMinioClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 5. Инициализация RabbitMQ клиента (publisher + consumer)
	rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 6. Инициализация бизнес-логики
	userUseCase := usecase.NewUserUseCase(userStorage, fileStorage, rabbitMQClient, slogger)

	// 7. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient.DB,
		userUseCase,
		rabbitMQClient,
		fileStorage,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
