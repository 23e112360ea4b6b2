package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/UserApp/internal/domain"
	"github.com/google/uuid"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей.
// Реализации обязаны:
//   - возвращать domain.ErrUserNotFound из GetUserByIDFromDB, если записи нет;
//   - возвращать domain.ErrEmailTaken из SaveUser при нарушении уникального
//     индекса по email (индекс в БД — авторитетная защита от гонки
//     check-then-act, предварительная проверка в usecase лишь для
//     дружелюбного ответа).
type UserStorage interface {
	SaveUser(ctx context.Context, user *domain.User) error
	GetUserByIDFromDB(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListUsersFromDB(ctx context.Context) ([]domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteUserByID(ctx context.Context, id uuid.UUID) error
}

// FileStorage определяет интерфейс для работы с файловым хранилищем (AWS S3, MinIO)
// порт для хранения бинарных данных (аватары пользователей)
type FileStorage interface {
	// UploadFile загружает файл в хранилище и возвращает его публичный URL.
	// `key` - уникальное имя файла в хранилище (например, "user-avatars/<id>").
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// DeleteFile удаляет файл из хранилища по его ключу.
	DeleteFile(ctx context.Context, key string) error
}
