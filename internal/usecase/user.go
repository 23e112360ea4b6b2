package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// UserDTO — представление пользователя на HTTP-границе.
// Отличается от доменной модели: пароль (и его хэш) наружу не выходит.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

// CreateUserInput — входные данные на создание пользователя.
// Пароль принимается только здесь и только на вход.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput — входные данные на обновление пользователя.
// Меняются только имя и email, пароль через этот поток не проходит.
type UpdateUserInput struct {
	Name  string
	Email string
}

// UserUseCase определяет интерфейс бизнес-логики работы с пользователями.
type UserUseCase interface {
	// ListUsers возвращает всех пользователей в порядке итерации хранилища
	ListUsers(ctx context.Context) ([]UserDTO, error)

	// GetUserByID возвращает пользователя по внутреннему ID.
	// Если записи нет — domain.ErrUserNotFound
	GetUserByID(ctx context.Context, id uuid.UUID) (*UserDTO, error)

	// CreateUser создает нового пользователя. Если email уже занят —
	// domain.ErrEmailTaken, запись при этом не создается
	CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error)

	// UpdateUser обновляет имя и email существующего пользователя.
	// domain.ErrUserNotFound если записи нет, domain.ErrEmailTaken если
	// новый email занят другим пользователем
	UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error)

	// DeleteUser удаляет пользователя по ID.
	// domain.ErrUserNotFound если записи нет
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// SetUserAvatar загружает аватар пользователя в файловое хранилище
	// и сохраняет его URL в записи пользователя
	SetUserAvatar(ctx context.Context, id uuid.UUID, reader io.Reader, contentType string) (*UserDTO, error)
}
