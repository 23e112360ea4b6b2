package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/GoArmGo/UserApp/internal/core/ports"
	"github.com/GoArmGo/UserApp/internal/domain"
	"github.com/GoArmGo/UserApp/internal/messaging/payloads"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// userUseCase implements UserUseCase
type userUseCase struct {
	userStorage ports.UserStorage
	fileStorage ports.FileStorage
	publisher   ports.UserEventPublisher
	logger      *slog.Logger
}

// NewUserUseCase создает новый экземпляр UserUseCase,
// принимает реализации портов UserStorage, FileStorage и UserEventPublisher
func NewUserUseCase(
	userStorage ports.UserStorage,
	fileStorage ports.FileStorage,
	publisher ports.UserEventPublisher,
	logger *slog.Logger,
) UserUseCase {
	return &userUseCase{
		userStorage: userStorage,
		fileStorage: fileStorage,
		publisher:   publisher,
		logger:      logger,
	}
}

// toDTO маппит доменную модель в boundary-представление
func toDTO(user *domain.User) *UserDTO {
	return &UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
	}
}

// avatarKey — ключ объекта аватара в файловом хранилище
func avatarKey(id uuid.UUID) string {
	return fmt.Sprintf("user-avatars/%s", id)
}

// ListUsers возвращает всех пользователей из бд
func (uc *userUseCase) ListUsers(ctx context.Context) ([]UserDTO, error) {
	users, err := uc.userStorage.ListUsersFromDB(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении списка пользователей из БД: %w", err)
	}

	dtos := make([]UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, *toDTO(&users[i]))
	}

	uc.logger.Info("users listed", "count", len(dtos))
	return dtos, nil
}

// GetUserByID получает пользователя из бд по внутреннему ID
func (uc *userUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := uc.userStorage.GetUserByIDFromDB(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("usecase: ошибка при получении пользователя по ID %s: %w", id, err)
	}
	return toDTO(user), nil
}

// CreateUser создает нового пользователя.
// Предварительная проверка email — только для дружелюбного 409: между ней и
// записью нет атомарности, окончательную защиту дает уникальный индекс в БД,
// нарушение которого хранилище возвращает как domain.ErrEmailTaken.
func (uc *userUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	exists, err := uc.userStorage.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при проверке email %s: %w", input.Email, err)
	}
	if exists {
		uc.logger.Warn("email already taken", "email", input.Email)
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка хэширования пароля: %w", err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
	}

	if err := uc.userStorage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			// Параллельный Create успел раньше — уникальный индекс сработал
			uc.logger.Warn("unique constraint hit on insert", "email", input.Email)
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("usecase: ошибка при сохранении пользователя в БД: %w", err)
	}

	uc.publishEvent(ctx, payloads.UserEventPayload{
		Event:  payloads.UserCreated,
		UserID: user.ID.String(),
		Name:   user.Name,
		Email:  user.Email,
	})

	uc.logger.Info("user created", "user_id", user.ID, "email", user.Email)
	return toDTO(user), nil
}

// UpdateUser обновляет имя и email существующего пользователя.
// Email проверяется на занятость только если он действительно меняется —
// собственный email пользователя всегда допустим.
func (uc *userUseCase) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	user, err := uc.userStorage.GetUserByIDFromDB(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("usecase: ошибка при получении пользователя по ID %s: %w", id, err)
	}

	if user.Email != input.Email {
		exists, err := uc.userStorage.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, fmt.Errorf("usecase: ошибка при проверке email %s: %w", input.Email, err)
		}
		if exists {
			uc.logger.Warn("email already taken", "email", input.Email, "user_id", id)
			return nil, domain.ErrEmailTaken
		}
	}

	user.Name = input.Name
	user.Email = input.Email
	// Пароль через этот поток не меняется

	if err := uc.userStorage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			uc.logger.Warn("unique constraint hit on update", "email", input.Email, "user_id", id)
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("usecase: ошибка при обновлении пользователя %s: %w", id, err)
	}

	uc.logger.Info("user updated", "user_id", user.ID, "email", user.Email)
	return toDTO(user), nil
}

// DeleteUser удаляет пользователя по ID.
// Проверка существования — best effort: при гонке повторный DeleteUserByID
// по отсутствующей записи безвреден (no-op в хранилище).
func (uc *userUseCase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	exists, err := uc.userStorage.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("usecase: ошибка при проверке пользователя %s: %w", id, err)
	}
	if !exists {
		return domain.ErrUserNotFound
	}

	// Запоминаем аватар до удаления записи — воркер почистит объект в MinIO
	user, err := uc.userStorage.GetUserByIDFromDB(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("usecase: ошибка при получении пользователя %s: %w", id, err)
	}

	if err := uc.userStorage.DeleteUserByID(ctx, id); err != nil {
		return fmt.Errorf("usecase: ошибка при удалении пользователя %s: %w", id, err)
	}

	event := payloads.UserEventPayload{
		Event:  payloads.UserDeleted,
		UserID: id.String(),
	}
	if user != nil && user.AvatarURL != "" {
		event.AvatarKey = avatarKey(id)
	}
	uc.publishEvent(ctx, event)

	uc.logger.Info("user deleted", "user_id", id)
	return nil
}

// SetUserAvatar загружает аватар в файловое хранилище и сохраняет URL в записи
func (uc *userUseCase) SetUserAvatar(ctx context.Context, id uuid.UUID, reader io.Reader, contentType string) (*UserDTO, error) {
	user, err := uc.userStorage.GetUserByIDFromDB(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("usecase: ошибка при получении пользователя по ID %s: %w", id, err)
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := uc.fileStorage.UploadFile(ctx, avatarKey(id), reader, contentType)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка загрузки аватара пользователя %s: %w", id, err)
	}

	user.AvatarURL = url
	if err := uc.userStorage.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при сохранении аватара пользователя %s: %w", id, err)
	}

	uc.logger.Info("user avatar updated", "user_id", id, "url", url)
	return toDTO(user), nil
}

// publishEvent публикует событие best-effort: ошибка публикации логируется,
// но не роняет запрос
func (uc *userUseCase) publishEvent(ctx context.Context, payload payloads.UserEventPayload) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishUserEvent(ctx, payload); err != nil {
		uc.logger.Error("failed to publish user event", "event", payload.Event, "user_id", payload.UserID, "error", err)
	}
}
