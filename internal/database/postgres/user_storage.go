package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/UserApp/internal/config"
	"github.com/GoArmGo/UserApp/internal/domain"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewGormDB открывает подключение к PostgreSQL через GORM.
// TranslateError нужен, чтобы нарушение уникального индекса приходило
// как gorm.ErrDuplicatedKey.
func NewGormDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия GORM-соединения с БД: %w", err)
	}
	return db, nil
}

// GormUserStorage реализует интерфейс ports.UserStorage с использованием GORM
type GormUserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormUserStorage создает новый экземпляр GormUserStorage
func NewGormUserStorage(db *gorm.DB, logger *slog.Logger) *GormUserStorage {
	return &GormUserStorage{db: db, logger: logger}
}

// SaveUser сохраняет пользователя (upsert) с помощью GORM.
// Нарушение уникального индекса по email — domain.ErrEmailTaken.
func (s *GormUserStorage) SaveUser(ctx context.Context, user *domain.User) error {
	isNew := user.ID == uuid.Nil
	if isNew {
		user.ID = uuid.New()
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = time.Now()

	// GORM Save с заполненным PK делает UPDATE, поэтому для новой записи — Create
	var result *gorm.DB
	if isNew {
		result = s.db.WithContext(ctx).Create(user)
	} else {
		result = s.db.WithContext(ctx).Save(user)
	}
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			s.logger.Warn("unique violation on users.email", "email", user.Email)
			return domain.ErrEmailTaken
		}
		s.logger.Error("failed to save user with GORM", "user_id", user.ID, "error", result.Error)
		return fmt.Errorf("ошибка при сохранении пользователя в БД с помощью GORM: %w", result.Error)
	}

	s.logger.Info("user saved (GORM)", "user_id", user.ID)
	return nil
}

// GetUserByIDFromDB получает пользователя по ID с помощью GORM
func (s *GormUserStorage) GetUserByIDFromDB(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по ID из БД с помощью GORM: %w", result.Error)
	}
	return &user, nil
}

// ListUsersFromDB получает всех пользователей с помощью GORM
func (s *GormUserStorage) ListUsersFromDB(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	result := s.db.WithContext(ctx).Order("created_at").Find(&users)
	if result.Error != nil {
		return nil, fmt.Errorf("ошибка при получении списка пользователей из БД с помощью GORM: %w", result.Error)
	}
	return users, nil
}

// ExistsByEmail проверяет, занят ли email, с помощью GORM
func (s *GormUserStorage) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("ошибка при проверке email в БД с помощью GORM: %w", result.Error)
	}
	return count > 0, nil
}

// ExistsByID проверяет существование пользователя по ID с помощью GORM
func (s *GormUserStorage) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("ошибка при проверке пользователя в БД с помощью GORM: %w", result.Error)
	}
	return count > 0, nil
}

// DeleteUserByID удаляет пользователя по ID с помощью GORM.
// Отсутствующая запись — no-op.
func (s *GormUserStorage) DeleteUserByID(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&domain.User{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("ошибка при удалении пользователя из БД с помощью GORM: %w", result.Error)
	}
	return nil
}
