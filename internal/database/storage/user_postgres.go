package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/UserApp/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Код ошибки PostgreSQL "unique_violation"
const pgUniqueViolation = "23505"

// UserStorage реализует интерфейс ports.UserStorage поверх sqlx
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// isUniqueViolation распознает нарушение уникального индекса по email
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

// SaveUser сохраняет пользователя (upsert). Новой записи присваивается ID.
// Нарушение уникального индекса по email возвращается как domain.ErrEmailTaken.
func (s *UserStorage) SaveUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = time.Now()

	_, err := s.db.NamedExecContext(ctx, `
        INSERT INTO users (id, name, email, password_hash, avatar_url, created_at, updated_at)
        VALUES (:id, :name, :email, :password_hash, :avatar_url, :created_at, :updated_at)
        ON CONFLICT (id) DO UPDATE
        SET name = :name, email = :email, avatar_url = :avatar_url, updated_at = :updated_at
    `, user)
	if err != nil {
		if isUniqueViolation(err) {
			s.logger.Warn("unique violation on users.email", "email", user.Email)
			return domain.ErrEmailTaken
		}
		s.logger.Error("failed to upsert user", "user_id", user.ID, "error", err)
		return fmt.Errorf("upsert user: %w", err)
	}

	s.logger.Info("user saved",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetUserByIDFromDB получает пользователя по внутреннему ID.
// Если записи нет — domain.ErrUserNotFound.
func (s *UserStorage) GetUserByIDFromDB(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		s.logger.Error("failed to select user by id", "user_id", id, "error", err)
		return nil, fmt.Errorf("select user by id: %w", err)
	}
	return &user, nil
}

// ListUsersFromDB получает всех пользователей из бд
func (s *UserStorage) ListUsersFromDB(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	err := s.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY created_at`)
	if err != nil {
		s.logger.Error("failed to select users", "error", err)
		return nil, fmt.Errorf("select users: %w", err)
	}
	return users, nil
}

// ExistsByEmail проверяет, занят ли email
func (s *UserStorage) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		s.logger.Error("failed to check email existence", "email", email, "error", err)
		return false, fmt.Errorf("exists by email: %w", err)
	}
	return exists, nil
}

// ExistsByID проверяет, существует ли пользователь с данным ID
func (s *UserStorage) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id)
	if err != nil {
		s.logger.Error("failed to check user existence", "user_id", id, "error", err)
		return false, fmt.Errorf("exists by id: %w", err)
	}
	return exists, nil
}

// DeleteUserByID удаляет пользователя по ID.
// Удаление отсутствующей записи — no-op: гонка двойного удаления безвредна.
func (s *UserStorage) DeleteUserByID(ctx context.Context, id uuid.UUID) error {
	start := time.Now()

	_, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info("user deleted from db",
		"user_id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
