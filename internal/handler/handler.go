package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/UserApp/internal/domain"
	"github.com/GoArmGo/UserApp/internal/usecase"
	"github.com/GoArmGo/UserApp/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UserHandler — обработчик HTTP-запросов для работы с пользователями.
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(uc usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: uc,
		logger:      logger,
	}
}

// CreateUserRequest — тело запроса на создание пользователя.
// Пароль принимается только на вход и никогда не возвращается.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest — тело запроса на обновление пользователя.
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// respondWithValidationErrors — отправляет 400 со списком ошибок по полям.
func respondWithValidationErrors(w http.ResponseWriter, errs []validation.FieldError, logger *slog.Logger) {
	respondWithJSON(w, http.StatusBadRequest, map[string][]validation.FieldError{"errors": errs}, logger)
}

// respondWithUseCaseError маппит доменные ошибки в статус-коды:
// ErrUserNotFound → 404, ErrEmailTaken → 409, остальное → 500.
func (h *UserHandler) respondWithUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, domain.ErrUserNotFound.Error(), h.logger)
	case errors.Is(err, domain.ErrEmailTaken):
		respondWithError(w, http.StatusConflict, domain.ErrEmailTaken.Error(), h.logger)
	default:
		respondWithError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера", h.logger)
	}
}

// parseUserID извлекает и парсит {id} из пути.
func (h *UserHandler) parseUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Warn("invalid user id parameter", "id", idStr, "error", err)
		respondWithError(w, http.StatusBadRequest, "Некорректный id пользователя", h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// GetUsers — возвращает список всех пользователей.
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUseCase.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		h.respondWithUseCaseError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, users, h.logger)
}

// GetUserByID — возвращает пользователя по id.
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userUseCase.GetUserByID(r.Context(), id)
	if err != nil {
		h.logger.Warn("failed to get user", "user_id", id, "error", err)
		h.respondWithUseCaseError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// CreateUser — создаёт нового пользователя.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		respondWithError(w, http.StatusBadRequest, "Некорректное тело запроса", h.logger)
		return
	}

	// Валидация на границе, до вызова бизнес-логики
	if errs := validation.ValidateCreateUser(req.Name, req.Email, req.Password); len(errs) > 0 {
		h.logger.Warn("create user validation failed", "email", req.Email)
		respondWithValidationErrors(w, errs, h.logger)
		return
	}

	user, err := h.userUseCase.CreateUser(r.Context(), usecase.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warn("failed to create user", "email", req.Email, "error", err)
		h.respondWithUseCaseError(w, err)
		return
	}

	h.logger.Info("user created", "user_id", user.ID)
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// UpdateUser — обновляет имя и email пользователя.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseUserID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		respondWithError(w, http.StatusBadRequest, "Некорректное тело запроса", h.logger)
		return
	}

	if errs := validation.ValidateUpdateUser(req.Name, req.Email); len(errs) > 0 {
		h.logger.Warn("update user validation failed", "user_id", id)
		respondWithValidationErrors(w, errs, h.logger)
		return
	}

	user, err := h.userUseCase.UpdateUser(r.Context(), id, usecase.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.logger.Warn("failed to update user", "user_id", id, "error", err)
		h.respondWithUseCaseError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// DeleteUser — удаляет пользователя по id.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseUserID(w, r)
	if !ok {
		return
	}

	if err := h.userUseCase.DeleteUser(r.Context(), id); err != nil {
		h.logger.Warn("failed to delete user", "user_id", id, "error", err)
		h.respondWithUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadAvatar — загружает аватар пользователя в файловое хранилище.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseUserID(w, r)
	if !ok {
		return
	}

	contentType := r.Header.Get("Content-Type")

	user, err := h.userUseCase.SetUserAvatar(r.Context(), id, r.Body, contentType)
	if err != nil {
		h.logger.Warn("failed to upload avatar", "user_id", id, "error", err)
		h.respondWithUseCaseError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user, h.logger)
}
