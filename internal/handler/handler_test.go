package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GoArmGo/UserApp/internal/domain"
	"github.com/GoArmGo/UserApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserUseCase — подменяет бизнес-логику: каждая операция настраивается
// полями out/err
type fakeUserUseCase struct {
	listOut []usecase.UserDTO
	listErr error

	getOut *usecase.UserDTO
	getErr error

	createOut *usecase.UserDTO
	createErr error

	updateOut *usecase.UserDTO
	updateErr error

	deleteErr error

	avatarOut *usecase.UserDTO
	avatarErr error
}

func (f *fakeUserUseCase) ListUsers(ctx context.Context) ([]usecase.UserDTO, error) {
	return f.listOut, f.listErr
}

func (f *fakeUserUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*usecase.UserDTO, error) {
	return f.getOut, f.getErr
}

func (f *fakeUserUseCase) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*usecase.UserDTO, error) {
	return f.createOut, f.createErr
}

func (f *fakeUserUseCase) UpdateUser(ctx context.Context, id uuid.UUID, input usecase.UpdateUserInput) (*usecase.UserDTO, error) {
	return f.updateOut, f.updateErr
}

func (f *fakeUserUseCase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return f.deleteErr
}

func (f *fakeUserUseCase) SetUserAvatar(ctx context.Context, id uuid.UUID, reader io.Reader, contentType string) (*usecase.UserDTO, error) {
	return f.avatarOut, f.avatarErr
}

func newTestRouter(uc usecase.UserUseCase) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewUserHandler(uc, logger)

	r := chi.NewRouter()
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.GetUsers)
		r.Post("/", h.CreateUser)
		r.Get("/{id}", h.GetUserByID)
		r.Put("/{id}", h.UpdateUser)
		r.Delete("/{id}", h.DeleteUser)
		r.Post("/{id}/avatar", h.UploadAvatar)
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetUsers_OK(t *testing.T) {
	uc := &fakeUserUseCase{
		listOut: []usecase.UserDTO{
			{ID: uuid.New(), Name: "John Doe", Email: "john@example.com"},
		},
	}
	rec := doRequest(t, newTestRouter(uc), http.MethodGet, "/users", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var users []usecase.UserDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "john@example.com", users[0].Email)
}

func TestGetUsers_StorageFault_500(t *testing.T) {
	uc := &fakeUserUseCase{listErr: context.DeadlineExceeded}
	rec := doRequest(t, newTestRouter(uc), http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetUserByID_NotFound_404(t *testing.T) {
	uc := &fakeUserUseCase{getErr: domain.ErrUserNotFound}
	rec := doRequest(t, newTestRouter(uc), http.MethodGet, "/users/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestGetUserByID_InvalidID_400(t *testing.T) {
	uc := &fakeUserUseCase{}
	rec := doRequest(t, newTestRouter(uc), http.MethodGet, "/users/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateUser_OK(t *testing.T) {
	id := uuid.New()
	uc := &fakeUserUseCase{
		createOut: &usecase.UserDTO{ID: id, Name: "John Doe", Email: "john@example.com"},
	}
	body := strings.NewReader(`{"name":"John Doe","email":"john@example.com","password":"secret"}`)
	rec := doRequest(t, newTestRouter(uc), http.MethodPost, "/users", body)

	require.Equal(t, http.StatusOK, rec.Code)

	var dto usecase.UserDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, id, dto.ID)
	// Пароль не должен утекать в ответ
	assert.NotContains(t, rec.Body.String(), "secret")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestCreateUser_EmailTaken_409(t *testing.T) {
	uc := &fakeUserUseCase{createErr: domain.ErrEmailTaken}
	body := strings.NewReader(`{"name":"John Doe","email":"john@example.com","password":"secret"}`)
	rec := doRequest(t, newTestRouter(uc), http.MethodPost, "/users", body)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateUser_ValidationFailure_400(t *testing.T) {
	uc := &fakeUserUseCase{}
	body := strings.NewReader(`{"name":"","email":"john@example.org","password":"ab"}`)
	rec := doRequest(t, newTestRouter(uc), http.MethodPost, "/users", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Errors, 3)
}

func TestCreateUser_MalformedBody_400(t *testing.T) {
	uc := &fakeUserUseCase{}
	rec := doRequest(t, newTestRouter(uc), http.MethodPost, "/users", strings.NewReader(`{not-json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUser_OK(t *testing.T) {
	id := uuid.New()
	uc := &fakeUserUseCase{
		updateOut: &usecase.UserDTO{ID: id, Name: "Jane Roe", Email: "jane@example.com"},
	}
	body := strings.NewReader(`{"name":"Jane Roe","email":"jane@example.com"}`)
	rec := doRequest(t, newTestRouter(uc), http.MethodPut, "/users/"+id.String(), body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jane@example.com")
}

func TestUpdateUser_NotFound_404(t *testing.T) {
	uc := &fakeUserUseCase{updateErr: domain.ErrUserNotFound}
	body := strings.NewReader(`{"name":"Jane Roe","email":"jane@example.com"}`)
	rec := doRequest(t, newTestRouter(uc), http.MethodPut, "/users/"+uuid.NewString(), body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUser_EmailTaken_409(t *testing.T) {
	uc := &fakeUserUseCase{updateErr: domain.ErrEmailTaken}
	body := strings.NewReader(`{"name":"Jane Roe","email":"jane@example.com"}`)
	rec := doRequest(t, newTestRouter(uc), http.MethodPut, "/users/"+uuid.NewString(), body)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteUser_NoContent_204(t *testing.T) {
	uc := &fakeUserUseCase{}
	rec := doRequest(t, newTestRouter(uc), http.MethodDelete, "/users/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteUser_NotFound_404(t *testing.T) {
	uc := &fakeUserUseCase{deleteErr: domain.ErrUserNotFound}
	rec := doRequest(t, newTestRouter(uc), http.MethodDelete, "/users/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadAvatar_OK(t *testing.T) {
	id := uuid.New()
	uc := &fakeUserUseCase{
		avatarOut: &usecase.UserDTO{ID: id, Name: "John Doe", Email: "john@example.com", AvatarURL: "http://localhost:9000/avatars/user-avatars/" + id.String()},
	}
	rec := doRequest(t, newTestRouter(uc), http.MethodPost, "/users/"+id.String()+"/avatar", bytes.NewReader([]byte("png")))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "avatar_url")
}

func TestUploadAvatar_NotFound_404(t *testing.T) {
	uc := &fakeUserUseCase{avatarErr: domain.ErrUserNotFound}
	rec := doRequest(t, newTestRouter(uc), http.MethodPost, "/users/"+uuid.NewString()+"/avatar", bytes.NewReader([]byte("png")))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
