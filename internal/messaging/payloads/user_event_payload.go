package payloads

// Типы событий жизненного цикла пользователя.
const (
	UserCreated = "user.created"
	UserDeleted = "user.deleted"
)

// UserEventPayload представляет событие жизненного цикла пользователя,
// передаваемое через RabbitMQ.
// AvatarKey заполняется только для user.deleted — воркер по нему чистит
// объект в MinIO.
type UserEventPayload struct {
	Event     string `json:"event"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarKey string `json:"avatar_key,omitempty"`
}
