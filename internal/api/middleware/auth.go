package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	requestIDKey
)

const headerUserID = "X-User-ID"

// Auth проверяет наличие X-User-ID и кладет его в контекст запроса.
// Сервис доверяет заголовку: аутентификацию выполняет внешний gateway.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(headerUserID)
		if userID == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID достает идентификатор пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}
