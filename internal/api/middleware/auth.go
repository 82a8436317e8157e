package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	msgMissingUser = "отсутствует или некорректен X-User-ID"
	msgInvalidRole = "отсутствует или некорректен X-User-Role"
)

type contextKey string

const actorKey contextKey = "actor"

// Auth извлекает пользователя из заголовков, выставленных внешним слоем аутентификации
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUser)
			return
		}

		role, err := domain.ParseRole(r.Header.Get(HeaderUserRole))
		if err != nil {
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}

		ctx := WithActor(r.Context(), domain.Actor{Role: role, ID: userID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithActor кладет пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor получает пользователя из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
