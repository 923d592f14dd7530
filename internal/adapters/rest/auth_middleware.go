package rest

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const ownerKey = contextKey("owner")

// OwnerMiddleware извлекает владельца избранного из X-User-ID (проставляет шлюз).
func OwnerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, ok, err := ownerFromHeader(r)
		if !ok {
			WriteJSONError(w, http.StatusUnauthorized, "X-User-ID header is missing")
			return
		}
		if err != nil {
			WriteJSONError(w, http.StatusUnauthorized, "Invalid X-User-ID header format")
			return
		}

		ctx := context.WithValue(r.Context(), ownerKey, owner)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ownerFromHeader: ok == false, если заголовка нет.
func ownerFromHeader(r *http.Request) (string, bool, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return "", false, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", true, err
	}
	return id.String(), true, nil
}

func ownerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(ownerKey).(string)
	return owner, ok && owner != ""
}
