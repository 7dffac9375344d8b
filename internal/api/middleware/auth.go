package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	isAdminKey contextKey = "isAdmin"

	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
	roleAdmin      = "admin"

	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "недействительный токен авторизации"
	msgMissingUser  = "отсутствует ID пользователя"
	msgAdminOnly    = "доступно только администратору"
)

// TokenVerifier проверяет Firebase ID token (реализуется *auth.Client)
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// FirebaseAuth проверяет "Authorization: Bearer <ID token>" и кладет UID и признак
// администратора (custom claim adminClaim == true) в контекст
func FirebaseAuth(verifier TokenVerifier, adminClaim string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			token, err := verifier.VerifyIDToken(r.Context(), strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logger.Warn("Auth - invalid ID token: %v", err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			isAdmin := false
			if v, ok := token.Claims[adminClaim].(bool); ok {
				isAdmin = v
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), token.UID, isAdmin)))
		})
	}
}

// Auth берет пользователя из заголовков X-User-ID и X-User-Role.
// Используется только в локальном режиме без Firebase.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(headerUserID))
		if userID == "" {
			handlers.RespondUnauthorized(w, msgMissingUser)
			return
		}
		isAdmin := strings.EqualFold(r.Header.Get(headerUserRole), roleAdmin)
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID, isAdmin)))
	})
}

// RequireAdmin пропускает только администраторов; ставится после Auth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUser кладет пользователя в контекст
func WithUser(ctx context.Context, userID string, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, isAdminKey, isAdmin)
}

// GetUserID возвращает UID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// IsAdmin возвращает true для администратора
func IsAdmin(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(isAdminKey).(bool)
	return isAdmin
}
