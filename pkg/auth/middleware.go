package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const operatorKey contextKey = "operator"

// OperatorFromContext は context からオペレーターを取得する
func OperatorFromContext(ctx context.Context) (*Operator, bool) {
	op, ok := ctx.Value(operatorKey).(*Operator)
	return op, ok && op != nil
}

// WithOperator は context にオペレーターをセットする
func WithOperator(ctx context.Context, op *Operator) context.Context {
	return context.WithValue(ctx, operatorKey, op)
}

// TokenFromRequest reads the session from the cookie, falling back to a
// bearer Authorization header.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName()); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// RequireOperator は認証必須ミドルウェア。セッションを検証し、オペレーターを context にセットする
func RequireOperator(sessionSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}

			op, err := VerifySessionToken(token, sessionSecret)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_session"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOperator(r.Context(), op)))
		})
	}
}

// DevOperatorEmail は開発用のダミーオペレーター（AUTH_REQUIRED=false 時に使用）
const DevOperatorEmail = "dev-operator@localhost"

// DevAuth は開発用ミドルウェア。ダミーオペレーターを context にセットする
func DevAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		op := &Operator{Email: DevOperatorEmail, ExpiresAt: time.Now().Add(time.Hour)}
		next.ServeHTTP(w, r.WithContext(WithOperator(r.Context(), op)))
	})
}
