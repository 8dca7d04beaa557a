package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/folio/backend/internal/service"
	"github.com/folio/backend/pkg/auth"
)

// AuthConfig は AuthHandler の設定
type AuthConfig struct {
	SessionSecret []byte
	SecureCookie  bool
	// DevMode reports the dev operator from /api/auth/me when auth is disabled.
	DevMode bool
}

// AuthHandler はオペレーターのログイン・ログアウトを処理する
type AuthHandler struct {
	authService service.AuthService
	cfg         AuthConfig
}

// NewAuthHandler は AuthHandler を生成する
func NewAuthHandler(authService service.AuthService, cfg AuthConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool      `json:"authenticated"`
	Email         string    `json:"email,omitempty"`
	ExpiresAt     time.Time `json:"expires_at,omitzero"`
}

// Login は POST /api/auth/login を処理する。成功時はセッションクッキーを発行する
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	if err != nil {
		writeServiceError(w, r, err, "login_failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cfg.SecureCookie,
	})
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: true, Email: sess.Email, ExpiresAt: sess.ExpiresAt})
}

// Logout はログアウトする（POST /api/auth/logout）
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cfg.SecureCookie,
		Expires:  time.Unix(0, 0),
	})
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me は GET /api/auth/me を処理する。未ログインなら 401
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if h.cfg.DevMode {
		writeJSON(w, http.StatusOK, sessionResponse{Authenticated: true, Email: auth.DevOperatorEmail})
		return
	}
	token := auth.TokenFromRequest(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, sessionResponse{})
		return
	}
	op, err := auth.VerifySessionToken(token, h.cfg.SessionSecret)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, sessionResponse{})
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: true, Email: op.Email, ExpiresAt: op.ExpiresAt})
}
