package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/folio/backend/pkg/auth"
)

// AuthServiceImpl は AuthService の実装
type AuthServiceImpl struct {
	account OperatorAccount
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
}

// NewAuthService は AuthServiceImpl を生成する
func NewAuthService(account OperatorAccount, secret []byte, ttl time.Duration) AuthService {
	return &AuthServiceImpl{account: account, secret: secret, ttl: ttl, now: time.Now}
}

// Login compares the email in constant time and the password with bcrypt.
// Any mismatch, including an unconfigured account, yields ErrInvalidCredentials.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	want := strings.ToLower(strings.TrimSpace(s.account.Email))

	emailOK := want != "" && subtle.ConstantTimeCompare([]byte(email), []byte(want)) == 1
	// bcrypt runs even when the email does not match.
	passwordOK := auth.CheckPassword(s.account.PasswordHash, password)
	if !emailOK || !passwordOK {
		slog.WarnContext(ctx, "operator login rejected", "email", email)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := auth.CreateSessionToken(want, s.secret, s.ttl, s.now())
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	slog.InfoContext(ctx, "operator logged in", "email", want)
	return &Session{Token: token, Email: want, ExpiresAt: expiresAt}, nil
}
