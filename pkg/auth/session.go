package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// RoleOperator is the only role that may use the admin API.
const RoleOperator = "operator"

// ErrInvalidSession is returned for malformed, tampered or expired tokens.
var ErrInvalidSession = errors.New("invalid session")

// Operator is the verified identity behind an admin session.
type Operator struct {
	Email     string
	ExpiresAt time.Time
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CreateSessionToken はオペレーターのメールアドレスから署名付きセッショントークンを生成する
func CreateSessionToken(email string, secret []byte, ttl time.Duration, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(ttl)
	claims := sessionClaims{
		Role: RoleOperator,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return token, expiresAt, nil
}

// VerifySessionToken はトークンを検証しオペレーターを返す
func VerifySessionToken(token string, secret []byte) (*Operator, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}
	if claims.Role != RoleOperator || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidSession
	}
	return &Operator{Email: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}

const sessionCookieName = "folio_session"
const minSecretLen = 32

// SessionCookieName はセッションクッキー名
func SessionCookieName() string {
	return sessionCookieName
}

// SessionSecretBytes は文字列からセッション署名用のバイト列を生成する（最低32バイト）
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
