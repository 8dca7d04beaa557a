package service

import (
	"context"
	"time"
)

// OperatorAccount is the single admin account allowed into the console.
type OperatorAccount struct {
	Email        string
	PasswordHash string
}

// Session is an issued operator session token.
type Session struct {
	Token     string    `json:"-"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthService は認証に関するビジネスロジックのインターフェース
type AuthService interface {
	// Login checks the operator credentials and issues a signed session.
	Login(ctx context.Context, email, password string) (*Session, error)
}
