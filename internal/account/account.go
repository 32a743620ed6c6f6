// Package account はユーザーアカウントのモデルと永続化を提供します。
package account

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound は該当アカウントが存在しない場合のエラーです。
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateEmail はメールアドレスの一意制約違反を表します。
	ErrDuplicateEmail = errors.New("email already registered")
)

// Account はユーザーアカウントを表します。
// PasswordHash と Salt は派生値であり、平文パスワードは保持しません。
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Salt         string
	CreatedAt    time.Time
}

// Repository はアカウントの永続化操作を定義します。
type Repository interface {
	Create(ctx context.Context, a *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
}
