// Package notes はノートのモデル・永続化・保護されたAPIハンドラーを提供します。
package notes

import (
	"context"
	"errors"
	"time"
)

// ErrAccountMissing はノート作成時に所有者アカウントが存在しない場合のエラーです。
// 検証済みトークンの subject が削除済みアカウントを指すケースで発生します。
var ErrAccountMissing = errors.New("owner account does not exist")

// Note は1件のノートを表します。
type Note struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Repository はノートの永続化操作を定義します。
type Repository interface {
	Create(ctx context.Context, n *Note) error
	ListByAccount(ctx context.Context, accountID string) ([]Note, error)
}
