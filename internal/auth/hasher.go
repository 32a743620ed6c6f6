// Package auth は認証・認可機能を提供します。
package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword は空のパスワードをハッシュ化しようとした場合のエラーです。
var ErrEmptyPassword = errors.New("password must not be empty")

// Hasher はbcryptによるパスワードのハッシュ化と検証を行います。
// コストファクターはテストで小さくできるよう注入式にしています。
type Hasher struct {
	cost int
}

// NewHasher は指定のコストファクターでHasherを作成します。
// 範囲外のコストはbcryptのデフォルトコストに丸めます。
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash はパスワードをハッシュ化し、ハッシュとソルトを返します。
// ソルトはbcrypt出力の "$2a$<cost>$<22文字>" プレフィックスで、
// アカウントごとにランダムに生成されます。
func (h *Hasher) Hash(password string) (hash string, salt string, err error) {
	if password == "" {
		return "", "", ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", "", err
	}

	hash = string(hashed)
	salt, err = saltFromHash(hash)
	if err != nil {
		return "", "", err
	}
	return hash, salt, nil
}

// Verify はパスワードが保存済みハッシュと一致するかを検証します。
// ハッシュが空・不正な場合も false を返し、呼び出し側の拒否パスに乗せます。
func (h *Hasher) Verify(password, storedHash string) bool {
	if password == "" || storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}

// bcryptのソルト部は バージョン・コスト区切り後の22文字です。
const bcryptSaltLen = 22

// saltFromHash はbcryptハッシュ文字列からソルトプレフィックスを取り出します。
func saltFromHash(hash string) (string, error) {
	// 形式: $2a$10$<22文字ソルト><31文字ハッシュ>
	parts := strings.SplitN(hash, "$", 4)
	if len(parts) != 4 || len(parts[3]) < bcryptSaltLen {
		return "", errors.New("unexpected bcrypt hash format")
	}
	prefixLen := len(hash) - len(parts[3]) + bcryptSaltLen
	return hash[:prefixLen], nil
}
