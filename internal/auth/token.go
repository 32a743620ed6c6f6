package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// トークン検証の失敗種別。呼び出し側が errors.Is で区別できるように
// 1つのエラーに潰さず個別に定義しています。
var (
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenNotYetValid      = errors.New("token is not valid yet")
)

// TokenService はセッショントークン（JWT）の発行と検証を行います。
// 署名鍵は構築時に注入され、プロセス外へ出してはいけません。
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService はTokenServiceを作成します。
// ttl が 0 の場合、トークンに exp クレームを付与しません（無期限）。
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// TTL はトークンの有効期限を返します。クッキーの MaxAge 算出に利用します。
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue は対象アカウントIDを subject として署名済みトークンを発行します。
func (s *TokenService) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  subject,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンの署名と有効期限を検証し、subject を返します。
// 失敗は ErrToken* のいずれかにマップされます。
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", mapJWTError(err)
	}

	if !token.Valid {
		return "", ErrTokenSignatureInvalid
	}

	return claims.Subject, nil
}

// mapJWTError はjwtライブラリのエラーをこのパッケージの失敗種別へ変換します。
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrTokenNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignatureInvalid
	default:
		return ErrTokenMalformed
	}
}
