// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// 認証設定
	JWTSecret     string // JWT署名用の秘密鍵（クライアントへは絶対に渡さない）
	JWTTTLMinutes int    // トークンの有効期限（分）。0 の場合は exp クレームを付与しない
	BcryptCost    int    // bcryptのコストファクター

	// データベース設定
	DatabaseURL string // PostgreSQL接続文字列

	// サーバー設定
	Port    string // APIサーバーのポート番号
	GinMode string // Ginの実行モード (debug, release, test)

	// CORS設定
	CORSAllowedOrigins string // CORS許可オリジン（カンマ区切り）

	// セッションクッキー設定
	CookieSecure   bool   // Secure属性（release モードでは常に有効）
	CookieHTTPOnly bool   // HttpOnly属性
	CookieSameSite string // SameSite属性 (lax, strict, none)

	// 未認証時のリダイレクト先
	LoginRedirect string
}

// Load は環境変数から設定を読み込みます。
// .env.local ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	// .env.local ファイルを読み込む（存在しない場合はスキップ）
	loadEnvFile()

	config := &Config{
		// 認証設定
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTTTLMinutes: getEnvAsInt("JWT_TTL_MINUTES", 0),
		BcryptCost:    getEnvAsInt("BCRYPT_COST", 10),

		// データベース設定
		DatabaseURL: getEnv("DATABASE_URL", ""),

		// サーバー設定
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		// CORS設定
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),

		// セッションクッキー設定
		CookieSecure:   getEnvAsBool("COOKIE_SECURE", false),
		CookieHTTPOnly: getEnvAsBool("COOKIE_HTTP_ONLY", true),
		CookieSameSite: getEnv("COOKIE_SAME_SITE", "lax"),

		LoginRedirect: getEnv("LOGIN_REDIRECT", "/register"),
	}

	// 必須設定のバリデーション
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// Validate は設定の妥当性を検証します。
func (c *Config) Validate() error {
	// ローカル開発では認証・DB設定は任意
	// 本番環境では厳格にチェックする想定
	if c.GinMode == "release" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in release mode")
		}
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required in release mode")
		}
	}

	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}
	if c.JWTTTLMinutes < 0 {
		return fmt.Errorf("JWT_TTL_MINUTES must not be negative, got %d", c.JWTTTLMinutes)
	}

	switch c.CookieSameSite {
	case "lax", "strict", "none":
	default:
		return fmt.Errorf("COOKIE_SAME_SITE must be one of lax, strict, none, got %q", c.CookieSameSite)
	}

	return nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt は環境変数を整数として取得します。
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool は環境変数を真偽値として取得します。
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
