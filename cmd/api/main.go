// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/yourusername/note-nest/internal/account"
	"github.com/yourusername/note-nest/internal/auth"
	"github.com/yourusername/note-nest/internal/config"
	"github.com/yourusername/note-nest/internal/migrations"
	"github.com/yourusername/note-nest/internal/notes"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// サーバー側ログはJSONで標準出力へ出す
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx := context.Background()

	// スキーママイグレーションの実行
	if err := runMigrations(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// 接続プールの初期化
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	// CORS許可オリジンを設定（カンマ区切りの文字列を配列に変換）
	origins := strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowOrigins = origins
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// ルーティングの設定
	setupRoutes(router, cfg, pool, logger)

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// runMigrations は埋め込みSQLでgooseマイグレーションを適用します。
func runMigrations(ctx context.Context, databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "note-nest-api",
		"version": "0.1.0",
	})
}

// setupRoutes は API と認証周りの配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) {
	// まずは誰でも叩けるヘルスチェックを登録
	router.GET("/health", handleHealth)

	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	accountRepo := account.NewPostgresRepository(pool)

	authHandler := auth.NewHandler(cfg, accountRepo, hasher, tokens, logger)
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	// 保護対象のルートはすべて認証ガードの内側にぶら下げる
	protected := router.Group("")
	protected.Use(authHandler.RequireAuth())
	{
		notesHandler := notes.NewHandler(notes.NewPostgresRepository(pool), logger)
		protected.POST("/notes", notesHandler.Create)
		protected.GET("/notes", notesHandler.List)
	}
}
