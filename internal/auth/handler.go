package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yourusername/note-nest/internal/account"
	"github.com/yourusername/note-nest/internal/config"
)

// CookieName はセッショントークンを保持するクッキー名です。
const CookieName = "NoteNestJWT"

// ContextAccountKey は、ハンドラー間で認証済みアカウントIDを共有するためのキーです。
const ContextAccountKey = "auth.account"

// ログインと登録で共通の400メッセージ。登録側のパスワード文言だけ末尾が異なります。
const (
	msgInvalidEmail          = "Invalid email, please change."
	msgPasswordTooShort      = "Password is not minimum 8 characters."
	msgPasswordTooShortLogin = "Password is not minimum 8 characters, please change."
	msgInvalidCredentials    = "Username or password is invalid."
	msgEmailTaken            = "An email with this address already exists."
)

// Handler は登録・ログインのハンドラーと認証ガードをまとめた構造体です。
type Handler struct {
	cfg      *config.Config
	accounts account.Repository
	hasher   *Hasher
	tokens   *TokenService
	logger   *slog.Logger

	// アカウント不在時にも同等のコストで比較するためのダミーハッシュ
	dummyHash string
}

// NewHandler は認証ハンドラーを作成します。
func NewHandler(cfg *config.Config, accounts account.Repository, hasher *Hasher, tokens *TokenService, logger *slog.Logger) *Handler {
	dummyHash, _, err := hasher.Hash(uuid.NewString())
	if err != nil {
		// ここで失敗するのはbcryptコスト設定の不備のみ
		logger.Error("failed to precompute dummy hash", "error", err)
	}
	return &Handler{
		cfg:       cfg,
		accounts:  accounts,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
		dummyHash: dummyHash,
	}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register は POST /register のハンドラーです。
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		code, message := bindFailure(err, msgPasswordTooShort)
		c.JSON(http.StatusBadRequest, gin.H{"code": code, "message": message})
		return
	}

	hash, salt, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.Error("password hashing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Could not create account.",
		})
		return
	}

	a := &account.Account{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.accounts.Create(c.Request.Context(), a); err != nil {
		if errors.Is(err, account.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{
				"code":    "EMAIL_TAKEN",
				"message": msgEmailTaken,
			})
			return
		}
		h.logger.Error("account creation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Could not create account.",
		})
		return
	}

	h.issueSession(c, a.ID)
}

// Login は POST /login のハンドラーです。
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		code, message := bindFailure(err, msgPasswordTooShortLogin)
		c.JSON(http.StatusBadRequest, gin.H{"code": code, "message": message})
		return
	}

	a, err := h.accounts.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			// アカウント不在でも比較を1回行い、応答時間から
			// メールアドレスの存在を推測されないようにする
			h.hasher.Verify(req.Password, h.dummyHash)
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": msgInvalidCredentials,
			})
			return
		}
		h.logger.Error("account lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Could not log in.",
		})
		return
	}

	if !h.hasher.Verify(req.Password, a.PasswordHash) {
		// 不在時と同じ文言を返す（メールアドレス列挙の防止）
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_CREDENTIALS",
			"message": msgInvalidCredentials,
		})
		return
	}

	h.issueSession(c, a.ID)
}

// issueSession はトークンを発行してクッキーに設定し、成功レスポンスを返します。
func (h *Handler) issueSession(c *gin.Context, accountID string) {
	token, err := h.tokens.Issue(accountID)
	if err != nil {
		h.logger.Error("token issue failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "TOKEN_ISSUE_FAILED",
			"message": "Could not create session.",
		})
		return
	}

	maxAge := 0
	if ttl := h.tokens.TTL(); ttl > 0 {
		maxAge = int(ttl.Seconds())
	}

	secure := h.cfg.CookieSecure || h.cfg.GinMode == gin.ReleaseMode
	c.SetSameSite(sameSiteFromConfig(h.cfg.CookieSameSite))
	c.SetCookie(CookieName, token, maxAge, "/", "", secure, h.cfg.CookieHTTPOnly)

	c.JSON(http.StatusOK, gin.H{"data": "success!"})
}

// bindFailure は入力バリデーションエラーをフィールド別の文言に変換します。
// メールアドレスの検証を先に行うのはフロントエンドの表示順に合わせるためです。
func bindFailure(err error, passwordMessage string) (code string, message string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Email" {
				return "INVALID_EMAIL", msgInvalidEmail
			}
		}
		for _, fe := range verrs {
			if fe.Field() == "Password" {
				return "INVALID_PASSWORD", passwordMessage
			}
		}
	}
	// JSONが壊れている等、フィールド単位で特定できない場合
	return "INVALID_EMAIL", msgInvalidEmail
}

// sameSiteFromConfig は設定値をhttp.SameSiteに変換します。
func sameSiteFromConfig(v string) http.SameSite {
	switch v {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
