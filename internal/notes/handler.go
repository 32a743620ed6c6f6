package notes

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/note-nest/internal/auth"
)

// Handler はノートAPIのハンドラーです。全ルートが認証ガードの内側にあります。
type Handler struct {
	repo   Repository
	logger *slog.Logger
}

// NewHandler はノートハンドラーを作成します。
func NewHandler(repo Repository, logger *slog.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// Create は POST /notes のハンドラーです。
// 認証済みアカウントを所有者として空のノートを作成し、そのまま返します。
func (h *Handler) Create(c *gin.Context) {
	accountID := c.GetString(auth.ContextAccountKey)
	if accountID == "" {
		unauthorized(c)
		return
	}

	now := time.Now().UTC()
	n := &Note{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Text:      "",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.repo.Create(c.Request.Context(), n); err != nil {
		// 検証済みトークンでもアカウントが既に消えている場合がある。
		// その場合は内部エラーではなく認証エラーとして閉じる。
		if errors.Is(err, ErrAccountMissing) {
			unauthorized(c)
			return
		}
		h.logger.Error("note creation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Could not create note.",
		})
		return
	}

	c.JSON(http.StatusOK, n)
}

// List は GET /notes のハンドラーです。認証済みアカウントのノートを返します。
func (h *Handler) List(c *gin.Context) {
	accountID := c.GetString(auth.ContextAccountKey)
	if accountID == "" {
		unauthorized(c)
		return
	}

	list, err := h.repo.ListByAccount(c.Request.Context(), accountID)
	if err != nil {
		h.logger.Error("note listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Could not list notes.",
		})
		return
	}

	c.JSON(http.StatusOK, list)
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"code":    "UNAUTHORIZED",
		"message": "Not authorized to update",
	})
}
