package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAuth は保護対象ルートの前段で実行する認証ガードを返します。
//
// クッキーが無い、またはトークン検証に失敗した場合は登録ページへ
// リダイレクトします。検証失敗の種別（改ざん・期限切れ・不正形式）は
// いずれも同じ拒否結果になりますが、ログには区別して残します。
// 成功時はアカウントIDをコンテキストに設定して通過させるだけで、
// トークンの更新などの副作用はありません。
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			h.reject(c)
			return
		}

		subject, err := h.tokens.Verify(token)
		if err != nil {
			h.logger.Warn("session token rejected", "reason", err)
			h.reject(c)
			return
		}

		c.Set(ContextAccountKey, subject)
		c.Next()
	}
}

func (h *Handler) reject(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, h.cfg.LoginRedirect)
	c.Abort()
}
