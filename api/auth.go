package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"polifund/adapters/identity"
)

// Get Auth0 client configuration
// (GET /auth/config)
// 前端初始化 Auth0 所需的公開資訊，不需要認證
func (impl *ServerImpl) GetAuthConfig(c *gin.Context) {
	c.JSON(http.StatusOK, Auth0ConfigResponse{
		Domain:   impl.config.Auth0.Domain,
		ClientID: impl.config.Auth0.ClientID,
		Audience: impl.config.Auth0.Audience,
	})
}

// Get verified token payload
// (GET /profile)
// 只驗證 token 並回傳解碼後的 payload，不查詢資料庫
func (impl *ServerImpl) GetProfile(c *gin.Context) {
	const op = "GetProfile"
	rawToken, ok := identity.BearerToken(c)
	if !ok {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authentication credentials"})
		return
	}
	claims, err := impl.verifier.Verify(c.Request.Context(), rawToken)
	if err != nil {
		slog.Warn("Fail to verify bearer token", slog.String("op", op), slog.Any("error", err))
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authentication credentials"})
		return
	}
	c.JSON(http.StatusOK, claims.Payload())
}
