package identity

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"polifund/adapters/oidc"
	"polifund/models"
)

const (
	// DefaultUserKeyForContext 已解析使用者在 gin context 中的 key
	DefaultUserKeyForContext = "polifund-current-user"
	// DefaultClaimsKeyForContext 已驗證 claims 在 gin context 中的 key
	DefaultClaimsKeyForContext = "polifund-current-claims"
)

// Middleware 是保護端點的授權關卡
// 每個請求獨立地重新驗證 token 並解析使用者，沒有 session 狀態；
// 認證失敗回 401 並附上 WWW-Authenticate 提示，停用或權限不足回 403
type Middleware struct {
	verifier oidc.ITokenVerifier
	users    *Service
}

func NewMiddleware(verifier oidc.ITokenVerifier, users *Service) *Middleware {
	return &Middleware{verifier: verifier, users: users}
}

// RequireUser 要求請求帶有有效 token 且對應的使用者為啟用狀態
// 驗證通過後將使用者與 claims 放入 context 供後續 handler 取用
func (m *Middleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := m.authenticate(c)
		if !ok {
			return
		}
		setCurrent(c, user)
		c.Next()
	}
}

// RequireAdmin 在 RequireUser 的基礎上額外要求管理者角色
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := m.authenticate(c)
		if !ok {
			return
		}
		if user.Role == nil || user.Role.Name != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Not enough permissions"})
			return
		}
		setCurrent(c, user)
		c.Next()
	}
}

// authenticate 驗證 token 並解析使用者，失敗時直接中止請求
// 對外只回報一般性的認證失敗，不揭露是哪個驗證步驟出錯
func (m *Middleware) authenticate(c *gin.Context) (*models.User, bool) {
	const op = "authenticate"
	rawToken, ok := BearerToken(c)
	if !ok {
		abortUnauthenticated(c)
		return nil, false
	}
	claims, err := m.verifier.Verify(c.Request.Context(), rawToken)
	if err != nil {
		slog.Warn("Fail to verify bearer token", slog.String("op", op), slog.Any("error", err))
		abortUnauthenticated(c)
		return nil, false
	}
	user, err := m.users.ResolveOrCreate(c.Request.Context(), claims)
	if err != nil {
		// sub 缺失或預設角色不存在屬於設定錯誤，與攻擊者行為區分開來
		slog.Error("Fail to resolve user", slog.String("op", op), slog.Any("error", err))
		if errors.Is(err, ErrMissingSubject) || errors.Is(err, models.ErrDefaultRoleMissing) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Identity configuration error"})
			return nil, false
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return nil, false
	}
	if !user.IsActive {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Inactive user"})
		return nil, false
	}
	c.Set(DefaultClaimsKeyForContext, claims)
	return user, true
}

func setCurrent(c *gin.Context, user *models.User) {
	c.Set(DefaultUserKeyForContext, user)
}

func abortUnauthenticated(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authentication credentials"})
}

// BearerToken 從 Authorization header 取出 bearer token
func BearerToken(c *gin.Context) (string, bool) {
	authz := c.GetHeader("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	return token, token != ""
}

// CurrentUser 從 context 中取得已解析的使用者
func CurrentUser(c *gin.Context) (*models.User, error) {
	v, exists := c.Get(DefaultUserKeyForContext)
	if !exists {
		return nil, ErrUserNotInContext
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil, ErrUserNotInContext
	}
	return user, nil
}

// CurrentClaims 從 context 中取得已驗證的 claims
func CurrentClaims(c *gin.Context) (*oidc.Claims, error) {
	v, exists := c.Get(DefaultClaimsKeyForContext)
	if !exists {
		return nil, ErrUserNotInContext
	}
	claims, ok := v.(*oidc.Claims)
	if !ok {
		return nil, ErrUserNotInContext
	}
	return claims, nil
}
