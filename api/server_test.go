package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"polifund/adapters/identity"
	oidcAdapter "polifund/adapters/oidc"
	"polifund/models"
)

type stubVerifier struct {
	claims *oidcAdapter.Claims
	err    error
}

func (v *stubVerifier) Verify(ctx context.Context, rawToken string) (*oidcAdapter.Claims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func newTestServer(t *testing.T) *ServerImpl {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	require.NoError(t, models.Migrate(db))
	require.NoError(t, models.SeedRoles(db))

	users := identity.NewService(db)
	return &ServerImpl{
		verifier:    &stubVerifier{err: fmt.Errorf("verifier is not configured")},
		users:       users,
		guard:       identity.NewMiddleware(&stubVerifier{}, users),
		textChecker: bluemonday.StrictPolicy(),
		db:          db,
		config: ServerConfig{
			Auth0: Auth0Config{
				Domain:   "polifund.jp.auth0.com",
				ClientID: "test-client-id",
				Audience: "https://funds.example.com/api",
			},
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username, roleName string) *models.User {
	t.Helper()
	var role models.Role
	require.NoError(t, db.Where(&models.Role{Name: roleName}).First(&role).Error)
	user := &models.User{
		Auth0UserID: "auth0|" + username,
		Username:    username,
		Email:       username + "@example.com",
		RoleID:      role.ID,
		IsActive:    true,
	}
	require.NoError(t, db.Create(user).Error)
	user.Role = &role
	return user
}

// asUser 在測試路由中直接注入已解析的使用者，略過授權關卡
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(identity.DefaultUserKeyForContext, user)
	}
}

func serveJSON(t *testing.T, router *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newRequest(t *testing.T, method, target string, body io.Reader) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, target, body)
}

func serveRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
