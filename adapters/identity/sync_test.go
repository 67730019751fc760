package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"polifund/adapters/oidc"
	"polifund/models"
)

// testDSN 以測試名稱產生獨立的 in-memory 資料庫
// cache=shared 讓同一個測試內的多條連線共用同一個資料庫
func testDSN(t *testing.T) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
}

func openTestDB(t *testing.T, dsn string) (*gorm.DB, func()) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, cleanup := openTestDB(t, testDSN(t))
	t.Cleanup(cleanup)
	require.NoError(t, models.Migrate(db))
	require.NoError(t, models.SeedRoles(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, sub, username, roleName string, active bool) *models.User {
	t.Helper()
	var role models.Role
	require.NoError(t, db.Where(&models.Role{Name: roleName}).First(&role).Error)
	user := &models.User{
		Auth0UserID: sub,
		Username:    username,
		Email:       username + "@example.com",
		RoleID:      role.ID,
		IsActive:    true,
	}
	require.NoError(t, db.Create(user).Error)
	if !active {
		require.NoError(t, db.Model(user).Update("is_active", false).Error)
		user.IsActive = false
	}
	user.Role = &role
	return user
}

func TestResolveOrCreateFirstLogin(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)

	claims := &oidc.Claims{
		OpenID:  oidc.OpenID{Sub: "auth0|new1"},
		Email:   oidc.Email{Email: "new1@example.com", EmailVerified: true},
		Profile: oidc.Profile{Nickname: "newcomer"},
	}
	user, err := service.ResolveOrCreate(context.Background(), claims)
	require.NoError(t, err)

	assert.Equal(t, "auth0|new1", user.Auth0UserID)
	assert.Equal(t, "newcomer", user.Username)
	assert.Equal(t, "new1@example.com", user.Email)
	assert.True(t, user.EmailVerified)
	assert.True(t, user.IsActive)
	require.NotNil(t, user.Role)
	assert.Equal(t, models.RoleUser, user.Role.Name)
	require.NotNil(t, user.LastLogin)

	// 寫入的登入時間要能從資料庫讀回
	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.NotNil(t, stored.LastLogin)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveOrCreateIdempotent(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)

	claims := &oidc.Claims{
		OpenID: oidc.OpenID{Sub: "auth0|repeat"},
		Email:  oidc.Email{Email: "repeat@example.com"},
	}
	first, err := service.ResolveOrCreate(context.Background(), claims)
	require.NoError(t, err)
	require.NotNil(t, first.LastLogin)
	firstLogin := *first.LastLogin

	time.Sleep(10 * time.Millisecond)

	second, err := service.ResolveOrCreate(context.Background(), claims)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.Role)
	assert.Equal(t, models.RoleUser, second.Role.Name)
	require.NotNil(t, second.LastLogin)
	assert.True(t, second.LastLogin.After(firstLogin))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveOrCreateProfileFallbacks(t *testing.T) {
	tests := []struct {
		name         string
		claims       *oidc.Claims
		wantUsername string
		wantEmail    string
	}{
		{
			name: "nickname has priority",
			claims: &oidc.Claims{
				OpenID:  oidc.OpenID{Sub: "auth0|p1"},
				Email:   oidc.Email{Email: "p1@example.com"},
				Profile: oidc.Profile{Nickname: "nick", Name: "Full Name"},
			},
			wantUsername: "nick",
			wantEmail:    "p1@example.com",
		},
		{
			name: "name when nickname is absent",
			claims: &oidc.Claims{
				OpenID:  oidc.OpenID{Sub: "auth0|p2"},
				Email:   oidc.Email{Email: "p2@example.com"},
				Profile: oidc.Profile{Name: "Full Name"},
			},
			wantUsername: "Full Name",
			wantEmail:    "p2@example.com",
		},
		{
			name: "subject tail when profile is empty",
			claims: &oidc.Claims{
				OpenID: oidc.OpenID{Sub: "auth0|abc123"},
			},
			wantUsername: "abc123",
			wantEmail:    "auth0|abc123@auth0.user",
		},
		{
			name: "whole subject without separator",
			claims: &oidc.Claims{
				OpenID: oidc.OpenID{Sub: "plainsub"},
			},
			wantUsername: "plainsub",
			wantEmail:    "plainsub@auth0.user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			service := NewService(db)

			user, err := service.ResolveOrCreate(context.Background(), tt.claims)
			require.NoError(t, err)
			assert.Equal(t, tt.wantUsername, user.Username)
			assert.Equal(t, tt.wantEmail, user.Email)
		})
	}
}

func TestResolveOrCreateMissingSubject(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)

	tests := []struct {
		name   string
		claims *oidc.Claims
	}{
		{name: "nil claims", claims: nil},
		{name: "empty subject", claims: &oidc.Claims{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.ResolveOrCreate(context.Background(), tt.claims)
			assert.ErrorIs(t, err, ErrMissingSubject)
			assert.Nil(t, user)
		})
	}
}

func TestResolveOrCreateMissingDefaultRole(t *testing.T) {
	db, cleanup := openTestDB(t, testDSN(t))
	t.Cleanup(cleanup)
	require.NoError(t, models.Migrate(db))

	service := NewService(db)
	claims := &oidc.Claims{OpenID: oidc.OpenID{Sub: "auth0|norole"}}
	user, err := service.ResolveOrCreate(context.Background(), claims)
	assert.ErrorIs(t, err, models.ErrDefaultRoleMissing)
	assert.Nil(t, user)
}

func TestResolveOrCreateConcurrentFirstLogin(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dsn := testDSN(t)
	db, closeDB := openTestDB(t, dsn)
	defer closeDB()
	require.NoError(t, models.Migrate(db))
	require.NoError(t, models.SeedRoles(db))

	rivalDB, closeRival := openTestDB(t, dsn)
	defer closeRival()

	var role models.Role
	require.NoError(t, db.Where(&models.Role{Name: models.RoleUser}).First(&role).Error)

	// 在本次建立送出之前，讓另一條連線先建立同一個 sub 的使用者，
	// 模擬兩個請求同時首次登入
	var once sync.Once
	err := db.Callback().Create().Before("gorm:create").Register("inject_rival_first_login", func(tx *gorm.DB) {
		if tx.Statement.Table != "users" {
			return
		}
		once.Do(func() {
			rival := models.User{
				Auth0UserID: "auth0|race",
				Username:    "rival",
				Email:       "rival@example.com",
				RoleID:      role.ID,
				IsActive:    true,
			}
			require.NoError(t, rivalDB.Create(&rival).Error)
		})
	})
	require.NoError(t, err)

	service := NewService(db)
	claims := &oidc.Claims{OpenID: oidc.OpenID{Sub: "auth0|race"}}
	user, err := service.ResolveOrCreate(context.Background(), claims)
	require.NoError(t, err)

	// 後到的請求改為回傳已存在的紀錄，並同樣記錄登入時間
	assert.Equal(t, "rival", user.Username)
	require.NotNil(t, user.Role)
	assert.Equal(t, models.RoleUser, user.Role.Name)
	require.NotNil(t, user.LastLogin)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("auth0_user_id = ?", "auth0|race").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
