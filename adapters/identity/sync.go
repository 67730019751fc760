package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"polifund/adapters/oidc"
	"polifund/models"
)

// Service 將驗證通過的外部身份對應到本地使用者
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ResolveOrCreate 以 claims 的 sub 解析本地使用者，首次登入時建立
// 同一個 sub 永遠對應同一筆使用者紀錄；兩個請求同時首次登入時，
// 資料庫的唯一性約束會擋下重複建立，後到的請求改為重新查詢並回傳
// 已存在的紀錄，因此重複呼叫的結果是冪等的
func (s *Service) ResolveOrCreate(ctx context.Context, claims *oidc.Claims) (*models.User, error) {
	const op = "ResolveOrCreate"
	if claims == nil || claims.Sub == "" {
		return nil, fmt.Errorf("[%s] %w", op, ErrMissingSubject)
	}

	var user models.User
	result := s.db.WithContext(ctx).Preload("Role").
		Where(&models.User{Auth0UserID: claims.Sub}).First(&user)
	if result.Error == nil {
		s.touchLastLogin(ctx, &user)
		return &user, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("[%s] Fail to find user, err=%w", op, result.Error)
	}

	// 首次登入，指派預設角色並建立使用者
	var role models.Role
	if result := s.db.WithContext(ctx).Where(&models.Role{Name: models.RoleUser}).First(&role); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("[%s] %w", op, models.ErrDefaultRoleMissing)
		}
		return nil, fmt.Errorf("[%s] Fail to find default role, err=%w", op, result.Error)
	}
	user = models.User{
		Auth0UserID:   claims.Sub,
		Username:      usernameFromClaims(claims),
		Email:         emailFromClaims(claims),
		RoleID:        role.ID,
		IsActive:      true,
		EmailVerified: claims.EmailVerified,
		LastLogin:     lo.ToPtr(time.Now()),
	}
	if result := s.db.WithContext(ctx).Create(&user); result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("[%s] Fail to create user, err=%w", op, result.Error)
		}
		// 另一個請求已搶先建立同一個 sub 的使用者，改為回傳該筆紀錄
		user = models.User{}
		if result := s.db.WithContext(ctx).Preload("Role").
			Where(&models.User{Auth0UserID: claims.Sub}).First(&user); result.Error != nil {
			return nil, fmt.Errorf("[%s] Fail to refetch user after duplicated creation, err=%w", op, result.Error)
		}
		s.touchLastLogin(ctx, &user)
		return &user, nil
	}
	user.Role = &role
	return &user, nil
}

// touchLastLogin 更新最後登入時間
// 更新失敗不影響本次請求的解析結果
func (s *Service) touchLastLogin(ctx context.Context, user *models.User) {
	now := time.Now()
	if result := s.db.WithContext(ctx).Model(user).Updates(map[string]any{"last_login": now}); result.Error != nil {
		slog.Warn("Fail to update last login", slog.Uint64("userID", uint64(user.ID)), slog.Any("error", result.Error))
		return
	}
	user.LastLogin = &now
}

// usernameFromClaims 依優先序決定使用者名稱：
// nickname、name、sub 最後一個分隔符之後的片段
func usernameFromClaims(claims *oidc.Claims) string {
	if claims.Nickname != "" {
		return claims.Nickname
	}
	if claims.Name != "" {
		return claims.Name
	}
	if idx := strings.LastIndex(claims.Sub, "|"); idx >= 0 {
		return claims.Sub[idx+1:]
	}
	return claims.Sub
}

// emailFromClaims 取得信箱，claims 沒有提供時以 sub 合成替代信箱
func emailFromClaims(claims *oidc.Claims) string {
	if claims.Email.Email != "" {
		return claims.Email.Email
	}
	return fmt.Sprintf("%s@auth0.user", claims.Sub)
}
