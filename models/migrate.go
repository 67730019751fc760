package models

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrDefaultRoleMissing 表示系統缺少預設角色
// 這屬於部署設定錯誤，不是使用者造成的錯誤
var ErrDefaultRoleMissing = errors.New("default role is not provisioned")

// Migrate 建立或更新所有資料表結構
func Migrate(db *gorm.DB) error {
	const op = "Migrate"
	err := db.AutoMigrate(
		&Role{},
		&User{},
		&PoliticalFund{},
		&Candidate{},
		&ElectionFund{},
		&ReportAttachment{},
	)
	if err != nil {
		return fmt.Errorf("[%s] Fail to migrate schema, err=%w", op, err)
	}
	return nil
}

// SeedRoles 建立系統預設角色
// 已存在的角色不會被覆寫，重複執行是安全的
func SeedRoles(db *gorm.DB) error {
	const op = "SeedRoles"
	roles := []Role{
		{Name: RoleAdmin, Description: "Administrator with full access to users and fund reports"},
		{Name: RoleUser, Description: "Standard user, assigned on first login"},
	}
	for _, role := range roles {
		if result := db.Where(&Role{Name: role.Name}).FirstOrCreate(&role); result.Error != nil {
			return fmt.Errorf("[%s] Fail to seed role %s, err=%w", op, role.Name, result.Error)
		}
	}
	return nil
}

// CheckDefaultRole 確認首次登入時指派的預設角色存在
// 在啟動時呼叫，缺少預設角色時系統不應繼續提供服務
func CheckDefaultRole(db *gorm.DB) error {
	const op = "CheckDefaultRole"
	var role Role
	if result := db.Where(&Role{Name: RoleUser}).First(&role); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("[%s] %w", op, ErrDefaultRoleMissing)
		}
		return fmt.Errorf("[%s] Fail to check default role, err=%w", op, result.Error)
	}
	return nil
}
