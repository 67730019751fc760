package models

import (
	"gorm.io/gorm"
)

const (
	// RoleAdmin 管理者角色，可以管理使用者與收支報告資料
	RoleAdmin = "admin"
	// RoleUser 一般使用者角色，首次登入時的預設角色
	RoleUser = "user"
)

// Role 代表使用者的權限角色
// 角色在系統初始化時建立，執行期間不會新增或刪除
type Role struct {
	gorm.Model

	Name        string `gorm:"type:varchar(50);not null;unique;<-:create"`
	Description string `gorm:"type:text"`

	Users []User `gorm:"foreignKey:RoleID"`
}
