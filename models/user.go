package models

import (
	"time"

	"gorm.io/gorm"
)

// User 代表系統中的使用者
// 使用者在首次以 Auth0 token 登入時建立，Auth0UserID 是外部身份
// (token 的 sub) 與本地紀錄之間唯一的關聯鍵，建立後不可變更
type User struct {
	gorm.Model

	Auth0UserID   string     `gorm:"type:varchar(255);not null;uniqueIndex;<-:create"`
	Username      string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email         string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	RoleID        uint       `gorm:"not null"`
	IsActive      bool       `gorm:"not null;default:true"`
	EmailVerified bool       `gorm:"not null;default:false"`
	LastLogin     *time.Time

	Role *Role `gorm:"foreignKey:RoleID"`
}
