package models

import (
	"gorm.io/gorm"
)

// PoliticalFund 代表政治資金收支報告書資料
// 記錄政治團體的基本資訊與收支合計，收支內訳以 JSON 文字保存
type PoliticalFund struct {
	gorm.Model

	UserID             uint   `gorm:"not null;<-:create"`
	OrganizationName   string `gorm:"type:varchar(255);not null"`
	OrganizationType   string `gorm:"type:varchar(100);not null"`
	RepresentativeName string `gorm:"type:varchar(255);not null"`
	ReportYear         int    `gorm:"not null"`

	Income               *int64  `gorm:"type:bigint"`
	Expenditure          *int64  `gorm:"type:bigint"`
	Balance              *int64  `gorm:"type:bigint"`
	IncomeBreakdown      *string `gorm:"type:text"`
	ExpenditureBreakdown *string `gorm:"type:text"`

	// 外鍵關聯
	User        *User              `gorm:"foreignKey:UserID"`
	Attachments []ReportAttachment `gorm:"foreignKey:PoliticalFundID"`
}
