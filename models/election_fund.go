package models

import (
	"time"

	"gorm.io/gorm"
)

// ElectionFund 代表選舉運動費用收支報告書的單筆收支
// 此模型僅針對選舉運動費用收支報告書，與政治資金的一般收支
// (PoliticalFund) 分開管理；Purpose 在收入紀錄時為 NULL
type ElectionFund struct {
	gorm.Model

	CandidateID uint      `gorm:"not null;index;<-:create"`
	Category    string    `gorm:"type:varchar(100);not null"`
	Date        time.Time `gorm:"not null"`
	Price       int64     `gorm:"not null"`
	Type        string    `gorm:"type:varchar(100);not null"`

	Purpose          *string `gorm:"type:varchar(255)"`
	NonMonetaryBasis *string `gorm:"type:varchar(255)"`
	Note             *string `gorm:"type:varchar(255)"`

	// 外鍵關聯
	Candidate *Candidate `gorm:"foreignKey:CandidateID"`
}
