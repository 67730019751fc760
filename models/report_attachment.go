package models

import (
	"gorm.io/gorm"
)

// ReportAttachment 代表政治資金收支報告書的掃描檔
// 檔案本體存放在 S3，資料庫只記錄公開 URL 與上傳者
type ReportAttachment struct {
	gorm.Model

	PoliticalFundID uint   `gorm:"not null;index;<-:create"`
	UploaderID      uint   `gorm:"not null;<-:create"`
	Url             string `gorm:"type:text;not null;<-:create"`
	ContentType     string `gorm:"type:varchar(100);not null;<-:create"`

	PoliticalFund *PoliticalFund `gorm:"foreignKey:PoliticalFundID"`
	Uploader      *User          `gorm:"foreignKey:UploaderID"`
}
