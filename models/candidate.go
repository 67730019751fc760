package models

import (
	"time"

	"gorm.io/gorm"
)

// Candidate 代表選舉候選人
// ElectionTypeCode 使用 city_code 編碼，衆院選為 999999、參院選為 999998，
// 其餘為地方選舉的行政區代碼；選區欄位在地方選舉或不出馬時為 NULL
type Candidate struct {
	gorm.Model

	Name                     string    `gorm:"type:varchar(255);not null"`
	NameKana                 *string   `gorm:"type:varchar(255)"`
	PoliticalParty           *string   `gorm:"type:varchar(255)"`
	ElectionTypeCode         int       `gorm:"not null"`
	ElectionAreaSingle       *string   `gorm:"type:varchar(255)"`
	ElectionAreaProportional *string   `gorm:"type:varchar(255)"`
	ElectionDate             time.Time `gorm:"not null"`

	ElectionFunds []ElectionFund `gorm:"foreignKey:CandidateID"`
}
