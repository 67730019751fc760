package api

import (
	"time"

	"polifund/models"
)

// pageParams 是 skip/limit 分頁參數
type pageParams struct {
	Skip  int `form:"skip,default=0"`
	Limit int `form:"limit,default=100"`
}

func (p *pageParams) normalize() {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 || p.Limit > 1000 {
		p.Limit = 100
	}
}

type Auth0ConfigResponse struct {
	Domain   string `json:"domain"`
	ClientID string `json:"client_id"`
	Audience string `json:"audience"`
}

type RoleResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UserResponse struct {
	ID            uint          `json:"id"`
	Auth0UserID   string        `json:"auth0_user_id"`
	Username      string        `json:"username"`
	Email         string        `json:"email"`
	IsActive      bool          `json:"is_active"`
	EmailVerified bool          `json:"email_verified"`
	LastLogin     *time.Time    `json:"last_login"`
	CreatedAt     time.Time     `json:"created_at"`
	Role          *RoleResponse `json:"role"`
}

func newUserResponse(user models.User) UserResponse {
	resp := UserResponse{
		ID:            user.ID,
		Auth0UserID:   user.Auth0UserID,
		Username:      user.Username,
		Email:         user.Email,
		IsActive:      user.IsActive,
		EmailVerified: user.EmailVerified,
		LastLogin:     user.LastLogin,
		CreatedAt:     user.CreatedAt,
	}
	if user.Role != nil {
		resp.Role = &RoleResponse{
			ID:          user.Role.ID,
			Name:        user.Role.Name,
			Description: user.Role.Description,
		}
	}
	return resp
}

type PoliticalFundCreateRequest struct {
	OrganizationName   string `json:"organization_name" binding:"required"`
	OrganizationType   string `json:"organization_type" binding:"required"`
	RepresentativeName string `json:"representative_name" binding:"required"`
	ReportYear         int    `json:"report_year" binding:"required"`

	Income               *int64  `json:"income"`
	Expenditure          *int64  `json:"expenditure"`
	Balance              *int64  `json:"balance"`
	IncomeBreakdown      *string `json:"income_breakdown"`
	ExpenditureBreakdown *string `json:"expenditure_breakdown"`
}

type PoliticalFundResponse struct {
	ID                   uint      `json:"id"`
	UserID               uint      `json:"user_id"`
	OrganizationName     string    `json:"organization_name"`
	OrganizationType     string    `json:"organization_type"`
	RepresentativeName   string    `json:"representative_name"`
	ReportYear           int       `json:"report_year"`
	Income               *int64    `json:"income"`
	Expenditure          *int64    `json:"expenditure"`
	Balance              *int64    `json:"balance"`
	IncomeBreakdown      *string   `json:"income_breakdown"`
	ExpenditureBreakdown *string   `json:"expenditure_breakdown"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func newPoliticalFundResponse(fund models.PoliticalFund) PoliticalFundResponse {
	return PoliticalFundResponse{
		ID:                   fund.ID,
		UserID:               fund.UserID,
		OrganizationName:     fund.OrganizationName,
		OrganizationType:     fund.OrganizationType,
		RepresentativeName:   fund.RepresentativeName,
		ReportYear:           fund.ReportYear,
		Income:               fund.Income,
		Expenditure:          fund.Expenditure,
		Balance:              fund.Balance,
		IncomeBreakdown:      fund.IncomeBreakdown,
		ExpenditureBreakdown: fund.ExpenditureBreakdown,
		CreatedAt:            fund.CreatedAt,
		UpdatedAt:            fund.UpdatedAt,
	}
}

type CandidateCreateRequest struct {
	Name                     string    `json:"name" binding:"required"`
	NameKana                 *string   `json:"name_kana"`
	PoliticalParty           *string   `json:"political_party"`
	ElectionTypeCode         int       `json:"election_type_code" binding:"required"`
	ElectionAreaSingle       *string   `json:"election_area_single"`
	ElectionAreaProportional *string   `json:"election_area_proportional"`
	ElectionDate             time.Time `json:"election_date" binding:"required"`
}

type CandidateResponse struct {
	ID                       uint      `json:"id"`
	Name                     string    `json:"name"`
	NameKana                 *string   `json:"name_kana"`
	PoliticalParty           *string   `json:"political_party"`
	ElectionTypeCode         int       `json:"election_type_code"`
	ElectionAreaSingle       *string   `json:"election_area_single"`
	ElectionAreaProportional *string   `json:"election_area_proportional"`
	ElectionDate             time.Time `json:"election_date"`
	CreatedAt                time.Time `json:"created_at"`
}

func newCandidateResponse(candidate models.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:                       candidate.ID,
		Name:                     candidate.Name,
		NameKana:                 candidate.NameKana,
		PoliticalParty:           candidate.PoliticalParty,
		ElectionTypeCode:         candidate.ElectionTypeCode,
		ElectionAreaSingle:       candidate.ElectionAreaSingle,
		ElectionAreaProportional: candidate.ElectionAreaProportional,
		ElectionDate:             candidate.ElectionDate,
		CreatedAt:                candidate.CreatedAt,
	}
}

type ElectionFundCreateRequest struct {
	CandidateID uint      `json:"candidate_id" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Price       int64     `json:"price" binding:"required"`
	Type        string    `json:"type" binding:"required"`

	Purpose          *string `json:"purpose"`
	NonMonetaryBasis *string `json:"non_monetary_basis"`
	Note             *string `json:"note"`
}

type ElectionFundResponse struct {
	ID               uint      `json:"id"`
	CandidateID      uint      `json:"candidate_id"`
	Category         string    `json:"category"`
	Date             time.Time `json:"date"`
	Price            int64     `json:"price"`
	Type             string    `json:"type"`
	Purpose          *string   `json:"purpose"`
	NonMonetaryBasis *string   `json:"non_monetary_basis"`
	Note             *string   `json:"note"`
	CreatedAt        time.Time `json:"created_at"`
}

func newElectionFundResponse(fund models.ElectionFund) ElectionFundResponse {
	return ElectionFundResponse{
		ID:               fund.ID,
		CandidateID:      fund.CandidateID,
		Category:         fund.Category,
		Date:             fund.Date,
		Price:            fund.Price,
		Type:             fund.Type,
		Purpose:          fund.Purpose,
		NonMonetaryBasis: fund.NonMonetaryBasis,
		Note:             fund.Note,
		CreatedAt:        fund.CreatedAt,
	}
}

type ReportAttachmentResponse struct {
	ID              uint      `json:"id"`
	PoliticalFundID uint      `json:"political_fund_id"`
	UploaderID      uint      `json:"uploader_id"`
	Url             string    `json:"url"`
	ContentType     string    `json:"content_type"`
	CreatedAt       time.Time `json:"created_at"`
}

func newReportAttachmentResponse(attachment models.ReportAttachment) ReportAttachmentResponse {
	return ReportAttachmentResponse{
		ID:              attachment.ID,
		PoliticalFundID: attachment.PoliticalFundID,
		UploaderID:      attachment.UploaderID,
		Url:             attachment.Url,
		ContentType:     attachment.ContentType,
		CreatedAt:       attachment.CreatedAt,
	}
}
