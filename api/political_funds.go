package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"polifund/adapters/identity"
	"polifund/models"
)

// Create a political fund report
// (POST /political-funds)
func (impl *ServerImpl) PostPoliticalFunds(c *gin.Context) {
	const op = "PostPoliticalFunds"
	var req PoliticalFundCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	user, err := identity.CurrentUser(c)
	if err != nil {
		slog.Error("Fail to get current user", slog.String("op", op), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to get current user"})
		return
	}
	// 自由文字欄位先過濾再入庫
	fund := models.PoliticalFund{
		UserID:               user.ID,
		OrganizationName:     impl.textChecker.Sanitize(req.OrganizationName),
		OrganizationType:     impl.textChecker.Sanitize(req.OrganizationType),
		RepresentativeName:   impl.textChecker.Sanitize(req.RepresentativeName),
		ReportYear:           req.ReportYear,
		Income:               req.Income,
		Expenditure:          req.Expenditure,
		Balance:              req.Balance,
		IncomeBreakdown:      impl.sanitizeText(req.IncomeBreakdown),
		ExpenditureBreakdown: impl.sanitizeText(req.ExpenditureBreakdown),
	}
	if result := impl.db.WithContext(c.Request.Context()).Create(&fund); result.Error != nil {
		slog.Error("Fail to create political fund", slog.String("op", op), slog.Any("error", result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to create political fund report"})
		return
	}
	c.Header("Location", strconv.FormatUint(uint64(fund.ID), 10))
	c.JSON(http.StatusCreated, newPoliticalFundResponse(fund))
}

// List political fund reports
// (GET /political-funds)
func (impl *ServerImpl) GetPoliticalFunds(c *gin.Context) {
	const op = "GetPoliticalFunds"
	var page pageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid pagination parameters"})
		return
	}
	page.normalize()

	var funds []models.PoliticalFund
	result := impl.db.WithContext(c.Request.Context()).
		Offset(page.Skip).Limit(page.Limit).Find(&funds)
	if result.Error != nil {
		slog.Error("Fail to list political funds", slog.String("op", op), slog.Any("error", result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to list political fund reports"})
		return
	}
	c.JSON(http.StatusOK, lo.Map(funds, func(fund models.PoliticalFund, _ int) PoliticalFundResponse {
		return newPoliticalFundResponse(fund)
	}))
}

// Get political fund report details
// (GET /political-funds/{fundID})
func (impl *ServerImpl) GetPoliticalFundByID(c *gin.Context) {
	const op = "GetPoliticalFundByID"
	fundID, err := strconv.ParseUint(c.Param("fundID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid political fund id"})
		return
	}
	var fund models.PoliticalFund
	result := impl.db.WithContext(c.Request.Context()).First(&fund, fundID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Political fund report not found"})
			return
		}
		slog.Error("Fail to find political fund", slog.String("op", op), slog.Any("error", result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to find political fund report"})
		return
	}
	c.JSON(http.StatusOK, newPoliticalFundResponse(fund))
}

// sanitizeText 過濾選填的自由文字欄位
func (impl *ServerImpl) sanitizeText(text *string) *string {
	if text == nil {
		return nil
	}
	sanitized := impl.textChecker.Sanitize(*text)
	return &sanitized
}
