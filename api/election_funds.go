package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"polifund/models"
)

// Create an election fund entry
// (POST /election-funds)
func (impl *ServerImpl) PostElectionFunds(c *gin.Context) {
	const op = "PostElectionFunds"
	var req ElectionFundCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	// 候選人必須存在
	var candidate models.Candidate
	result := impl.db.WithContext(c.Request.Context()).First(&candidate, req.CandidateID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Candidate not found"})
			return
		}
		slog.Error("Fail to find candidate", slog.String("op", op), slog.Any("error", result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to find candidate"})
		return
	}
	fund := models.ElectionFund{
		CandidateID:      candidate.ID,
		Category:         impl.textChecker.Sanitize(req.Category),
		Date:             req.Date,
		Price:            req.Price,
		Type:             impl.textChecker.Sanitize(req.Type),
		Purpose:          impl.sanitizeText(req.Purpose),
		NonMonetaryBasis: impl.sanitizeText(req.NonMonetaryBasis),
		Note:             impl.sanitizeText(req.Note),
	}
	if result := impl.db.WithContext(c.Request.Context()).Create(&fund); result.Error != nil {
		slog.Error("Fail to create election fund", slog.String("op", op), slog.Any("error", result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to create election fund entry"})
		return
	}
	c.Header("Location", strconv.FormatUint(uint64(fund.ID), 10))
	c.JSON(http.StatusCreated, newElectionFundResponse(fund))
}

// List election fund entries
// (GET /election-funds)
func (impl *ServerImpl) GetElectionFunds(c *gin.Context) {
	const op = "GetElectionFunds"
	var page pageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid pagination parameters"})
		return
	}
	page.normalize()

	query := impl.db.WithContext(c.Request.Context()).Model(&models.ElectionFund{})
	// 候選人過濾
	if id := c.Query("candidate_id"); id != "" {
		candidateID, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid candidate id"})
			return
		}
		query = query.Where("candidate_id = ?", candidateID)
	}

	var funds []models.ElectionFund
	if result := query.Offset(page.Skip).Limit(page.Limit).Find(&funds); result.Error != nil {
		slog.Error("Fail to list election funds", slog.String("op", op), slog.Any("error", result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to list election fund entries"})
		return
	}
	c.JSON(http.StatusOK, lo.Map(funds, func(fund models.ElectionFund, _ int) ElectionFundResponse {
		return newElectionFundResponse(fund)
	}))
}

// Get election fund entry details
// (GET /election-funds/{fundID})
func (impl *ServerImpl) GetElectionFundByID(c *gin.Context) {
	const op = "GetElectionFundByID"
	fundID, err := strconv.ParseUint(c.Param("fundID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid election fund id"})
		return
	}
	var fund models.ElectionFund
	result := impl.db.WithContext(c.Request.Context()).First(&fund, fundID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Election fund entry not found"})
			return
		}
		slog.Error("Fail to find election fund", slog.String("op", op), slog.Any("error", result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to find election fund entry"})
		return
	}
	c.JSON(http.StatusOK, newElectionFundResponse(fund))
}
