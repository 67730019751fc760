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

// Register a candidate
// (POST /candidates)
func (impl *ServerImpl) PostCandidates(c *gin.Context) {
	const op = "PostCandidates"
	var req CandidateCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	candidate := models.Candidate{
		Name:                     impl.textChecker.Sanitize(req.Name),
		NameKana:                 impl.sanitizeText(req.NameKana),
		PoliticalParty:           impl.sanitizeText(req.PoliticalParty),
		ElectionTypeCode:         req.ElectionTypeCode,
		ElectionAreaSingle:       req.ElectionAreaSingle,
		ElectionAreaProportional: req.ElectionAreaProportional,
		ElectionDate:             req.ElectionDate,
	}
	if result := impl.db.WithContext(c.Request.Context()).Create(&candidate); result.Error != nil {
		slog.Error("Fail to create candidate", slog.String("op", op), slog.Any("error", result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to create candidate"})
		return
	}
	c.Header("Location", strconv.FormatUint(uint64(candidate.ID), 10))
	c.JSON(http.StatusCreated, newCandidateResponse(candidate))
}

// List candidates
// (GET /candidates)
func (impl *ServerImpl) GetCandidates(c *gin.Context) {
	const op = "GetCandidates"
	var page pageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid pagination parameters"})
		return
	}
	page.normalize()

	query := impl.db.WithContext(c.Request.Context()).Model(&models.Candidate{})
	// 選舉種別過濾
	if code := c.Query("election_type_code"); code != "" {
		typeCode, err := strconv.Atoi(code)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid election type code"})
			return
		}
		query = query.Where("election_type_code = ?", typeCode)
	}

	var candidates []models.Candidate
	if result := query.Offset(page.Skip).Limit(page.Limit).Find(&candidates); result.Error != nil {
		slog.Error("Fail to list candidates", slog.String("op", op), slog.Any("error", result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to list candidates"})
		return
	}
	c.JSON(http.StatusOK, lo.Map(candidates, func(candidate models.Candidate, _ int) CandidateResponse {
		return newCandidateResponse(candidate)
	}))
}

// Get candidate details
// (GET /candidates/{candidateID})
func (impl *ServerImpl) GetCandidateByID(c *gin.Context) {
	const op = "GetCandidateByID"
	candidateID, err := strconv.ParseUint(c.Param("candidateID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid candidate id"})
		return
	}
	var candidate models.Candidate
	result := impl.db.WithContext(c.Request.Context()).First(&candidate, candidateID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Candidate not found"})
			return
		}
		slog.Error("Fail to find candidate", slog.String("op", op), slog.Any("error", result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to find candidate"})
		return
	}
	c.JSON(http.StatusOK, newCandidateResponse(candidate))
}
