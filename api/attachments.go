package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"polifund/adapters/identity"
	internalS3 "polifund/adapters/s3"
	"polifund/models"
)

// Upload a report scan
// (POST /political-funds/{fundID}/attachments)
// 掃描檔限制大小並只接受圖片或 PDF，檔案本體存到 S3 後在資料庫記錄 URL
func (impl *ServerImpl) PostPoliticalFundAttachments(c *gin.Context) {
	const op = "PostPoliticalFundAttachments"
	fundID, err := strconv.ParseUint(c.Param("fundID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid political fund id"})
		return
	}
	user, err := identity.CurrentUser(c)
	if err != nil {
		slog.Error("Fail to get current user", slog.String("op", op), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to get current user"})
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

	// 限制掃描檔大小與類型
	maxBytes := impl.config.S3.MaxScanBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxScanBytes
	}
	body := internalS3.NewMaxSizeReader(c.Request.Body, maxBytes)
	content, err := io.ReadAll(body)
	if errors.As(err, &internalS3.ErrReachLimitType) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if err != nil {
		slog.Error("Fail to read scan", slog.String("op", op), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to read scan"})
		return
	}
	mimeType := http.DetectContentType(content)
	secure, ext := internalS3.CheckSecureScanAndGetExtension(mimeType)
	if !secure {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("Invalid scan type: %s", mimeType)})
		return
	}

	// 透過S3 API儲存掃描檔
	key := fmt.Sprintf("scans/%s.%s", uuid.New().String(), ext)
	url, err := impl.s3Operator.UploadScan(c.Request.Context(), key, mimeType, content)
	if err != nil {
		slog.Error("Fail to upload scan", slog.String("op", op), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to upload scan"})
		return
	}

	attachment := models.ReportAttachment{
		PoliticalFundID: fund.ID,
		UploaderID:      user.ID,
		Url:             url,
		ContentType:     mimeType,
	}
	if result := impl.db.WithContext(c.Request.Context()).Create(&attachment); result.Error != nil {
		slog.Error("Fail to create attachment record", slog.String("op", op), slog.Any("error", result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to record attachment"})
		return
	}
	c.Header("Location", url)
	c.JSON(http.StatusCreated, newReportAttachmentResponse(attachment))
}
