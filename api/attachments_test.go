package api

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polifund/models"
)

func TestPostPoliticalFundAttachmentsRejections(t *testing.T) {
	impl := newTestServer(t)
	impl.config.S3.MaxScanBytes = 16
	admin := createTestUser(t, impl.db, "admin1", models.RoleAdmin)
	fund := models.PoliticalFund{
		UserID:             admin.ID,
		OrganizationName:   "国民会議",
		OrganizationType:   "政治団体",
		RepresentativeName: "佐藤花子",
		ReportYear:         2024,
	}
	require.NoError(t, impl.db.Create(&fund).Error)

	router := gin.New()
	router.POST("/political-funds/:fundID/attachments", asUser(admin), impl.PostPoliticalFundAttachments)

	t.Run("unknown report", func(t *testing.T) {
		req := newRequest(t, http.MethodPost, "/political-funds/99999/attachments", nil)
		w := serveRequest(router, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("oversized scan", func(t *testing.T) {
		req := newRequest(t, http.MethodPost,
			fmt.Sprintf("/political-funds/%d/attachments", fund.ID),
			bytes.NewReader(make([]byte, 100)))
		w := serveRequest(router, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "reach limit of 16 bytes")
	})

	t.Run("disallowed scan type", func(t *testing.T) {
		req := newRequest(t, http.MethodPost,
			fmt.Sprintf("/political-funds/%d/attachments", fund.ID),
			bytes.NewReader([]byte("plain text")))
		w := serveRequest(router, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid scan type")
	})
}
