package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health check
// (GET /health)
func (impl *ServerImpl) GetHealth(c *gin.Context) {
	dbStatus := "healthy"
	if impl.config.Debug {
		dbStatus = "debug"
	} else {
		var one int
		if result := impl.db.WithContext(c.Request.Context()).Raw("SELECT 1").Scan(&one); result.Error != nil {
			dbStatus = fmt.Sprintf("unhealthy: %s", result.Error)
		}
	}
	status := "healthy"
	if dbStatus != "healthy" && dbStatus != "debug" {
		status = "unhealthy"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
