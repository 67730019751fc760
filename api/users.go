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

// List users
// (GET /users)
func (impl *ServerImpl) GetUsers(c *gin.Context) {
	const op = "GetUsers"
	var page pageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid pagination parameters"})
		return
	}
	page.normalize()

	var users []models.User
	result := impl.db.WithContext(c.Request.Context()).Preload("Role").
		Offset(page.Skip).Limit(page.Limit).Find(&users)
	if result.Error != nil {
		slog.Error("Fail to list users", slog.String("op", op), slog.Any("error", result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to list users"})
		return
	}
	c.JSON(http.StatusOK, lo.Map(users, func(user models.User, _ int) UserResponse {
		return newUserResponse(user)
	}))
}

// Get user details
// (GET /users/{userID})
func (impl *ServerImpl) GetUserByID(c *gin.Context) {
	const op = "GetUserByID"
	userID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid user id"})
		return
	}
	var user models.User
	result := impl.db.WithContext(c.Request.Context()).Preload("Role").First(&user, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
			return
		}
		slog.Error("Fail to find user", slog.String("op", op), slog.Any("error", result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to find user"})
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// Get current user
// (GET /users/me)
func (impl *ServerImpl) GetUsersMe(c *gin.Context) {
	const op = "GetUsersMe"
	user, err := identity.CurrentUser(c)
	if err != nil {
		slog.Error("Fail to get current user", slog.String("op", op), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Fail to get current user"})
		return
	}
	c.JSON(http.StatusOK, newUserResponse(*user))
}
