package handler

import (
	"net/http"
	"time"

	"gamescout/backend/internal/database"
	"gamescout/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// PrivateUserResponse defines the structure for the authenticated user's own profile.
type PrivateUserResponse struct {
	ID          uint      `json:"id" example:"1"`
	Username    string    `json:"username" example:"gamefan42"`
	Role        string    `json:"role" example:"user"`
	MemberSince time.Time `json:"member_since"`
	SearchCount int64     `json:"search_count"`
}

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the profile of the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	userID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.First(&user, userID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var searchCount int64
	database.DB.Model(&models.SavedList{}).Where("user_id = ?", user.ID).Count(&searchCount)

	c.JSON(http.StatusOK, PrivateUserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Role:        user.Role,
		MemberSince: user.CreatedAt,
		SearchCount: searchCount,
	})
}
