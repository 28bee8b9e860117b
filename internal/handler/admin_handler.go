package handler

import (
	"net/http"
	"time"

	"gamescout/backend/internal/database"
	"gamescout/backend/internal/models"
	"gamescout/backend/internal/rawg"

	"github.com/gin-gonic/gin"
)

// AdminUserResponse is a user row as shown to administrators.
type AdminUserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ListUsers godoc
// @Summary      List users
// @Description  Retrieves a paginated list of registered users.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[AdminUserResponse]
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/users [get]
func ListUsers(c *gin.Context) {
	page, limit := pageParams(c)

	query := database.DB.Model(&models.User{}).Order("created_at DESC")
	response, err := Paginate[models.User](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	users := make([]AdminUserResponse, 0, len(response.Data))
	for _, u := range response.Data {
		users = append(users, AdminUserResponse{
			ID:        u.ID,
			Username:  u.Username,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(users, response.Meta.TotalItems, page, limit))
}

// PurgeCache godoc
// @Summary      Purge the game cache
// @Description  Removes cached game rows and invalidates redis result pages. With platform and genre parameters only that selection is purged; without them everything is.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        platform query string false "Platform label"
// @Param        genre    query string false "Genre label"
// @Success      200  {object}  map[string]int64 "{"purged": 12}"
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/cache [delete]
func PurgeCache(c *gin.Context) {
	platform := c.Query("platform")
	genre := c.Query("genre")

	// Either both filters or neither.
	if (platform == "") != (genre == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide both platform and genre, or neither"})
		return
	}
	if platform != "" && !rawg.KnownChoice(platform, genre) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown platform or genre"})
		return
	}

	purged, err := Recommender.PurgeCache(c.Request.Context(), platform, genre)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to purge cache"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"purged": purged})
}
