package handler

import (
	"net/http"
	"time"

	"gamescout/backend/internal/cache"
	"gamescout/backend/internal/database"
	"gamescout/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SavedListResponse is one entry of a user's search history.
type SavedListResponse struct {
	ID        uint      `json:"id"`
	Platform  string    `json:"platform"`
	Genre     string    `json:"genre"`
	Timestamp time.Time `json:"timestamp"`
}

// GuestListsResponse is the search history of an anonymous visitor.
type GuestListsResponse struct {
	Guest bool                `json:"guest"`
	Data  []cache.GuestSearch `json:"data"`
}

// GetMyLists godoc
// @Summary      Get saved search history
// @Description  Logged-in users get their persisted history, newest first and paginated. Guests with a history cookie get their remembered searches.
// @Tags         lists
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[SavedListResponse]
// @Failure      401  {object}  ErrorResponse "Login required"
// @Failure      500  {object}  ErrorResponse
// @Router       /my-lists [get]
func GetMyLists(c *gin.Context) {
	if userID, exists := c.Get("userID"); exists {
		page, limit := pageParams(c)

		query := database.DB.
			Model(&models.SavedList{}).
			Where("user_id = ?", userID.(uint)).
			Order("created_at DESC, id DESC")

		response, err := Paginate[models.SavedList](query, page, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load saved lists"})
			return
		}

		lists := make([]SavedListResponse, 0, len(response.Data))
		for _, l := range response.Data {
			lists = append(lists, SavedListResponse{
				ID:        l.ID,
				Platform:  l.Platform,
				Genre:     l.Genre,
				Timestamp: l.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, NewPaginatedResponse(lists, response.Meta.TotalItems, page, limit))
		return
	}

	// Guests can still see the searches remembered under their cookie.
	guestID, err := c.Cookie(guestCookieName)
	if err == nil && guestID != "" {
		searches, err := cache.GuestSearches(c.Request.Context(), guestID)
		if err == nil && len(searches) > 0 {
			c.JSON(http.StatusOK, GuestListsResponse{Guest: true, Data: searches})
			return
		}
	}

	c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login to view your lists"})
}
