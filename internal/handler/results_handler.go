package handler

import (
	"net/http"
	"time"

	"gamescout/backend/internal/cache"
	"gamescout/backend/internal/database"
	"gamescout/backend/internal/logger"
	"gamescout/backend/internal/models"
	"gamescout/backend/internal/rawg"
	"gamescout/backend/internal/recommend"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Recommender is the recommendation service used by the results handlers.
// Wired in main, replaced by tests.
var Recommender *recommend.Service

const (
	guestCookieName   = "guest_id"
	guestCookieMaxAge = 30 * 24 * 3600
)

// region --- DTOs ---

// GameResponse is one recommended game.
type GameResponse struct {
	RawgID      int64   `json:"rawg_id"`
	Title       string  `json:"title"`
	Platform    string  `json:"platform"`
	Genre       string  `json:"genre"`
	Rating      float64 `json:"rating"`
	ImageURL    string  `json:"image_url"`
	Description string  `json:"description"`
}

// ResultsResponse is the answer to a recommendation search.
type ResultsResponse struct {
	Platform string         `json:"platform"`
	Genre    string         `json:"genre"`
	Games    []GameResponse `json:"games"`
}

func newGameResponse(g models.Game) GameResponse {
	return GameResponse{
		RawgID:      g.RawgID,
		Title:       g.Title,
		Platform:    g.Platform,
		Genre:       g.Genre,
		Rating:      g.Rating,
		ImageURL:    g.ImageURL,
		Description: g.Description,
	}
}

// endregion

// GetResults godoc
// @Summary      Get game recommendations
// @Description  Returns up to 20 games for a platform/genre selection, best rated first. Logged-in users get the search appended to their history; guests get it remembered under an anonymous cookie.
// @Tags         results
// @Produce      json
// @Security     BearerAuth
// @Param        platform query string true "Platform label" example("Steam")
// @Param        genre    query string true "Genre label" example("RPG")
// @Success      200  {object}  ResultsResponse
// @Failure      400  {object}  ErrorResponse "Invalid search parameters"
// @Failure      500  {object}  ErrorResponse
// @Router       /results [get]
func GetResults(c *gin.Context) {
	platform := c.Query("platform")
	genre := c.Query("genre")

	if platform == "" || genre == "" || !rawg.KnownChoice(platform, genre) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search parameters"})
		return
	}

	games, err := Recommender.Recommendations(c.Request.Context(), platform, genre)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recommendations"})
		return
	}

	recordSearch(c, platform, genre)

	response := ResultsResponse{
		Platform: platform,
		Genre:    genre,
		Games:    make([]GameResponse, 0, len(games)),
	}
	for _, g := range games {
		response.Games = append(response.Games, newGameResponse(g))
	}

	c.JSON(http.StatusOK, response)
}

// recordSearch appends the search to the user's saved lists, or to the
// guest's redis history. Failures are logged but never fail the request.
func recordSearch(c *gin.Context, platform, genre string) {
	if userID, exists := c.Get("userID"); exists {
		saved := models.SavedList{
			UserID:   userID.(uint),
			Platform: platform,
			Genre:    genre,
		}
		if err := database.DB.Create(&saved).Error; err != nil {
			logger.L().WithError(err).Error("failed to save search to user history")
		}
		return
	}

	guestID, err := c.Cookie(guestCookieName)
	if err != nil || guestID == "" {
		guestID = uuid.NewString()
		c.SetCookie(guestCookieName, guestID, guestCookieMaxAge, "/", "", false, true)
	}

	search := cache.GuestSearch{
		Platform:  platform,
		Genre:     genre,
		Timestamp: time.Now().UTC(),
	}
	if err := cache.AppendGuestSearch(c.Request.Context(), guestID, search); err != nil {
		logger.L().WithError(err).Warn("failed to record guest search")
	}
}
