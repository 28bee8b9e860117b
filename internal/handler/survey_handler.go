package handler

import (
	"net/http"
	"net/url"

	"gamescout/backend/internal/rawg"

	"github.com/gin-gonic/gin"
)

// SurveyInput defines the platform/genre selection.
type SurveyInput struct {
	Platform string `json:"platform" form:"platform" binding:"required" example:"Steam"`
	Genre    string `json:"genre" form:"genre" binding:"required" example:"RPG"`
}

// SurveyResponse lists the selectable platforms and genres.
type SurveyResponse struct {
	Platforms []string `json:"platforms"`
	Genres    []string `json:"genres"`
}

// GetSurvey godoc
// @Summary      Get survey choices
// @Description  Lists the platform and genre options a recommendation can be requested for.
// @Tags         survey
// @Produce      json
// @Success      200  {object}  SurveyResponse
// @Router       /survey [get]
func GetSurvey(c *gin.Context) {
	c.JSON(http.StatusOK, SurveyResponse{
		Platforms: rawg.Platforms(),
		Genres:    rawg.Genres(),
	})
}

// PostSurvey godoc
// @Summary      Submit survey choices
// @Description  Validates the platform/genre selection and redirects to the results page.
// @Tags         survey
// @Accept       json
// @Produce      json
// @Param        input body SurveyInput true "Survey selection"
// @Success      303  "Redirect to /results"
// @Failure      400  {object}  ErrorResponse
// @Router       /survey [post]
func PostSurvey(c *gin.Context) {
	var input SurveyInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select both platform and genre"})
		return
	}

	if !rawg.KnownChoice(input.Platform, input.Genre) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown platform or genre"})
		return
	}

	params := url.Values{}
	params.Set("platform", input.Platform)
	params.Set("genre", input.Genre)
	c.Redirect(http.StatusSeeOther, "/results?"+params.Encode())
}
