package handler

import (
	"net/http"

	"gamescout/backend/internal/cache"
	"gamescout/backend/internal/database"

	"github.com/gin-gonic/gin"
)

// IndexResponse describes the service on the landing route.
type IndexResponse struct {
	Service string            `json:"service"`
	Version string            `json:"version"`
	Links   map[string]string `json:"links"`
}

// Index godoc
// @Summary      Landing page
// @Description  Describes the service and its entry points.
// @Tags         meta
// @Produce      json
// @Success      200  {object}  IndexResponse
// @Router       / [get]
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, IndexResponse{
		Service: "gamescout",
		Version: "1.0",
		Links: map[string]string{
			"login":   "/login",
			"signup":  "/signup",
			"survey":  "/survey",
			"results": "/results",
			"lists":   "/my-lists",
			"docs":    "/swagger/index.html",
		},
	})
}

// Health godoc
// @Summary      Health check
// @Description  Reports liveness together with database and redis status.
// @Tags         meta
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /healthz [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": database.Healthy(),
		"redis":    cache.Available(c.Request.Context()),
	})
}
