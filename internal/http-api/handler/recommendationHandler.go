package handler

import (
	"net/http"
	"time"

	"bookhub/internal/http-api/dto"
	"bookhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	recommendationService service.RecommendationService
	timeout               time.Duration
}

func NewRecommendationHandler(recommendationService service.RecommendationService, timeout time.Duration) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		timeout:               timeout,
	}
}

func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recommendations", h.Recommend)
}

// Recommend lists books of the requested genre, or all books without one
// GET /recommendations?genre=
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	books, err := h.recommendationService.Recommend(ctx, c.Query("genre"))
	if err != nil {
		respondError(c, "recommend", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelsToBookResponses(books))
}
