package handler

import (
	"net/http"

	"bookhub/internal/http-api/dto"
	"bookhub/internal/http-api/middleware"
	"bookhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	summaryService service.SummaryService
}

func NewSummaryHandler(summaryService service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

func (h *SummaryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/books/:id/summary", h.BookSummary)
	router.POST("/generate-summary", h.Generate)
}

// BookSummary returns the stored summary and the average rating
// GET /books/:id/summary
func (h *SummaryHandler) BookSummary(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	// store timeouts are applied by the service
	resp, err := h.summaryService.BookSummary(c.Request.Context(), id)
	if err != nil {
		respondError(c, "book_summary", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Generate summarizes a book's text content and stores the result
// POST /generate-summary
func (h *SummaryHandler) Generate(c *gin.Context) {
	var req dto.GenerateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.summaryService.GenerateSummary(c.Request.Context(), *req.BookID)
	if err != nil {
		respondError(c, "generate_summary", err)
		return
	}

	middleware.Logger(c).Info("summary_generated", "book_id", *req.BookID, "username", c.GetString(middleware.UsernameKey))
	c.JSON(http.StatusOK, dto.GenerateSummaryResponse{Summary: summary})
}
