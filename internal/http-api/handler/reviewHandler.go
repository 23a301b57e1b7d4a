package handler

import (
	"net/http"
	"time"

	"bookhub/internal/http-api/dto"
	"bookhub/internal/http-api/middleware"
	"bookhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	timeout       time.Duration
}

func NewReviewHandler(reviewService service.ReviewService, timeout time.Duration) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		timeout:       timeout,
	}
}

// RegisterRoutes registers review routes under /books/:id
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/books/:id/reviews")
	{
		reviews.POST("", h.Create)
		reviews.GET("", h.List)
	}
}

// Create adds a review to a book
// POST /books/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	review := req.ToModel(bookID)
	if err := h.reviewService.Create(ctx, bookID, &review); err != nil {
		respondError(c, "create_review", err)
		return
	}

	middleware.Logger(c).Info("review_created", "book_id", bookID, "review_id", review.ID, "username", c.GetString(middleware.UsernameKey))
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(review))
}

// List returns every review of a book
// GET /books/:id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	reviews, err := h.reviewService.ListByBook(ctx, bookID)
	if err != nil {
		respondError(c, "list_reviews", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelsToReviewResponses(reviews))
}
