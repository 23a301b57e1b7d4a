package dto

import "bookhub/internal/http-api/models"

// CreateReviewDTO for POST /books/:id/reviews. Ratings are not range checked.
type CreateReviewDTO struct {
	UserID     *int64   `json:"user_id" binding:"required"`
	ReviewText *string  `json:"review_text" binding:"required"`
	Rating     *float64 `json:"rating" binding:"required"`
}

func (d CreateReviewDTO) ToModel(bookID int64) models.Review {
	return models.Review{
		BookID:     bookID,
		UserID:     *d.UserID,
		ReviewText: *d.ReviewText,
		Rating:     *d.Rating,
	}
}

type ReviewResponse struct {
	ID         int64   `json:"id"`
	BookID     int64   `json:"book_id"`
	UserID     int64   `json:"user_id"`
	ReviewText string  `json:"review_text"`
	Rating     float64 `json:"rating"`
}

func FromModelToReviewResponse(r models.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		UserID:     r.UserID,
		ReviewText: r.ReviewText,
		Rating:     r.Rating,
	}
}

func FromModelsToReviewResponses(reviews []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, FromModelToReviewResponse(r))
	}
	return out
}
