package dto

// GenerateSummaryRequest for POST /generate-summary
type GenerateSummaryRequest struct {
	BookID *int64 `json:"book_id" binding:"required"`
}

type GenerateSummaryResponse struct {
	Summary string `json:"summary"`
}

// BookSummaryResponse for GET /books/:id/summary. Summary is "" when the
// book has none yet; AverageRating is 0 when it has no reviews.
type BookSummaryResponse struct {
	Summary       string  `json:"summary"`
	AverageRating float64 `json:"average_rating"`
}

// DetailResponse is the body of every error and of the delete confirmation.
type DetailResponse struct {
	Detail string `json:"detail"`
}
