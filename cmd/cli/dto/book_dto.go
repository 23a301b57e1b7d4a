package dto

// Request/response shapes of the bookhub HTTP API as seen by the CLI.

type BookResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         *string `json:"genre"`
	YearPublished *int    `json:"year_published"`
	Summary       *string `json:"summary"`
	TextContent   *string `json:"text_content"`
}

type CreateBookRequest struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         string  `json:"genre"`
	YearPublished int     `json:"year_published"`
	TextContent   *string `json:"text_content,omitempty"`
}

type ReviewResponse struct {
	ID         int64   `json:"id"`
	BookID     int64   `json:"book_id"`
	UserID     int64   `json:"user_id"`
	ReviewText string  `json:"review_text"`
	Rating     float64 `json:"rating"`
}

type CreateReviewRequest struct {
	UserID     int64   `json:"user_id"`
	ReviewText string  `json:"review_text"`
	Rating     float64 `json:"rating"`
}

type BookSummaryResponse struct {
	Summary       string  `json:"summary"`
	AverageRating float64 `json:"average_rating"`
}

type GenerateSummaryRequest struct {
	BookID int64 `json:"book_id"`
}

type GenerateSummaryResponse struct {
	Summary string `json:"summary"`
}

type DetailResponse struct {
	Detail string `json:"detail"`
}
