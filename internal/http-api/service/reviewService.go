package service

import (
	"context"

	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"
)

type ReviewService interface {
	Create(ctx context.Context, bookID int64, review *models.Review) error
	ListByBook(ctx context.Context, bookID int64) ([]models.Review, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	bookRepo   repository.BookRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookRepo repository.BookRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
	}
}

// Create attaches a review to an existing book. Ratings are stored as given.
func (s *reviewService) Create(ctx context.Context, bookID int64, review *models.Review) error {
	// Check if book exists
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		return err
	}

	review.BookID = bookID
	return s.reviewRepo.Create(ctx, review)
}

func (s *reviewService) ListByBook(ctx context.Context, bookID int64) ([]models.Review, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByBook(ctx, bookID)
}
