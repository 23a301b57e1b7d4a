package service

import (
	"context"

	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"
)

type RecommendationService interface {
	Recommend(ctx context.Context, genre string) ([]models.Book, error)
}

type recommendationService struct {
	bookRepo repository.BookRepository
}

func NewRecommendationService(bookRepo repository.BookRepository) RecommendationService {
	return &recommendationService{bookRepo: bookRepo}
}

// Recommend returns the books whose genre equals genre exactly, or every
// book when genre is empty.
func (s *recommendationService) Recommend(ctx context.Context, genre string) ([]models.Book, error) {
	if genre == "" {
		return s.bookRepo.GetAll(ctx)
	}
	return s.bookRepo.FindByGenre(ctx, genre)
}
