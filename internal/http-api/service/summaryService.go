package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bookhub/internal/http-api/dto"
	"bookhub/internal/http-api/repository"
	"bookhub/internal/summarizer"
)

type SummaryService interface {
	BookSummary(ctx context.Context, bookID int64) (*dto.BookSummaryResponse, error)
	GenerateSummary(ctx context.Context, bookID int64) (string, error)
}

type summaryService struct {
	bookRepo     repository.BookRepository
	reviewRepo   repository.ReviewRepository
	summarizer   summarizer.Summarizer
	storeTimeout time.Duration
	logger       *slog.Logger
}

// NewSummaryService builds the summary flows. storeTimeout bounds each store
// call (0 = no bound); the summarizer call itself is never bounded here.
func NewSummaryService(
	bookRepo repository.BookRepository,
	reviewRepo repository.ReviewRepository,
	s summarizer.Summarizer,
	storeTimeout time.Duration,
	logger *slog.Logger,
) SummaryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &summaryService{
		bookRepo:     bookRepo,
		reviewRepo:   reviewRepo,
		summarizer:   s,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

// BookSummary returns the stored summary ("" if none) and the mean rating of
// the book's reviews (0 if none).
func (s *summaryService) BookSummary(ctx context.Context, bookID int64) (*dto.BookSummaryResponse, error) {
	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.GetByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	ratings := make([]float64, 0, len(reviews))
	for _, r := range reviews {
		ratings = append(ratings, r.Rating)
	}

	resp := &dto.BookSummaryResponse{AverageRating: AverageRating(ratings)}
	if book.Summary != nil {
		resp.Summary = *book.Summary
	}
	return resp, nil
}

// GenerateSummary asks the summarizer for a summary of the book's text and
// stores it on the book. Client cancellation does not abort the model call.
// If storing fails after the model answered, the summary is lost.
func (s *summaryService) GenerateSummary(ctx context.Context, bookID int64) (string, error) {
	detached := context.WithoutCancel(ctx)

	loadCtx, cancel := s.storeContext(detached)
	book, err := s.bookRepo.GetByID(loadCtx, bookID)
	cancel()
	if err != nil {
		return "", err
	}
	if book.TextContent == nil || *book.TextContent == "" {
		return "", ErrNoTextContent
	}

	summary, err := s.summarizer.Summarize(detached, *book.TextContent)
	if err != nil {
		return "", fmt.Errorf("summarize book %d: %w", bookID, err)
	}

	saveCtx, cancel := s.storeContext(detached)
	defer cancel()
	if _, err := s.bookRepo.Update(saveCtx, bookID, map[string]interface{}{"summary": summary}); err != nil {
		s.logger.Error("summary_persist_failed", "book_id", bookID, "error", err)
		return "", err
	}

	s.logger.Info("summary_persisted", "book_id", bookID)
	return summary, nil
}

func (s *summaryService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

// AverageRating is the arithmetic mean of ratings, or 0 for none.
func AverageRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return sum / float64(len(ratings))
}
