package service

import (
	"context"

	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"
)

type BookService interface {
	Create(ctx context.Context, book *models.Book) error
	GetAll(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Update(ctx context.Context, id int64, changes map[string]interface{}) (*models.Book, error)
	Delete(ctx context.Context, id int64) error
}

type bookService struct {
	repo repository.BookRepository
}

func NewBookService(repo repository.BookRepository) BookService {
	return &bookService{repo: repo}
}

func (s *bookService) Create(ctx context.Context, book *models.Book) error {
	return s.repo.Create(ctx, book)
}

func (s *bookService) GetAll(ctx context.Context) ([]models.Book, error) {
	return s.repo.GetAll(ctx)
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies only the given columns. An empty change set still checks
// that the book exists and returns it unchanged.
func (s *bookService) Update(ctx context.Context, id int64, changes map[string]interface{}) (*models.Book, error) {
	return s.repo.Update(ctx, id, changes)
}

// Delete removes the book and, with it, every review of the book.
func (s *bookService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
