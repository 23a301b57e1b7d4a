package repository

import (
	"context"
	"errors"
	"fmt"

	"bookhub/internal/http-api/models"

	"gorm.io/gorm"
)

type BookRepository interface {
	Create(ctx context.Context, b *models.Book) error
	GetAll(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Update(ctx context.Context, id int64, changes map[string]interface{}) (*models.Book, error)
	Delete(ctx context.Context, id int64) error
	FindByGenre(ctx context.Context, genre string) ([]models.Book, error)
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	// GORM will populate b.ID
	return nil
}

func (r *bookRepository) GetAll(ctx context.Context) ([]models.Book, error) {
	list := make([]models.Book, 0)
	if err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return list, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return &b, nil
}

// Update writes only the columns named in changes (a nil value stores NULL)
// and returns the row as stored after the write.
func (r *bookRepository) Update(ctx context.Context, id int64, changes map[string]interface{}) (*models.Book, error) {
	var updated models.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Book
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}
		if len(changes) == 0 {
			updated = existing
			return nil
		}
		if err := tx.Model(&models.Book{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&updated, id).Error
	})
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update book: %w", err)
	}
	return &updated, nil
}

// Delete removes the book and all of its reviews in one transaction.
func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Book{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBookNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return err
		}
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

// FindByGenre is an exact, case-sensitive match on genre.
func (r *bookRepository) FindByGenre(ctx context.Context, genre string) ([]models.Book, error) {
	list := make([]models.Book, 0)
	if err := r.db.WithContext(ctx).Where("genre = ?", genre).Order("id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find books by genre: %w", err)
	}
	return list, nil
}
