package handler

import (
	"context"
	"net/http"
	"time"

	"bookhub/internal/http-api/dto"
	"bookhub/internal/http-api/middleware"
	"bookhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	bookService service.BookService
	timeout     time.Duration
}

func NewBookHandler(bookService service.BookService, timeout time.Duration) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		timeout:     timeout,
	}
}

// RegisterRoutes registers book routes
func (h *BookHandler) RegisterRoutes(router *gin.RouterGroup) {
	books := router.Group("/books")
	{
		books.POST("", h.Create)
		books.GET("", h.List)
		books.GET("/:id", h.Get)
		books.PUT("/:id", h.Update)
		books.DELETE("/:id", h.Delete)
	}
}

// Create adds a new book
// POST /books
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	book := req.ToModel()
	if err := h.bookService.Create(ctx, &book); err != nil {
		respondError(c, "create_book", err)
		return
	}

	middleware.Logger(c).Info("book_created", "book_id", book.ID, "username", c.GetString(middleware.UsernameKey))
	c.JSON(http.StatusOK, dto.FromModelToBookResponse(book))
}

// List returns every book
// GET /books
func (h *BookHandler) List(c *gin.Context) {
	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	books, err := h.bookService.GetAll(ctx)
	if err != nil {
		respondError(c, "list_books", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelsToBookResponses(books))
}

// Get returns one book
// GET /books/:id
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	book, err := h.bookService.GetByID(ctx, id)
	if err != nil {
		respondError(c, "get_book", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToBookResponse(*book))
}

// Update applies a partial update; only fields present in the body change
// PUT /books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	var req dto.UpdateBookDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, err.Error())
		return
	}
	changes, err := req.Changes()
	if err != nil {
		respondError(c, "update_book", err)
		return
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	book, err := h.bookService.Update(ctx, id, changes)
	if err != nil {
		respondError(c, "update_book", err)
		return
	}

	middleware.Logger(c).Info("book_updated", "book_id", id, "fields", len(changes), "username", c.GetString(middleware.UsernameKey))
	c.JSON(http.StatusOK, dto.FromModelToBookResponse(*book))
}

// Delete removes a book together with its reviews
// DELETE /books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	if err := h.bookService.Delete(ctx, id); err != nil {
		respondError(c, "delete_book", err)
		return
	}

	middleware.Logger(c).Info("book_deleted", "book_id", id, "username", c.GetString(middleware.UsernameKey))
	detail(c, http.StatusOK, "Book deleted")
}

func withTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}
