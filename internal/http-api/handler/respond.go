package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bookhub/internal/http-api/dto"
	"bookhub/internal/http-api/middleware"
	"bookhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

func detail(c *gin.Context, status int, msg string) {
	c.JSON(status, dto.DetailResponse{Detail: msg})
}

// parseBookID reads the :id path parameter, answering 400 when malformed.
func parseBookID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		detail(c, http.StatusBadRequest, "Invalid book ID")
		return 0, false
	}
	return id, true
}

// respondError maps service errors onto status codes and logs the failure
// once with the acting user.
func respondError(c *gin.Context, op string, err error) {
	logger := middleware.Logger(c).With("op", op, "username", c.GetString(middleware.UsernameKey))

	switch {
	case errors.Is(err, service.ErrBookNotFound):
		logger.Info("book_not_found", "path", c.Request.URL.Path)
		detail(c, http.StatusNotFound, "Book not found")
	case errors.Is(err, service.ErrNoTextContent):
		logger.Info("no_text_content", "path", c.Request.URL.Path)
		detail(c, http.StatusBadRequest, "No text content available for this book")
	case errors.Is(err, dto.ErrTitleRequired), errors.Is(err, dto.ErrAuthorRequired):
		detail(c, http.StatusBadRequest, err.Error())
	default:
		// store and driver text stays in the log
		logger.Error("request_failed", "error", err)
		detail(c, http.StatusInternalServerError, "Internal Server Error")
	}
}
