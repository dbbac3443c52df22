package apierr

import (
	"errors"
	"net/http"

	"author-books-app/internal/domain/authors"
	"author-books-app/internal/domain/books"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"
)

// Status maps a domain error to an HTTP status code.
func Status(err error) int {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest
	case errors.Is(err, books.ErrInactiveAuthor), errors.Is(err, books.ErrAuthorUnresolved):
		return http.StatusBadRequest
	case errors.Is(err, authors.ErrNotFound), errors.Is(err, books.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Write sends err as a JSON error body. Unexpected errors are logged and
// their details hidden.
func Write(c *gin.Context, err error) {
	status := Status(err)

	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		c.JSON(status, gin.H{"error": "validation failed", "details": verrs})
	case status == http.StatusInternalServerError:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
	default:
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

// BadRequest reports a request that could not be decoded.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
