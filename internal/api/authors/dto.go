package authors

import "author-books-app/internal/domain/authors"

// ---------- requests

// Status is optional on create; the entity defaults it to ACTIVE.
type CreateAuthorRequest struct {
	Name   string          `json:"name"`
	Status *authors.Status `json:"status"`
}

type UpdateAuthorRequest struct {
	Name   *string         `json:"name"`
	Status *authors.Status `json:"status"`
}

// ---------- responses

type DeleteAuthorResponse struct {
	ID           string `json:"id"`
	BooksRemoved int64  `json:"books_removed"`
}
