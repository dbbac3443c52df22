package books

import (
	"context"
	"errors"
	"net/http"

	"author-books-app/internal/api/apierr"
	"author-books-app/internal/domain/authors"
	"author-books-app/internal/domain/books"
	"author-books-app/internal/store"

	"github.com/gin-gonic/gin"
)

const BasePath = "/books"

type BookStore interface {
	Create(ctx context.Context, b *books.Book) error
	Get(ctx context.Context, id string) (*books.Book, error)
	List(ctx context.Context) ([]books.Book, error)
	Update(ctx context.Context, id string, p store.BookPatch) (*books.Book, error)
	Delete(ctx context.Context, id string) error
}

type AuthorLookup interface {
	Get(ctx context.Context, id string) (*authors.Author, error)
}

type Handler struct {
	books   BookStore
	authors AuthorLookup
}

func NewHandler(b BookStore, a AuthorLookup) *Handler {
	return &Handler{books: b, authors: a}
}

func Location(id string) string {
	return BasePath + "/" + id
}

// resolveAuthor turns a payload reference into a stored author. Unknown
// authors are a client error here, not a 404.
func (h *Handler) resolveAuthor(ctx context.Context, ref string) (*authors.Author, error) {
	id, err := parseAuthorRef(ref)
	if err != nil {
		return nil, err
	}
	a, err := h.authors.Get(ctx, id)
	if errors.Is(err, authors.ErrNotFound) {
		return nil, books.ErrAuthorUnresolved
	}
	return a, err
}

// ------------------------------
// POST /books
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	a, err := h.resolveAuthor(ctx, req.Author)
	if errors.Is(err, errBadReference) {
		apierr.BadRequest(c, err)
		return
	}
	if err != nil {
		apierr.Write(c, err)
		return
	}

	b := books.Book{Title: req.Title, AuthorID: a.ID, Author: a}
	if err := h.books.Create(ctx, &b); err != nil {
		apierr.Write(c, err)
		return
	}

	c.Header("Location", Location(b.ID))
	c.JSON(http.StatusCreated, b)
}

// ------------------------------
// GET /books
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	list, err := h.books.List(c.Request.Context())
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ------------------------------
// GET /books/:id
// ------------------------------
func (h *Handler) Get(c *gin.Context) {
	b, err := h.books.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ------------------------------
// PUT|PATCH /books/:id  (no author status check)
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, err)
		return
	}

	patch := store.BookPatch{Title: req.Title}
	if req.Author != nil {
		id, err := parseAuthorRef(*req.Author)
		if err != nil {
			apierr.BadRequest(c, err)
			return
		}
		patch.AuthorID = &id
	}

	b, err := h.books.Update(c.Request.Context(), c.Param("id"), patch)
	if errors.Is(err, authors.ErrNotFound) {
		apierr.Write(c, books.ErrAuthorUnresolved)
		return
	}
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ------------------------------
// DELETE /books/:id
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	if err := h.books.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apierr.Write(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
