package authors

import (
	"context"
	"net/http"

	"author-books-app/internal/api/apierr"
	"author-books-app/internal/domain/authors"
	"author-books-app/internal/domain/books"
	"author-books-app/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// BasePath is where author resources live. Book payloads refer to authors by
// BasePath + "/" + id.
const BasePath = "/authors"

type AuthorStore interface {
	Create(ctx context.Context, a *authors.Author) error
	Get(ctx context.Context, id string) (*authors.Author, error)
	List(ctx context.Context) ([]authors.Author, error)
	Update(ctx context.Context, id string, p store.AuthorPatch) (*authors.Author, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type BookLister interface {
	ListByAuthor(ctx context.Context, authorID string) ([]books.Book, error)
}

type Handler struct {
	authors AuthorStore
	books   BookLister
}

func NewHandler(a AuthorStore, b BookLister) *Handler {
	return &Handler{authors: a, books: b}
}

func Location(id string) string {
	return BasePath + "/" + id
}

// ------------------------------
// POST /authors
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, err)
		return
	}

	a := authors.Author{Name: req.Name}
	if req.Status != nil {
		a.Status = *req.Status
	}
	if err := h.authors.Create(c.Request.Context(), &a); err != nil {
		apierr.Write(c, err)
		return
	}

	c.Header("Location", Location(a.ID))
	c.JSON(http.StatusCreated, a)
}

// ------------------------------
// GET /authors
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	list, err := h.authors.List(c.Request.Context())
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ------------------------------
// GET /authors/:id
// ------------------------------
func (h *Handler) Get(c *gin.Context) {
	a, err := h.authors.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// ------------------------------
// PUT|PATCH /authors/:id
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	var req UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, err)
		return
	}

	a, err := h.authors.Update(c.Request.Context(), c.Param("id"), store.AuthorPatch{
		Name:   req.Name,
		Status: req.Status,
	})
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// ------------------------------
// DELETE /authors/:id  (cascades to the author's books)
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	removed, err := h.authors.Delete(c.Request.Context(), id)
	if err != nil {
		apierr.Write(c, err)
		return
	}

	log.Info().Str("author_id", id).Int64("books_removed", removed).Msg("author deleted")
	c.JSON(http.StatusOK, DeleteAuthorResponse{ID: id, BooksRemoved: removed})
}

// ------------------------------
// GET /authors/:id/books
// ------------------------------
func (h *Handler) ListBooks(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if _, err := h.authors.Get(ctx, id); err != nil {
		apierr.Write(c, err)
		return
	}

	list, err := h.books.ListByAuthor(ctx, id)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
