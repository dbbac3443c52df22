package books

// ---------- requests

// Author is a reference: an author URI, an /authors/{id} path or a bare id.
type CreateBookRequest struct {
	Author string `json:"author" binding:"required"`
	Title  string `json:"title"`
}

type UpdateBookRequest struct {
	Author *string `json:"author"`
	Title  *string `json:"title"`
}
