package store

import (
	"context"
	"errors"

	"author-books-app/internal/domain/authors"
	"author-books-app/internal/domain/books"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookPatch carries the fields an update may change. Nil means unchanged.
type BookPatch struct {
	Title    *string
	AuthorID *string
}

type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Create inserts b. The create guards registered on the database run first;
// their error comes back unchanged and nothing is written.
func (r *BookRepository) Create(ctx context.Context, b *books.Book) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

func (r *BookRepository) Get(ctx context.Context, id string) (*books.Book, error) {
	if !validID(id) {
		return nil, books.ErrNotFound
	}
	var b books.Book
	err := r.db.WithContext(ctx).Preload("Author").First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, books.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookRepository) List(ctx context.Context) ([]books.Book, error) {
	out := make([]books.Book, 0)
	err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&out).Error
	return out, err
}

// ListByAuthor is the author's book collection.
func (r *BookRepository) ListByAuthor(ctx context.Context, authorID string) ([]books.Book, error) {
	out := make([]books.Book, 0)
	if !validID(authorID) {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// Update changes title and/or author. The author-active guard does not run
// here; reassigning to an INACTIVE author is allowed as long as it exists.
func (r *BookRepository) Update(ctx context.Context, id string, p BookPatch) (*books.Book, error) {
	if !validID(id) {
		return nil, books.ErrNotFound
	}
	var out *books.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b books.Book
		if err := tx.Preload("Author").First(&b, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return books.ErrNotFound
			}
			return err
		}

		if p.Title != nil {
			b.Title = *p.Title
		}
		if p.AuthorID != nil && *p.AuthorID != b.AuthorID {
			if !validID(*p.AuthorID) {
				return authors.ErrNotFound
			}
			var a authors.Author
			if err := tx.First(&a, "id = ?", *p.AuthorID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return authors.ErrNotFound
				}
				return err
			}
			b.AuthorID = a.ID
			b.Author = &a
		}

		if err := tx.Omit(clause.Associations).Save(&b).Error; err != nil {
			return err
		}
		out = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return books.ErrNotFound
	}
	res := r.db.WithContext(ctx).Delete(&books.Book{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return books.ErrNotFound
	}
	return nil
}
