package store

import (
	"context"
	"errors"

	"author-books-app/internal/domain/authors"
	"author-books-app/internal/domain/books"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// validID filters out ids that can never match. Postgres rejects malformed
// values for uuid columns instead of returning no rows.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// AuthorPatch carries the fields an update may change. Nil means unchanged.
type AuthorPatch struct {
	Name   *string
	Status *authors.Status
}

type AuthorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) *AuthorRepository {
	return &AuthorRepository{db: db}
}

func (r *AuthorRepository) Create(ctx context.Context, a *authors.Author) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AuthorRepository) Get(ctx context.Context, id string) (*authors.Author, error) {
	if !validID(id) {
		return nil, authors.ErrNotFound
	}
	var a authors.Author
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, authors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AuthorRepository) List(ctx context.Context) ([]authors.Author, error) {
	out := make([]authors.Author, 0)
	err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&out).Error
	return out, err
}

// Update applies the patch and saves. Books already owned by the author are
// not re-checked, even when the author becomes INACTIVE.
func (r *AuthorRepository) Update(ctx context.Context, id string, p AuthorPatch) (*authors.Author, error) {
	if !validID(id) {
		return nil, authors.ErrNotFound
	}
	var out *authors.Author
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a authors.Author
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return authors.ErrNotFound
			}
			return err
		}

		if p.Name != nil {
			a.Name = *p.Name
		}
		if p.Status != nil {
			a.Status = *p.Status
		}
		if err := tx.Save(&a).Error; err != nil {
			return err
		}
		out = &a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the author and every book it owns in one transaction and
// returns how many books went with it. The foreign key cascades too; the
// explicit delete keeps the behavior on databases without FK enforcement.
func (r *AuthorRepository) Delete(ctx context.Context, id string) (int64, error) {
	if !validID(id) {
		return 0, authors.ErrNotFound
	}
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a authors.Author
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return authors.ErrNotFound
			}
			return err
		}

		res := tx.Where("author_id = ?", id).Delete(&books.Book{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected

		return tx.Delete(&a).Error
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
