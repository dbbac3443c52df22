package books

import (
	"errors"
	"time"

	"author-books-app/internal/domain/authors"
	"author-books-app/internal/domain/rules"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("book not found")

type Book struct {
	ID    string `gorm:"type:uuid;primaryKey" json:"id"`
	Title string `gorm:"type:text;not null" json:"title"`

	AuthorID string          `gorm:"type:uuid;not null;index" json:"author_id"`
	Author   *authors.Author `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks field presence only. Author status is the create guard's job.
func (b Book) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Title,
			rules.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&b.AuthorID, validation.Required.Error("author is required")),
	)
}

func (b *Book) BeforeSave(tx *gorm.DB) error {
	if b.AuthorID == "" && b.Author != nil {
		b.AuthorID = b.Author.ID
	}
	return b.Validate()
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
