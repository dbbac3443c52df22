package authors

import (
	"errors"
	"time"

	"author-books-app/internal/domain/rules"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// DefaultStatus is applied when an author is created without a status.
const DefaultStatus = StatusActive

var ErrNotFound = errors.New("author not found")

// Author owns zero or more books. The books are not stored on the author;
// they are looked up by author_id.
type Author struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	Name   string `gorm:"type:text;not null" json:"name"`
	Status Status `gorm:"type:varchar(16);not null;index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Author) IsActive() bool {
	return a.Status == StatusActive
}

func (a Author) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name,
			rules.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&a.Status,
			validation.Required.Error("status is required"),
			validation.In(StatusActive, StatusInactive).Error("status must be ACTIVE or INACTIVE"),
		),
	)
}

func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = DefaultStatus
	}
	return a.Validate()
}

// BeforeUpdate does not default the status; clearing it is a validation error.
func (a *Author) BeforeUpdate(tx *gorm.DB) error {
	return a.Validate()
}
