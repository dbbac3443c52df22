package books

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"author-books-app/internal/domain/authors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrInactiveAuthor   = errors.New("book author must be active")
	ErrAuthorUnresolved = errors.New("book author could not be resolved")
	ErrUnguardedCreate  = errors.New("book create value not supported by create guard")
)

// CreateGuardCallback is the name of the callback registered on the create chain.
const CreateGuardCallback = "books:create_guard"

// CreateGuard inspects a book right before it is inserted. A non-nil error
// aborts the insert. The book's Author is always resolved when a guard runs.
type CreateGuard interface {
	BeforeCreate(ctx context.Context, b *Book) error
}

// AuthorActiveGuard rejects books whose author is not ACTIVE at creation time.
// Updates are never checked, so deactivating an author leaves existing books alone.
type AuthorActiveGuard struct{}

func (AuthorActiveGuard) BeforeCreate(_ context.Context, b *Book) error {
	if b.Author == nil || !b.Author.IsActive() {
		return ErrInactiveAuthor
	}
	return nil
}

var bookType = reflect.TypeOf(Book{})

// booksTable covers creates issued with db.Table("books") and no model.
const booksTable = "books"

// RegisterCreateGuards hooks the guards into db's create chain, between the
// model's BeforeCreate hook and the INSERT. The error from the first failing
// guard becomes the statement error, so the INSERT is skipped and the create
// transaction rolls back.
func RegisterCreateGuards(db *gorm.DB, guards ...CreateGuard) error {
	return db.Callback().Create().
		After("gorm:before_create").
		Before("gorm:create").
		Register(CreateGuardCallback, func(tx *gorm.DB) {
			if tx.Error != nil || !isBookCreate(tx.Statement) {
				return
			}
			pending, ok := pendingBooks(tx.Statement.ReflectValue)
			if !ok {
				_ = tx.AddError(fmt.Errorf("%w: %s", ErrUnguardedCreate, tx.Statement.ReflectValue.Kind()))
				return
			}
			for _, b := range pending {
				if err := checkBook(tx, b, guards); err != nil {
					_ = tx.AddError(err)
					return
				}
			}
		})
}

func checkBook(tx *gorm.DB, b *Book, guards []CreateGuard) error {
	if err := resolveAuthor(tx, b); err != nil {
		return err
	}
	ctx := tx.Statement.Context
	for _, g := range guards {
		if err := g.BeforeCreate(ctx, b); err != nil {
			log.Info().
				Err(err).
				Str("title", b.Title).
				Str("author_id", b.AuthorID).
				Msg("book create rejected")
			return err
		}
	}
	return nil
}

// resolveAuthor loads the author unless the caller already attached the right one.
// The lookup goes through the statement's connection so it sees the open transaction.
func resolveAuthor(tx *gorm.DB, b *Book) error {
	if b.Author != nil && b.Author.ID == b.AuthorID {
		return nil
	}

	if uuid.Validate(b.AuthorID) != nil {
		return fmt.Errorf("%w: %s", ErrAuthorUnresolved, b.AuthorID)
	}

	var a authors.Author
	err := tx.Session(&gorm.Session{NewDB: true}).
		Where("id = ?", b.AuthorID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrAuthorUnresolved, b.AuthorID)
	}
	if err != nil {
		return err
	}
	b.Author = &a
	return nil
}

func isBookCreate(stmt *gorm.Statement) bool {
	if stmt.Schema != nil {
		return stmt.Schema.ModelType == bookType
	}
	return stmt.Table == booksTable
}

// pendingBooks returns the books a create is about to insert. Map values are
// copied into detached books so the guards see the same author_id GORM writes.
// It reports false for any value the guards cannot inspect; the create must fail then.
func pendingBooks(rv reflect.Value) ([]*Book, bool) {
	rv = reflect.Indirect(rv)
	switch rv.Kind() {
	case reflect.Struct:
		return bookOf(rv)
	case reflect.Map:
		return bookOf(rv)
	case reflect.Slice, reflect.Array:
		out := make([]*Book, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			b, ok := bookOf(reflect.Indirect(rv.Index(i)))
			if !ok {
				return nil, false
			}
			out = append(out, b...)
		}
		return out, true
	}
	return nil, false
}

func bookOf(v reflect.Value) ([]*Book, bool) {
	if v.Kind() == reflect.Interface {
		v = reflect.Indirect(v.Elem())
	}
	switch v.Kind() {
	case reflect.Struct:
		if !v.CanAddr() {
			return nil, false
		}
		b, ok := v.Addr().Interface().(*Book)
		if !ok {
			return nil, false
		}
		return []*Book{b}, true
	case reflect.Map:
		m, ok := v.Interface().(map[string]interface{})
		if !ok {
			return nil, false
		}
		return []*Book{bookFromMap(m)}, true
	}
	return nil, false
}

// bookFromMap accepts both the column and the field name, as GORM does.
func bookFromMap(m map[string]interface{}) *Book {
	b := &Book{}
	for k, v := range m {
		switch k {
		case "author_id", "AuthorID":
			b.AuthorID = stringValue(v)
		case "title", "Title":
			b.Title = stringValue(v)
		}
	}
	return b
}

func stringValue(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case *string:
		if s != nil {
			return *s
		}
	case fmt.Stringer:
		return s.String()
	}
	return ""
}
