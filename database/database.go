package database

import (
	"fmt"

	"author-books-app/internal/domain/authors"
	"author-books-app/internal/domain/books"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres. Queries are logged through zerolog.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database dsn is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: NewLogger(log.Logger),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the tables. Authors must come first so the
// books.author_id foreign key (ON DELETE CASCADE) has a target.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&authors.Author{},
		&books.Book{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
