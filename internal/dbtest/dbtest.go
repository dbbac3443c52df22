// Package dbtest opens throwaway in-memory SQLite databases with the
// production schema and create guards installed.
package dbtest

import (
	"testing"

	"author-books-app/database"
	"author-books-app/internal/domain/books"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const dsn = ":memory:?_pragma=foreign_keys(1)"

// Open returns a migrated database with books.AuthorActiveGuard registered.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	return OpenWith(t, books.AuthorActiveGuard{})
}

// OpenWith is Open with a custom guard set. No guards means an unguarded create path.
func OpenWith(t testing.TB, guards ...books.CreateGuard) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: database.NewLogger(zerolog.Nop()).LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// Every pooled connection would get its own :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	if len(guards) > 0 {
		require.NoError(t, books.RegisterCreateGuards(db, guards...))
	}
	return db
}
