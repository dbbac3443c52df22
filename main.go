package main

import (
	"os"

	"author-books-app/config"
	"author-books-app/database"
	authorsapi "author-books-app/internal/api/authors"
	booksapi "author-books-app/internal/api/books"
	routes "author-books-app/internal/app/http"
	"author-books-app/internal/domain/books"
	"author-books-app/internal/store"
	"author-books-app/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadEnv()
	if err != nil {
		logger.Error("invalid configuration", err)
		os.Exit(1)
	}
	logger.Init(cfg.AppEnv, cfg.LogLevel)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.DBURL)
	if err != nil {
		logger.Error("failed to connect to database", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("failed to migrate database", err)
		os.Exit(1)
	}

	// Every book insert goes through the author-active guard.
	if err := books.RegisterCreateGuards(db, books.AuthorActiveGuard{}); err != nil {
		logger.Error("failed to register book create guards", err)
		os.Exit(1)
	}

	authorRepo := store.NewAuthorRepository(db)
	bookRepo := store.NewBookRepository(db)

	r := routes.NewRouter(routes.Options{
		CORSOrigin: cfg.CORSOrigin,
		JWTSecret:  cfg.JWTSecret,
	}, routes.Handlers{
		Authors: authorsapi.NewHandler(authorRepo, bookRepo),
		Books:   booksapi.NewHandler(bookRepo, authorRepo),
	})

	logger.Info("server starting", map[string]interface{}{
		"port":         cfg.Port,
		"auth_enabled": cfg.AuthEnabled(),
	})
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", err)
		os.Exit(1)
	}
}
