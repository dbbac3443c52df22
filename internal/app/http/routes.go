package routes

import (
	"net/http"
	"time"

	authorsapi "author-books-app/internal/api/authors"
	booksapi "author-books-app/internal/api/books"
	"author-books-app/internal/app/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Authors *authorsapi.Handler
	Books   *booksapi.Handler
}

type Options struct {
	CORSOrigin string
	// JWTSecret turns on bearer auth for write routes when set.
	JWTSecret string
}

// NewRouter builds the engine with the standard middleware stack and all routes.
func NewRouter(opts Options, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	r.Use(cors.New(corsConfig(opts.CORSOrigin)))

	RegisterRoutes(r, opts, h)
	return r
}

func corsConfig(origin string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Location"},
		MaxAge:        12 * time.Hour,
	}
	if origin == "" || origin == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = []string{origin}
	cfg.AllowCredentials = true
	return cfg
}

func RegisterRoutes(r *gin.Engine, opts Options, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Reads are public
	r.GET("/authors", h.Authors.List)
	r.GET("/authors/:id", h.Authors.Get)
	r.GET("/authors/:id/books", h.Authors.ListBooks)
	r.GET("/books", h.Books.List)
	r.GET("/books/:id", h.Books.Get)

	write := r.Group("/")
	if opts.JWTSecret != "" {
		write.Use(middleware.AuthMiddleware(opts.JWTSecret))
	}
	write.Use(middleware.SanitizeAndCleanInputMiddleware())

	write.POST("/authors", h.Authors.Create)
	write.PUT("/authors/:id", h.Authors.Update)
	write.PATCH("/authors/:id", h.Authors.Update)

	// Deleting an author takes its books with it
	if opts.JWTSecret != "" {
		write.DELETE("/authors/:id", middleware.RequireRole("admin"), h.Authors.Delete)
	} else {
		write.DELETE("/authors/:id", h.Authors.Delete)
	}

	write.POST("/books", h.Books.Create)
	write.PUT("/books/:id", h.Books.Update)
	write.PATCH("/books/:id", h.Books.Update)
	write.DELETE("/books/:id", h.Books.Delete)
}
