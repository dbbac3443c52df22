package store

import (
	"context"
	"testing"

	"author-books-app/internal/dbtest"
	"author-books-app/internal/domain/authors"
	"author-books-app/internal/domain/books"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepos(t *testing.T) (*AuthorRepository, *BookRepository) {
	t.Helper()
	db := dbtest.Open(t)
	return NewAuthorRepository(db), NewBookRepository(db)
}

func mustAuthor(t *testing.T, repo *AuthorRepository, name string, status authors.Status) *authors.Author {
	t.Helper()
	a := &authors.Author{Name: name, Status: status}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

func TestAuthorRepository_CreateAndGet(t *testing.T) {
	ar, _ := newRepos(t)
	ctx := context.Background()

	a := mustAuthor(t, ar, "Rudyard Kipling", "")
	require.NotEmpty(t, a.ID)
	assert.Equal(t, authors.StatusActive, a.Status)

	got, err := ar.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rudyard Kipling", got.Name)
	assert.Equal(t, authors.StatusActive, got.Status)
}

func TestAuthorRepository_CreateRejectsBlankName(t *testing.T) {
	ar, _ := newRepos(t)

	err := ar.Create(context.Background(), &authors.Author{Name: "  "})
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "name")

	list, err := ar.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAuthorRepository_GetMissing(t *testing.T) {
	ar, _ := newRepos(t)

	_, err := ar.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, authors.ErrNotFound)
}

func TestAuthorRepository_List(t *testing.T) {
	ar, _ := newRepos(t)
	mustAuthor(t, ar, "Rudyard Kipling", authors.StatusActive)
	mustAuthor(t, ar, "Joseph Conrad", authors.StatusInactive)

	list, err := ar.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAuthorRepository_Update(t *testing.T) {
	ar, _ := newRepos(t)
	ctx := context.Background()
	a := mustAuthor(t, ar, "Rudyard Kipling", authors.StatusActive)

	inactive := authors.StatusInactive
	got, err := ar.Update(ctx, a.ID, AuthorPatch{Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, authors.StatusInactive, got.Status)
	assert.Equal(t, "Rudyard Kipling", got.Name)

	name := "R. Kipling"
	got, err = ar.Update(ctx, a.ID, AuthorPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "R. Kipling", got.Name)
	assert.Equal(t, authors.StatusInactive, got.Status)

	blank := ""
	_, err = ar.Update(ctx, a.ID, AuthorPatch{Name: &blank})
	assert.Error(t, err)

	bogus := authors.Status("RETIRED")
	_, err = ar.Update(ctx, a.ID, AuthorPatch{Status: &bogus})
	assert.Error(t, err)

	cleared := authors.Status("")
	_, err = ar.Update(ctx, a.ID, AuthorPatch{Status: &cleared})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "status")
	got, err = ar.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, authors.StatusInactive, got.Status)

	_, err = ar.Update(ctx, "missing", AuthorPatch{Name: &name})
	assert.ErrorIs(t, err, authors.ErrNotFound)
}

func TestAuthorRepository_DeleteCascadesToBooks(t *testing.T) {
	ar, br := newRepos(t)
	ctx := context.Background()

	kipling := mustAuthor(t, ar, "Rudyard Kipling", authors.StatusActive)
	conrad := mustAuthor(t, ar, "Joseph Conrad", authors.StatusActive)

	jungle := &books.Book{Title: "The Jungle Book", AuthorID: kipling.ID}
	kim := &books.Book{Title: "Kim", AuthorID: kipling.ID}
	nostromo := &books.Book{Title: "Nostromo", AuthorID: conrad.ID}
	for _, b := range []*books.Book{jungle, kim, nostromo} {
		require.NoError(t, br.Create(ctx, b))
	}

	removed, err := ar.Delete(ctx, kipling.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	_, err = ar.Get(ctx, kipling.ID)
	assert.ErrorIs(t, err, authors.ErrNotFound)

	for _, b := range []*books.Book{jungle, kim} {
		_, err := br.Get(ctx, b.ID)
		assert.ErrorIs(t, err, books.ErrNotFound)
	}
	left, err := br.ListByAuthor(ctx, kipling.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	// Other authors keep their books.
	_, err = br.Get(ctx, nostromo.ID)
	assert.NoError(t, err)
}

func TestAuthorRepository_DeleteMissing(t *testing.T) {
	ar, _ := newRepos(t)

	_, err := ar.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, authors.ErrNotFound)
}

func TestBookRepository_CreateWithActiveAuthor(t *testing.T) {
	ar, br := newRepos(t)
	ctx := context.Background()
	a := mustAuthor(t, ar, "Rudyard Kipling", authors.StatusActive)

	b := &books.Book{Title: "The Jungle Book", Author: a}
	require.NoError(t, br.Create(ctx, b))
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, a.ID, b.AuthorID)

	got, err := br.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Jungle Book", got.Title)
	require.NotNil(t, got.Author)
	assert.Equal(t, a.ID, got.Author.ID)
}

func TestBookRepository_CreateWithInactiveAuthor(t *testing.T) {
	ar, br := newRepos(t)
	ctx := context.Background()
	a := mustAuthor(t, ar, "Rudyard Kipling", authors.StatusInactive)

	err := br.Create(ctx, &books.Book{Title: "If", Author: a})
	assert.ErrorIs(t, err, books.ErrInactiveAuthor)
	assert.EqualError(t, err, "book author must be active")

	list, err := br.ListByAuthor(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBookRepository_CreateValidatesFields(t *testing.T) {
	ar, br := newRepos(t)
	a := mustAuthor(t, ar, "Rudyard Kipling", authors.StatusActive)

	tests := []struct {
		name  string
		book  books.Book
		field string
	}{
		{"blank_title", books.Book{Title: " ", AuthorID: a.ID}, "title"},
		{"no_author", books.Book{Title: "Kim"}, "author_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.book
			err := br.Create(context.Background(), &b)
			var errs validation.Errors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestBookRepository_RetryReevaluatesAuthorStatus(t *testing.T) {
	ar, br := newRepos(t)
	ctx := context.Background()
	a := mustAuthor(t, ar, "Rudyard Kipling", authors.StatusInactive)

	err := br.Create(ctx, &books.Book{Title: "If", AuthorID: a.ID})
	require.ErrorIs(t, err, books.ErrInactiveAuthor)

	active := authors.StatusActive
	_, err = ar.Update(ctx, a.ID, AuthorPatch{Status: &active})
	require.NoError(t, err)

	require.NoError(t, br.Create(ctx, &books.Book{Title: "If", AuthorID: a.ID}))
}

func TestBookRepository_DeactivatingAuthorKeepsBooks(t *testing.T) {
	ar, br := newRepos(t)
	ctx := context.Background()
	a := mustAuthor(t, ar, "Rudyard Kipling", authors.StatusActive)

	b := &books.Book{Title: "The Jungle Book", AuthorID: a.ID}
	require.NoError(t, br.Create(ctx, b))

	inactive := authors.StatusInactive
	_, err := ar.Update(ctx, a.ID, AuthorPatch{Status: &inactive})
	require.NoError(t, err)

	got, err := br.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Jungle Book", got.Title)
	assert.Equal(t, a.ID, got.AuthorID)

	title := "The Jungle Book (Illustrated)"
	updated, err := br.Update(ctx, b.ID, BookPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
}

func TestBookRepository_UpdateReassignsWithoutGuard(t *testing.T) {
	ar, br := newRepos(t)
	ctx := context.Background()
	active := mustAuthor(t, ar, "Rudyard Kipling", authors.StatusActive)
	inactive := mustAuthor(t, ar, "Joseph Conrad", authors.StatusInactive)

	b := &books.Book{Title: "Kim", AuthorID: active.ID}
	require.NoError(t, br.Create(ctx, b))

	got, err := br.Update(ctx, b.ID, BookPatch{AuthorID: &inactive.ID})
	require.NoError(t, err)
	assert.Equal(t, inactive.ID, got.AuthorID)
	require.NotNil(t, got.Author)
	assert.Equal(t, "Joseph Conrad", got.Author.Name)

	missing := "missing"
	_, err = br.Update(ctx, b.ID, BookPatch{AuthorID: &missing})
	assert.ErrorIs(t, err, authors.ErrNotFound)

	_, err = br.Update(ctx, "missing", BookPatch{})
	assert.ErrorIs(t, err, books.ErrNotFound)

	_, err = br.Update(ctx, uuid.NewString(), BookPatch{AuthorID: &missing})
	assert.ErrorIs(t, err, books.ErrNotFound)
}

func TestBookRepository_ListAndDelete(t *testing.T) {
	ar, br := newRepos(t)
	ctx := context.Background()
	a := mustAuthor(t, ar, "Rudyard Kipling", authors.StatusActive)

	first := &books.Book{Title: "The Jungle Book", AuthorID: a.ID}
	second := &books.Book{Title: "Kim", AuthorID: a.ID}
	require.NoError(t, br.Create(ctx, first))
	require.NoError(t, br.Create(ctx, second))

	all, err := br.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, br.Delete(ctx, first.ID))
	assert.ErrorIs(t, br.Delete(ctx, first.ID), books.ErrNotFound)

	mine, err := br.ListByAuthor(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, second.ID, mine[0].ID)
}
