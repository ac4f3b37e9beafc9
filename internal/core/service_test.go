//go:build unit

package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"bookshelf/internal/core/model"
	"bookshelf/pkg/util"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.Local)

type mockCovers struct {
	url   string
	err   error
	calls int
}

func (m *mockCovers) FindCover(_ context.Context, _, _ string) (string, error) {
	m.calls++
	return m.url, m.err
}

// newTestService starts from the given snapshot, or the seed collection when nil.
func newTestService(t *testing.T, books []model.Book) (*Service, *fakeBackend) {
	t.Helper()
	be := &fakeBackend{}
	if books != nil {
		be.books, be.found = books, true
	}
	svc := NewService(mustOpen(t, be), nil, zerolog.Nop())
	svc.Now = func() time.Time { return fixedNow }
	n := 0
	svc.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return svc, be
}

func TestCreate_Defaults(t *testing.T) {
	svc, be := newTestService(t, nil)
	out, err := svc.CreateBook(context.Background(), model.BookInput{Title: util.GetPtr("X"), Author: util.GetPtr("Y")})
	require.NoError(t, err)

	assert.Equal(t, "id-1", out.ID)
	assert.Zero(t, out.Rating)
	assert.Equal(t, model.StatusWantToRead, out.Status)
	assert.NotNil(t, out.Comments)
	assert.Empty(t, out.Comments)
	assert.Equal(t, "2025-03-14", out.AddedAt)

	books := svc.Store.Books()
	require.Len(t, books, 6)
	assert.Equal(t, out.ID, books[0].ID)
	assert.Equal(t, 1, be.saves)
}

func TestCreate_TrimsAndNormalises(t *testing.T) {
	svc, _ := newTestService(t, nil)
	st := model.Status("finished")
	out, err := svc.CreateBook(context.Background(), model.BookInput{
		Title: util.GetPtr("  Dune Messiah "), Author: util.GetPtr(" Frank Herbert"), Status: &st,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", out.Title)
	assert.Equal(t, "Frank Herbert", out.Author)
	assert.Equal(t, model.StatusWantToRead, out.Status)
}

func TestCreate_ValidationRejection(t *testing.T) {
	svc, be := newTestService(t, nil)
	_, err := svc.CreateBook(context.Background(), model.BookInput{Title: util.GetPtr(""), Author: util.GetPtr("Y")})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrValidation)

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"title"}, verr.FieldNames())
	assert.Len(t, svc.Store.Books(), 5)
	assert.Zero(t, be.saves)
}

func TestCreate_ValidationNamesEveryField(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.CreateBook(context.Background(), model.BookInput{Title: util.GetPtr("   "), Rating: util.GetPtr(7)})

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"author", "rating", "title"}, verr.FieldNames())
}

func TestCreate_IDsAreUnique(t *testing.T) {
	svc, _ := newTestService(t, []model.Book{{ID: "id-1", Title: "T", Author: "A", Comments: []model.Comment{}}})
	seen := map[string]bool{}
	for i := range 20 {
		b, err := svc.CreateBook(context.Background(), model.BookInput{Title: util.GetPtr(fmt.Sprint(i)), Author: util.GetPtr("A")})
		require.NoError(t, err)
		assert.False(t, seen[b.ID], b.ID)
		seen[b.ID] = true
	}
	assert.False(t, seen["id-1"])
}

func TestCreate_CoverLookup(t *testing.T) {
	svc, _ := newTestService(t, nil)
	covers := &mockCovers{url: "https://covers.example/1.jpg"}
	svc.Covers = covers

	out, err := svc.CreateBook(context.Background(), model.BookInput{Title: util.GetPtr("Dune"), Author: util.GetPtr("Frank Herbert")})
	require.NoError(t, err)
	assert.Equal(t, "https://covers.example/1.jpg", out.CoverURL)

	out, err = svc.CreateBook(context.Background(), model.BookInput{
		Title: util.GetPtr("Dune"), Author: util.GetPtr("Frank Herbert"), CoverURL: util.GetPtr("mine.jpg"),
	})
	require.NoError(t, err)
	assert.Equal(t, "mine.jpg", out.CoverURL)
	assert.Equal(t, 1, covers.calls)
}

func TestCreate_CoverLookupFailureIsIgnored(t *testing.T) {
	svc, _ := newTestService(t, nil)
	svc.Covers = &mockCovers{err: errors.New("offline")}

	out, err := svc.CreateBook(context.Background(), model.BookInput{Title: util.GetPtr("Dune"), Author: util.GetPtr("Frank Herbert")})
	require.NoError(t, err)
	assert.Empty(t, out.CoverURL)
}

func TestUpdate_PreservesIdentity(t *testing.T) {
	svc, _ := newTestService(t, nil)
	out, err := svc.UpdateBook(context.Background(), "b1", model.BookInput{
		Rating: util.GetPtr(3), Status: util.GetPtr(model.StatusReading), Notes: util.GetPtr("relu"),
	})
	require.NoError(t, err)

	assert.Equal(t, "b1", out.ID)
	assert.Equal(t, "Le Petit Prince", out.Title)
	assert.Equal(t, "2024-01-15", out.AddedAt)
	assert.Equal(t, 3, out.Rating)
	assert.Equal(t, model.StatusReading, out.Status)
	assert.Equal(t, "relu", out.Notes)
	require.Len(t, out.Comments, 1)
	assert.Equal(t, "c1", out.Comments[0].ID)

	got, err := svc.GetBook(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, out, got)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, be := newTestService(t, nil)
	_, err := svc.UpdateBook(context.Background(), "missing", model.BookInput{Title: util.GetPtr("T")})
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Zero(t, be.saves)
}

func TestUpdate_BlankAuthorRejected(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.UpdateBook(context.Background(), "b2", model.BookInput{Author: util.GetPtr(" ")})
	assert.ErrorIs(t, err, model.ErrValidation)

	b, err := svc.GetBook(context.Background(), "b2")
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", b.Author)
}

func TestDelete_Idempotent(t *testing.T) {
	svc, be := newTestService(t, nil)

	removed, err := svc.DeleteBook(context.Background(), "b3")
	require.NoError(t, err)
	assert.True(t, removed)
	after := svc.Store.Books()

	removed, err = svc.DeleteBook(context.Background(), "b3")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, after, svc.Store.Books())

	removed, err = svc.DeleteBook(context.Background(), "never")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, be.saves)

	_, err = svc.GetBook(context.Background(), "b3")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAddComment(t *testing.T) {
	svc, _ := newTestService(t, nil)
	out, err := svc.AddComment(context.Background(), "b1", "  encore une fois  ")
	require.NoError(t, err)

	require.Len(t, out.Comments, 2)
	assert.Equal(t, "c1", out.Comments[0].ID)
	assert.Equal(t, model.Comment{ID: "id-1", Text: "encore une fois", Date: "2025-03-14"}, out.Comments[1])
}

func TestAddComment_BlankIsNoop(t *testing.T) {
	svc, be := newTestService(t, nil)
	out, err := svc.AddComment(context.Background(), "b2", "   ")
	require.NoError(t, err)
	assert.Equal(t, "b2", out.ID)
	assert.Empty(t, out.Comments)
	assert.Zero(t, be.saves)
}

func TestAddComment_MissingBook(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.AddComment(context.Background(), "missing", "hello")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAddComment_IDsUniqueAcrossCollection(t *testing.T) {
	svc, _ := newTestService(t, nil)
	// the generator hands out an id already used by b1's comment first
	ids := []string{"c1", "c1", "n1", "n2"}
	svc.NewID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	a, err := svc.AddComment(context.Background(), "b2", "premier")
	require.NoError(t, err)
	b, err := svc.AddComment(context.Background(), "b3", "second")
	require.NoError(t, err)

	assert.Equal(t, "n1", a.Comments[0].ID)
	assert.Equal(t, "n2", b.Comments[0].ID)
}

func TestDeleteComment_TargetsOwner(t *testing.T) {
	books := []model.Book{
		{ID: "a", Title: "A", Author: "X", Comments: []model.Comment{{ID: "c1", Text: "one"}, {ID: "c2", Text: "two"}, {ID: "c3", Text: "three"}}},
		{ID: "b", Title: "B", Author: "Y", Comments: []model.Comment{{ID: "c2", Text: "other"}}},
	}
	svc, _ := newTestService(t, books)

	removed, err := svc.DeleteComment(context.Background(), "a", "c2")
	require.NoError(t, err)
	assert.True(t, removed)

	a, _ := svc.GetBook(context.Background(), "a")
	b, _ := svc.GetBook(context.Background(), "b")
	assert.Equal(t, []model.Comment{{ID: "c1", Text: "one"}, {ID: "c3", Text: "three"}}, a.Comments)
	assert.Equal(t, []model.Comment{{ID: "c2", Text: "other"}}, b.Comments)
}

func TestDeleteComment_UnresolvedIsNoop(t *testing.T) {
	svc, be := newTestService(t, nil)

	removed, err := svc.DeleteComment(context.Background(), "missing", "c1")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = svc.DeleteComment(context.Background(), "b2", "c1")
	require.NoError(t, err)
	assert.False(t, removed)

	b1, _ := svc.GetBook(context.Background(), "b1")
	assert.Len(t, b1.Comments, 1)
	assert.Zero(t, be.saves)
}

func TestMutations_PersistRoundTrip(t *testing.T) {
	svc, be := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.CreateBook(ctx, model.BookInput{Title: util.GetPtr("Neuromancien"), Author: util.GetPtr("William Gibson")})
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, "b2", "à relire")
	require.NoError(t, err)
	_, err = svc.DeleteBook(ctx, "b4")
	require.NoError(t, err)

	reopened := mustOpen(t, be)
	assert.Equal(t, svc.Store.Books(), reopened.Books())
}

func TestService_Queries(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	list := svc.ListBooks(ctx, model.ListQuery{Status: model.StatusRead, Sort: model.SortTitleAsc})
	assert.Equal(t, []string{"b2", "b5", "b1"}, ids(list))
	assert.Equal(t, []string{"Classique", "Histoire", "Roman", "Science-Fiction"}, svc.Genres(ctx))

	st := svc.Stats(ctx)
	assert.Equal(t, 5, st.Total)
	assert.Equal(t, 2025, st.Year)
	assert.Zero(t, st.ReadThisYear)
}
