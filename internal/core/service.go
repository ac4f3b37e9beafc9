package core

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"bookshelf/internal/core/model"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CoverResolver looks up a cover image for books added without one.
type CoverResolver interface {
	FindCover(ctx context.Context, title, author string) (string, error)
}

type Service struct {
	Store  *Store
	Covers CoverResolver // optional
	NewID  func() string
	Now    func() time.Time
	log    zerolog.Logger
}

func NewService(store *Store, covers CoverResolver, logger zerolog.Logger) *Service {
	return &Service{Store: store, Covers: covers, NewID: NewID, Now: time.Now, log: logger}
}

// NewID returns a random v4 UUID string.
func NewID() string {
	return uuid.NewString()
}

func (s *Service) today() string {
	return s.Now().Format(time.DateOnly)
}

// CreateBook validates in and prepends the new book to the collection.
func (s *Service) CreateBook(ctx context.Context, in model.BookInput) (model.Book, error) {
	b := model.Book{Status: model.StatusWantToRead, Comments: []model.Comment{}}
	apply(&b, in)
	if err := validateBook(b); err != nil {
		return model.Book{}, err
	}

	if b.CoverURL == "" && s.Covers != nil {
		cover, err := s.Covers.FindCover(ctx, b.Title, b.Author)
		if err != nil {
			s.log.Debug().Err(err).Str("title", b.Title).Msg("cover lookup failed")
		} else {
			b.CoverURL = cover
		}
	}

	err := s.Store.Update(ctx, func(books []model.Book) ([]model.Book, bool, error) {
		b.ID = s.freshID(func(id string) bool { return indexOf(books, id) >= 0 })
		b.AddedAt = s.today()
		return append([]model.Book{b.Clone()}, books...), true, nil
	})
	if err != nil {
		return model.Book{}, err
	}
	s.log.Debug().Str("op", "create").Str("book_id", b.ID).Msg("book created")
	return b, nil
}

// UpdateBook replaces the fields present in in. ID, comments and addedAt
// are never touched.
func (s *Service) UpdateBook(ctx context.Context, id string, in model.BookInput) (model.Book, error) {
	var out model.Book
	err := s.Store.Update(ctx, func(books []model.Book) ([]model.Book, bool, error) {
		i := indexOf(books, id)
		if i < 0 {
			return nil, false, &model.NotFoundError{Kind: "book", ID: id}
		}
		b := books[i]
		apply(&b, in)
		if err := validateBook(b); err != nil {
			return nil, false, err
		}
		books[i] = b
		out = b.Clone()
		return books, true, nil
	})
	if err != nil {
		return model.Book{}, err
	}
	s.log.Debug().Str("op", "update").Str("book_id", id).Msg("book updated")
	return out, nil
}

// DeleteBook removes the book and its comments. Unknown ids are ignored;
// the result reports whether anything was removed.
func (s *Service) DeleteBook(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := s.Store.Update(ctx, func(books []model.Book) ([]model.Book, bool, error) {
		i := indexOf(books, id)
		if i < 0 {
			return nil, false, nil
		}
		removed = true
		return slices.Delete(books, i, i+1), true, nil
	})
	if removed {
		s.log.Debug().Str("op", "delete").Str("book_id", id).Msg("book deleted")
	}
	return removed, err
}

// AddComment appends a comment to the book. Blank text is a no-op that
// still returns the book.
func (s *Service) AddComment(ctx context.Context, bookID, text string) (model.Book, error) {
	text = strings.TrimSpace(text)
	var out model.Book
	var commentID string
	err := s.Store.Update(ctx, func(books []model.Book) ([]model.Book, bool, error) {
		i := indexOf(books, bookID)
		if i < 0 {
			return nil, false, &model.NotFoundError{Kind: "book", ID: bookID}
		}
		if text == "" {
			out = books[i].Clone()
			return nil, false, nil
		}
		commentID = s.freshID(func(id string) bool { return commentTaken(books, id) })
		books[i].Comments = append(books[i].Comments, model.Comment{ID: commentID, Text: text, Date: s.today()})
		out = books[i].Clone()
		return books, true, nil
	})
	if err != nil {
		return model.Book{}, err
	}
	if commentID != "" {
		s.log.Debug().Str("op", "add_comment").Str("book_id", bookID).Str("comment_id", commentID).Msg("comment added")
	}
	return out, nil
}

// DeleteComment removes one comment of the given book, keeping the order
// of the others. Unresolved ids are ignored.
func (s *Service) DeleteComment(ctx context.Context, bookID, commentID string) (bool, error) {
	var removed bool
	err := s.Store.Update(ctx, func(books []model.Book) ([]model.Book, bool, error) {
		i := indexOf(books, bookID)
		if i < 0 {
			return nil, false, nil
		}
		j := slices.IndexFunc(books[i].Comments, func(c model.Comment) bool { return c.ID == commentID })
		if j < 0 {
			return nil, false, nil
		}
		books[i].Comments = slices.Delete(books[i].Comments, j, j+1)
		removed = true
		return books, true, nil
	})
	if removed {
		s.log.Debug().Str("op", "delete_comment").Str("book_id", bookID).Str("comment_id", commentID).Msg("comment deleted")
	}
	return removed, err
}

func (s *Service) GetBook(_ context.Context, id string) (model.Book, error) {
	books := s.Store.Books()
	i := indexOf(books, id)
	if i < 0 {
		return model.Book{}, &model.NotFoundError{Kind: "book", ID: id}
	}
	return books[i], nil
}

func (s *Service) ListBooks(_ context.Context, q model.ListQuery) []model.Book {
	return FilterBooks(s.Store.Books(), q)
}

func (s *Service) Genres(_ context.Context) []string {
	return Genres(s.Store.Books())
}

func (s *Service) Stats(_ context.Context) model.Stats {
	return ComputeStats(s.Store.Books(), s.Now())
}

// helpers

func (s *Service) freshID(taken func(string) bool) string {
	for {
		id := s.NewID()
		if id != "" && !taken(id) {
			return id
		}
	}
}

func indexOf(books []model.Book, id string) int {
	return slices.IndexFunc(books, func(b model.Book) bool { return b.ID == id })
}

func commentTaken(books []model.Book, id string) bool {
	for _, b := range books {
		for _, c := range b.Comments {
			if c.ID == id {
				return true
			}
		}
	}
	return false
}

// apply copies the present fields of in onto b.
func apply(b *model.Book, in model.BookInput) {
	if in.Title != nil {
		b.Title = strings.TrimSpace(*in.Title)
	}
	if in.Author != nil {
		b.Author = strings.TrimSpace(*in.Author)
	}
	if in.Genre != nil {
		b.Genre = *in.Genre
	}
	if in.CoverURL != nil {
		b.CoverURL = *in.CoverURL
	}
	if in.Rating != nil {
		b.Rating = *in.Rating
	}
	if in.Status != nil {
		b.Status = in.Status.Canonical()
	}
	if in.DateRead != nil {
		b.DateRead = *in.DateRead
	}
	if in.Notes != nil {
		b.Notes = *in.Notes
	}
}

func validateBook(b model.Book) error {
	err := validation.ValidateStruct(&b,
		validation.Field(&b.Title, validation.Required.Error("title is required")),
		validation.Field(&b.Author, validation.Required.Error("author is required")),
		validation.Field(&b.Rating, validation.Min(0), validation.Max(5).Error("rating must be between 0 and 5")),
	)
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if errors.As(err, &errs) {
		fields := make(map[string]string, len(errs))
		for name, e := range errs {
			fields[name] = e.Error()
		}
		return &model.ValidationError{Fields: fields}
	}
	return err
}
