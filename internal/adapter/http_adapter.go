package adapter

import (
	"bookshelf/api"
	"bookshelf/internal/core"
	"bookshelf/internal/core/model"
	"bookshelf/pkg/util"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

type BookService interface {
	CreateBook(ctx context.Context, in model.BookInput) (model.Book, error)
	UpdateBook(ctx context.Context, id string, in model.BookInput) (model.Book, error)
	DeleteBook(ctx context.Context, id string) (bool, error)
	AddComment(ctx context.Context, bookID, text string) (model.Book, error)
	DeleteComment(ctx context.Context, bookID, commentID string) (bool, error)
	GetBook(ctx context.Context, id string) (model.Book, error)
	ListBooks(ctx context.Context, q model.ListQuery) []model.Book
	Genres(ctx context.Context) []string
	Stats(ctx context.Context) model.Stats
}

// Handler implements api.ServerInterface on top of a BookService.
type Handler struct {
	Svc BookService
	log zerolog.Logger
}

var _ api.ServerInterface = (*Handler)(nil)

func NewHTTPHandler(svc BookService, logger zerolog.Logger) *Handler {
	return &Handler{Svc: svc, log: logger}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string, details map[string]interface{}) {
	e := api.Error{}
	e.Error.Code = code
	e.Error.Message = msg
	if len(details) > 0 {
		e.Error.Details = &details
	}
	writeJSON(w, status, e)
}

// writeServiceError maps core errors onto HTTP statuses.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make(map[string]interface{}, len(verr.Fields))
		for k, v := range verr.Fields {
			details[k] = v
		}
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid book data", details)
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	default:
		h.log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}

// ParamErrorHandler answers malformed path or query parameters.
func ParamErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	writeError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error(), nil)
}

func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request, params api.ListBooksParams) {
	q := model.ListQuery{
		Q:     util.Deref(params.Q, ""),
		Genre: util.Deref(params.Genre, ""),
	}
	if params.Status != nil && *params.Status != "" {
		st := model.Status(*params.Status)
		if st.Canonical() != st {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid status filter",
				map[string]interface{}{"status": "must be one of read, reading, want-to-read"})
			return
		}
		q.Status = st
	}
	sortParam := string(util.Deref(params.Sort, ""))
	key, ok := model.ParseSortKey(sortParam)
	if !ok {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid sort key",
			map[string]interface{}{"sort": "unknown sort key " + sortParam})
		return
	}
	q.Sort = key

	books := h.Svc.ListBooks(r.Context(), q)
	out := api.BookList{Data: make([]api.Book, 0, len(books)), Total: len(books)}
	for _, b := range books {
		out.Data = append(out.Data, toAPIBook(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var body api.CreateBookJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	b, err := h.Svc.CreateBook(r.Context(), toBookInput(body))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.Header().Set("Location", "/api/v1/books/"+b.ID)
	writeJSON(w, http.StatusCreated, toAPIBook(b))
}

func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request, id string) {
	b, err := h.Svc.GetBook(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAPIBook(b))
}

func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request, id string) {
	var body api.UpdateBookJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	b, err := h.Svc.UpdateBook(r.Context(), id, toBookInput(body))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAPIBook(b))
}

// DeleteBook answers 204 whether or not the book existed.
func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.Svc.DeleteBook(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request, id string) {
	var body api.AddCommentJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	b, err := h.Svc.AddComment(r.Context(), id, body.Text)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	status := http.StatusCreated
	if strings.TrimSpace(body.Text) == "" {
		status = http.StatusOK
	}
	writeJSON(w, status, toAPIBook(b))
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request, id string, commentId string) {
	if _, err := h.Svc.DeleteComment(r.Context(), id, commentId); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.GenreList{Data: h.Svc.Genres(r.Context())})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toAPIStats(h.Svc.Stats(r.Context())))
}

// mapping

func toBookInput(in api.BookInput) model.BookInput {
	out := model.BookInput{
		Title:    in.Title,
		Author:   in.Author,
		Genre:    in.Genre,
		CoverURL: in.CoverUrl,
		Rating:   in.Rating,
		DateRead: in.DateRead,
		Notes:    in.Notes,
	}
	if in.Status != nil {
		st := model.Status(*in.Status)
		out.Status = &st
	}
	return out
}

func toAPIBook(b model.Book) api.Book {
	from, to := core.CoverGradient(b.Title)
	comments := make([]api.Comment, 0, len(b.Comments))
	for _, c := range b.Comments {
		comments = append(comments, api.Comment{Id: c.ID, Text: c.Text, Date: c.Date})
	}
	return api.Book{
		Id:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		CoverUrl:      b.CoverURL,
		CoverGradient: []string{from, to},
		Rating:        b.Rating,
		Status:        api.BookStatus(b.Status.Canonical()),
		DateRead:      b.DateRead,
		Notes:         b.Notes,
		Comments:      comments,
		AddedAt:       b.AddedAt,
	}
}

func toAPIRanking(es []model.RankEntry) []api.RankEntry {
	out := make([]api.RankEntry, 0, len(es))
	for _, e := range es {
		out = append(out, api.RankEntry{Key: e.Key, Count: e.Count, Fraction: float32(e.Fraction)})
	}
	return out
}

func toAPIStats(st model.Stats) api.Stats {
	out := api.Stats{
		Total:        st.Total,
		RatedCount:   st.RatedCount,
		ReadThisYear: st.ReadThisYear,
		Year:         st.Year,
		TopGenres:    toAPIRanking(st.TopGenres),
		TopAuthors:   toAPIRanking(st.TopAuthors),
		ByStatus:     make([]api.StatusCount, 0, len(st.ByStatus)),
		Ratings:      make([]api.RatingBucket, 0, len(st.Ratings)),
		RecentReads:  make([]api.Book, 0, len(st.RecentReads)),
	}
	if st.AverageRating != nil {
		avg := float32(core.RoundRating(*st.AverageRating, 2))
		out.AverageRating = &avg
	}
	for _, c := range st.ByStatus {
		out.ByStatus = append(out.ByStatus, api.StatusCount{
			Status: api.BookStatus(c.Status), Count: c.Count, Fraction: float32(c.Fraction), Percent: c.Percent,
		})
	}
	for _, rb := range st.Ratings {
		out.Ratings = append(out.Ratings, api.RatingBucket{Rating: rb.Rating, Count: rb.Count, Fraction: float32(rb.Fraction)})
	}
	for _, b := range st.RecentReads {
		out.RecentReads = append(out.RecentReads, toAPIBook(b))
	}
	return out
}
