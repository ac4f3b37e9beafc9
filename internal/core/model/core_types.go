package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// All core models live here together for simplicity.

type Status string

const (
	StatusRead       Status = "read"
	StatusReading    Status = "reading"
	StatusWantToRead Status = "want-to-read"
)

// Canonical maps any value outside the known variants to want-to-read.
func (s Status) Canonical() Status {
	switch s {
	case StatusRead, StatusReading, StatusWantToRead:
		return s
	default:
		return StatusWantToRead
	}
}

func (s Status) Label() string {
	switch s.Canonical() {
	case StatusRead:
		return "Read"
	case StatusReading:
		return "Reading"
	default:
		return "Want to read"
	}
}

// Statuses lists the variants in display order.
var Statuses = []Status{StatusRead, StatusReading, StatusWantToRead}

var (
	ErrValidation      = errors.New("validation")
	ErrNotFound        = errors.New("not_found")
	// ErrSnapshotCorrupt marks a persisted snapshot that was read but does not decode.
	ErrSnapshotCorrupt = errors.New("snapshot_corrupt")
)

// ValidationError names every offending input field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := e.FieldNames()
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, n+": "+e.Fields[n])
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// FieldNames returns the offending fields sorted by name.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for n := range e.Fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type NotFoundError struct {
	Kind string // book | comment
	ID   string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %q not found", e.Kind, e.ID) }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type Comment struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Date string `json:"date"`
}

// Book is one catalog entry. Dates are YYYY-MM-DD strings so that they
// order correctly under plain string comparison.
type Book struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Genre    string    `json:"genre"`
	CoverURL string    `json:"coverUrl"`
	Rating   int       `json:"rating"`
	Status   Status    `json:"status"`
	DateRead string    `json:"dateRead"`
	Notes    string    `json:"notes"`
	Comments []Comment `json:"comments"`
	AddedAt  string    `json:"addedAt"`
}

// Clone returns a copy that shares no slices with b.
func (b Book) Clone() Book {
	b.Comments = append([]Comment{}, b.Comments...)
	return b
}

func CloneBooks(bs []Book) []Book {
	out := make([]Book, len(bs))
	for i, b := range bs {
		out[i] = b.Clone()
	}
	return out
}

// BookInput carries create/update data. A nil field is "not present".
type BookInput struct {
	Title    *string
	Author   *string
	Genre    *string
	CoverURL *string
	Rating   *int
	Status   *Status
	DateRead *string
	Notes    *string
}

type SortKey string

const (
	SortAddedAtDesc  SortKey = "addedAt-desc"
	SortAddedAtAsc   SortKey = "addedAt-asc"
	SortTitleAsc     SortKey = "title-asc"
	SortTitleDesc    SortKey = "title-desc"
	SortAuthorAsc    SortKey = "author-asc"
	SortRatingDesc   SortKey = "rating-desc"
	SortDateReadDesc SortKey = "dateRead-desc"
)

var SortKeys = []SortKey{
	SortAddedAtDesc, SortAddedAtAsc, SortTitleAsc, SortTitleDesc,
	SortAuthorAsc, SortRatingDesc, SortDateReadDesc,
}

// ParseSortKey matches s exactly against the known keys. Empty selects the default.
func ParseSortKey(s string) (SortKey, bool) {
	if s == "" {
		return SortAddedAtDesc, true
	}
	for _, k := range SortKeys {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

type ListQuery struct {
	Q      string // title, author or genre contains (case-insensitive)
	Status Status // exact; empty matches all
	Genre  string // exact; empty matches all
	Sort   SortKey
}

type StatusCount struct {
	Status   Status
	Count    int
	Fraction float64 // of total; 0 when the collection is empty
	Percent  int     // Fraction*100 rounded half away from zero
}

type RankEntry struct {
	Key      string
	Count    int
	Fraction float64 // Count relative to the top entry
}

type RatingBucket struct {
	Rating   int
	Count    int
	Fraction float64 // Count relative to MaxRatingCount
}

type Stats struct {
	Total          int
	ByStatus       []StatusCount // read, reading, want-to-read
	RatedCount     int
	AverageRating  *float64 // nil when no book is rated
	ReadThisYear   int
	Year           int
	Genres         []RankEntry // full ranking
	TopGenres      []RankEntry
	MaxGenreCount  int         // never below 1
	Authors        []RankEntry // full ranking
	TopAuthors     []RankEntry
	Ratings        []RatingBucket // 5 down to 1
	MaxRatingCount int            // never below 1
	RecentReads    []Book
}

// Count returns the bucket size for st, using the canonical variant.
func (s Stats) Count(st Status) int {
	for _, c := range s.ByStatus {
		if c.Status == st.Canonical() {
			return c.Count
		}
	}
	return 0
}
