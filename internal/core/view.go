package core

import (
	"cmp"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"bookshelf/internal/core/model"

	"github.com/shopspring/decimal"
)

const (
	TopGenres   = 6
	TopAuthors  = 5
	RecentReads = 5
)

// FilterBooks returns the books matching q, ordered by q.Sort.
// The input slice is never modified.
func FilterBooks(books []model.Book, q model.ListQuery) []model.Book {
	out := make([]model.Book, 0, len(books))
	for _, b := range books {
		if !matchFilters(b, q) {
			continue
		}
		out = append(out, b.Clone())
	}
	sortBooks(out, q.Sort)
	return out
}

// matchFilters is the conjunction of the text, status and genre predicates.
func matchFilters(b model.Book, q model.ListQuery) bool {
	if q.Q != "" {
		needle := strings.ToLower(q.Q)
		if !strings.Contains(strings.ToLower(b.Title), needle) &&
			!strings.Contains(strings.ToLower(b.Author), needle) &&
			!strings.Contains(strings.ToLower(b.Genre), needle) {
			return false
		}
	}
	if q.Status != "" && b.Status.Canonical() != q.Status {
		return false
	}
	if q.Genre != "" && b.Genre != q.Genre {
		return false
	}
	return true
}

type bookCmp func(a, b model.Book) int

func byAddedAt(a, b model.Book) int  { return strings.Compare(a.AddedAt, b.AddedAt) }
func byTitle(a, b model.Book) int    { return strings.Compare(a.Title, b.Title) }
func byAuthor(a, b model.Book) int   { return strings.Compare(a.Author, b.Author) }
func byRating(a, b model.Book) int   { return cmp.Compare(a.Rating, b.Rating) }
func byDateRead(a, b model.Book) int { return strings.Compare(a.DateRead, b.DateRead) }

func desc(c bookCmp) bookCmp {
	return func(a, b model.Book) int { return c(b, a) }
}

// comparatorFor selects the strategy for k. Unknown keys get the default order.
func comparatorFor(k model.SortKey) bookCmp {
	switch k {
	case model.SortAddedAtAsc:
		return byAddedAt
	case model.SortTitleAsc:
		return byTitle
	case model.SortTitleDesc:
		return desc(byTitle)
	case model.SortAuthorAsc:
		return byAuthor
	case model.SortRatingDesc:
		return desc(byRating)
	case model.SortDateReadDesc:
		return desc(byDateRead)
	default:
		return desc(byAddedAt)
	}
}

// sortBooks sorts in place; equal keys keep their input order.
func sortBooks(bs []model.Book, k model.SortKey) {
	slices.SortStableFunc(bs, comparatorFor(k))
}

// Genres returns the distinct non-empty genres, sorted.
func Genres(books []model.Book) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, b := range books {
		if b.Genre == "" {
			continue
		}
		if _, ok := seen[b.Genre]; ok {
			continue
		}
		seen[b.Genre] = struct{}{}
		out = append(out, b.Genre)
	}
	sort.Strings(out)
	return out
}

// RankBy counts books per non-empty key, most frequent first.
// Ties keep the order in which keys were first seen.
func RankBy(books []model.Book, key func(model.Book) string) []model.RankEntry {
	idx := make(map[string]int)
	out := []model.RankEntry{}
	for _, b := range books {
		k := key(b)
		if k == "" {
			continue
		}
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, model.RankEntry{Key: k})
		}
		out[i].Count++
	}
	slices.SortStableFunc(out, func(a, b model.RankEntry) int { return cmp.Compare(b.Count, a.Count) })
	if len(out) > 0 {
		top := float64(out[0].Count)
		for i := range out {
			out[i].Fraction = float64(out[i].Count) / top
		}
	}
	return out
}

// ComputeStats aggregates the collection. now decides which year counts as
// the current one.
func ComputeStats(books []model.Book, now time.Time) model.Stats {
	st := model.Stats{Total: len(books), Year: now.Year()}

	counts := make(map[model.Status]int, len(model.Statuses))
	ratingSum := 0
	for _, b := range books {
		status := b.Status.Canonical()
		counts[status]++
		if b.Rating > 0 {
			st.RatedCount++
			ratingSum += b.Rating
		}
		if status == model.StatusRead && b.DateRead != "" {
			if y, ok := yearOf(b.DateRead); ok && y == st.Year {
				st.ReadThisYear++
			}
		}
	}

	for _, s := range model.Statuses {
		sc := model.StatusCount{Status: s, Count: counts[s]}
		if st.Total > 0 {
			sc.Fraction = float64(sc.Count) / float64(st.Total)
			sc.Percent = int(math.Round(sc.Fraction * 100))
		}
		st.ByStatus = append(st.ByStatus, sc)
	}

	if st.RatedCount > 0 {
		avg := float64(ratingSum) / float64(st.RatedCount)
		st.AverageRating = &avg
	}

	st.Genres = RankBy(books, func(b model.Book) string { return b.Genre })
	st.TopGenres = head(st.Genres, TopGenres)
	st.MaxGenreCount = 1
	if len(st.Genres) > 0 {
		st.MaxGenreCount = st.Genres[0].Count
	}
	st.Authors = RankBy(books, func(b model.Book) string { return b.Author })
	st.TopAuthors = head(st.Authors, TopAuthors)

	st.MaxRatingCount = 1
	for r := 5; r >= 1; r-- {
		n := 0
		for _, b := range books {
			if b.Rating == r {
				n++
			}
		}
		st.Ratings = append(st.Ratings, model.RatingBucket{Rating: r, Count: n})
		st.MaxRatingCount = max(st.MaxRatingCount, n)
	}
	for i := range st.Ratings {
		st.Ratings[i].Fraction = float64(st.Ratings[i].Count) / float64(st.MaxRatingCount)
	}

	st.RecentReads = recentReads(books, RecentReads)
	return st
}

func recentReads(books []model.Book, n int) []model.Book {
	read := []model.Book{}
	for _, b := range books {
		if b.Status.Canonical() == model.StatusRead && b.DateRead != "" {
			read = append(read, b.Clone())
		}
	}
	sortBooks(read, model.SortDateReadDesc)
	if len(read) > n {
		read = read[:n]
	}
	return read
}

func head(es []model.RankEntry, n int) []model.RankEntry {
	if len(es) > n {
		es = es[:n]
	}
	return append([]model.RankEntry{}, es...)
}

// yearOf reads the leading four-digit year of a YYYY-MM-DD date.
func yearOf(date string) (int, bool) {
	if len(date) < 4 {
		return 0, false
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0, false
	}
	return y, true
}

// RoundRating rounds an average for display, e.g. 4.666.. -> 4.67 at two places.
func RoundRating(avg float64, places int32) float64 {
	return decimal.NewFromFloat(avg).Round(places).InexactFloat64()
}

var coverGradients = [][2]string{
	{"#7c3aed", "#2e1065"},
	{"#1d4ed8", "#1e3a5f"},
	{"#047857", "#052e16"},
	{"#b91c1c", "#450a0a"},
	{"#b45309", "#451a03"},
	{"#0e7490", "#083344"},
	{"#7e22ce", "#3b0764"},
	{"#0f766e", "#042f2e"},
}

// CoverGradient picks the fallback cover colors for a book without a cover
// image. The choice depends only on the title.
func CoverGradient(title string) (from, to string) {
	if title == "" {
		title = "A"
	}
	// characters outside the BMP count as their leading UTF-16 surrogate
	sum := 0
	for _, r := range title {
		if r > 0xFFFF {
			hi, _ := utf16.EncodeRune(r)
			r = hi
		}
		sum += int(r)
	}
	g := coverGradients[sum%len(coverGradients)]
	return g[0], g[1]
}
