// Package render draws books and statistics for the terminal.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"bookshelf/internal/core"
	"bookshelf/internal/core/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorRead    = lipgloss.Color("#34d399")
	colorReading = lipgloss.Color("#60a5fa")
	colorWant    = lipgloss.Color("#fbbf24")
	colorAccent  = lipgloss.Color("#a78bfa")
	colorMuted   = lipgloss.Color("#64748b")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	starStyle    = lipgloss.NewStyle().Foreground(colorWant)
	sectionStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
)

// statusColor has an explicit default arm for unknown statuses.
func statusColor(st model.Status) lipgloss.Color {
	switch st {
	case model.StatusRead:
		return colorRead
	case model.StatusReading:
		return colorReading
	default:
		return colorWant
	}
}

func StatusBadge(st model.Status) string {
	return lipgloss.NewStyle().Foreground(statusColor(st)).Render("[" + st.Label() + "]")
}

// Stars draws five stars, filled up to rating.
func Stars(rating int) string {
	rating = max(0, min(rating, 5))
	return starStyle.Render(strings.Repeat("★", rating)) + mutedStyle.Render(strings.Repeat("☆", 5-rating))
}

// Bar draws fraction (0..1) of width cells. Any non-zero share gets at
// least one cell so that it stays visible.
func Bar(fraction float64, width int) string {
	fraction = math.Max(0, math.Min(fraction, 1))
	n := int(math.Round(fraction * float64(width)))
	if fraction > 0 && n == 0 {
		n = 1
	}
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

// Average formats an average rating with one decimal, or a dash when
// nothing is rated.
func Average(avg *float64) string {
	if avg == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f ★", core.RoundRating(*avg, 1))
}

func BookLine(b model.Book) string {
	genre := b.Genre
	if genre == "" {
		genre = "unclassified"
	}
	return fmt.Sprintf("%s  %s - %s  %s  %s  %s",
		mutedStyle.Render(b.ID), titleStyle.Render(b.Title), b.Author,
		StatusBadge(b.Status.Canonical()), Stars(b.Rating), mutedStyle.Render(genre))
}

func BookList(w io.Writer, books []model.Book, total int) {
	if len(books) == 0 {
		if total == 0 {
			fmt.Fprintln(w, "Your library is empty. Add a first book with `shelf add`.")
		} else {
			fmt.Fprintln(w, "No results. Try other search criteria.")
		}
		return
	}
	for _, b := range books {
		fmt.Fprintln(w, BookLine(b))
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d of %d books", len(books), total)))
}

func BookDetail(w io.Writer, b model.Book) {
	var sb strings.Builder
	fmt.Fprintln(&sb, titleStyle.Render(b.Title))
	fmt.Fprintf(&sb, "by %s\n", b.Author)
	fmt.Fprintf(&sb, "%s  %s\n", StatusBadge(b.Status.Canonical()), Stars(b.Rating))
	if b.Genre != "" {
		fmt.Fprintf(&sb, "Genre: %s\n", b.Genre)
	}
	if b.CoverURL != "" {
		fmt.Fprintf(&sb, "Cover: %s\n", b.CoverURL)
	} else {
		from, to := core.CoverGradient(b.Title)
		fmt.Fprintf(&sb, "Cover: %s\n", lipgloss.NewStyle().Background(lipgloss.Color(from)).Foreground(lipgloss.Color(to)).Render("  "+initial(b.Title)+"  "))
	}
	if b.Status.Canonical() == model.StatusRead && b.DateRead != "" {
		fmt.Fprintf(&sb, "Read on %s\n", b.DateRead)
	}
	fmt.Fprintf(&sb, "Added %s", b.AddedAt)
	fmt.Fprintln(w, boxStyle.Render(sb.String()))

	if b.Notes != "" {
		fmt.Fprintln(w, sectionStyle.Render("Notes"))
		fmt.Fprintln(w, b.Notes)
	}
	fmt.Fprintln(w, sectionStyle.Render(fmt.Sprintf("Comments (%d)", len(b.Comments))))
	if len(b.Comments) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No comments yet."))
	}
	for _, c := range b.Comments {
		fmt.Fprintf(w, "%s %s\n  %s\n", mutedStyle.Render(c.Date), mutedStyle.Render("("+c.ID+")"), c.Text)
	}
}

func initial(title string) string {
	for _, r := range title {
		return strings.ToUpper(string(r))
	}
	return "?"
}

const barWidth = 24

func Stats(w io.Writer, st model.Stats) {
	fmt.Fprintln(w, titleStyle.Render("Statistics"))
	if st.Total == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Add books to see your statistics."))
		return
	}

	rated := "no rated books"
	if st.RatedCount > 0 {
		rated = fmt.Sprintf("over %d rated books", st.RatedCount)
	}
	cards := []string{
		card("Total", fmt.Sprint(st.Total), "books in the collection"),
		card("Read", fmt.Sprint(st.Count(model.StatusRead)), fmt.Sprintf("%d in %d", st.ReadThisYear, st.Year)),
		card("Reading", fmt.Sprint(st.Count(model.StatusReading)), fmt.Sprintf("%d on the list", st.Count(model.StatusWantToRead))),
		card("Average", Average(st.AverageRating), rated),
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cards...))

	fmt.Fprintln(w, sectionStyle.Render("By status"))
	for _, c := range st.ByStatus {
		fmt.Fprintf(w, "%-14s %s %d (%d%%)\n", c.Status.Label(),
			lipgloss.NewStyle().Foreground(statusColor(c.Status)).Render(Bar(c.Fraction, barWidth)), c.Count, c.Percent)
	}

	fmt.Fprintln(w, sectionStyle.Render("Ratings"))
	if st.RatedCount == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No rated books yet."))
	} else {
		for _, rb := range st.Ratings {
			fmt.Fprintf(w, "%d ★ %s %d\n", rb.Rating, starStyle.Render(Bar(rb.Fraction, barWidth)), rb.Count)
		}
	}

	fmt.Fprintln(w, sectionStyle.Render("Top genres"))
	if len(st.TopGenres) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No genre set yet."))
	}
	for _, g := range st.TopGenres {
		fmt.Fprintf(w, "%-24s %s %d\n", g.Key, lipgloss.NewStyle().Foreground(colorAccent).Render(Bar(g.Fraction, barWidth)), g.Count)
	}

	fmt.Fprintln(w, sectionStyle.Render("Top authors"))
	for i, a := range st.TopAuthors {
		fmt.Fprintf(w, "%d. %s %s\n", i+1, a.Key, mutedStyle.Render(fmt.Sprintf("(%d)", a.Count)))
	}

	if len(st.RecentReads) > 0 {
		fmt.Fprintln(w, sectionStyle.Render("Recent reads"))
		for _, b := range st.RecentReads {
			line := fmt.Sprintf("%s  %s - %s", mutedStyle.Render(b.DateRead), b.Title, b.Author)
			if b.Rating > 0 {
				line += "  " + Stars(b.Rating)
			}
			fmt.Fprintln(w, line)
		}
	}
}

func card(label, value, sub string) string {
	return boxStyle.Width(26).Render(mutedStyle.Render(strings.ToUpper(label)) + "\n" + titleStyle.Render(value) + "\n" + mutedStyle.Render(sub))
}
