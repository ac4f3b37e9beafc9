package main

import (
	"context"
	"errors"
	"fmt"

	"bookshelf/internal/adapter"
	"bookshelf/internal/config"
	"bookshelf/internal/core"
	"bookshelf/internal/core/model"
	"bookshelf/internal/render"
	"bookshelf/pkg/logger"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	// set up by PersistentPreRunE, released by execute
	svc          *core.Service
	closeBackend func() error

	listQ, listStatus, listGenre, listSort string

	bookTitle, bookAuthor, bookGenre, bookCover, bookStatus, bookDateRead, bookNotes string
	bookRating                                                                       int

	assumeYes bool

	rootCmd = &cobra.Command{
		Use:               "shelf",
		Short:             "A personal reading log",
		SilenceUsage:      true,
		PersistentPreRunE: openService,
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List books, filtered and sorted",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	showCmd = &cobra.Command{
		Use:   "show <id>",
		Short: "Show one book with its notes and comments",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	addCmd = &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Args:  cobra.NoArgs,
		RunE:  runAdd,
	}
	editCmd = &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the given fields of a book",
		Args:  cobra.ExactArgs(1),
		RunE:  runEdit,
	}
	rmCmd = &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a book and its comments",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}
	commentCmd = &cobra.Command{
		Use:   "comment",
		Short: "Manage the comments of a book",
	}
	commentAddCmd = &cobra.Command{
		Use:   "add <book-id> <text>",
		Short: "Append a comment",
		Args:  cobra.ExactArgs(2),
		RunE:  runCommentAdd,
	}
	commentRmCmd = &cobra.Command{
		Use:   "rm <book-id> <comment-id>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(2),
		RunE:  runCommentRemove,
	}
	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Show reading statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			render.Stats(cmd.OutOrStdout(), svc.Stats(cmd.Context()))
			return nil
		},
	}
	genresCmd = &cobra.Command{
		Use:   "genres",
		Short: "List the genres in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, g := range svc.Genres(cmd.Context()) {
				fmt.Fprintln(cmd.OutOrStdout(), g)
			}
			return nil
		},
	}
)

func init() {
	listCmd.Flags().StringVar(&listQ, "q", "", "match title, author or genre")
	listCmd.Flags().StringVar(&listStatus, "status", "", "read | reading | want-to-read")
	listCmd.Flags().StringVar(&listGenre, "genre", "", "exact genre")
	listCmd.Flags().StringVar(&listSort, "sort", string(model.SortAddedAtDesc), "sort key")

	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().StringVar(&bookTitle, "title", "", "title")
		c.Flags().StringVar(&bookAuthor, "author", "", "author")
		c.Flags().StringVar(&bookGenre, "genre", "", "genre")
		c.Flags().StringVar(&bookCover, "cover", "", "cover image URL")
		c.Flags().IntVar(&bookRating, "rating", 0, "rating 1-5, 0 for none")
		c.Flags().StringVar(&bookStatus, "status", string(model.StatusWantToRead), "read | reading | want-to-read")
		c.Flags().StringVar(&bookDateRead, "date-read", "", "date read, YYYY-MM-DD")
		c.Flags().StringVar(&bookNotes, "notes", "", "free-form notes")
	}
	rmCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")
	commentRmCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")

	commentCmd.AddCommand(commentAddCmd, commentRmCmd)
	rootCmd.AddCommand(listCmd, showCmd, addCmd, editCmd, rmCmd, commentCmd, statsCmd, genresCmd)
}

func openService(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	backend, closer, err := adapter.OpenSnapshotStore(ctx, cfg.Store, cfg.Redis, log)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	closeBackend = closer
	store, err := core.OpenStore(ctx, backend, log)
	if err != nil {
		return err
	}
	svc = core.NewService(store, adapter.NewCoverResolver(cfg.OpenLibrary), log)
	return nil
}

// execute runs the command line and releases the store backend on every
// path, including failed commands.
func execute() error {
	err := rootCmd.Execute()
	if cerr := closeService(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func closeService() error {
	if closeBackend == nil {
		return nil
	}
	err := closeBackend()
	closeBackend, svc = nil, nil
	return err
}

func runList(cmd *cobra.Command, _ []string) error {
	if st := model.Status(listStatus); st != "" && st.Canonical() != st {
		return fmt.Errorf("unknown status %q", listStatus)
	}
	key, ok := model.ParseSortKey(listSort)
	if !ok {
		return fmt.Errorf("unknown sort key %q", listSort)
	}
	q := model.ListQuery{Q: listQ, Status: model.Status(listStatus), Genre: listGenre, Sort: key}
	books := svc.ListBooks(cmd.Context(), q)
	render.BookList(cmd.OutOrStdout(), books, len(svc.ListBooks(cmd.Context(), model.ListQuery{})))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	b, err := svc.GetBook(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	render.BookDetail(cmd.OutOrStdout(), b)
	return nil
}

// inputFromFlags keeps only the flags given on the command line.
func inputFromFlags(cmd *cobra.Command) model.BookInput {
	var in model.BookInput
	set := func(name string, dst **string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = &v
		}
	}
	set("title", &in.Title, bookTitle)
	set("author", &in.Author, bookAuthor)
	set("genre", &in.Genre, bookGenre)
	set("cover", &in.CoverURL, bookCover)
	set("date-read", &in.DateRead, bookDateRead)
	set("notes", &in.Notes, bookNotes)
	if cmd.Flags().Changed("rating") {
		r := bookRating
		in.Rating = &r
	}
	if cmd.Flags().Changed("status") {
		st := model.Status(bookStatus)
		in.Status = &st
	}
	return in
}

func runAdd(cmd *cobra.Command, _ []string) error {
	b, err := svc.CreateBook(cmd.Context(), inputFromFlags(cmd))
	if err != nil {
		return describe(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "added "+render.BookLine(b))
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	b, err := svc.UpdateBook(cmd.Context(), args[0], inputFromFlags(cmd))
	if err != nil {
		return describe(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "updated "+render.BookLine(b))
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	ok, err := confirm("Delete this book permanently?")
	if err != nil || !ok {
		return err
	}
	removed, err := svc.DeleteBook(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if removed {
		fmt.Fprintln(cmd.OutOrStdout(), "deleted "+args[0])
	}
	return nil
}

func runCommentAdd(cmd *cobra.Command, args []string) error {
	b, err := svc.AddComment(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	render.BookDetail(cmd.OutOrStdout(), b)
	return nil
}

func runCommentRemove(cmd *cobra.Command, args []string) error {
	ok, err := confirm("Delete this comment?")
	if err != nil || !ok {
		return err
	}
	_, err = svc.DeleteComment(cmd.Context(), args[0], args[1])
	return err
}

func confirm(title string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}

// describe spells out which fields failed validation.
func describe(err error) error {
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	msg := "invalid book:"
	for _, f := range verr.FieldNames() {
		msg += fmt.Sprintf("\n  --%s: %s", f, verr.Fields[f])
	}
	return errors.New(msg)
}
