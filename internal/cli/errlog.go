package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rcliao/wordbook/internal/model"
	"github.com/rcliao/wordbook/internal/store"
)

func init() {
	errorsCmd := &cobra.Command{
		Use:   "errors",
		Short: "Show the error log",
		Run:   runErrors,
	}
	errorsCmd.Flags().StringP("book", "b", "", "Filter by book")
	errorsCmd.Flags().StringP("kind", "k", "", "Filter by kind: learning or dictation")
	errorsCmd.Flags().IntP("limit", "l", 50, "Max results")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the error log",
		Run:   runErrorsClear,
	}
	clearCmd.Flags().StringP("book", "b", "", "Only this book")
	clearCmd.Flags().StringP("kind", "k", "", "Only this kind: learning or dictation")

	errorsCmd.AddCommand(clearCmd)
	RootCmd.AddCommand(errorsCmd)
}

func kindFlag(cmd *cobra.Command) model.ErrorKind {
	name, _ := cmd.Flags().GetString("kind")
	if name == "" {
		return 0
	}
	kind, err := model.ParseErrorKind(name)
	if err != nil {
		exitErr("kind", err)
	}
	return kind
}

func runErrors(cmd *cobra.Command, args []string) {
	book, _ := cmd.Flags().GetString("book")
	limit, _ := cmd.Flags().GetInt("limit")
	kind := kindFlag(cmd)

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	records, err := s.ListErrors(cmd.Context(), store.ErrorsParams{Kind: kind, Book: book, Limit: limit})
	if err != nil {
		exitErr("errors", err)
	}

	if !textOutput() {
		if records == nil {
			records = []model.ErrorRecord{}
		}
		printJSON(cmd, records)
		return
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tKIND\tCOUNT\tWORD\tDEFINITION")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", r.Date.Format("2006-01-02"), r.Kind, r.Count, r.WordText, r.WordDefinition)
	}
	tw.Flush()
}

func runErrorsClear(cmd *cobra.Command, args []string) {
	book, _ := cmd.Flags().GetString("book")
	kind := kindFlag(cmd)

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.ClearErrors(cmd.Context(), kind, book)
	if err != nil {
		exitErr("clear errors", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"cleared":%d}`+"\n", n)
}
