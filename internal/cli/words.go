package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rcliao/wordbook/internal/model"
	"github.com/rcliao/wordbook/internal/store"
)

func init() {
	wordsCmd := &cobra.Command{
		Use:   "words",
		Short: "Word management",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List words",
		Run:   runWordsList,
	}
	listCmd.Flags().StringP("book", "b", "", "Filter by book")
	listCmd.Flags().StringP("status", "s", store.StatusAll, "Filter by status: all, learned, unlearned")
	listCmd.Flags().IntP("limit", "l", 0, "Max results (0 for all)")

	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search words by text or definition",
		Args:  cobra.ExactArgs(1),
		Run:   runWordsSearch,
	}
	searchCmd.Flags().StringP("book", "b", "", "Filter by book")
	searchCmd.Flags().IntP("limit", "l", 20, "Max results")

	rmCmd := &cobra.Command{
		Use:   "rm [text]",
		Short: "Delete a word",
		Args:  cobra.ExactArgs(1),
		Run:   runWordsRm,
	}
	rmCmd.Flags().StringP("book", "b", "", "Book name (required)")
	rmCmd.Flags().Bool("hard", false, "Permanent delete, including its error log (irreversible)")
	rmCmd.MarkFlagRequired("book")

	wordsCmd.AddCommand(listCmd, searchCmd, rmCmd)
	RootCmd.AddCommand(wordsCmd)
}

func runWordsList(cmd *cobra.Command, args []string) {
	book, _ := cmd.Flags().GetString("book")
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	words, err := s.ListWords(cmd.Context(), store.ListWordsParams{Book: book, Status: status, Limit: limit})
	if err != nil {
		exitErr("list", err)
	}
	printWords(cmd, words)
}

func runWordsSearch(cmd *cobra.Command, args []string) {
	book, _ := cmd.Flags().GetString("book")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	words, err := s.SearchWords(cmd.Context(), store.SearchParams{Book: book, Query: args[0], Limit: limit})
	if err != nil {
		exitErr("search", err)
	}
	printWords(cmd, words)
}

func runWordsRm(cmd *cobra.Command, args []string) {
	book, _ := cmd.Flags().GetString("book")
	hard, _ := cmd.Flags().GetBool("hard")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.RmWord(cmd.Context(), store.RmParams{Book: book, Text: args[0], Hard: hard}); err != nil {
		exitErr("rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"book":%q,"text":%q}`+"\n", book, args[0])
}

func printWords(cmd *cobra.Command, words []model.Word) {
	if !textOutput() {
		if words == nil {
			words = []model.Word{}
		}
		printJSON(cmd, words)
		return
	}
	writeWordTable(cmd.OutOrStdout(), words)
}

func writeWordTable(out io.Writer, words []model.Word) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, w := range words {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", w.Book, w.Text, w.Phonetic, w.Definition)
	}
	tw.Flush()
}
