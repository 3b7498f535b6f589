package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/wordbook/internal/model"
	"github.com/rcliao/wordbook/internal/session"
	"github.com/rcliao/wordbook/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "dictate",
		Short: "Take a spelling dictation from a book",
		Long: "Take a spelling dictation. Words are shuffled; each definition is shown once and the\n" +
			"typed spelling is graded ignoring case and surrounding spaces. Quitting saves nothing.",
		Run: runDictate,
	}

	cmd.Flags().StringP("book", "b", "", "Book name (required)")
	cmd.Flags().IntP("count", "c", 0, "Words in this session (default: dictation.count)")
	cmd.Flags().Float64("rate", 0, "Playback rate hint (default: dictation.rate)")
	cmd.Flags().Bool("learned", false, "Only dictate learned words")

	cmd.MarkFlagRequired("book")

	RootCmd.AddCommand(cmd)
}

func runDictate(cmd *cobra.Command, args []string) {
	book, _ := cmd.Flags().GetString("book")
	learnedOnly, _ := cmd.Flags().GetBool("learned")
	count := cfg.Dictation.Count
	if cmd.Flags().Changed("count") {
		count, _ = cmd.Flags().GetInt("count")
	}
	rate := cfg.Dictation.Rate
	if cmd.Flags().Changed("rate") {
		rate, _ = cmd.Flags().GetFloat64("rate")
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	status := store.StatusAll
	if learnedOnly {
		status = store.StatusLearned
	}
	candidates, err := s.ListWords(cmd.Context(), store.ListWordsParams{Book: book, Status: status})
	if err != nil {
		exitErr("list words", err)
	}
	if len(candidates) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "nothing to dictate in %s\n", book)
		return
	}

	e := session.NewDictationEngine(candidates, count, session.WithPlaybackRate(rate))
	sum, err := runDictationLoop(cmd.InOrStdin(), cmd.OutOrStdout(), e)
	if errors.Is(err, errAbandoned) {
		fmt.Fprintln(os.Stderr, "\nsession abandoned, nothing saved")
		return
	}
	if err != nil {
		exitErr("dictate", err)
	}
	if sum == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "nothing to dictate in %s\n", book)
		return
	}

	_, err = s.RecordSession(cmd.Context(), store.RecordSessionParams{
		Kind:         model.KindDictation,
		Book:         book,
		Total:        sum.TotalCount,
		Errors:       sum.Errors,
		LearnedIDs:   sum.LearnedIDs,
		UnlearnedIDs: misspelled(sum),
	})
	if err != nil {
		exitErr("record session", err)
	}

	if textOutput() {
		fmt.Fprintln(cmd.OutOrStdout())
		renderDictationSummary(cmd.OutOrStdout(), book, sum)
		return
	}
	printJSON(cmd, sum)
}

// misspelled returns the words that ended the session with a wrong spelling.
func misspelled(sum *session.DictationSummary) []string {
	learned := make(map[string]bool, len(sum.LearnedIDs))
	for _, id := range sum.LearnedIDs {
		learned[id] = true
	}
	var ids []string
	for _, e := range sum.Errors {
		if !learned[e.WordID] {
			ids = append(ids, e.WordID)
		}
	}
	return ids
}
