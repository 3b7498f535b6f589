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
		Use:   "study",
		Short: "Study unlearned words of a book",
		Long: "Study unlearned words of a book. Answer k (known), v (vague) or u (unknown) for each word.\n" +
			"Vague words come back once more, unknown words three more times. Quitting saves nothing.",
		Run: runStudy,
	}

	cmd.Flags().StringP("book", "b", "", "Book name (required)")
	cmd.Flags().IntP("goal", "g", 0, "Words in this session (default: daily_goal)")

	cmd.MarkFlagRequired("book")

	RootCmd.AddCommand(cmd)
}

func runStudy(cmd *cobra.Command, args []string) {
	book, _ := cmd.Flags().GetString("book")
	goal := cfg.DailyGoal
	if cmd.Flags().Changed("goal") {
		goal, _ = cmd.Flags().GetInt("goal")
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	candidates, err := s.ListWords(cmd.Context(), store.ListWordsParams{Book: book, Status: store.StatusUnlearned})
	if err != nil {
		exitErr("list words", err)
	}
	if len(candidates) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "nothing to study in %s\n", book)
		return
	}

	e := session.NewStudyEngine(candidates, goal)
	sum, err := runStudyLoop(cmd.InOrStdin(), cmd.OutOrStdout(), e)
	if errors.Is(err, errAbandoned) {
		fmt.Fprintln(os.Stderr, "\nsession abandoned, nothing saved")
		return
	}
	if err != nil {
		exitErr("study", err)
	}
	if sum == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "nothing to study in %s\n", book)
		return
	}

	_, err = s.RecordSession(cmd.Context(), store.RecordSessionParams{
		Kind:       model.KindLearning,
		Book:       book,
		Total:      sum.ReviewedCount,
		Errors:     sum.Errors,
		LearnedIDs: sum.LearnedIDs,
	})
	if err != nil {
		exitErr("record session", err)
	}

	if textOutput() {
		fmt.Fprintln(cmd.OutOrStdout())
		renderStudySummary(cmd.OutOrStdout(), book, sum)
		return
	}
	printJSON(cmd, sum)
}
