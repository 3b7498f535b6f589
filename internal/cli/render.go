package cli

import (
	"fmt"
	"io"

	"github.com/rcliao/wordbook/internal/model"
	"github.com/rcliao/wordbook/internal/session"
)

func renderStudySummary(w io.Writer, book string, s *session.StudySummary) {
	fmt.Fprintf(w, "Study session complete (%s)\n", book)
	fmt.Fprintf(w, "  reviewed: %d\n", s.ReviewedCount)
	fmt.Fprintf(w, "  learned:  %d\n", len(s.LearnedIDs))
	renderErrorRecords(w, s.Errors)
}

func renderDictationSummary(w io.Writer, book string, s *session.DictationSummary) {
	fmt.Fprintf(w, "Dictation session complete (%s)\n", book)
	fmt.Fprintf(w, "  total:    %d\n", s.TotalCount)
	fmt.Fprintf(w, "  correct:  %d\n", len(s.LearnedIDs))
	renderErrorRecords(w, s.Errors)
}

func renderErrorRecords(w io.Writer, errs []model.ErrorRecord) {
	fmt.Fprintf(w, "  errors:   %d\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(w, "    - %s", e.WordText)
		if e.WordPhonetic != "" {
			fmt.Fprintf(w, " %s", e.WordPhonetic)
		}
		if e.WordDefinition != "" {
			fmt.Fprintf(w, ": %s", e.WordDefinition)
		}
		fmt.Fprintln(w)
	}
}
