package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rcliao/wordbook/internal/session"
)

// errAbandoned means the user left before the last entry; nothing is saved.
var errAbandoned = errors.New("session abandoned")

// runStudyLoop shows each entry, reads a response and reveals the definition
// until the engine returns its summary.
func runStudyLoop(in io.Reader, out io.Writer, e *session.StudyEngine) (*session.StudySummary, error) {
	sc := bufio.NewScanner(in)
	for {
		entry, ok := e.Current()
		if !ok {
			return e.Summary(), nil
		}

		w := entry.Word
		fmt.Fprintf(out, "\n[%d left] %s", e.Remaining(), w.Text)
		if w.Phonetic != "" {
			fmt.Fprintf(out, " %s", w.Phonetic)
		}
		fmt.Fprintln(out)

		var r session.Response
		for {
			fmt.Fprint(out, "[k]nown / [v]ague / [u]nknown, q to quit: ")
			if !sc.Scan() {
				return nil, errAbandoned
			}
			line := strings.TrimSpace(sc.Text())
			if strings.EqualFold(line, "q") {
				return nil, errAbandoned
			}
			var err error
			if r, err = session.ParseResponse(line); err == nil {
				break
			}
			fmt.Fprintln(out, "please answer k, v or u")
		}

		fmt.Fprintf(out, "  = %s\n", w.Definition)
		sum, err := e.Advance(w.ID, r)
		if err != nil {
			return nil, err
		}
		if sum != nil {
			return sum, nil
		}
	}
}

// runDictationLoop shows each definition, reads the typed spelling and
// reports the grade until the engine returns its summary.
func runDictationLoop(in io.Reader, out io.Writer, e *session.DictationEngine) (*session.DictationSummary, error) {
	sc := bufio.NewScanner(in)
	fmt.Fprintf(out, "dictation: %d words, playback rate %gx\n", e.Len(), e.PlaybackRate())
	for {
		entry, ok := e.Current()
		if !ok {
			return e.Summary(), nil
		}

		w := entry.Word
		fmt.Fprintf(out, "\n[%d/%d] %s", e.Cursor()+1, e.Len(), w.Definition)
		if w.Phonetic != "" {
			fmt.Fprintf(out, " %s", w.Phonetic)
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, "spell it (:q to quit): ")
		if !sc.Scan() {
			return nil, errAbandoned
		}
		line := sc.Text()
		if strings.TrimSpace(line) == ":q" {
			return nil, errAbandoned
		}

		g, err := e.Submit(line)
		if err != nil {
			return nil, err
		}
		if g == session.Correct {
			fmt.Fprintln(out, "  correct")
		} else {
			fmt.Fprintf(out, "  incorrect: %s\n", w.Text)
		}

		sum, err := e.Advance()
		if err != nil {
			return nil, err
		}
		if sum != nil {
			return sum, nil
		}
	}
}
