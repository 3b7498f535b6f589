package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/wordbook/internal/extract"
	"github.com/rcliao/wordbook/internal/model"
	"github.com/rcliao/wordbook/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import words into a book",
		Long: "Import words into a book from a word list file (yaml, json or text; '-' reads stdin),\n" +
			"or extract them with the configured AI endpoint from a web page (--url) or from text on stdin (--text).",
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}

	cmd.Flags().StringP("book", "b", "", "Book name (required, except with --restore)")
	cmd.Flags().String("url", "", "Extract words from the article at this URL")
	cmd.Flags().Bool("text", false, "Extract words from free text read from stdin")
	cmd.Flags().String("list-format", "", "Word list format: yaml, json or text (default: from file extension)")
	cmd.Flags().Bool("restore", false, "File is an export; words keep their own book (--book is the fallback)")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	book, _ := cmd.Flags().GetString("book")
	url, _ := cmd.Flags().GetString("url")
	fromText, _ := cmd.Flags().GetBool("text")
	format, _ := cmd.Flags().GetString("list-format")
	restore, _ := cmd.Flags().GetBool("restore")

	if err := checkImportArgs(book, url, fromText, restore, args); err != nil {
		exitErr("import", err)
	}
	if restore {
		runRestore(cmd, args[0], book)
		return
	}

	var words []model.Word
	var err error
	switch {
	case url != "" || fromText:
		if !cfg.AI.Enabled() {
			exitErr("import", fmt.Errorf("no AI api key configured (set ai.api_key or WORDBOOK_AI_API_KEY)"))
		}
		words, err = extractWords(cmd.Context(), cmd.InOrStdin(), url)
		if err != nil {
			// The extraction endpoint is a black box; report a generic failure.
			slog.Warn("word extraction failed", "error", err, "url", url)
			exitErr("import", fmt.Errorf("could not extract words, try again later"))
		}
	default:
		words, err = readWordList(cmd.InOrStdin(), args[0], format)
		if err != nil {
			exitErr("read word list", err)
		}
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	added, skipped, err := s.AddWords(cmd.Context(), store.AddWordsParams{Book: book, Words: words})
	if err != nil {
		exitErr("import", err)
	}

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d words into %s (%d skipped)\n", len(added), book, skipped)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"book":%q,"imported":%d,"skipped":%d}`+"\n", book, len(added), skipped)
}

// checkImportArgs validates the source flags. A restore keeps each word's
// own book, so --book is only its fallback; every other source needs it.
func checkImportArgs(book, url string, fromText, restore bool, args []string) error {
	if restore {
		if len(args) != 1 {
			return fmt.Errorf("--restore needs an export file")
		}
		return nil
	}
	if book == "" {
		return fmt.Errorf(`required flag "book" not set`)
	}
	if url == "" && !fromText && len(args) != 1 {
		return fmt.Errorf("a file, --url or --text is required")
	}
	return nil
}

func runRestore(cmd *cobra.Command, path, book string) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			exitErr("open export", err)
		}
		defer f.Close()
		r = f
	}

	var words []model.Word
	if err := json.NewDecoder(r).Decode(&words); err != nil {
		exitErr("parse json", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, err := s.Import(cmd.Context(), words, book)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d}`+"\n", imported)
}

func readWordList(stdin io.Reader, path, format string) ([]model.Word, error) {
	if format == "" {
		format = extract.FormatFromPath(path)
	}
	if path == "-" {
		return extract.ParseWordList(stdin, format)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return extract.ParseWordList(f, format)
}

func extractWords(ctx context.Context, stdin io.Reader, url string) ([]model.Word, error) {
	var text string
	if url != "" {
		article, err := extract.FetchArticle(ctx, nil, url)
		if err != nil {
			return nil, err
		}
		slog.Debug("article fetched", "title", article.Title, "chars", len(article.Text))
		text = article.Text
	} else {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		text = string(b)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text to extract from")
	}

	x := extract.NewOpenAIExtractor(extract.OpenAIConfig{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
	})
	return x.Extract(ctx, text)
}
