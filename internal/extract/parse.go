// Package extract turns word list files, raw text and web pages into words
// ready to be added to a book.
package extract

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/wordbook/internal/model"
)

// Word list formats accepted by ParseWordList.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatText = "text"
)

// ErrUnknownFormat is returned for an unsupported word list format.
var ErrUnknownFormat = errors.New("extract: unknown format")

// entry is the file shape of one word in YAML and JSON lists.
type entry struct {
	Text       string `yaml:"text" json:"text"`
	Phonetic   string `yaml:"phonetic" json:"phonetic"`
	Definition string `yaml:"definition" json:"definition"`
}

func (e entry) word() model.Word {
	return model.Word{
		Text:       strings.TrimSpace(e.Text),
		Phonetic:   strings.TrimSpace(e.Phonetic),
		Definition: strings.TrimSpace(e.Definition),
	}
}

// FormatFromPath picks a format from the file extension, defaulting to text.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatText
}

// ParseWordList reads a word list in the given format. Entries without text
// are dropped.
func ParseWordList(r io.Reader, format string) ([]model.Word, error) {
	var entries []entry
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&entries); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	case FormatText, "":
		return parseText(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	words := make([]model.Word, 0, len(entries))
	for _, e := range entries {
		w := e.word()
		if w.Text == "" {
			continue
		}
		words = append(words, w)
	}
	return words, nil
}

// parseText reads one word per line: "text | phonetic | definition",
// "text | definition", "text - definition" or just "text". Blank lines and
// lines starting with # are skipped.
func parseText(r io.Reader) ([]model.Word, error) {
	var words []model.Word
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var e entry
		if strings.Contains(line, "|") {
			parts := strings.Split(line, "|")
			e.Text = parts[0]
			switch len(parts) {
			case 2:
				e.Definition = parts[1]
			default:
				e.Phonetic = parts[1]
				e.Definition = strings.Join(parts[2:], "|")
			}
		} else if text, def, ok := strings.Cut(line, " - "); ok {
			e.Text, e.Definition = text, def
		} else {
			e.Text = line
		}

		if w := e.word(); w.Text != "" {
			words = append(words, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return words, nil
}

// Dedupe drops words whose text repeats an earlier one, ignoring case.
func Dedupe(words []model.Word) []model.Word {
	seen := make(map[string]bool, len(words))
	out := words[:0:0]
	for _, w := range words {
		key := strings.ToLower(strings.TrimSpace(w.Text))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, w)
	}
	return out
}
