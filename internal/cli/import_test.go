package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckImportArgs(t *testing.T) {
	tests := []struct {
		name     string
		book     string
		url      string
		fromText bool
		restore  bool
		args     []string
		wantErr  string
	}{
		{name: "restore without book", restore: true, args: []string{"export.json"}},
		{name: "restore with fallback book", book: "misc", restore: true, args: []string{"export.json"}},
		{name: "restore without file", restore: true, wantErr: "--restore needs an export file"},
		{name: "file", book: "gre", args: []string{"words.yaml"}},
		{name: "url", book: "gre", url: "https://example.com/a"},
		{name: "text", book: "gre", fromText: true},
		{name: "file without book", args: []string{"words.yaml"}, wantErr: `required flag "book" not set`},
		{name: "no source", book: "gre", wantErr: "a file, --url or --text is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkImportArgs(tt.book, tt.url, tt.fromText, tt.restore, tt.args)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
