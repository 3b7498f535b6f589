package store

import (
	"context"
	"strings"

	"github.com/rcliao/wordbook/internal/model"
)

// likeEscaper makes LIKE wildcards in a query match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// SearchWords finds words whose text or definition contains the query substring.
// Matches on the word text come first.
func (s *SQLiteStore) SearchWords(ctx context.Context, p SearchParams) ([]model.Word, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	like := "%" + likeEscaper.Replace(strings.TrimSpace(p.Query)) + "%"
	where := []string{"w.deleted_at IS NULL", `(w.text LIKE ? ESCAPE '\' OR w.definition LIKE ? ESCAPE '\')`}
	args := []interface{}{like, like}

	if p.Book != "" {
		where = append(where, "w.book = ?")
		args = append(args, p.Book)
	}

	query := `SELECT ` + wordColumns + ` FROM words w
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY CASE WHEN w.text LIKE ? ESCAPE '\' THEN 0 ELSE 1 END, w.rowid
		LIMIT ?`
	args = append(args, like, limit)

	return s.queryWords(ctx, query, args...)
}
