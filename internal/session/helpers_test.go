package session

import (
	"fmt"
	"time"

	"github.com/rcliao/wordbook/internal/model"
)

var fixedNow = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func word(id string) model.Word {
	return model.Word{ID: id, Text: id, Definition: "definition of " + id}
}

func words(ids ...string) []model.Word {
	out := make([]model.Word, len(ids))
	for i, id := range ids {
		out[i] = word(id)
	}
	return out
}

func entryIDs(entries []QueueEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.Word.ID
	}
	return ids
}

func errorIDs(records []model.ErrorRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.WordID
	}
	return ids
}

func numbered(n int) []model.Word {
	out := make([]model.Word, n)
	for i := range out {
		out[i] = word(fmt.Sprintf("w%02d", i))
	}
	return out
}
