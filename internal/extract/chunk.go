package extract

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the byte budget of one extraction request.
const DefaultChunkSize = 4000

// Chunk splits text on blank lines into pieces of at most size bytes.
// Paragraphs longer than size are split on the last space before the limit,
// or on the last rune boundary when there is no space, so every chunk stays
// valid UTF-8.
func Chunk(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= size {
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder
	flush := func() {
		if t := strings.TrimSpace(cur.String()); t != "" {
			chunks = append(chunks, t)
		}
		cur.Reset()
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if cur.Len() > 0 && cur.Len()+2+len(para) > size {
			flush()
		}
		for len(para) > size {
			cut := strings.LastIndex(para[:size], " ")
			if cut <= 0 {
				cut = runeCut(para, size)
			}
			flush()
			chunks = append(chunks, strings.TrimSpace(para[:cut]))
			para = strings.TrimSpace(para[cut:])
		}
		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(para)
	}
	flush()
	return chunks
}

// runeCut returns the largest rune boundary in s at or before size. A first
// rune wider than size is kept whole.
func runeCut(s string, size int) int {
	cut := size
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		_, n := utf8.DecodeRuneInString(s)
		cut = n
	}
	return cut
}
