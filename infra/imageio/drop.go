package imageio

import (
	"net/url"
	"os"
	"strings"
)

// ParseDroppedPaths interprets pasted text as files dragged onto the terminal.
// Terminals paste dropped files as space or newline separated paths, either
// quoted, backslash-escaped or as file:// URIs. Only existing image files are
// returned; an empty result means the paste was ordinary text.
func ParseDroppedPaths(text string) []string {
	fields := splitShellWords(strings.TrimSpace(text))
	if len(fields) == 0 {
		return nil
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		p := f
		if strings.HasPrefix(p, "file://") {
			u, err := url.Parse(p)
			if err != nil {
				return nil
			}
			p = u.Path
		}
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			// One non-path word means this is prose, not a drop.
			return nil
		}
		if !IsImagePath(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func splitShellWords(s string) []string {
	var (
		words   []string
		cur     strings.Builder
		quote   rune
		escaped bool
		inWord  bool
	)
	flush := func() {
		if inWord {
			words = append(words, cur.String())
			cur.Reset()
			inWord = false
		}
	}
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case r == ' ' || r == '\n' || r == '\t' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	flush()
	return words
}
