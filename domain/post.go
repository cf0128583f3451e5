package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxBodyRunes is the client-side soft cap on a post body.
const MaxBodyRunes = 280

// Post represents a single entry on the wall.
type Post struct {
	ID         string // Assigned by the remote store; empty until confirmed
	AuthorID   string
	AuthorName string // Display decoration, not stored remotely
	Body       string
	Images     []string // Data URIs, in attachment order
	CreatedAt  time.Time
}

// NewPost is the create request sent to the remote store.
type NewPost struct {
	AuthorID string
	Body     string
	Images   []string // nil when the post has no attachments
}

// Persisted reports whether the post carries a server-assigned ID.
func (p Post) Persisted() bool {
	return strings.TrimSpace(p.ID) != ""
}

// ClampBody truncates s to MaxBodyRunes runes.
func ClampBody(s string) string {
	if utf8.RuneCountInString(s) <= MaxBodyRunes {
		return s
	}
	return string([]rune(s)[:MaxBodyRunes])
}

// BodyLength returns the body length in runes, as shown by the composer counter.
func BodyLength(s string) int {
	return utf8.RuneCountInString(s)
}

// HasContent reports whether a draft may be shared: non-blank text or at least one image.
func HasContent(body string, images []string) bool {
	return strings.TrimSpace(body) != "" || len(images) > 0
}
