package feed

import (
	"sort"

	"github.com/CrestNiraj12/terminalwall/domain"
)

// normalizeOrder sorts newest first; equal timestamps fall back to ID so
// repeated refreshes render identically.
func normalizeOrder(posts []domain.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		ti, tj := posts[i].CreatedAt, posts[j].CreatedAt
		if ti.Equal(tj) {
			return posts[i].ID > posts[j].ID
		}
		return ti.After(tj)
	})
}

func indexOf(posts []domain.Post, id string) int {
	for i, p := range posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
