package domain

import "github.com/google/uuid"

// User is the identity posts are written as. There is only ever one.
type User struct {
	ID   string
	Name string
}

// DefaultUser is the built-in identity used when no override is configured.
var DefaultUser = User{
	ID:   uuid.MustParse("00000000-0000-0000-0000-000000000001").String(),
	Name: "Julqifhel",
}

// Decorate stamps the user's display name onto every post.
func (u User) Decorate(posts []Post) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		p.AuthorName = u.Name
		out[i] = p
	}
	return out
}
