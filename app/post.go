package app

import (
	"context"

	"github.com/CrestNiraj12/terminalwall/domain"
)

// PostStore is the remote table holding wall posts.
type PostStore interface {
	// List returns every post, newest first.
	List(ctx context.Context) ([]domain.Post, error)

	// Insert creates a post and returns the stored row with its id and timestamp.
	Insert(ctx context.Context, p domain.NewPost) (domain.Post, error)

	// Delete removes a post by id.
	Delete(ctx context.Context, id string) error
}
