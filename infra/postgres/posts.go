package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/CrestNiraj12/terminalwall/domain"
)

const (
	listPostsSQL = `SELECT id::text, user_id::text, body, created_at, images
		FROM posts ORDER BY created_at DESC`
	insertPostSQL = `INSERT INTO posts (user_id, body, images) VALUES ($1, $2, $3)
		RETURNING id::text, user_id::text, body, created_at, images`
	deletePostSQL = `DELETE FROM posts WHERE id = $1`
)

// PostStore implements app.PostStore on the posts table.
type PostStore struct {
	client *Client
}

// NewPostStore creates a PostStore backed by Postgres.
func NewPostStore(client *Client) *PostStore {
	return &PostStore{client: client}
}

func (s *PostStore) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := s.client.pool.Query(ctx, listPostsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Body, &p.CreatedAt, &p.Images); err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return posts, nil
}

func (s *PostStore) Insert(ctx context.Context, np domain.NewPost) (domain.Post, error) {
	if !domain.HasContent(np.Body, np.Images) {
		return domain.Post{}, domain.ErrEmptyPost
	}
	authorID, err := uuid.Parse(np.AuthorID)
	if err != nil {
		return domain.Post{}, fmt.Errorf("author id %q: %w", np.AuthorID, err)
	}
	var images []string
	if len(np.Images) > 0 {
		images = np.Images
	}

	var p domain.Post
	err = s.client.pool.QueryRow(ctx, insertPostSQL, authorID.String(), np.Body, images).
		Scan(&p.ID, &p.AuthorID, &p.Body, &p.CreatedAt, &p.Images)
	if err != nil {
		return domain.Post{}, fmt.Errorf("inserting post: %w", err)
	}
	return p, nil
}

func (s *PostStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrMissingPostID
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%q: %w", id, domain.ErrInvalidPostID)
	}
	if _, err := s.client.pool.Exec(ctx, deletePostSQL, parsed.String()); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}
