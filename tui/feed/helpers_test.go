package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/CrestNiraj12/terminalwall/app"
	"github.com/CrestNiraj12/terminalwall/domain"
)

type stubStore struct {
	mu    sync.Mutex
	posts []domain.Post
	err   error
	lists int
}

func (s *stubStore) List(context.Context) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	return append([]domain.Post(nil), s.posts...), s.err
}

func (s *stubStore) Insert(_ context.Context, p domain.NewPost) (domain.Post, error) {
	return domain.Post{ID: "new", AuthorID: p.AuthorID, Body: p.Body, Images: p.Images}, nil
}

func (s *stubStore) Delete(context.Context, string) error { return nil }

type stubSub struct {
	events   chan app.ChangeEvent
	err      error
	closed   bool
	stopOnce sync.Once
}

func newStubSub() *stubSub {
	return &stubSub{events: make(chan app.ChangeEvent, 4)}
}

func (s *stubSub) Events() <-chan app.ChangeEvent { return s.events }
func (s *stubSub) Err() error                     { return s.err }
func (s *stubSub) Close() error {
	s.closed = true
	s.stop()
	return nil
}

// drop ends the event stream the way a lost connection does, without Close.
func (s *stubSub) drop(err error) {
	s.err = err
	s.stop()
}

func (s *stubSub) stop() {
	s.stopOnce.Do(func() { close(s.events) })
}

type stubFeed struct {
	subs []*stubSub
	err  error
}

func (f *stubFeed) Subscribe(context.Context) (app.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := newStubSub()
	f.subs = append(f.subs, s)
	return s, nil
}

var errRemote = errors.New("remote unavailable")

var base = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func post(id string, minutesAgo int) domain.Post {
	return domain.Post{
		ID:        id,
		AuthorID:  domain.DefaultUser.ID,
		Body:      "post " + id,
		CreatedAt: base.Add(-time.Duration(minutesAgo) * time.Minute),
	}
}

func newTestModel(store app.PostStore, changes app.ChangeFeed) Model {
	m := New(store, changes, domain.DefaultUser, nil)
	m.now = func() time.Time { return base }
	m.loading = false
	return m
}

func loaded(m Model, posts ...domain.Post) Model {
	m, _ = m.Update(PostsLoadedMsg{Posts: posts, ReqSeq: m.reqSeq})
	return m
}

func ids(posts []domain.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}
