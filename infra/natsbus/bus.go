// Package natsbus fans post changes out over NATS, for deployments where the
// database cannot push notifications itself.
package natsbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/CrestNiraj12/terminalwall/app"
	"github.com/CrestNiraj12/terminalwall/domain"
)

// Subject carries one message per post change.
const Subject = "wall.posts.changed"

// ErrConnClosed is reported by subscriptions whose connection went away.
var ErrConnClosed = errors.New("nats connection closed")

// Bus is a NATS connection used both to publish and to subscribe.
type Bus struct {
	nc     *nats.Conn
	closed chan struct{}
}

// Connect dials url and reconnects indefinitely in the background.
func Connect(url string) (*Bus, error) {
	b := &Bus{closed: make(chan struct{})}
	var once sync.Once
	nc, err := nats.Connect(url,
		nats.Name("terminalwall"),
		nats.MaxReconnects(-1),
		nats.ClosedHandler(func(*nats.Conn) {
			once.Do(func() { close(b.closed) })
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("natsbus: disconnected: %v", err)
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}
	b.nc = nc
	return b, nil
}

// Publish announces a change.
func (b *Bus) Publish(ev app.ChangeEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding change: %w", err)
	}
	if err := b.nc.Publish(Subject, data); err != nil {
		return fmt.Errorf("publishing change: %w", err)
	}
	return nil
}

// Close drains pending publishes and closes the connection.
func (b *Bus) Close() error {
	if err := b.nc.Drain(); err != nil {
		b.nc.Close()
		return fmt.Errorf("draining nats: %w", err)
	}
	return nil
}

// Subscribe implements app.ChangeFeed.
func (b *Bus) Subscribe(_ context.Context) (app.Subscription, error) {
	msgs := make(chan *nats.Msg, 64)
	ns, err := b.nc.ChanSubscribe(Subject, msgs)
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", Subject, err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &subscription{
		ns:     ns,
		events: make(chan app.ChangeEvent, 16),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.run(ctx, msgs, b.closed)
	return s, nil
}

type subscription struct {
	ns     *nats.Subscription
	events chan app.ChangeEvent
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	err       error
	closeOnce sync.Once
}

func (s *subscription) run(ctx context.Context, msgs <-chan *nats.Msg, connClosed <-chan struct{}) {
	defer close(s.done)
	defer close(s.events)
	for {
		select {
		case <-ctx.Done():
			return
		case <-connClosed:
			s.mu.Lock()
			s.err = ErrConnClosed
			s.mu.Unlock()
			return
		case m := <-msgs:
			var ev app.ChangeEvent
			_ = json.Unmarshal(m.Data, &ev)
			select {
			case s.events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *subscription) Events() <-chan app.ChangeEvent { return s.events }

func (s *subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *subscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if uerr := s.ns.Unsubscribe(); uerr != nil && !errors.Is(uerr, nats.ErrConnectionClosed) {
			err = fmt.Errorf("unsubscribing: %w", uerr)
		}
		s.cancel()
		<-s.done
	})
	return err
}

// PublishingStore wraps a PostStore and announces every successful write.
type PublishingStore struct {
	app.PostStore
	bus interface{ Publish(app.ChangeEvent) error }
}

// NewPublishingStore decorates store so writes are published on bus.
func NewPublishingStore(store app.PostStore, bus *Bus) *PublishingStore {
	return &PublishingStore{PostStore: store, bus: bus}
}

func (s *PublishingStore) Insert(ctx context.Context, np domain.NewPost) (domain.Post, error) {
	p, err := s.PostStore.Insert(ctx, np)
	if err != nil {
		return p, err
	}
	s.publish(app.ChangeEvent{Op: app.OpInsert, PostID: p.ID})
	return p, nil
}

func (s *PublishingStore) Delete(ctx context.Context, id string) error {
	if err := s.PostStore.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(app.ChangeEvent{Op: app.OpDelete, PostID: id})
	return nil
}

// A lost announcement only delays other clients until their next change.
func (s *PublishingStore) publish(ev app.ChangeEvent) {
	if err := s.bus.Publish(ev); err != nil {
		log.Printf("natsbus: %v", err)
	}
}
