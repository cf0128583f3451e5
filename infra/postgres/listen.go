package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CrestNiraj12/terminalwall/app"
)

const eventBuffer = 16

// ChangeFeed implements app.ChangeFeed with LISTEN/NOTIFY.
type ChangeFeed struct {
	client *Client
}

// NewChangeFeed creates a ChangeFeed listening on NotifyChannel.
func NewChangeFeed(client *Client) *ChangeFeed {
	return &ChangeFeed{client: client}
}

// Subscribe pins a pooled connection, issues LISTEN and starts forwarding
// notifications until Close or a connection failure.
func (f *ChangeFeed) Subscribe(ctx context.Context) (app.Subscription, error) {
	conn, err := f.client.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring listen connection: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+NotifyChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen %s: %w", NotifyChannel, err)
	}

	lctx, cancel := context.WithCancel(context.Background())
	s := &listenSubscription{
		conn:   conn,
		events: make(chan app.ChangeEvent, eventBuffer),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.run(lctx)
	return s, nil
}

type listenSubscription struct {
	conn   *pgxpool.Conn
	events chan app.ChangeEvent
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	err       error
	closeOnce sync.Once
}

// run forwards notifications until ctx ends or the connection fails. The
// connection goes back to the pool on either path.
func (s *listenSubscription) run(ctx context.Context) {
	defer close(s.done)
	defer s.conn.Release()
	defer close(s.events)
	for {
		n, err := s.conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() == nil {
				s.setErr(fmt.Errorf("waiting for notification: %w", err))
			}
			return
		}
		select {
		case s.events <- parseEvent(n.Payload):
		case <-ctx.Done():
			return
		}
	}
}

func (s *listenSubscription) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *listenSubscription) Events() <-chan app.ChangeEvent {
	return s.events
}

func (s *listenSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close stops the listener and waits for its connection to be released. A
// connection interrupted mid-wait is closed by pgx and dropped by the pool.
func (s *listenSubscription) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
	})
	return nil
}

func parseEvent(payload string) app.ChangeEvent {
	var ev app.ChangeEvent
	_ = json.Unmarshal([]byte(payload), &ev)
	return ev
}
