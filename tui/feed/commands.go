package feed

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalwall/app"
)

func (m Model) fetchPosts(seq int) tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		posts, err := store.List(context.Background())
		if err != nil {
			return PostsErrorMsg{Err: err, ReqSeq: seq}
		}
		return PostsLoadedMsg{Posts: posts, ReqSeq: seq}
	}
}

// refresh starts a new fetch; responses to older fetches are dropped.
func (m *Model) refresh() tea.Cmd {
	m.reqSeq++
	m.loading = true
	return m.fetchPosts(m.reqSeq)
}

func (m Model) subscribe() tea.Cmd {
	changes := m.changes
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		sub, err := changes.Subscribe(context.Background())
		if err != nil {
			return SubscribeErrorMsg{Err: err}
		}
		return SubscribedMsg{Sub: sub}
	}
}

func waitForChange(sub app.Subscription) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-sub.Events()
		if !ok {
			return SubscriptionClosedMsg{Sub: sub, Err: sub.Err()}
		}
		return ChangeNotifiedMsg{Event: ev, Sub: sub}
	}
}

// scheduleResubscribe waits out the current delay and doubles it for next time.
func (m *Model) scheduleResubscribe() tea.Cmd {
	d := m.retryDelay
	m.retryDelay *= 2
	if m.retryDelay > maxResubscribeDelay {
		m.retryDelay = maxResubscribeDelay
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return resubscribeMsg{} })
}

func deletePost(id string, index int) tea.Cmd {
	return func() tea.Msg { return DeletePostMsg{ID: id, Index: index} }
}
