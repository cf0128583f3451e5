package feed

import (
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalwall/domain"
)

// Update handles messages for the feed.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PostsLoadedMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		var menuID string
		if m.openMenu >= 0 && m.openMenu < len(m.posts) {
			menuID = m.posts[m.openMenu].ID
		}
		posts := m.user.Decorate(msg.Posts)
		normalizeOrder(posts)
		m.posts = posts
		m.loading = false
		m.err = nil
		m.cursor = clamp(m.cursor, 0, max(len(m.posts)-1, 0))
		if m.openMenu != noMenu && (m.openMenu >= len(m.posts) || m.posts[m.openMenu].ID != menuID) {
			m.openMenu = noMenu
		}
		return m, nil

	case PostsErrorMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		log.Printf("feed: refresh failed: %v", msg.Err)
		return m, nil

	case SubscribedMsg:
		if m.closed {
			_ = msg.Sub.Close()
			return m, nil
		}
		m.sub = msg.Sub
		m.subErr = nil
		m.retryDelay = minResubscribeDelay
		if m.resubscribed {
			// Changes made while disconnected were never announced.
			m.resubscribed = false
			return m, tea.Batch(waitForChange(m.sub), m.refresh())
		}
		return m, waitForChange(m.sub)

	case SubscribeErrorMsg:
		if m.closed {
			return m, nil
		}
		m.subErr = msg.Err
		log.Printf("feed: subscribe failed: %v", msg.Err)
		return m, m.scheduleResubscribe()

	case ChangeNotifiedMsg:
		if m.closed || msg.Sub != m.sub {
			return m, nil
		}
		return m, tea.Batch(m.refresh(), waitForChange(m.sub))

	case SubscriptionClosedMsg:
		// The ended subscription still holds its connection until closed.
		_ = msg.Sub.Close()
		if m.closed || msg.Sub != m.sub {
			return m, nil
		}
		m.sub = nil
		m.subErr = msg.Err
		log.Printf("feed: change subscription ended: %v", msg.Err)
		return m, m.scheduleResubscribe()

	case resubscribeMsg:
		if m.closed {
			return m, nil
		}
		m.resubscribed = true
		return m, m.subscribe()

	case PostCreatedMsg:
		if indexOf(m.posts, msg.Post.ID) >= 0 {
			return m, nil
		}
		decorated := m.user.Decorate([]domain.Post{msg.Post})
		m.posts = append(decorated, m.posts...)
		if m.openMenu != noMenu {
			m.openMenu++
		}
		m.cursor = 0
		return m, m.invalidate()

	case DeleteResultMsg:
		if msg.Err != nil {
			log.Printf("feed: delete %s failed: %v", msg.ID, msg.Err)
			return m, nil
		}
		m.removeByID(msg.ID)
		return m, m.invalidate()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.openMenu = noMenu
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.posts)-1 {
			m.cursor++
		}
		m.openMenu = noMenu
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()
	case key.Matches(msg, m.keys.Menu):
		m = m.ToggleMenu(m.cursor)
	case key.Matches(msg, m.keys.Enter):
		if m.openMenu == m.cursor {
			return m.Remove(m.cursor)
		}
		m = m.ToggleMenu(m.cursor)
	case key.Matches(msg, m.keys.Back):
		m.openMenu = noMenu
	}
	return m, nil
}

// ToggleMenu opens the overflow menu of post i, closing any other; opening
// the already open menu closes it.
func (m Model) ToggleMenu(i int) Model {
	if i < 0 || i >= len(m.posts) {
		m.openMenu = noMenu
		return m
	}
	if m.openMenu == i {
		m.openMenu = noMenu
	} else {
		m.openMenu = i
	}
	return m
}

// Remove picks "Remove Post" for post i. Posts without an ID are ignored.
func (m Model) Remove(i int) (Model, tea.Cmd) {
	m.openMenu = noMenu
	if i < 0 || i >= len(m.posts) || !m.posts[i].Persisted() {
		return m, nil
	}
	return m, deletePost(m.posts[i].ID, i)
}

// invalidate drops responses to refreshes issued before a local write. A
// refresh still in flight is reissued so its result is not lost.
func (m *Model) invalidate() tea.Cmd {
	if m.loading {
		return m.refresh()
	}
	m.reqSeq++
	return nil
}

func (m *Model) removeByID(id string) {
	i := indexOf(m.posts, id)
	if i < 0 {
		return
	}
	m.posts = append(m.posts[:i:i], m.posts[i+1:]...)
	switch {
	case m.openMenu == i:
		m.openMenu = noMenu
	case m.openMenu > i:
		m.openMenu--
	}
	if m.cursor > i || m.cursor >= len(m.posts) {
		m.cursor--
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
