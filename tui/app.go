package tui

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalwall/app"
	"github.com/CrestNiraj12/terminalwall/domain"
	"github.com/CrestNiraj12/terminalwall/infra/editor"
	"github.com/CrestNiraj12/terminalwall/infra/imageio"
	"github.com/CrestNiraj12/terminalwall/tui/common"
	"github.com/CrestNiraj12/terminalwall/tui/compose"
	"github.com/CrestNiraj12/terminalwall/tui/feed"
	"github.com/CrestNiraj12/terminalwall/tui/media"
	"github.com/CrestNiraj12/terminalwall/tui/profile"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Posts    app.PostStore
	Changes  app.ChangeFeed // nil disables live updates
	Local    app.KeyValueStore
	Editor   *editor.EnvEditor
	Ingestor *imageio.Ingestor
	User     domain.User
}

type focusArea int

const (
	focusFeed focusArea = iota
	focusCompose
)

// App is the root Bubble Tea model. It lays out the page and performs the
// remote writes its children ask for.
type App struct {
	deps      Deps
	focus     focusArea
	feed      feed.Model
	compose   compose.Model
	profile   profile.Model
	keys      common.KeyMap
	status    string
	statusErr bool
	showHints bool
	width     int
	height    int
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	if deps.Ingestor == nil {
		deps.Ingestor = imageio.NewIngestor()
	}
	thumbs := media.NewCache()
	p := profile.New(deps.Local, deps.Ingestor, deps.User, thumbs)
	return App{
		deps:    deps,
		focus:   focusFeed,
		feed:    feed.New(deps.Posts, deps.Changes, deps.User, thumbs).SetAvatar(p.Image()),
		compose: compose.New(deps.Ingestor, deps.Editor, thumbs),
		profile: p,
		keys:    common.DefaultKeyMap(),
		width:   120,
		height:  40,
	}
}

// Init loads the wall, opens the change subscription and reads the
// stored profile photo.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.feed.Init(), a.compose.Init(), a.profile.Init())
}

// Update handles messages and routes them to the children.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a = a.resize()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case compose.LeaveMsg:
		a = a.focusOn(focusFeed)
		return a, nil

	case compose.SubmitMsg:
		a.setStatus("Sharing...", false)
		store, user := a.deps.Posts, a.deps.User
		return a, func() tea.Msg {
			p, err := store.Insert(context.Background(), domain.NewPost{
				AuthorID: user.ID,
				Body:     msg.Body,
				Images:   msg.Images,
			})
			return compose.ResultMsg{Post: p, Err: err}
		}

	case compose.ResultMsg:
		a.compose, _ = a.compose.Update(msg)
		if msg.Err != nil {
			log.Printf("app: create post: %v", msg.Err)
			a.setStatus("Error: "+msg.Err.Error(), true)
			return a, nil
		}
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(feed.PostCreatedMsg{Post: msg.Post})
		a.setStatus("Shared to your wall.", false)
		return a, cmd

	case feed.DeletePostMsg:
		a.setStatus("Removing post...", false)
		store := a.deps.Posts
		return a, func() tea.Msg {
			return feed.DeleteResultMsg{ID: msg.ID, Err: store.Delete(context.Background(), msg.ID)}
		}

	case feed.DeleteResultMsg:
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		if msg.Err != nil {
			log.Printf("app: delete post %s: %v", msg.ID, msg.Err)
			a.setStatus("Error removing post: "+msg.Err.Error(), true)
		} else {
			a.setStatus("Post removed.", false)
		}
		return a, cmd

	case profile.ChangedMsg:
		a.feed = a.feed.SetAvatar(msg.Image)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd
	}

	// Everything else is private to one child; the others ignore it.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.feed, cmd = a.feed.Update(msg)
	cmds = append(cmds, cmd)
	a.compose, cmd = a.compose.Update(msg)
	cmds = append(cmds, cmd)
	a.profile, cmd = a.profile.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		return a.quit()
	}

	// A blocking notification or an open picker owns the keyboard.
	if a.profile.Blocking() || a.profile.Picking() {
		var cmd tea.Cmd
		a.profile, cmd = a.profile.Update(msg)
		return a, cmd
	}

	if a.focus == focusCompose {
		var cmd tea.Cmd
		a.compose, cmd = a.compose.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()
	case key.Matches(msg, a.keys.Compose):
		a = a.focusOn(focusCompose)
		var cmd tea.Cmd
		a.compose, cmd = a.compose.Focus()
		return a, cmd
	case key.Matches(msg, a.keys.ChangePhoto):
		var cmd tea.Cmd
		a.profile, cmd = a.profile.OpenPicker()
		return a, cmd
	case key.Matches(msg, a.keys.ToggleHints):
		a.showHints = !a.showHints
		return a, nil
	}

	var cmd tea.Cmd
	a.feed, cmd = a.feed.Update(msg)
	return a, cmd
}

func (a App) focusOn(f focusArea) App {
	a.focus = f
	a.feed = a.feed.SetFocused(f == focusFeed)
	if f == focusFeed {
		a.compose = a.compose.Blur()
	}
	return a
}

func (a App) quit() (tea.Model, tea.Cmd) {
	a.feed = a.feed.Close()
	return a, tea.Quit
}

func (a *App) setStatus(s string, isErr bool) {
	a.status = s
	a.statusErr = isErr
}
