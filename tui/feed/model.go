package feed

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalwall/app"
	"github.com/CrestNiraj12/terminalwall/domain"
	"github.com/CrestNiraj12/terminalwall/tui/common"
	"github.com/CrestNiraj12/terminalwall/tui/media"
)

const (
	minResubscribeDelay = time.Second
	maxResubscribeDelay = 30 * time.Second
	noMenu              = -1
)

// --- Messages ---

// PostsLoadedMsg carries a fresh snapshot of the post table.
type PostsLoadedMsg struct {
	Posts  []domain.Post
	ReqSeq int
}

// PostsErrorMsg is sent when a refresh fails.
type PostsErrorMsg struct {
	Err    error
	ReqSeq int
}

// SubscribedMsg is sent once the change channel is open.
type SubscribedMsg struct {
	Sub app.Subscription
}

// SubscribeErrorMsg is sent when the change channel could not be opened.
type SubscribeErrorMsg struct {
	Err error
}

// ChangeNotifiedMsg is sent for every change event on the post table.
type ChangeNotifiedMsg struct {
	Event app.ChangeEvent
	Sub   app.Subscription
}

// SubscriptionClosedMsg is sent when the change channel ends.
type SubscriptionClosedMsg struct {
	Sub app.Subscription
	Err error
}

type resubscribeMsg struct{}

// PostCreatedMsg prepends a post the user just shared.
type PostCreatedMsg struct {
	Post domain.Post
}

// DeletePostMsg asks the root model to delete a post remotely.
type DeletePostMsg struct {
	ID    string
	Index int
}

// DeleteResultMsg reports the outcome of a DeletePostMsg.
type DeleteResultMsg struct {
	ID  string
	Err error
}

// --- Model ---

// Model is the wall: a newest-first list of posts kept in step with the
// remote table through refreshes and change notifications.
type Model struct {
	store   app.PostStore
	changes app.ChangeFeed
	user    domain.User

	posts    []domain.Post
	cursor   int
	openMenu int
	loading  bool
	err      error
	reqSeq   int

	sub          app.Subscription
	subErr       error
	retryDelay   time.Duration
	resubscribed bool
	closed       bool

	avatar  string
	thumbs  *media.Cache
	keys    common.KeyMap
	spinner spinner.Model
	focused bool
	width   int
	height  int
	now     func() time.Time
}

// New creates a feed backed by store, following changes when changes is non-nil.
func New(store app.PostStore, changes app.ChangeFeed, user domain.User, thumbs *media.Cache) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	if thumbs == nil {
		thumbs = media.NewCache()
	}
	return Model{
		store:      store,
		changes:    changes,
		user:       user,
		openMenu:   noMenu,
		loading:    true,
		retryDelay: minResubscribeDelay,
		thumbs:     thumbs,
		keys:       common.DefaultKeyMap(),
		spinner:    s,
		focused:    true,
		width:      72,
		height:     24,
		now:        time.Now,
	}
}

// Init loads the wall and opens the change subscription.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchPosts(m.reqSeq), m.subscribe())
}

// Posts returns the displayed posts, newest first.
func (m Model) Posts() []domain.Post { return append([]domain.Post(nil), m.posts...) }

// Cursor returns the index of the highlighted post.
func (m Model) Cursor() int { return m.cursor }

// OpenMenu returns the index whose overflow menu is open, or -1.
func (m Model) OpenMenu() int { return m.openMenu }

// Loading reports whether a refresh is in flight.
func (m Model) Loading() bool { return m.loading }

// Err returns the last refresh error.
func (m Model) Err() error { return m.err }

// Subscribed reports whether a change subscription is live.
func (m Model) Subscribed() bool { return m.sub != nil }

// SetAvatar sets the profile image drawn beside every post.
func (m Model) SetAvatar(uri string) Model {
	m.avatar = uri
	return m
}

// SetFocused toggles whether the feed reacts to navigation keys.
func (m Model) SetFocused(f bool) Model {
	m.focused = f
	if !f {
		m.openMenu = noMenu
	}
	return m
}

// SetSize sets the area the wall may draw into.
func (m Model) SetSize(w, h int) Model {
	m.width = w
	m.height = h
	return m
}

// Close ends the change subscription. Later change messages are ignored.
func (m Model) Close() Model {
	m.closed = true
	if m.sub != nil {
		_ = m.sub.Close()
		m.sub = nil
	}
	return m
}
