package profile

import (
	"context"
	"errors"
	"log"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalwall/app"
	"github.com/CrestNiraj12/terminalwall/domain"
	"github.com/CrestNiraj12/terminalwall/infra/imageio"
	"github.com/CrestNiraj12/terminalwall/tui/common"
	"github.com/CrestNiraj12/terminalwall/tui/media"
)

// StorageKey is the local storage key holding the profile image.
const StorageKey = "profileImg"

// QuotaWarning is shown when the chosen photo cannot be persisted.
const QuotaWarning = "Profile image is too large to save locally. Please use a smaller image."

// --- Messages ---

// LoadedMsg carries the persisted profile image, if any.
type LoadedMsg struct {
	Image string
	Err   error
}

// ChangedMsg is sent whenever the displayed profile image changes.
type ChangedMsg struct {
	Image string
}

// SavedMsg reports the outcome of persisting a new image.
type SavedMsg struct {
	Err error
}

type photoIngestedMsg struct {
	Batch imageio.Batch
	Err   error
}

// --- Model ---

// Model owns the profile photo and its local persistence.
type Model struct {
	store    app.KeyValueStore
	ingestor *imageio.Ingestor
	user     domain.User
	image    string
	warning  string
	status   string
	picking  bool
	picker   filepicker.Model
	height   int
	keys     common.KeyMap
	thumbs   *media.Cache
}

// New creates a profile showing the default image until Init loads the
// stored one.
func New(store app.KeyValueStore, ingestor *imageio.Ingestor, user domain.User, thumbs *media.Cache) Model {
	if thumbs == nil {
		thumbs = media.NewCache()
	}
	return Model{
		store:    store,
		ingestor: ingestor,
		user:     user,
		image:    DefaultImage(),
		picker:   common.NewImagePicker(common.DefaultPickerHeight),
		height:   common.DefaultPickerHeight,
		keys:     common.DefaultKeyMap(),
		thumbs:   thumbs,
	}
}

// Init reads the stored image.
func (m Model) Init() tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		img, err := store.Get(context.Background(), StorageKey)
		return LoadedMsg{Image: img, Err: err}
	}
}

// Image returns the displayed profile image as a data URI.
func (m Model) Image() string { return m.image }

// Warning returns the pending blocking notification, if any.
func (m Model) Warning() string { return m.warning }

// Blocking reports whether a notification must be dismissed before
// anything else can happen.
func (m Model) Blocking() bool { return m.warning != "" }

// SetPickerHeight sets how many files the photo picker lists at once.
func (m Model) SetPickerHeight(h int) Model {
	m.height = h
	m.picker.SetHeight(h)
	return m
}

// Picking reports whether the photo picker is open.
func (m Model) Picking() bool { return m.picking }

// OpenPicker starts choosing a new profile photo.
func (m Model) OpenPicker() (Model, tea.Cmd) {
	m.picking = true
	m.status = ""
	m.picker = common.NewImagePicker(m.height)
	return m, m.picker.Init()
}

// Update handles messages for the profile.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Err != nil {
			if !errors.Is(msg.Err, domain.ErrNotFound) {
				log.Printf("profile: reading stored image: %v", msg.Err)
			}
			return m, nil
		}
		if msg.Image == "" {
			return m, nil
		}
		m.image = msg.Image
		return m, changed(m.image)

	case photoIngestedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		if len(msg.Batch.Images) == 0 {
			if len(msg.Batch.Skipped) > 0 {
				m.status = "Not an image: " + msg.Batch.Skipped[0].Path
			}
			return m, nil
		}
		return m.SetImage(msg.Batch.Images[0])

	case SavedMsg:
		if msg.Err != nil {
			log.Printf("profile: saving image: %v", msg.Err)
			m.warning = QuotaWarning
		}
		return m, nil

	case tea.KeyMsg:
		if m.warning != "" {
			if key.Matches(msg, m.keys.Enter) || key.Matches(msg, m.keys.Back) {
				m.warning = ""
			}
			return m, nil
		}
		if m.picking {
			return m.updatePicker(msg)
		}
		return m, nil
	}

	if m.picking {
		return m.updatePicker(msg)
	}
	return m, nil
}

// SetImage displays img and persists it. A failed save keeps the new image
// on screen for this session and raises the quota warning.
func (m Model) SetImage(img string) (Model, tea.Cmd) {
	m.image = img
	m.status = ""
	store := m.store
	save := func() tea.Msg {
		if store == nil {
			return SavedMsg{}
		}
		return SavedMsg{Err: store.Set(context.Background(), StorageKey, img)}
	}
	return m, tea.Batch(changed(img), save)
}

func (m Model) updatePicker(msg tea.Msg) (Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.keys.Back) {
		m.picking = false
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		in := m.ingestor
		if in == nil {
			return m, nil
		}
		return m, func() tea.Msg {
			batch, err := in.Ingest(context.Background(), []string{path})
			return photoIngestedMsg{Batch: batch, Err: err}
		}
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.status = "Not an image: " + path
	}
	return m, cmd
}

func changed(img string) tea.Cmd {
	return func() tea.Msg { return ChangedMsg{Image: img} }
}
