package compose

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalwall/domain"
	"github.com/CrestNiraj12/terminalwall/infra/editor"
	"github.com/CrestNiraj12/terminalwall/infra/imageio"
	"github.com/CrestNiraj12/terminalwall/tui/common"
	"github.com/CrestNiraj12/terminalwall/tui/media"
)

// --- Messages ---

// SubmitMsg asks the root model to create a post from the draft.
type SubmitMsg struct {
	Body   string
	Images []string
}

// ResultMsg reports the outcome of a SubmitMsg back to the composer.
type ResultMsg struct {
	Post domain.Post
	Err  error
}

// LeaveMsg is sent when the user leaves the composer with esc.
type LeaveMsg struct{}

// IngestedMsg carries a batch of files converted to data URIs.
type IngestedMsg struct {
	Batch imageio.Batch
	Err   error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// --- Model ---

// Model holds the post draft: text, pending images and submission state.
type Model struct {
	textarea     textarea.Model
	pending      []string
	submitting   bool
	ingesting    int
	attachFocus  bool
	attachCursor int
	picking      bool
	picker       filepicker.Model
	pickerHeight int
	ingestor     *imageio.Ingestor
	editor       *editor.EnvEditor
	keys         common.KeyMap
	thumbs       *media.Cache
	status       string
	width        int
}

// New creates an empty, unfocused composer.
func New(ingestor *imageio.Ingestor, ed *editor.EnvEditor, thumbs *media.Cache) Model {
	ta := textarea.New()
	ta.Placeholder = "Write something..."
	ta.CharLimit = domain.MaxBodyRunes
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(3)
	ta.Blur()

	if thumbs == nil {
		thumbs = media.NewCache()
	}
	return Model{
		textarea:     ta,
		picker:       common.NewImagePicker(common.DefaultPickerHeight),
		pickerHeight: common.DefaultPickerHeight,
		ingestor:     ingestor,
		editor:       ed,
		keys:         common.DefaultKeyMap(),
		thumbs:       thumbs,
		width:        64,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Focus gives keyboard focus to the text area.
func (m Model) Focus() (Model, tea.Cmd) {
	m.attachFocus = false
	m.status = ""
	return m, m.textarea.Focus()
}

// Blur removes keyboard focus.
func (m Model) Blur() Model {
	m.textarea.Blur()
	m.attachFocus = false
	return m
}

// SetWidth resizes the composer to w columns including its frame.
func (m Model) SetWidth(w int) Model {
	if w < 24 {
		w = 24
	}
	m.width = w
	m.textarea.SetWidth(w - 4)
	return m
}

// SetPickerHeight sets how many files the attach picker lists at once.
func (m Model) SetPickerHeight(h int) Model {
	m.pickerHeight = h
	m.picker.SetHeight(h)
	return m
}

// Text returns the current draft body.
func (m Model) Text() string { return m.textarea.Value() }

// PendingImages returns the attachments in insertion order.
func (m Model) PendingImages() []string { return append([]string(nil), m.pending...) }

// Submitting reports whether a create request is in flight.
func (m Model) Submitting() bool { return m.submitting }

// Picking reports whether the file picker overlay is open.
func (m Model) Picking() bool { return m.picking }

// Focused reports whether the text area has focus.
func (m Model) Focused() bool { return m.textarea.Focused() || m.attachFocus }

// CanShare reports whether Share would submit.
func (m Model) CanShare() bool {
	return !m.submitting && domain.HasContent(m.textarea.Value(), m.pending)
}

// Update handles messages for the composer.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultMsg:
		m.submitting = false
		m.textarea.Placeholder = "Write something..."
		if msg.Err != nil {
			return m, nil
		}
		m.textarea.Reset()
		m.pending = nil
		m.attachFocus = false
		m.attachCursor = 0
		m.status = ""
		return m, nil

	case IngestedMsg:
		if m.ingesting > 0 {
			m.ingesting--
		}
		if msg.Err != nil {
			m.status = "Could not attach: " + msg.Err.Error()
			return m, nil
		}
		m.pending = append(m.pending, msg.Batch.Images...)
		switch n := len(msg.Batch.Skipped); {
		case n == 1:
			m.status = fmt.Sprintf("Skipped %s: %v", msg.Batch.Skipped[0].Path, msg.Batch.Skipped[0].Err)
		case n > 1:
			m.status = fmt.Sprintf("Skipped %d files.", n)
		default:
			m.status = ""
		}
		return m, nil

	case editorFinishedMsg:
		if msg.err != nil {
			m.status = "Editor: " + msg.err.Error()
			return m, nil
		}
		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.textarea.SetValue(domain.ClampBody(content))
		return m, m.textarea.Focus()

	case tea.KeyMsg:
		if m.picking {
			return m.updatePicker(msg)
		}
		return m.handleKey(msg)
	}

	if m.picking {
		return m.updatePicker(msg)
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Paste {
		if paths := imageio.ParseDroppedPaths(string(msg.Runes)); len(paths) > 0 {
			return m.ingest(paths)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Share):
		return m.Submit()

	case key.Matches(msg, m.keys.Back):
		if m.attachFocus {
			m.attachFocus = false
			return m, m.textarea.Focus()
		}
		m = m.Blur()
		return m, func() tea.Msg { return LeaveMsg{} }

	case key.Matches(msg, m.keys.Attach):
		if m.submitting {
			return m, nil
		}
		m.picking = true
		m.status = ""
		m.picker = common.NewImagePicker(m.pickerHeight)
		return m, m.picker.Init()

	case key.Matches(msg, m.keys.Editor):
		if m.submitting || m.editor == nil {
			return m, nil
		}
		return m, m.launchEditor()

	case key.Matches(msg, m.keys.Attachments):
		if len(m.pending) == 0 {
			return m, nil
		}
		m.attachFocus = !m.attachFocus
		if m.attachFocus {
			m.textarea.Blur()
			if m.attachCursor >= len(m.pending) {
				m.attachCursor = len(m.pending) - 1
			}
			return m, nil
		}
		return m, m.textarea.Focus()
	}

	if m.attachFocus {
		switch {
		case key.Matches(msg, m.keys.Left):
			if m.attachCursor > 0 {
				m.attachCursor--
			}
		case key.Matches(msg, m.keys.Right):
			if m.attachCursor < len(m.pending)-1 {
				m.attachCursor++
			}
		case key.Matches(msg, m.keys.RemoveImage):
			m = m.RemoveImage(m.attachCursor)
			if len(m.pending) == 0 {
				m.attachFocus = false
				return m, m.textarea.Focus()
			}
		}
		return m, nil
	}

	// Input is frozen while the create request is in flight.
	if m.submitting {
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	if v := m.textarea.Value(); domain.BodyLength(v) > domain.MaxBodyRunes {
		m.textarea.SetValue(domain.ClampBody(v))
	}
	return m, cmd
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
		return m.ingest([]string{path})
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.status = "Not an image: " + path
	}
	return m, cmd
}

// Submit emits a SubmitMsg with the current draft. It is a no-op while a
// submission is in flight or when the draft has neither text nor images.
func (m Model) Submit() (Model, tea.Cmd) {
	if !m.CanShare() {
		return m, nil
	}
	body := m.textarea.Value()
	var images []string
	if len(m.pending) > 0 {
		images = append([]string(nil), m.pending...)
	}
	m.submitting = true
	m.textarea.Placeholder = "Sharing..."
	m.attachFocus = false
	return m, func() tea.Msg { return SubmitMsg{Body: body, Images: images} }
}

// RemoveImage drops the pending image at i, keeping the rest in order.
func (m Model) RemoveImage(i int) Model {
	if i < 0 || i >= len(m.pending) {
		return m
	}
	next := make([]string, 0, len(m.pending)-1)
	next = append(next, m.pending[:i]...)
	next = append(next, m.pending[i+1:]...)
	m.pending = next
	if m.attachCursor >= len(m.pending) && m.attachCursor > 0 {
		m.attachCursor = len(m.pending) - 1
	}
	return m
}

// AddFiles converts dropped or picked paths into pending images.
func (m Model) AddFiles(paths []string) (Model, tea.Cmd) {
	return m.ingest(paths)
}

func (m Model) ingest(paths []string) (Model, tea.Cmd) {
	if len(paths) == 0 || m.ingestor == nil {
		return m, nil
	}
	m.ingesting++
	m.status = fmt.Sprintf("Attaching %d file(s)...", len(paths))
	in := m.ingestor
	return m, func() tea.Msg {
		batch, err := in.Ingest(context.Background(), paths)
		return IngestedMsg{Batch: batch, Err: err}
	}
}

// launchEditor hands the draft to $EDITOR via tea.ExecProcess, which
// suspends the program until the editor exits.
func (m Model) launchEditor() tea.Cmd {
	cmd, tmpPath, err := m.editor.Cmd(m.textarea.Value())
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: fmt.Errorf("preparing editor: %w", err)}
		}
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}
