package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/runeutil"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/blackarck/werename/internal/watch"
	"github.com/blackarck/werename/pkg/rename"
)

type mode int

const (
	modeEdit mode = iota
	modeReview
)

// Options configures the terminal host.
type Options struct {
	Dir   string
	Check bool                   // show advisory issues from rename.Plan.Check
	Copy  func(text string) error // defaults to the system clipboard
}

// maxEditorLines is the textarea's line cap. Entries past it cannot be edited.
const maxEditorLines = 10000

// inputSanitizer matches what the textarea does to text put into it.
var inputSanitizer = runeutil.NewSanitizer()

// dirChangedMsg is sent by the directory watcher.
type dirChangedMsg struct {
	change watch.Change
}

// Model is the two-pane editor: original names on the left, the editable
// new names on the right.
type Model struct {
	session *rename.Session
	opts    Options

	oldPane    viewport.Model
	reviewPane viewport.Model
	editor     textarea.Model
	confirm    *ConfirmationModel
	help       help.Model
	keys       keyMap
	mode       mode

	width  int
	height int

	status  string
	stale   string
	issues  []rename.Issue
	watcher *watch.Watcher
	err     error
}

// New creates the model for s. The editor starts with the plan's current
// new names.
func New(s *rename.Session, opts Options) *Model {
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}

	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.Prompt = " "
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(60)
	ta.SetHeight(20)
	ta.SetValue(s.Plan.NewText())
	for ta.Line() > 0 {
		ta.CursorUp()
	}
	ta.CursorStart()
	ta.Focus()

	m := &Model{
		session:    s,
		opts:       opts,
		oldPane:    viewport.New(60, 20),
		reviewPane: viewport.New(60, 20),
		editor:     ta,
		confirm:    NewConfirmation(),
		help:       help.New(),
		keys:       defaultKeyMap(),
	}
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitForChange())
}

func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		c, ok := <-changes
		if !ok {
			return nil
		}
		return dirChangedMsg{change: c}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case dirChangedMsg:
		m.stale = fmt.Sprintf("directory changed on disk since listing (%s)", msg.change)
		return m, m.waitForChange()

	case tea.KeyMsg:
		if m.confirm.Active() {
			return m.handleConfirm(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Quit):
			return m, m.requestClose()
		case key.Matches(msg, m.keys.Toggle):
			m.toggleMode()
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			if err := m.opts.Copy(m.names()); err != nil {
				m.status = "copy failed: " + err.Error()
			} else {
				m.status = "new names copied to clipboard"
			}
			return m, nil
		}
	}

	if m.mode == modeReview {
		var cmd tea.Cmd
		m.reviewPane, cmd = m.reviewPane.Update(msg)
		m.oldPane.SetYOffset(m.reviewPane.YOffset)
		return m, cmd
	}
	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.Value() != before {
		if err := m.session.Edit(m.names()); err != nil {
			m.err = err
		}
		m.status = ""
		m.refresh()
	}
	m.followCursor()
	return m, cmd
}

// requestClose quits at once when nothing changed, otherwise asks.
func (m *Model) requestClose() tea.Cmd {
	if !m.session.NeedsConfirm(m.names()) {
		if err := m.session.Discard(); err != nil {
			m.err = err
		}
		return tea.Quit
	}

	changed := len(m.session.Plan.Changed())
	cfg := ConfirmationConfig{
		Title:   "Confirm Renaming",
		Message: fmt.Sprintf("Rename %d of %d entries?", changed, len(m.session.Plan.Entries)),
		Width:   m.dialogWidth(),
	}
	if len(m.issues) > 0 {
		cfg.Warning = fmt.Sprintf("%d possible problem(s):", len(m.issues))
		for i, is := range m.issues {
			if i == 5 {
				cfg.Details = append(cfg.Details, fmt.Sprintf("... and %d more", len(m.issues)-5))
				break
			}
			cfg.Details = append(cfg.Details, is.String())
		}
	}
	if m.stale != "" {
		cfg.Details = append(cfg.Details, m.stale)
	}
	m.confirm.Show(cfg)
	return nil
}

func (m *Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d, ok := m.confirm.Update(msg)
	if !ok {
		return m, nil
	}
	if _, err := m.session.Resolve(d, m.names()); err != nil {
		m.err = err
		return m, tea.Quit
	}
	if m.session.Done() {
		return m, tea.Quit
	}
	m.status = "back to editing"
	return m, nil
}

// names is the editor text with every line that only differs from its old
// name by the textarea's sanitizing (tabs, control runes) mapped back to the
// old name, so untouched entries stay unchanged.
func (m *Model) names() string {
	lines := strings.Split(m.editor.Value(), "\n")
	for i, e := range m.session.Plan.Entries {
		if i >= len(lines) {
			break
		}
		old := e.OldName()
		if lines[i] != old && lines[i] == string(inputSanitizer.Sanitize([]rune(old))) {
			lines[i] = old
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) toggleMode() {
	if m.mode == modeEdit {
		m.mode = modeReview
		m.editor.Blur()
		m.reviewPane.SetYOffset(m.oldPane.YOffset)
		return
	}
	m.mode = modeEdit
	m.editor.Focus()
}

// refresh recomputes everything derived from the plan.
func (m *Model) refresh() {
	if m.opts.Check {
		m.issues = m.session.Plan.Check(nil)
	}
	m.oldPane.SetContent(m.renderOld())
	r := m.session.Plan.Render()
	m.reviewPane.SetContent(Highlight(r.New, r.Spans, highlightStyle))
}

func (m *Model) renderOld() string {
	width := m.oldPane.Width
	lines := make([]string, len(m.session.Plan.Entries))
	for i, e := range m.session.Plan.Entries {
		name := truncate.StringWithTail(e.OldName(), uint(max(width, 1)), "…")
		if e.Changed() {
			name = changedOldStyle.Render(name)
		}
		lines[i] = name
	}
	return strings.Join(lines, "\n")
}

// followCursor keeps the old-names pane on the same line as the editor.
func (m *Model) followCursor() {
	row := m.editor.Line()
	switch {
	case row < m.oldPane.YOffset:
		m.oldPane.SetYOffset(row)
	case row >= m.oldPane.YOffset+m.oldPane.Height:
		m.oldPane.SetYOffset(row - m.oldPane.Height + 1)
	}
}

func (m *Model) layout() {
	paneWidth := max((m.width-4)/2-4, 10)
	paneHeight := max(m.height-8, 3)
	m.oldPane.Width = paneWidth
	m.oldPane.Height = paneHeight
	m.reviewPane.Width = paneWidth
	m.reviewPane.Height = paneHeight
	m.editor.SetWidth(paneWidth)
	m.editor.SetHeight(paneHeight)
	m.help.Width = m.width
	m.refresh()
}

func (m *Model) dialogWidth() int {
	if m.width == 0 {
		return 60
	}
	return min(max(m.width/2, 40), m.width-4)
}

func (m *Model) View() string {
	var b strings.Builder
	title := "werename"
	if m.opts.Dir != "" {
		title += ": " + m.opts.Dir
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if m.confirm.Active() {
		b.WriteString(m.confirm.View())
		return b.String()
	}

	left := paneStyle.Render(paneHeaderStyle.Render("Original") + "\n" + m.oldPane.View())
	var right string
	if m.mode == modeEdit {
		right = activePaneStyle.Render(paneHeaderStyle.Render("New names") + "\n" + m.editor.View())
	} else {
		right = paneStyle.Render(paneHeaderStyle.Render("Review") + "\n" + m.reviewPane.View())
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) statusLine() string {
	parts := []string{fmt.Sprintf("%d changed", len(m.session.Plan.Changed()))}
	if n := len(m.issues); n > 0 {
		parts = append(parts, warningStyle.Render(fmt.Sprintf("%d warning(s)", n)))
	}
	if n := len(m.session.Plan.Entries); n > maxEditorLines {
		parts = append(parts, warningStyle.Render(fmt.Sprintf("only the first %d of %d names are editable", maxEditorLines, n)))
	}
	if m.stale != "" {
		parts = append(parts, warningStyle.Render(m.stale))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return statusStyle.Render(strings.Join(parts, " · "))
}

// Err is the last session error, if any.
func (m *Model) Err() error { return m.err }

// Highlight styles the rune ranges in spans. Spans must be sorted and
// must not overlap, which rename.Plan.Render guarantees.
func Highlight(text string, spans []rename.Span, style lipgloss.Style) string {
	if len(spans) == 0 {
		return text
	}
	var b strings.Builder
	runes := []rune(text)
	cursor := 0
	for _, s := range spans {
		start, end := clamp(s.Start, cursor, len(runes)), clamp(s.End, cursor, len(runes))
		b.WriteString(string(runes[cursor:start]))
		if end > start {
			b.WriteString(style.Render(string(runes[start:end])))
		}
		cursor = end
	}
	b.WriteString(string(runes[cursor:]))
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
