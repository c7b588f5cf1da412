package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackarck/werename/internal/watch"
	"github.com/blackarck/werename/pkg/rename"
)

type fakeRenamer struct {
	calls [][2]string
}

func (f *fakeRenamer) Rename(oldPath, newPath string) error {
	f.calls = append(f.calls, [2]string{oldPath, newPath})
	return nil
}

func newTestModel(t *testing.T, names ...string) (*Model, *rename.Session, *fakeRenamer) {
	t.Helper()
	items := make([]rename.Listing, len(names))
	for i, n := range names {
		items[i] = rename.Listing{Name: n}
	}
	p := rename.Build("", items)
	r := &fakeRenamer{}
	p.Renamer = r
	s := rename.NewSession(p, nil)
	m := New(s, Options{Copy: func(string) error { return nil }})
	return m, s, r
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func typeText(m *Model, text string) {
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

var (
	escKey = tea.KeyMsg{Type: tea.KeyEsc}
	tabKey = tea.KeyMsg{Type: tea.KeyTab}
)

func TestModelCloseWithoutChanges(t *testing.T) {
	m, s, r := newTestModel(t, "a.txt", "b.txt")

	cmd := press(m, escKey)
	assert.True(t, isQuit(cmd))
	assert.False(t, m.confirm.Active())
	assert.Equal(t, rename.Cancelled, s.State())
	assert.Empty(t, r.calls)
}

func TestModelNamesWithTabs(t *testing.T) {
	t.Run("untouched name is not renamed", func(t *testing.T) {
		m, s, r := newTestModel(t, "a\tb.txt", "c.txt")

		cmd := press(m, escKey)
		assert.True(t, isQuit(cmd))
		assert.False(t, m.confirm.Active())
		assert.Equal(t, rename.Cancelled, s.State())
		assert.Empty(t, r.calls)
	})

	t.Run("only the edited line is renamed", func(t *testing.T) {
		m, s, r := newTestModel(t, "a\tb.txt", "c.txt")
		press(m, tea.KeyMsg{Type: tea.KeyDown})
		typeText(m, "x")
		assert.False(t, s.Plan.Entries[0].Changed())

		press(m, escKey)
		require.True(t, m.confirm.Active())
		cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
		assert.True(t, isQuit(cmd))
		assert.Equal(t, [][2]string{{"c.txt", "xc.txt"}}, r.calls)
	})

	t.Run("copy keeps the real name", func(t *testing.T) {
		m, _, _ := newTestModel(t, "a\tb.txt")
		var copied string
		m.opts.Copy = func(text string) error {
			copied = text
			return nil
		}
		press(m, tea.KeyMsg{Type: tea.KeyCtrlY})
		assert.Equal(t, "a\tb.txt", copied)
	})
}

func TestModelTooManyEntries(t *testing.T) {
	names := make([]string, maxEditorLines+1)
	for i := range names {
		names[i] = fmt.Sprintf("f%05d.txt", i)
	}
	m, s, r := newTestModel(t, names...)
	assert.Contains(t, m.statusLine(), "only the first 10000 of 10001 names are editable")

	cmd := press(m, escKey)
	assert.True(t, isQuit(cmd), "the missing tail is not an edit")
	assert.Equal(t, rename.Cancelled, s.State())
	assert.Empty(t, r.calls)

	small, _, _ := newTestModel(t, "a.txt")
	assert.NotContains(t, small.statusLine(), "editable")
}

func TestModelEditingSyncsPlan(t *testing.T) {
	m, s, _ := newTestModel(t, "a.txt", "b.txt")

	typeText(m, "x")
	assert.Equal(t, "xa.txt", s.Plan.Entries[0].NewName())
	assert.True(t, s.Plan.Entries[0].Changed())
	assert.Equal(t, rename.Editing, s.State())
	assert.Contains(t, m.statusLine(), "1 changed")
}

func TestModelConfirm(t *testing.T) {
	tests := []struct {
		name      string
		answer    tea.KeyMsg
		wantQuit  bool
		wantState rename.State
		wantCalls int
	}{
		{
			name:      "yes renames",
			answer:    tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")},
			wantQuit:  true,
			wantState: rename.Committed,
			wantCalls: 1,
		},
		{
			name:      "no drops the edits",
			answer:    tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")},
			wantQuit:  true,
			wantState: rename.Cancelled,
		},
		{
			name:      "cancel returns to editing",
			answer:    tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")},
			wantState: rename.Editing,
		},
		{
			name:      "escape cancels",
			answer:    escKey,
			wantState: rename.Editing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, s, r := newTestModel(t, "a.txt", "b.txt")
			typeText(m, "x")

			cmd := press(m, escKey)
			assert.Nil(t, cmd)
			require.True(t, m.confirm.Active())
			assert.Contains(t, m.View(), "Rename 1 of 2 entries?")

			cmd = press(m, tt.answer)
			assert.Equal(t, tt.wantQuit, isQuit(cmd))
			assert.Equal(t, tt.wantState, s.State())
			assert.Len(t, r.calls, tt.wantCalls)
			assert.False(t, m.confirm.Active())
			assert.NoError(t, m.Err())
		})
	}
}

func TestModelConfirmIgnoresOtherKeys(t *testing.T) {
	m, s, _ := newTestModel(t, "a.txt")
	typeText(m, "x")
	press(m, escKey)

	cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)
	assert.True(t, m.confirm.Active())
	assert.Equal(t, "xa.txt", m.editor.Value(), "keys go to the dialog, not the editor")
	assert.Equal(t, rename.Editing, s.State())
}

func TestModelCancelThenYes(t *testing.T) {
	m, s, r := newTestModel(t, "a.txt", "b.txt")
	typeText(m, "x")
	press(m, escKey)
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})

	// keep editing after cancelling
	typeText(m, "y")
	assert.Equal(t, "xya.txt", s.Plan.Entries[0].NewName())

	press(m, escKey)
	cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	assert.True(t, isQuit(cmd))
	assert.Equal(t, [][2]string{{"a.txt", "xya.txt"}}, r.calls)
	require.NotNil(t, s.Report())
	assert.Equal(t, 1, s.Report().Renamed())
}

func TestModelToggleMode(t *testing.T) {
	m, s, _ := newTestModel(t, "a.txt")

	press(m, tabKey)
	assert.Equal(t, modeReview, m.mode)
	assert.Contains(t, m.View(), "Review")

	typeText(m, "x")
	assert.Equal(t, "a.txt", m.editor.Value(), "review mode is read-only")
	assert.False(t, s.Plan.HasPendingChanges())

	press(m, tabKey)
	assert.Equal(t, modeEdit, m.mode)
	typeText(m, "x")
	assert.Equal(t, "xa.txt", m.editor.Value())
}

func TestModelCopy(t *testing.T) {
	m, _, _ := newTestModel(t, "a.txt", "b.txt")
	var copied string
	m.opts.Copy = func(text string) error {
		copied = text
		return nil
	}

	press(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "a.txt\nb.txt", copied)
	assert.Equal(t, "new names copied to clipboard", m.status)

	m.opts.Copy = func(string) error { return errors.New("no clipboard") }
	press(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "copy failed: no clipboard", m.status)
}

func TestModelDirectoryChange(t *testing.T) {
	m, _, _ := newTestModel(t, "a.txt")
	typeText(m, "x")

	_, cmd := m.Update(dirChangedMsg{change: watch.Change{Name: "new.txt", Op: "created"}})
	assert.Nil(t, cmd)
	assert.Contains(t, m.stale, "created new.txt")
	assert.Contains(t, m.statusLine(), "directory changed on disk")

	press(m, escKey)
	require.True(t, m.confirm.Active())
	assert.Contains(t, m.confirm.config.Details, m.stale)
}

func TestModelIssuesInDialog(t *testing.T) {
	m, _, _ := newTestModel(t, "a.txt", "b.txt")
	m.opts.Check = true
	m.editor.SetValue("c.txt\nc.txt")
	require.NoError(t, m.session.Edit(m.editor.Value()))
	m.refresh()
	require.NotEmpty(t, m.issues)

	press(m, escKey)
	require.True(t, m.confirm.Active())
	assert.Contains(t, m.confirm.config.Warning, "possible problem")
}

func TestModelWindowSize(t *testing.T) {
	m, _, _ := newTestModel(t, "a-very-long-file-name-that-will-not-fit.txt")
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})

	assert.Equal(t, 14, m.oldPane.Width)
	assert.Equal(t, 12, m.oldPane.Height)
	assert.Equal(t, m.oldPane.Width, m.reviewPane.Width)
	assert.Contains(t, m.renderOld(), "…")
}

func TestHighlight(t *testing.T) {
	upper := lipgloss.NewStyle().Transform(strings.ToUpper)

	tests := []struct {
		name  string
		text  string
		spans []rename.Span
		want  string
	}{
		{name: "no spans", text: "a\nb", want: "a\nb"},
		{name: "single line", text: "ab\ncd", spans: []rename.Span{{Start: 3, End: 5}}, want: "ab\nCD"},
		{name: "several", text: "ab\ncd\nef", spans: []rename.Span{{Start: 0, End: 2}, {Start: 6, End: 8}}, want: "AB\ncd\nEF"},
		{name: "runes", text: "ä\nöx", spans: []rename.Span{{Start: 2, End: 4}}, want: "ä\nÖX"},
		{name: "out of range is clamped", text: "ab", spans: []rename.Span{{Start: 1, End: 9}}, want: "aB"},
		{name: "empty span", text: "ab", spans: []rename.Span{{Start: 1, End: 1}}, want: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Highlight(tt.text, tt.spans, upper))
		})
	}
}
