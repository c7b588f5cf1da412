// Package gui is the desktop host: a Fyne window with the original names
// on the left and the editable new names on the right.
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/blackarck/werename/internal/watch"
	"github.com/blackarck/werename/pkg/rename"
)

// AppID identifies the application to Fyne's preferences store.
const AppID = "com.blackarck.werename"

// Options configures the desktop host.
type Options struct {
	Dir   string
	Check bool // show advisory issues from rename.Plan.Check
}

/* -------------------- Names Entry -------------------- */

// namesEntry is a multi-line entry that hands Escape to the window
// instead of swallowing it.
type namesEntry struct {
	widget.Entry
	onEscape func()
}

func newNamesEntry() *namesEntry {
	e := &namesEntry{}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapOff
	e.TextStyle = fyne.TextStyle{Monospace: true}
	e.ExtendBaseWidget(e)
	return e
}

func (e *namesEntry) TypedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyEscape && e.onEscape != nil {
		e.onEscape()
		return
	}
	e.Entry.TypedKey(ev)
}

/* -------------------- Window -------------------- */

// Window is one editing session shown in a Fyne window.
type Window struct {
	app     fyne.App
	win     fyne.Window
	session *rename.Session
	opts    Options

	oldNames *widget.Entry
	newNames *namesEntry
	preview  *widget.RichText
	status   *widget.Label
	problems *widget.Label
	staleMsg *widget.Label

	confirm dialog.Dialog
	issues  []rename.Issue
	stale   string
	err     error
}

// NewWindow builds the window for s without showing it.
func NewWindow(a fyne.App, s *rename.Session, opts Options) *Window {
	title := "werename"
	if opts.Dir != "" {
		title += ": " + opts.Dir
	}
	g := &Window{
		app:     a,
		win:     a.NewWindow(title),
		session: s,
		opts:    opts,
	}
	g.win.Resize(fyne.NewSize(1040, 680))
	g.win.SetMaster()

	/* ---- Left: original names ---- */

	g.oldNames = widget.NewMultiLineEntry()
	g.oldNames.TextStyle = fyne.TextStyle{Monospace: true}
	g.oldNames.Wrapping = fyne.TextWrapOff
	g.oldNames.SetText(s.Plan.OldText())
	g.oldNames.Disable()

	left := container.NewBorder(
		widget.NewLabelWithStyle("Original", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		g.oldNames,
	)

	/* ---- Right: new names and preview ---- */

	g.newNames = newNamesEntry()
	g.newNames.SetText(s.Plan.NewText())
	g.newNames.OnChanged = g.edited
	g.newNames.onEscape = g.requestClose

	g.preview = widget.NewRichText()
	g.preview.Wrapping = fyne.TextWrapOff

	editor := container.NewBorder(
		widget.NewLabelWithStyle("New names", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		g.newNames,
	)
	review := container.NewBorder(
		widget.NewLabelWithStyle("Changes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewScroll(g.preview),
	)
	right := container.NewVSplit(editor, review)
	right.Offset = 0.6

	/* ---- Bottom: status and actions ---- */

	g.status = widget.NewLabel("")
	g.problems = widget.NewLabel("")
	g.problems.Wrapping = fyne.TextWrapWord
	g.staleMsg = widget.NewLabel("")
	g.staleMsg.Hide()

	copyBtn := widget.NewButton("Copy new names", func() {
		g.app.Clipboard().SetContent(g.newNames.Text)
		g.status.SetText("new names copied to clipboard")
	})
	closeBtn := widget.NewButton("Close", g.requestClose)
	closeBtn.Importance = widget.HighImportance

	bottom := container.NewVBox(
		widget.NewSeparator(),
		g.problems,
		g.staleMsg,
		container.NewBorder(nil, nil, nil, container.NewHBox(copyBtn, closeBtn), g.status),
	)

	/* ---- Layout ---- */

	split := container.NewHSplit(left, right)
	split.Offset = 0.38

	g.win.SetContent(container.NewBorder(nil, bottom, nil, nil, split))
	g.win.SetCloseIntercept(g.requestClose)
	g.win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			g.requestClose()
		}
	})
	g.win.Canvas().Focus(g.newNames)

	g.refresh()
	return g
}

// edited feeds every change of the new-names entry into the session.
func (g *Window) edited(text string) {
	if err := g.session.Edit(text); err != nil {
		g.err = err
		return
	}
	g.refresh()
}

func (g *Window) refresh() {
	if g.opts.Check {
		g.issues = g.session.Plan.Check(nil)
	}
	r := g.session.Plan.Render()
	g.preview.Segments = previewSegments(r.New, r.Spans)
	g.preview.Refresh()
	g.status.SetText(statusText(g.session.Plan, g.issues))
	g.problems.SetText(issuesText(g.issues))
}

// requestClose closes at once when nothing changed, otherwise asks.
func (g *Window) requestClose() {
	if g.confirm != nil {
		return
	}
	if !g.session.NeedsConfirm(g.newNames.Text) {
		if err := g.session.Discard(); err != nil {
			g.err = err
		}
		g.win.Close()
		return
	}

	msg := widget.NewLabel(confirmMessage(g.session.Plan, g.issues, g.stale))
	d := dialog.NewCustomWithoutButtons("Confirm Renaming", container.NewVScroll(msg), g.win)

	yes := widget.NewButton("Yes", func() { g.resolve(rename.Yes) })
	yes.Importance = widget.DangerImportance
	no := widget.NewButton("No", func() { g.resolve(rename.No) })
	cancel := widget.NewButton("Cancel", func() { g.resolve(rename.Cancel) })
	d.SetButtons([]fyne.CanvasObject{yes, no, cancel})
	d.Resize(fyne.NewSize(560, 360))

	g.confirm = d
	d.Show()
}

func (g *Window) resolve(d rename.Decision) {
	if g.confirm != nil {
		g.confirm.Hide()
		g.confirm = nil
	}
	if _, err := g.session.Resolve(d, g.newNames.Text); err != nil {
		g.err = err
		g.win.Close()
		return
	}
	if g.session.Done() {
		g.win.Close()
		return
	}
	g.status.SetText("back to editing")
	g.win.Canvas().Focus(g.newNames)
}

// setStale records that the directory changed after it was listed.
func (g *Window) setStale(c watch.Change) {
	g.stale = fmt.Sprintf("directory changed on disk since listing (%s)", c)
	g.staleMsg.SetText("⚠ " + g.stale)
	g.staleMsg.Show()
}

// Err is the last session error, if any.
func (g *Window) Err() error { return g.err }

// Run shows the window until the session is committed or discarded.
func Run(s *rename.Session, opts Options) error {
	a := app.NewWithID(AppID)
	g := NewWindow(a, s, opts)

	if w, err := watch.New(opts.Dir, rename.IsTempName); err == nil {
		defer w.Close()
		go func() {
			for c := range w.Changes() {
				fyne.Do(func() { g.setStale(c) })
			}
		}()
	}

	g.win.ShowAndRun()
	if g.err != nil {
		return g.err
	}
	if !s.Done() {
		return s.Discard()
	}
	return nil
}
