package rename

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Listing is one name from the initial directory snapshot.
type Listing struct {
	Name  string
	IsDir bool
}

// Plan is the ordered set of entries for one directory. Line i of both
// rendered buffers belongs to Entries[i]; nothing reorders them.
type Plan struct {
	Dir     string
	Entries []*Entry
	Renamer Renamer
}

// Span is a highlighted character range [Start, End) in the new-names
// text. Offsets count runes.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Rendering is the pair of buffers a host displays plus the spans of
// changed entries inside New.
type Rendering struct {
	Old   string
	New   string
	Spans []Span
}

// Build creates one entry per listing, keeping the given order.
func Build(dir string, items []Listing) *Plan {
	p := &Plan{
		Dir:     dir,
		Entries: make([]*Entry, 0, len(items)),
		Renamer: OSRenamer{},
	}
	for _, it := range items {
		p.Entries = append(p.Entries, NewEntry(it.Name, it.IsDir))
	}
	return p
}

// BuildNames is Build for bare names; directory flags come from the
// filesystem. Names that cannot be stat'ed are treated as files.
func BuildNames(dir string, names []string) *Plan {
	items := make([]Listing, 0, len(names))
	for _, name := range names {
		fi, err := os.Stat(filepath.Join(dir, name))
		items = append(items, Listing{Name: name, IsDir: err == nil && fi.IsDir()})
	}
	return Build(dir, items)
}

// OldText is the original names, one per line.
func (p *Plan) OldText() string {
	names := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		names[i] = e.OldName()
	}
	return strings.Join(names, "\n")
}

// NewText is the proposed names, one per line.
func (p *Plan) NewText() string {
	names := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		names[i] = e.NewName()
	}
	return strings.Join(names, "\n")
}

func (p *Plan) Render() Rendering {
	r := Rendering{Old: p.OldText(), New: p.NewText()}
	cursor := 0
	for _, e := range p.Entries {
		n := utf8.RuneCountInString(e.NewName())
		if e.Changed() {
			r.Spans = append(r.Spans, Span{Start: cursor, End: cursor + n})
		}
		cursor += n + 1
	}
	return r
}

// Sync pairs the lines of text with the entries by position. Extra lines
// are dropped and entries past the last line keep their new name.
func (p *Plan) Sync(text string) {
	lines := strings.Split(text, "\n")
	for i, e := range p.Entries {
		if i >= len(lines) {
			break
		}
		e.Refresh(lines[i])
	}
}

func (p *Plan) HasPendingChanges() bool {
	return p.OldText() != p.NewText()
}

// Changed returns the entries whose names differ, in order.
func (p *Plan) Changed() []*Entry {
	var out []*Entry
	for _, e := range p.Entries {
		if e.Changed() {
			out = append(out, e)
		}
	}
	return out
}

/* -------------------- Execute -------------------- */

type execConfig struct {
	staged   bool
	onResult func(Result)
}

// ExecOption tunes a single Execute call.
type ExecOption func(*execConfig)

// Staged renames through temporary names so swaps and cycles succeed and
// collisions are refused before anything moves.
func Staged() ExecOption {
	return func(c *execConfig) { c.staged = true }
}

// OnResult is called after each entry is handled, in entry order.
func OnResult(fn func(Result)) ExecOption {
	return func(c *execConfig) { c.onResult = fn }
}

// Execute syncs text one last time and renames every changed entry in
// insertion order. A failure is recorded and the batch carries on;
// nothing already renamed is rolled back.
func (p *Plan) Execute(text string, opts ...ExecOption) *Report {
	var cfg execConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	p.Sync(text)

	r := p.Renamer
	if r == nil {
		r = OSRenamer{}
	}
	if cfg.staged {
		return p.executeStaged(r, cfg.onResult)
	}

	report := &Report{Results: make([]Result, 0, len(p.Entries))}
	for _, e := range p.Entries {
		res := e.Execute(p.Dir, r)
		report.Results = append(report.Results, res)
		if cfg.onResult != nil {
			cfg.onResult(res)
		}
	}
	return report
}
