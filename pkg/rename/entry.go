package rename

import (
	"fmt"
	"path/filepath"
	"strings"
)

// HiddenPrefix marks a hidden file on the platforms we care about.
const HiddenPrefix = "."

// Kind classifies an entry at load time.
type Kind int

const (
	File Kind = iota
	Directory
	Hidden
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "Directory"
	case Hidden:
		return "Hidden"
	default:
		return "File"
	}
}

// MarshalText lets reports render the kind by name in json and yaml.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(k.String())), nil
}

// Entry is one file's old and new name. The old name is fixed at
// construction; only the new name changes, through Refresh.
type Entry struct {
	oldBase string
	oldExt  string
	newBase string
	newExt  string
	kind    Kind
}

// NewEntry splits name into base and extension and classifies it.
// A directory is always Directory, even when its name is hidden.
func NewEntry(name string, isDir bool) *Entry {
	base, ext := SplitExt(name)
	kind := File
	switch {
	case isDir:
		kind = Directory
	case strings.HasPrefix(name, HiddenPrefix):
		kind = Hidden
	}
	return &Entry{
		oldBase: base,
		oldExt:  ext,
		newBase: base,
		newExt:  ext,
		kind:    kind,
	}
}

// SplitExt splits name at its last extension separator. Leading dots
// belong to the base, so ".bashrc" has no extension. base+ext == name.
func SplitExt(name string) (base, ext string) {
	trimmed := strings.TrimLeft(name, ".")
	lead := len(name) - len(trimmed)
	i := strings.LastIndex(trimmed, ".")
	if i < 0 {
		return name, ""
	}
	i += lead
	return name[:i], name[i:]
}

// Refresh replaces the proposed new name. No validation happens here;
// bad names fail when the plan executes.
func (e *Entry) Refresh(newName string) {
	e.newBase, e.newExt = SplitExt(newName)
}

func (e *Entry) Kind() Kind      { return e.kind }
func (e *Entry) OldBase() string { return e.oldBase }
func (e *Entry) OldExt() string  { return e.oldExt }
func (e *Entry) NewBase() string { return e.newBase }
func (e *Entry) NewExt() string  { return e.newExt }

func (e *Entry) OldName() string { return e.oldBase + e.oldExt }
func (e *Entry) NewName() string { return e.newBase + e.newExt }

// Changed reports whether the new name differs from the old one (exact,
// case-sensitive).
func (e *Entry) Changed() bool {
	return e.OldName() != e.NewName()
}

func (e *Entry) String() string {
	return fmt.Sprintf(`%s: "%s" => "%s"`, e.kind, e.OldName(), e.NewName())
}

// Execute renames the entry inside dir. Unchanged entries never reach
// the renamer.
func (e *Entry) Execute(dir string, r Renamer) Result {
	res := Result{Entry: e, Outcome: Unchanged}
	if !e.Changed() {
		return res
	}
	oldPath := filepath.Join(dir, e.OldName())
	newPath := filepath.Join(dir, e.NewName())
	if err := r.Rename(oldPath, newPath); err != nil {
		res.Outcome = Failed
		res.Err = &RenameError{Old: oldPath, New: newPath, Err: err}
		return res
	}
	res.Outcome = Renamed
	return res
}
