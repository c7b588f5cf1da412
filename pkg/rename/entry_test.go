package rename

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRenamer records every call and fails the ones listed in fail,
// keyed by new path.
type recordingRenamer struct {
	calls [][2]string
	fail  map[string]error
}

func (r *recordingRenamer) Rename(oldPath, newPath string) error {
	r.calls = append(r.calls, [2]string{oldPath, newPath})
	if err, ok := r.fail[newPath]; ok {
		return err
	}
	return nil
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		base string
		ext  string
	}{
		{name: "simple", in: "a.txt", base: "a", ext: ".txt"},
		{name: "last separator wins", in: "archive.tar.gz", base: "archive.tar", ext: ".gz"},
		{name: "no extension", in: "notes", base: "notes", ext: ""},
		{name: "hidden without extension", in: ".bashrc", base: ".bashrc", ext: ""},
		{name: "hidden with extension", in: ".config.yaml", base: ".config", ext: ".yaml"},
		{name: "trailing dot", in: "a.", base: "a", ext: "."},
		{name: "only dots", in: "...", base: "...", ext: ""},
		{name: "empty", in: "", base: "", ext: ""},
		{name: "spaces kept", in: "my file .md", base: "my file ", ext: ".md"},
		{name: "unicode", in: "résumé.pdf", base: "résumé", ext: ".pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, ext := SplitExt(tt.in)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.ext, ext)
			assert.Equal(t, tt.in, base+ext, "base+ext must reproduce the name")
		})
	}
}

func TestNewEntryKind(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		isDir bool
		want  Kind
	}{
		{name: "plain file", file: "a.txt", want: File},
		{name: "hidden file", file: ".env", want: Hidden},
		{name: "directory", file: "src", isDir: true, want: Directory},
		{name: "hidden directory is a directory", file: ".git", isDir: true, want: Directory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEntry(tt.file, tt.isDir)
			assert.Equal(t, tt.want, e.Kind())
			assert.False(t, e.Changed())
			assert.Equal(t, tt.file, e.OldName())
			assert.Equal(t, tt.file, e.NewName())
		})
	}
}

func TestEntryRefresh(t *testing.T) {
	e := NewEntry("a.txt", false)

	e.Refresh("b.md")
	assert.Equal(t, "b.md", e.NewName())
	assert.Equal(t, "b", e.NewBase())
	assert.Equal(t, ".md", e.NewExt())
	assert.Equal(t, "a.txt", e.OldName())
	assert.True(t, e.Changed())

	e.Refresh("A.txt")
	assert.True(t, e.Changed(), "comparison is case-sensitive")

	e.Refresh("a.txt")
	assert.False(t, e.Changed())

	e.Refresh("")
	assert.Equal(t, "", e.NewName())
	assert.True(t, e.Changed())
}

func TestEntryKindFixedAfterRefresh(t *testing.T) {
	e := NewEntry("visible.txt", false)
	e.Refresh(".hidden.txt")
	assert.Equal(t, File, e.Kind())
}

func TestEntryString(t *testing.T) {
	e := NewEntry("a.txt", false)
	e.Refresh("aa.txt")
	assert.Equal(t, `File: "a.txt" => "aa.txt"`, e.String())

	d := NewEntry(".git", true)
	assert.Equal(t, `Directory: ".git" => ".git"`, d.String())

	odd := NewEntry("a\"b.txt", false)
	odd.Refresh("tab\there.txt")
	assert.Equal(t, "File: \"a\"b.txt\" => \"tab\there.txt\"", odd.String(), "names are written as they are")
}

func TestEntryExecute(t *testing.T) {
	t.Run("unchanged makes no call", func(t *testing.T) {
		r := &recordingRenamer{}
		res := NewEntry("a.txt", false).Execute("dir", r)
		assert.Equal(t, Unchanged, res.Outcome)
		assert.NoError(t, res.Err)
		assert.Empty(t, r.calls)
	})

	t.Run("changed renames inside dir", func(t *testing.T) {
		r := &recordingRenamer{}
		e := NewEntry("a.txt", false)
		e.Refresh("b.txt")
		res := e.Execute("dir", r)
		assert.Equal(t, Renamed, res.Outcome)
		require.Len(t, r.calls, 1)
		assert.Equal(t, [2]string{filepath.Join("dir", "a.txt"), filepath.Join("dir", "b.txt")}, r.calls[0])
	})

	t.Run("failure is surfaced", func(t *testing.T) {
		target := filepath.Join("dir", "b.txt")
		r := &recordingRenamer{fail: map[string]error{target: fs.ErrPermission}}
		e := NewEntry("a.txt", false)
		e.Refresh("b.txt")
		res := e.Execute("dir", r)
		assert.Equal(t, Failed, res.Outcome)
		require.Error(t, res.Err)
		assert.True(t, errors.Is(res.Err, fs.ErrPermission))

		var rerr *RenameError
		require.True(t, errors.As(res.Err, &rerr))
		assert.Equal(t, target, rerr.New)
	})
}
