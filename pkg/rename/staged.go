package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrDuplicateTarget marks an entry whose new name is already claimed by
// an earlier entry of the same plan.
var ErrDuplicateTarget = errors.New("duplicate target name")

// TempMarker is part of every temporary name strict mode creates.
const TempMarker = ".~werename~"

// IsTempName reports whether name is a strict-mode temporary name.
func IsTempName(name string) bool {
	return strings.Contains(name, TempMarker)
}

type stagedStep struct {
	index int
	old   string
	tmp   string
	new   string
}

// executeStaged is the strict mode: refuse collisions up front, move every
// remaining entry to a temporary name, then to its target.
func (p *Plan) executeStaged(r Renamer, onResult func(Result)) *Report {
	results := make([]Result, len(p.Entries))
	vacated := make(map[string]bool)
	kept := make(map[string]bool)
	for i, e := range p.Entries {
		results[i] = Result{Entry: e, Outcome: Unchanged}
		if e.Changed() {
			vacated[e.OldName()] = true
		} else {
			kept[e.OldName()] = true
		}
	}

	fail := func(i int, oldPath, newPath string, err error) {
		results[i].Outcome = Failed
		results[i].Err = &RenameError{Old: oldPath, New: newPath, Err: err}
	}

	claimed := make(map[string]int)
	var steps []stagedStep
	for i, e := range p.Entries {
		if !e.Changed() {
			continue
		}
		oldPath := filepath.Join(p.Dir, e.OldName())
		newPath := filepath.Join(p.Dir, e.NewName())
		if j, dup := claimed[e.NewName()]; dup {
			fail(i, oldPath, newPath, fmt.Errorf("%w (also %q)", ErrDuplicateTarget, p.Entries[j].OldName()))
			continue
		}
		claimed[e.NewName()] = i
		if kept[e.NewName()] || (!vacated[e.NewName()] && occupied(oldPath, newPath)) {
			fail(i, oldPath, newPath, fs.ErrExist)
			continue
		}
		steps = append(steps, stagedStep{index: i, old: oldPath, new: newPath})
	}

	// phase 1: move out of the way
	suffix := fmt.Sprintf("%s%d", TempMarker, time.Now().UnixNano())
	staged := steps[:0]
	for _, st := range steps {
		st.tmp = st.old + suffix
		for n := 0; pathExists(st.tmp); n++ {
			st.tmp = fmt.Sprintf("%s%s%d", st.old, suffix, n)
		}
		if err := r.Rename(st.old, st.tmp); err != nil {
			fail(st.index, st.old, st.new, err)
			continue
		}
		staged = append(staged, st)
	}

	// phase 2: move into place, restoring the old name on failure
	for _, st := range staged {
		if err := r.Rename(st.tmp, st.new); err != nil {
			if rerr := r.Rename(st.tmp, st.old); rerr != nil {
				err = errors.Join(err, fmt.Errorf("restore %s: %w", st.old, rerr))
			}
			fail(st.index, st.old, st.new, err)
			continue
		}
		results[st.index].Outcome = Renamed
	}

	report := &Report{Results: results}
	if onResult != nil {
		for _, res := range results {
			onResult(res)
		}
	}
	return report
}

// occupied reports whether newPath exists and is not oldPath itself.
func occupied(oldPath, newPath string) bool {
	dst, err := os.Lstat(newPath)
	if err != nil {
		return false
	}
	src, err := os.Lstat(oldPath)
	return err != nil || !os.SameFile(src, dst)
}

func pathExists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}
