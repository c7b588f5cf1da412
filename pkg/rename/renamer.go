package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Renamer is the filesystem primitive a plan executes against.
type Renamer interface {
	Rename(oldPath, newPath string) error
}

// OSRenamer renames on the local filesystem. Unlike os.Rename it never
// replaces an existing file: a target that is not the source itself fails
// with fs.ErrExist.
type OSRenamer struct{}

func (OSRenamer) Rename(oldPath, newPath string) error {
	if dst, err := os.Lstat(newPath); err == nil {
		src, err := os.Lstat(oldPath)
		if err != nil {
			return err
		}
		// same inode: a case-only rename on a case-insensitive filesystem
		if !os.SameFile(src, dst) {
			return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: fs.ErrExist}
		}
	}
	return os.Rename(oldPath, newPath)
}

// RenameError records a failed rename of one entry.
type RenameError struct {
	Old string
	New string
	Err error
}

func (e *RenameError) Error() string {
	cause := e.Err
	var le *os.LinkError
	if errors.As(cause, &le) {
		cause = le.Err
	}
	return fmt.Sprintf("%s => %s: %v", e.Old, e.New, cause)
}

func (e *RenameError) Unwrap() error { return e.Err }
