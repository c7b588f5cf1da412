package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SortMode orders a directory listing before it becomes a plan.
type SortMode string

const (
	SortNone    SortMode = "none"
	SortName    SortMode = "name"
	SortNatural SortMode = "natural"
)

// ParseSortMode accepts the config/flag spelling of a sort mode.
func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case SortNone, SortName, SortNatural:
		return m, nil
	case "":
		return SortName, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q (want none, name or natural)", s)
	}
}

// ListOptions controls ListDirectory.
type ListOptions struct {
	ShowHidden bool
	Sort       SortMode
}

// ListDirectory returns the names directly inside dir with their
// directory flag. It does not descend into subdirectories.
func ListDirectory(dir string, opts ListOptions) ([]Listing, error) {
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	items := make([]Listing, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !opts.ShowHidden && strings.HasPrefix(name, HiddenPrefix) {
			continue
		}
		isDir := e.IsDir()
		if e.Type()&os.ModeSymlink != 0 {
			// follow links so a link to a directory lists as one
			if target, err := os.Stat(filepath.Join(dir, name)); err == nil {
				isDir = target.IsDir()
			}
		}
		items = append(items, Listing{Name: name, IsDir: isDir})
	}

	switch opts.Sort {
	case SortName:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	case SortNatural:
		sort.SliceStable(items, func(i, j int) bool { return NaturalLess(items[i].Name, items[j].Name) })
	}
	return items, nil
}

// NaturalLess compares names case-insensitively with digit runs compared
// by value, so "file2" sorts before "file10".
func NaturalLess(a, b string) bool {
	ai, bi, la, lb := 0, 0, len(a), len(b)
	for ai < la && bi < lb {
		ca, cb := a[ai], b[bi]
		if isDigit(ca) && isDigit(cb) {
			startA, startB := ai, bi
			for ai < la && isDigit(a[ai]) {
				ai++
			}
			for bi < lb && isDigit(b[bi]) {
				bi++
			}
			numA := strings.TrimLeft(a[startA:ai], "0")
			numB := strings.TrimLeft(b[startB:bi], "0")
			if len(numA) != len(numB) {
				return len(numA) < len(numB)
			}
			if numA != numB {
				return numA < numB
			}
			// equal value: fewer leading zeros first
			if ai-startA != bi-startB {
				return ai-startA < bi-startB
			}
			continue
		}
		la2, lb2 := toLowerByte(ca), toLowerByte(cb)
		if la2 != lb2 {
			return la2 < lb2
		}
		ai++
		bi++
	}
	return la-ai < lb-bi
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func toLowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 32
	}
	return b
}
