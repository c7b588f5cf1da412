package rename

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Issue is an advisory warning about one changed entry. Issues never
// stop a plan from executing; the rename itself decides.
type Issue struct {
	Index  int    `json:"index" yaml:"index"`
	Old    string `json:"old" yaml:"old"`
	New    string `json:"new" yaml:"new"`
	Reason string `json:"reason" yaml:"reason"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s → %s (%s)", i.Old, i.New, i.Reason)
}

var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// InvalidNameReason returns why name is not portable, or "".
func InvalidNameReason(name string) string {
	trim := strings.TrimSpace(name)
	if trim == "" {
		return "empty name"
	}
	if trim != name {
		return "leading or trailing spaces"
	}
	if name == "." || name == ".." {
		return "reserved filename"
	}
	if strings.ContainsAny(name, `/\`) {
		return "contains a path separator"
	}
	if strings.ContainsAny(name, `<>:"|?*`) {
		return "invalid characters"
	}
	for _, r := range name {
		if r < 0x20 {
			return "control characters"
		}
	}
	base, _ := SplitExt(name)
	if reservedNames[strings.ToUpper(base)] {
		return "reserved filename"
	}
	return ""
}

// Check lists what is likely to go wrong if the plan ran now: invalid
// names, two entries claiming the same name, and targets that already
// exist and are not freed by the plan. exists defaults to the local
// filesystem.
func (p *Plan) Check(exists func(path string) bool) []Issue {
	if exists == nil {
		exists = pathExists
	}
	claimed := make(map[string]int)
	old := make(map[string]bool, len(p.Entries))
	for _, e := range p.Entries {
		if e.Changed() {
			claimed[e.NewName()]++
		} else {
			// unchanged names keep occupying their slot
			old[e.OldName()] = true
		}
	}
	vacated := make(map[string]bool)
	for _, e := range p.Entries {
		if e.Changed() {
			vacated[e.OldName()] = true
		}
	}

	var issues []Issue
	for i, e := range p.Entries {
		if !e.Changed() {
			continue
		}
		issue := Issue{Index: i, Old: e.OldName(), New: e.NewName()}
		switch {
		case InvalidNameReason(e.NewName()) != "":
			issue.Reason = "invalid: " + InvalidNameReason(e.NewName())
		case claimed[e.NewName()] > 1:
			issue.Reason = "conflict: duplicate new name"
		case old[e.NewName()]:
			issue.Reason = "conflict: name kept by another entry"
		case !vacated[e.NewName()] && !strings.EqualFold(e.NewName(), e.OldName()) &&
			exists(filepath.Join(p.Dir, e.NewName())):
			issue.Reason = "conflict: target exists on disk"
		default:
			continue
		}
		issues = append(issues, issue)
	}
	return issues
}
