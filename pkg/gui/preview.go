package gui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/blackarck/werename/pkg/rename"
)

/* -------------------- Preview -------------------- */

var (
	plainStyle = widget.RichTextStyle{
		Inline:    true,
		TextStyle: fyne.TextStyle{Monospace: true},
	}
	markStyle = widget.RichTextStyle{
		Inline:    true,
		ColorName: theme.ColorNamePrimary,
		TextStyle: fyne.TextStyle{Monospace: true, Bold: true},
	}
)

// previewSegments splits text into plain and highlighted segments. Span
// offsets count runes.
func previewSegments(text string, spans []rename.Span) []widget.RichTextSegment {
	runes := []rune(text)
	var segs []widget.RichTextSegment
	add := func(from, to int, style widget.RichTextStyle) {
		if to > from {
			segs = append(segs, &widget.TextSegment{Text: string(runes[from:to]), Style: style})
		}
	}

	cursor := 0
	for _, s := range spans {
		start, end := clamp(s.Start, cursor, len(runes)), clamp(s.End, cursor, len(runes))
		add(cursor, start, plainStyle)
		add(start, end, markStyle)
		cursor = end
	}
	add(cursor, len(runes), plainStyle)
	return segs
}

/* -------------------- Confirm Message -------------------- */

func confirmMessage(p *rename.Plan, issues []rename.Issue, stale string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("You are about to rename %d of %d entries.\n\n", len(p.Changed()), len(p.Entries)))

	if len(issues) > 0 {
		b.WriteString("Possible problems:\n")
		for _, is := range firstN(issues, 20) {
			b.WriteString(" - " + is.String() + "\n")
		}
		if len(issues) > 20 {
			b.WriteString(fmt.Sprintf(" ... and %d more\n", len(issues)-20))
		}
		b.WriteString("\n")
	}

	if stale != "" {
		b.WriteString("Warning: " + stale + "\n\n")
	}

	b.WriteString("Rename them?")
	return b.String()
}

func statusText(p *rename.Plan, issues []rename.Issue) string {
	s := fmt.Sprintf("%d of %d changed", len(p.Changed()), len(p.Entries))
	if len(issues) > 0 {
		s += fmt.Sprintf(", %d warning(s)", len(issues))
	}
	return s
}

func issuesText(issues []rename.Issue) string {
	lines := make([]string, 0, len(issues))
	for _, is := range firstN(issues, 5) {
		lines = append(lines, "⚠ "+is.String())
	}
	if len(issues) > 5 {
		lines = append(lines, fmt.Sprintf("... and %d more", len(issues)-5))
	}
	return strings.Join(lines, "\n")
}

/* -------------------- Helpers -------------------- */

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func firstN[T any](in []T, n int) []T {
	if len(in) <= n {
		return in
	}
	return in[:n]
}
