package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/blackarck/werename/pkg/rename"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// OutputResults encodes data as json or yaml. Text output is laid out by
// the caller, so FormatText is rejected like any unknown format.
func OutputResults(w io.Writer, format string, data interface{}) error {
	switch OutputFormat(format) {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)

	case FormatYAML:
		yamlData, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(yamlData))
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// TableFormatter writes aligned columns. Widths are measured in terminal
// cells so names with wide characters stay aligned.
type TableFormatter struct {
	w    io.Writer
	rows [][]string
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{w: w}
}

// Row buffers a table row
func (t *TableFormatter) Row(values ...string) {
	t.rows = append(t.rows, values)
}

// Flush writes the buffered table to output
func (t *TableFormatter) Flush() {
	var widths []int
	for _, row := range t.rows {
		for i, v := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := runewidth.StringWidth(v); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for _, row := range t.rows {
		cells := make([]string, len(row))
		for i, v := range row {
			if i == len(row)-1 {
				cells[i] = v
				continue
			}
			cells[i] = runewidth.FillRight(v, widths[i])
		}
		fmt.Fprintln(t.w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
	t.rows = nil
}

// WriteChanges lists the changed entries of p as "old => new" lines.
func WriteChanges(w io.Writer, p *rename.Plan) int {
	table := NewTableFormatter(w)
	changed := p.Changed()
	for _, e := range changed {
		table.Row(e.OldName(), "=>", e.NewName())
	}
	table.Flush()
	return len(changed)
}

// WriteIssues prints advisory warnings, one per line.
func WriteIssues(w io.Writer, issues []rename.Issue) {
	for _, is := range issues {
		fmt.Fprintf(w, "⚠ %s\n", is)
	}
}

// WriteReport prints rep in the requested format. Text lists every
// entry that was not left unchanged, then the summary line.
func WriteReport(w io.Writer, format string, rep *rename.Report) error {
	if OutputFormat(format) != FormatText {
		return OutputResults(w, format, rep.Items())
	}
	table := NewTableFormatter(w)
	for _, it := range rep.Items() {
		if it.Outcome == rename.Unchanged {
			continue
		}
		table.Row(it.Outcome.String(), it.Old, "=>", it.New, it.Reason)
	}
	table.Flush()
	fmt.Fprintln(w, rep.Summary())
	return nil
}
