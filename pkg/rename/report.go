package rename

import (
	"errors"
	"fmt"
	"log"
)

// Outcome is what happened to one entry when the plan executed.
type Outcome int

const (
	Unchanged Outcome = iota
	Renamed
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Renamed:
		return "renamed"
	case Failed:
		return "failed"
	default:
		return "unchanged"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result pairs an entry with its outcome. Err is set only when Failed.
type Result struct {
	Entry   *Entry
	Outcome Outcome
	Err     error
}

func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", r.Outcome, r.Entry, r.Err)
	}
	return fmt.Sprintf("%s: %s", r.Outcome, r.Entry)
}

// Report holds one result per entry, in entry order.
type Report struct {
	Results []Result
}

// Item is the serializable form of a Result.
type Item struct {
	Kind    Kind    `json:"kind" yaml:"kind"`
	Old     string  `json:"old" yaml:"old"`
	New     string  `json:"new" yaml:"new"`
	Outcome Outcome `json:"outcome" yaml:"outcome"`
	Reason  string  `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func (r *Report) Items() []Item {
	items := make([]Item, 0, len(r.Results))
	for _, res := range r.Results {
		it := Item{
			Kind:    res.Entry.Kind(),
			Old:     res.Entry.OldName(),
			New:     res.Entry.NewName(),
			Outcome: res.Outcome,
		}
		if res.Err != nil {
			it.Reason = res.Err.Error()
		}
		items = append(items, it)
	}
	return items
}

func (r *Report) count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

func (r *Report) Renamed() int   { return r.count(Renamed) }
func (r *Report) Unchanged() int { return r.count(Unchanged) }
func (r *Report) Failed() int    { return r.count(Failed) }

// Err joins every per-entry failure, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

// Summary is the one-line count shown after a batch.
func (r *Report) Summary() string {
	return fmt.Sprintf("Renamed: %d, Unchanged: %d, Failed: %d", r.Renamed(), r.Unchanged(), r.Failed())
}

// Log writes one line per entry.
func (r *Report) Log(logger *log.Logger) {
	if logger == nil {
		return
	}
	for _, res := range r.Results {
		logger.Println(res.String())
	}
}
