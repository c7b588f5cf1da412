package rename

import (
	"errors"
	"log"
)

// ErrSessionClosed is returned once a session was committed or cancelled.
var ErrSessionClosed = errors.New("rename session already closed")

// State of an editing session. Committed and Cancelled are terminal.
type State int

const (
	Loaded State = iota
	Editing
	Committed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	default:
		return "loaded"
	}
}

// Decision is the answer to the confirm prompt.
type Decision int

const (
	Yes Decision = iota
	No
	Cancel
)

func (d Decision) String() string {
	switch d {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "cancel"
	}
}

// Session is what a host drives: it owns the plan, the host owns the text.
type Session struct {
	Plan   *Plan
	Strict bool
	// OnResult, if set, sees every entry's outcome as the commit runs.
	OnResult func(Result)

	state  State
	logger *log.Logger
	report *Report
}

// NewSession wraps p. logger receives one line per entry on commit and
// may be nil.
func NewSession(p *Plan, logger *log.Logger) *Session {
	return &Session{Plan: p, logger: logger}
}

func (s *Session) State() State { return s.state }

// Done reports whether the session reached a terminal state.
func (s *Session) Done() bool {
	return s.state == Committed || s.state == Cancelled
}

// Report is the result of the commit, nil until then.
func (s *Session) Report() *Report { return s.report }

// Edit feeds the latest text of the new-names surface into the plan.
func (s *Session) Edit(text string) error {
	if s.Done() {
		return ErrSessionClosed
	}
	s.Plan.Sync(text)
	s.state = Editing
	return nil
}

// NeedsConfirm syncs text and reports whether closing has to ask first.
func (s *Session) NeedsConfirm(text string) bool {
	if s.Done() {
		return false
	}
	s.Plan.Sync(text)
	return s.Plan.HasPendingChanges()
}

// Discard ends a session that has nothing to commit.
func (s *Session) Discard() error {
	if s.Done() {
		return ErrSessionClosed
	}
	s.state = Cancelled
	return nil
}

// Resolve applies the answer to the confirm prompt. Yes executes the plan
// against text, No drops it, Cancel goes back to editing. The report is
// returned only for Yes.
func (s *Session) Resolve(d Decision, text string) (*Report, error) {
	if s.Done() {
		return nil, ErrSessionClosed
	}
	switch d {
	case Yes:
		var opts []ExecOption
		if s.Strict {
			opts = append(opts, Staged())
		}
		if s.OnResult != nil {
			opts = append(opts, OnResult(s.OnResult))
		}
		s.report = s.Plan.Execute(text, opts...)
		s.report.Log(s.logger)
		s.state = Committed
		return s.report, nil
	case No:
		if s.logger != nil {
			s.logger.Println("NOT RENAMING")
		}
		s.state = Cancelled
		return nil, nil
	default:
		s.Plan.Sync(text)
		s.state = Editing
		return nil, nil
	}
}
