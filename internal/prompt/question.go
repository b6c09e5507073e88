package prompt

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/templer-labs/templer/internal/vars"
)

// State is the position of a Question in its answer cycle.
type State int

const (
	Pending State = iota
	Answered
	HelpRequested
	Invalid
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Answered:
		return "answered"
	case HelpRequested:
		return "help-requested"
	case Invalid:
		return "invalid"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// HelpAnswer is the reply that asks for a variable's further help.
const HelpAnswer = "?"

// Question tracks one variable being asked.
type Question struct {
	Var   *vars.Var
	State State

	// Value and Structures are set once State is Answered.
	Value      any
	Structures []string
	// Err holds the validation failure while State is Invalid.
	Err error
}

func NewQuestion(v *vars.Var) *Question {
	return &Question{Var: v, State: Pending}
}

// Text is the prompt shown to the user, including the default if any.
func (q *Question) Text() string {
	d := q.Var.Default
	if !q.Var.HasDefault() || d == nil || d == "" || !q.Var.ShouldEcho {
		return q.Var.PrettyDescription() + ": "
	}
	return fmt.Sprintf("%s [%v]: ", q.Var.PrettyDescription(), d)
}

// Step feeds one answer into a Pending question and returns the new state.
// An empty answer means the default.
func (q *Question) Step(answer string) State {
	if q.State != Pending {
		return q.State
	}
	var raw any = answer
	switch trimmed := strings.TrimSpace(answer); {
	case trimmed == HelpAnswer:
		q.State = HelpRequested
		return q.State
	case trimmed == "" && q.Var.HasDefault():
		raw = q.Var.Default
	case trimmed == "":
		q.Err = fmt.Errorf("a value is required for %s", q.Var.Name)
		q.State = Invalid
		return q.State
	}

	value, structures, err := q.Var.Resolve(raw)
	if err != nil {
		q.Err = err
		q.State = Invalid
		return q.State
	}
	q.Value, q.Structures, q.Err = value, structures, nil
	q.State = Answered
	return q.State
}

// Reset returns a HelpRequested or Invalid question to Pending.
func (q *Question) Reset() {
	if q.State != Answered {
		q.State = Pending
	}
}

// Ask repeats the question until it is answered. Help text and validation
// errors are written to w. Only input errors end the loop early.
func Ask(ctx context.Context, p Prompter, w io.Writer, v *vars.Var) (*Question, error) {
	q := NewQuestion(v)
	for q.State != Answered {
		answer, err := p.Line(ctx, q.Text(), v.ShouldEcho)
		if err != nil {
			return nil, err
		}
		switch q.Step(answer) {
		case HelpRequested:
			fmt.Fprintln(w)
			fmt.Fprintln(w, strings.TrimRight(v.FurtherHelp(), "\n"))
			fmt.Fprintln(w)
		case Invalid:
			fmt.Fprintf(w, "Error: %s\n", q.Err)
		}
		q.Reset()
	}
	return q, nil
}
