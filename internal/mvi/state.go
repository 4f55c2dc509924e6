package mvi

// Field is one named text input of the form.
type Field struct {
	Name  string
	Label string // used in messages; defaults to Name
	Value string

	// Optional fields may be left empty on Submit.
	Optional bool
}

func (f Field) label() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// State is an immutable snapshot of everything a view needs to render.
// Transitions always produce a new State with its own Fields slice.
type State[R any] struct {
	Fields     []Field
	Loading    bool
	Err        error // *ValidationError or *SubmissionError, nil when absent
	Successful bool
	Result     R // set on success
}

// Value returns the value of the named field.
func (s State[R]) Value(name string) (string, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// ErrorMessage returns the message of the current error, or "".
func (s State[R]) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Idle reports whether no submission is running and none has succeeded.
func (s State[R]) Idle() bool { return !s.Loading && !s.Successful }

func (s State[R]) clone() State[R] {
	n := s
	n.Fields = cloneFields(s.Fields)
	return n
}

func cloneFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}
