package mvi

// Intent is a discrete action fed into a Container. The set is closed:
// FieldChanged and Submit are the only implementations.
type Intent interface {
	isIntent()
}

// FieldChanged replaces the value of the field called Name.
type FieldChanged struct {
	Name  string
	Value string
}

// Submit validates the form and starts the external submission.
type Submit struct{}

func (FieldChanged) isIntent() {}
func (Submit) isIntent()       {}
