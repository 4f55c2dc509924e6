package mvi

// reduce maps (state, intent) to the next state. publish is false when the
// intent must be dropped without a new state. submit is non-nil when the
// transition starts a submission; it holds the fields captured at that
// moment.
func reduce[R any](s State[R], in Intent) (next State[R], publish bool, submit []Field) {
	switch in := in.(type) {
	case FieldChanged:
		i := indexOf(s.Fields, in.Name)
		if i < 0 {
			return s, false, nil
		}
		next = s.clone()
		next.Fields[i].Value = in.Value
		return next, true, nil

	case Submit:
		if s.Loading || s.Successful {
			return s, false, nil
		}
		next = s.clone()
		for _, f := range s.Fields {
			if !f.Optional && f.Value == "" {
				next.Err = &ValidationError{Field: f}
				next.Loading = false
				return next, true, nil
			}
		}
		next.Loading = true
		next.Err = nil
		return next, true, cloneFields(s.Fields)
	}
	return s, false, nil
}

// complete folds a finished submission into the current state.
func complete[R any](s State[R], result R, err error) State[R] {
	next := s.clone()
	next.Loading = false
	if err != nil {
		next.Err = &SubmissionError{Err: err}
		next.Successful = false
		return next
	}
	next.Err = nil
	next.Successful = true
	next.Result = result
	return next
}

func indexOf(fields []Field, name string) int {
	for i, f := range fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}
