// Package mvi implements a reactive unidirectional state container.
//
// A Container owns one authoritative State. Views feed it Intents through
// Dispatch and observe the resulting States through Subscribe:
//
//	c := mvi.New(fields, submitter)
//	defer c.Close()
//	unsubscribe := c.Subscribe(func(s mvi.State[Profile]) { render(s) })
//	c.Dispatch(mvi.FieldChanged{Name: "username", Value: "admin"})
//	c.Dispatch(mvi.Submit{})
//
// Dispatch calls and submission completions are serialized, so every
// read-modify-publish of State is atomic. Each subscriber is fed from its
// own ordered queue and may safely call Dispatch from inside its callback.
package mvi
