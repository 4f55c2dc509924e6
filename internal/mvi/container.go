package mvi

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// Submitter is the external capability invoked by a valid Submit. It runs
// outside the container's lock and receives a private copy of the fields.
type Submitter[R any] interface {
	Submit(ctx context.Context, fields []Field) (R, error)
}

// SubmitFunc adapts a function to Submitter.
type SubmitFunc[R any] func(ctx context.Context, fields []Field) (R, error)

func (f SubmitFunc[R]) Submit(ctx context.Context, fields []Field) (R, error) {
	return f(ctx, fields)
}

// Container holds the current State, applies intents to it and publishes
// every new State to its subscribers.
type Container[R any] struct {
	submitter Submitter[R]
	timeout   time.Duration
	logger    *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	state  State[R]
	subs   []*subscriber[R]
	nextID uint64
	closed bool

	inflight sync.WaitGroup
}

// New creates a container in the idle state with the given fields. Field
// names must be unique.
func New[R any](fields []Field, submitter Submitter[R], opts ...Option) *Container[R] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Container[R]{
		submitter: submitter,
		timeout:   o.timeout,
		logger:    o.logger,
		ctx:       ctx,
		cancel:    cancel,
		state:     State[R]{Fields: cloneFields(fields)},
	}
}

// State returns the current snapshot.
func (c *Container[R]) State() State[R] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Dispatch applies an intent. Any resulting state is queued to every
// subscriber before Dispatch returns. A valid Submit starts the submission
// in the background; its outcome is published as a later state.
func (c *Container[R]) Dispatch(in Intent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		c.logger.Printf("dispatch after close: %T dropped", in)
		return
	}
	next, publish, submit := reduce(c.state, in)
	if !publish {
		c.logger.Printf("%T dropped (loading=%v successful=%v)", in, c.state.Loading, c.state.Successful)
		return
	}
	c.publishLocked(next)
	if submit != nil {
		c.inflight.Add(1)
		go c.runSubmit(submit)
	}
}

// Subscribe registers fn. It first receives the current state, then every
// published state in order. The returned function unsubscribes; it is
// idempotent and may be called from inside fn.
func (c *Container[R]) Subscribe(fn func(State[R])) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return func() {}
	}
	c.nextID++
	sub := newSubscriber(c.nextID, fn)
	c.subs = append(c.subs, sub)
	sub.push(c.state.clone())
	go sub.run()
	return func() { c.unsubscribe(sub.id) }
}

// Close cancels any running submission, stops delivery to subscribers and
// waits for the submission goroutine to return. Later intents are dropped.
func (c *Container[R]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	c.cancel()
	for _, s := range subs {
		s.stop()
	}
	c.inflight.Wait()
}

func (c *Container[R]) unsubscribe(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s.id == id {
			s.stop()
			c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
			return
		}
	}
}

func (c *Container[R]) publishLocked(s State[R]) {
	c.state = s
	for _, sub := range c.subs {
		sub.push(s.clone())
	}
}

func (c *Container[R]) runSubmit(fields []Field) {
	defer c.inflight.Done()

	result, err := c.call(fields)
	if err != nil {
		c.logger.Printf("submission failed: %v", err)
	} else {
		c.logger.Printf("submission succeeded")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.publishLocked(complete(c.state, result, err))
}

// call invokes the submitter with the configured timeout. Panics are turned
// into errors so nothing escapes the container.
func (c *Container[R]) call(fields []Field) (result R, err error) {
	ctx := c.ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			var zero R
			result, err = zero, fmt.Errorf("submit panicked: %v", r)
		}
	}()

	result, err = c.submitter.Submit(ctx, fields)
	if errors.Is(err, context.DeadlineExceeded) {
		err = ErrTimeout
	}
	return result, err
}
