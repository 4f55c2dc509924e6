package mvi

import "sync"

// subscriber delivers states to one observer, in order, from its own
// goroutine.
type subscriber[R any] struct {
	id uint64
	fn func(State[R])

	mu    sync.Mutex
	queue []State[R]

	wake     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newSubscriber[R any](id uint64, fn func(State[R])) *subscriber[R] {
	return &subscriber[R]{
		id:   id,
		fn:   fn,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

func (s *subscriber[R]) push(st State[R]) {
	s.mu.Lock()
	s.queue = append(s.queue, st)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// stop ends delivery. Queued states not yet handed to fn are dropped.
func (s *subscriber[R]) stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *subscriber[R]) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}
		for {
			st, ok := s.next()
			if !ok {
				break
			}
			s.fn(st)
		}
	}
}

func (s *subscriber[R]) next() (State[R], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
		return State[R]{}, false
	default:
	}
	if len(s.queue) == 0 {
		return State[R]{}, false
	}
	st := s.queue[0]
	s.queue[0] = State[R]{}
	s.queue = s.queue[1:]
	return st, true
}
