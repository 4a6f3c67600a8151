package gauth

import (
	"context"
	"sync"
)

// Subscription is a cold, single-value event source for one operation.
// The underlying call starts on the first Results invocation, emits
// exactly one Result, then the channel closes. Unsubscribing before the
// emission cancels the in-flight request; no partial result is delivered.
type Subscription[T any] struct {
	start      func()
	cancel     context.CancelFunc
	results    chan Result[T]
	startOnce  sync.Once
	cancelOnce sync.Once
}

// newSubscription wraps a direct call as a cold single-value stream. The
// call itself is not issued until the subscriber asks for results.
func newSubscription[T any](call func(context.Context) (T, error)) *Subscription[T] {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Subscription[T]{
		cancel:  cancel,
		results: make(chan Result[T], 1),
	}

	s.start = func() {
		go func() {
			value, err := call(ctx)

			// An unsubscribe that won the race produces no emission.
			if ctx.Err() != nil {
				close(s.results)
				return
			}

			if err != nil {
				s.results <- failure[T](err)
			} else {
				s.results <- success(value)
			}
			close(s.results)
		}()
	}

	return s
}

// Results triggers the underlying call on first use and returns the
// channel carrying the single emission. The channel closes after the
// emission, or without one if the subscription was cancelled first.
func (s *Subscription[T]) Results() <-chan Result[T] {
	s.startOnce.Do(s.start)
	return s.results
}

// Unsubscribe cancels the in-flight request. Safe to call more than once
// and after completion, where it has no effect.
func (s *Subscription[T]) Unsubscribe() {
	s.cancelOnce.Do(s.cancel)
}

// dispatchCall runs a direct call in the background and delivers its
// Result through the dispatcher exactly once. This is the callback
// calling convention; it never blocks the caller.
func dispatchCall[T any](d Dispatcher, call func(context.Context) (T, error), done func(Result[T])) {
	go func() {
		value, err := call(context.Background())

		var r Result[T]
		if err != nil {
			r = failure[T](err)
		} else {
			r = success(value)
		}

		d.Dispatch(func() {
			done(r)
		})
	}()
}
