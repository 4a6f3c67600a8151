package gauth

import "sync"

// Dispatcher marshals callback-convention completions onto a
// caller-chosen execution context. In a UI-driven host it stands in for
// the UI-owning thread.
type Dispatcher interface {
	Dispatch(fn func())
}

// AsyncDispatcher runs each completion on its own goroutine. It is the
// default when a client is constructed without a dispatcher.
type AsyncDispatcher struct{}

// Dispatch implements Dispatcher.
func (AsyncDispatcher) Dispatch(fn func()) {
	go fn()
}

// SerialDispatcher delivers completions one at a time, in submission
// order, on a single dedicated goroutine. Hosts that need UI-thread-like
// ordering hand one of these to the client.
type SerialDispatcher struct {
	fns      chan func()
	stopOnce sync.Once
	done     chan struct{}
}

// NewSerialDispatcher creates a dispatcher and starts its run loop.
func NewSerialDispatcher() *SerialDispatcher {
	d := &SerialDispatcher{
		fns:  make(chan func(), 64),
		done: make(chan struct{}),
	}

	go d.run()

	return d
}

func (d *SerialDispatcher) run() {
	for {
		select {
		case fn := <-d.fns:
			fn()
		case <-d.done:
			// Drain anything already queued before exiting.
			for {
				select {
				case fn := <-d.fns:
					fn()
				default:
					return
				}
			}
		}
	}
}

// Dispatch implements Dispatcher. Completions submitted after Stop are
// dropped.
func (d *SerialDispatcher) Dispatch(fn func()) {
	select {
	case d.fns <- fn:
	case <-d.done:
	}
}

// Stop shuts down the run loop after draining queued completions.
func (d *SerialDispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.done)
	})
}
