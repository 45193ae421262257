package mdpreview

import (
	"context"
	"sync"

	"github.com/alnah/go-mdpreview/internal/queue"
)

// EventLoop is a minimal UI context: one goroutine running posted functions
// in FIFO order. Post never blocks.
type EventLoop struct {
	mailbox  *queue.Queue[func()]
	stopOnce sync.Once
	done     chan struct{}
}

// NewEventLoop creates a loop. Call Run to start processing.
func NewEventLoop() *EventLoop {
	return &EventLoop{
		mailbox: queue.New[func()](),
		done:    make(chan struct{}),
	}
}

// Post schedules fn on the loop goroutine. Nil functions are ignored.
// Functions posted after Stop are never run.
func (l *EventLoop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mailbox.Push(fn)
}

// Run processes posted functions until Stop is called or ctx is done.
// Functions posted before Stop run first. Run must be called at most once.
func (l *EventLoop) Run(ctx context.Context) error {
	defer close(l.done)

	unregister := context.AfterFunc(ctx, l.Stop)
	defer unregister()

	for {
		fn := l.mailbox.Pop()
		if fn == nil {
			return ctx.Err()
		}
		fn()
	}
}

// Stop asks Run to return after the functions already posted.
func (l *EventLoop) Stop() {
	l.stopOnce.Do(func() { l.mailbox.Push(nil) })
}

// Done is closed when Run returns.
func (l *EventLoop) Done() <-chan struct{} {
	return l.done
}

var _ Poster = (*EventLoop)(nil)
