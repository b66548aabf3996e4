package discord

import (
	"context"

	"github.com/sirupsen/logrus"
)

type job func(ctx context.Context)

// eventQueue runs jobs one at a time, in arrival order.
type eventQueue struct {
	jobs   chan job
	done   chan struct{}
	logger *logrus.Logger
}

func newEventQueue(size int, logger *logrus.Logger) *eventQueue {
	return &eventQueue{
		jobs:   make(chan job, size),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Push enqueues j. It blocks while the queue is full and drops j once the
// queue has stopped.
func (q *eventQueue) Push(j job) {
	select {
	case q.jobs <- j:
	case <-q.done:
		q.logger.Debug("Event queue stopped, dropping event")
	}
}

// Run consumes jobs until ctx is cancelled.
func (q *eventQueue) Run(ctx context.Context) {
	defer close(q.done)
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-q.jobs:
			q.run(ctx, j)
		}
	}
}

func (q *eventQueue) run(ctx context.Context, j job) {
	defer func() {
		if p := recover(); p != nil {
			q.logger.WithField("panic", p).Error("Event handler panicked")
		}
	}()
	j(ctx)
}
