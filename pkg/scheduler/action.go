package scheduler

import (
	"context"
	"time"
)

// Result tells the scheduler what to do with a task once its action returned.
type Result struct {
	repeat bool
	at     time.Time
}

// Done drops the task.
func Done() Result {
	return Result{}
}

// RepeatAt reschedules the task for the given time.
// A time in the past makes the task fire again on the next tick.
func RepeatAt(t time.Time) Result {
	return Result{repeat: true, at: t}
}

// IsDone reports whether the task is finished.
func (r Result) IsDone() bool {
	return !r.repeat
}

// At returns the next fire time of a repeated task.
func (r Result) At() time.Time {
	return r.at
}

// Action is the work executed when a task fires.
type Action interface {
	Run(ctx context.Context) Result
}

// ActionFunc is an adapter to use an ordinary function as an Action.
type ActionFunc func(ctx context.Context) Result

// Run calls f(ctx).
func (f ActionFunc) Run(ctx context.Context) Result {
	return f(ctx)
}
