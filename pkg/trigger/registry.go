package trigger

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/atomic"
)

const defaultWorkers = 4

// Decision tells the registry whether a trigger wants more reactions.
type Decision int

// Decisions a trigger can return.
const (
	StopListening Decision = iota
	KeepListening
)

// Key identifies a trigger: a reaction by UserID on MessageID.
type Key struct {
	MessageID string
	UserID    string
}

// Reaction is a reaction added to a message.
type Reaction struct {
	MessageID string
	UserID    string
	ChannelID string
	Emoji     string
}

// Key returns the key matching the reaction.
func (r Reaction) Key() Key {
	return Key{MessageID: r.MessageID, UserID: r.UserID}
}

// Trigger reacts to a matching reaction.
type Trigger interface {
	React(ctx context.Context, r Reaction) Decision
}

// TriggerFunc is an adapter to use an ordinary function as a Trigger.
type TriggerFunc func(ctx context.Context, r Reaction) Decision

// React calls f(ctx, r).
func (f TriggerFunc) React(ctx context.Context, r Reaction) Decision {
	return f(ctx, r)
}

type entry struct {
	trigger Trigger

	mu      sync.Mutex
	stopped bool
}

// Registry maps a (message, user) pair to the trigger to run when that user reacts to that message.
type Registry struct {
	entries   map[Key]*entry
	entriesMu sync.RWMutex

	workers   *pool.Pool
	workersMu sync.RWMutex
	closed    atomic.Bool
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	workers int
}

// WithWorkers sets the number of triggers that can run at the same time.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// New creates a new Registry.
func New(opts ...Option) *Registry {
	o := options{workers: defaultWorkers}
	for _, opt := range opts {
		opt(&o)
	}

	return &Registry{
		entries: make(map[Key]*entry),
		workers: pool.New().WithMaxGoroutines(o.workers),
	}
}

// Register installs the trigger for the given key, replacing any previous one.
func (r *Registry) Register(key Key, t Trigger) {
	r.entriesMu.Lock()
	_, replaced := r.entries[key]
	r.entries[key] = &entry{trigger: t}
	r.entriesMu.Unlock()

	log.Debug().
		Str("messageId", key.MessageID).
		Str("userId", key.UserID).
		Bool("replaced", replaced).
		Msg("Trigger registered")
}

// Len returns the number of registered triggers.
func (r *Registry) Len() int {
	r.entriesMu.RLock()
	defer r.entriesMu.RUnlock()

	return len(r.entries)
}

// Dispatch runs the trigger registered for the reaction, if any, on the worker pool.
func (r *Registry) Dispatch(ctx context.Context, reaction Reaction) {
	key := reaction.Key()

	r.entriesMu.RLock()
	e, ok := r.entries[key]
	r.entriesMu.RUnlock()

	if !ok {
		return
	}

	r.workersMu.RLock()
	defer r.workersMu.RUnlock()

	if r.closed.Load() {
		log.Debug().Str("messageId", key.MessageID).Msg("Registry closed, reaction dropped")

		return
	}

	r.workers.Go(func() {
		r.invoke(ctx, key, e, reaction)
	})
}

func (r *Registry) invoke(ctx context.Context, key Key, e *entry, reaction Reaction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return
	}

	if e.trigger.React(ctx, reaction) == KeepListening {
		return
	}

	e.stopped = true

	r.entriesMu.Lock()
	if r.entries[key] == e {
		delete(r.entries, key)
	}
	r.entriesMu.Unlock()
}

// Close waits for the running triggers. Reactions dispatched afterwards are dropped.
func (r *Registry) Close() {
	r.workersMu.Lock()
	if r.closed.Load() {
		r.workersMu.Unlock()

		return
	}

	r.closed.Store(true)
	r.workersMu.Unlock()

	r.workers.Wait()
}
