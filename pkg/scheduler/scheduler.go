package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultTick    = 500 * time.Millisecond
	defaultWorkers = 4
)

type task struct {
	id      string
	at      time.Time
	action  Action
	running bool
}

// Scheduler runs actions once their fire time has passed.
type Scheduler struct {
	tick    time.Duration
	workers int

	tasks   map[string]*task
	tasksMu sync.Mutex
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTick sets the interval between two scans of the pending tasks.
func WithTick(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.tick = d
		}
	}
}

// WithWorkers sets the number of actions that can run at the same time.
func WithWorkers(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.workers = n
		}
	}
}

// New creates a new Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		tick:    defaultTick,
		workers: defaultWorkers,
		tasks:   make(map[string]*task),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Add schedules the action to run after the given delay.
func (s *Scheduler) Add(delay time.Duration, action Action) string {
	return s.AddAt(time.Now().Add(delay), action)
}

// AddAt schedules the action to run at the given time.
func (s *Scheduler) AddAt(at time.Time, action Action) string {
	id := uuid.Must(uuid.NewV4()).String()

	s.tasksMu.Lock()
	s.tasks[id] = &task{id: id, at: at, action: action}
	s.tasksMu.Unlock()

	log.Debug().Str("task", id).Time("at", at).Msg("Task scheduled")

	return id
}

// Len returns the number of pending and running tasks.
func (s *Scheduler) Len() int {
	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()

	return len(s.tasks)
}

// Run starts the ticker. It returns once ctx is done and every running action returned.
func (s *Scheduler) Run(ctx context.Context) {
	workers := pool.New().WithMaxGoroutines(s.workers)
	defer workers.Wait()

	t := time.NewTicker(s.tick)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-t.C:
			for _, due := range s.due(time.Now()) {
				due := due
				workers.Go(func() {
					s.fire(ctx, due)
				})
			}
		}
	}
}

// due marks every task whose fire time has passed as running and returns them.
func (s *Scheduler) due(now time.Time) []*task {
	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()

	var tasks []*task
	for _, t := range s.tasks {
		if t.running || t.at.After(now) {
			continue
		}

		t.running = true
		tasks = append(tasks, t)
	}

	return tasks
}

func (s *Scheduler) fire(ctx context.Context, t *task) {
	res := t.action.Run(ctx)

	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()

	if res.IsDone() {
		delete(s.tasks, t.id)
		log.Debug().Str("task", t.id).Msg("Task done")

		return
	}

	t.at = res.At()
	t.running = false
}
