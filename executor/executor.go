package executor

import (
	"sync"
	"time"

	"github.com/asyncring/asyncring/metrics"
	"github.com/asyncring/asyncring/scheduler"
)

// SingleThreadedExecutor is a simple platform-independent task
// executor. Tasks are run one at a time on whichever goroutine calls
// Run, but ScheduleTask and the SuspendedTask handles it hands out are
// safe to use from any goroutine.
type SingleThreadedExecutor struct {
	ctx *executorContext
	d   *dispatcher
}

// New constructs a SingleThreadedExecutor. Close it once Run has
// returned to release its remaining state; any task still runnable or
// suspended at that point is simply dropped, never polled again.
func New(opts ...Option) *SingleThreadedExecutor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	d := newDispatcher(cfg)
	e := &SingleThreadedExecutor{d: d}
	e.ctx = &executorContext{d: d}
	return e
}

// ScheduleTask schedules task for eventual execution. Safe to call
// from any goroutine, including from within a task running on this
// executor.
func (e *SingleThreadedExecutor) ScheduleTask(task scheduler.Task) {
	e.d.scheduleTask(task)
}

// Run executes all scheduled tasks, including any additional tasks
// scheduled while they run, until none remain (no task is runnable and
// none are suspended). Run must not be called concurrently with
// itself, though ScheduleTask may be called concurrently with Run.
func (e *SingleThreadedExecutor) Run() {
	e.d.run(e.ctx)
}

// Close shuts the executor down, dropping any tasks that never
// completed. It panics if called more than once.
func (e *SingleThreadedExecutor) Close() {
	e.d.shutdown()
}

// executorContext is the scheduler.Context handed to tasks run by this
// executor.
type executorContext struct {
	d *dispatcher
}

func (c *executorContext) SuspendTask() scheduler.SuspendedTask {
	return c.d.suspendCurrentTask()
}

var _ scheduler.Context = (*executorContext)(nil)

// dispatcher owns the scheduler and the mutex/condvar pair that
// coordinate a running executor with goroutines resolving tickets or
// scheduling new tasks concurrently.
type dispatcher struct {
	mu   sync.Mutex
	wake *sync.Cond

	sched         *scheduler.Scheduler
	wasShutdown   bool
	needWake      bool
	currentTicket scheduler.Ticket

	scheduledCounter metrics.Counter
	suspendedCounter metrics.Counter
	abandonedCounter metrics.Counter
	resumedCounter   metrics.Counter
	pollDuration     metrics.Histogram
}

func newDispatcher(cfg Config) *dispatcher {
	d := &dispatcher{sched: scheduler.New()}
	d.wake = sync.NewCond(&d.mu)

	provider := cfg.Metrics
	if provider == nil {
		provider = metrics.NewNoopProvider()
	}
	d.scheduledCounter = provider.Counter("scheduler_tasks_scheduled_total")
	d.suspendedCounter = provider.Counter("scheduler_tasks_suspended_total")
	d.abandonedCounter = provider.Counter("scheduler_tasks_abandoned_total")
	d.resumedCounter = provider.Counter("scheduler_tasks_resumed_total")
	d.pollDuration = provider.Histogram("executor_poll_duration_seconds", metrics.WithUnit("seconds"))
	return d
}

func (d *dispatcher) shutdown() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.wasShutdown {
		panic(ErrShutdown)
	}
	d.wasShutdown = true
	d.sched.BeginShutdown()
	d.sched.TakeAllTasks() // drop remaining tasks; nothing to explicitly free under GC
}

func (d *dispatcher) scheduleTask(task scheduler.Task) {
	d.mu.Lock()
	if d.wasShutdown {
		d.mu.Unlock()
		panic(ErrShutdown)
	}
	d.sched.ScheduleTask(task)
	d.scheduledCounter.Add(1)
	needWake := d.needWake
	d.needWake = false
	d.mu.Unlock()

	if needWake {
		d.wake.Signal()
	}
}

func (d *dispatcher) run(ctx scheduler.Context) {
	for {
		tasks := d.waitForRunnableTasks()
		if len(tasks) == 0 {
			return
		}
		for _, task := range tasks {
			d.runTask(task, ctx)
		}
		d.mu.Lock()
		d.sched.RecycleTasks(tasks)
		d.mu.Unlock()
	}
}

func (d *dispatcher) waitForRunnableTasks() []scheduler.Task {
	d.mu.Lock()
	defer d.mu.Unlock()

	for {
		tasks := d.sched.TakeRunnableTasks()
		if len(tasks) > 0 {
			return tasks
		}
		if !d.sched.HasSuspendedTasks() {
			return nil
		}
		d.needWake = true
		d.wake.Wait()
	}
}

func (d *dispatcher) runTask(task scheduler.Task, ctx scheduler.Context) {
	start := time.Now()
	finished := task.Poll(ctx)
	d.pollDuration.Record(time.Since(start).Seconds())

	d.mu.Lock()
	ticket := d.currentTicket
	d.currentTicket = 0
	if ticket == 0 {
		d.mu.Unlock()
		return
	}

	abandoned := d.sched.FinalizeTicket(ticket, task, finished)
	if !finished {
		if abandoned != nil {
			d.abandonedCounter.Add(1)
		} else {
			d.suspendedCounter.Add(1)
		}
	}
	d.mu.Unlock()
}

// suspendCurrentTask is called synchronously from within a task's Poll
// (via executorContext.SuspendTask), never concurrently with itself
// for the same task, since a task is only polled from one goroutine
// at a time.
func (d *dispatcher) suspendCurrentTask() scheduler.SuspendedTask {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.wasShutdown {
		panic(ErrShutdown)
	}
	if d.currentTicket == 0 {
		d.currentTicket = d.sched.ObtainTicket(2)
	} else {
		d.sched.DuplicateTicket(d.currentTicket)
	}
	return scheduler.NewSuspendedTask(d, d.currentTicket)
}

// DuplicateTicket implements scheduler.Resolver.
func (d *dispatcher) DuplicateTicket(ticket scheduler.Ticket) scheduler.Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sched.DuplicateTicket(ticket)
}

// ResolveTicket implements scheduler.Resolver.
func (d *dispatcher) ResolveTicket(ticket scheduler.Ticket, resume bool) {
	d.mu.Lock()

	if resume {
		d.sched.ResumeTaskWithTicket(ticket)
		d.resumedCounter.Add(1)
	} else {
		d.sched.ReleaseTicket(ticket)
	}

	var doWake bool
	if !d.wasShutdown && d.needWake && (d.sched.HasRunnableTasks() || !d.sched.HasSuspendedTasks()) {
		d.needWake = false
		doWake = true
	}
	d.mu.Unlock()

	if doWake {
		d.wake.Signal()
	}
}

var _ scheduler.Resolver = (*dispatcher)(nil)
