// Package scheduler provides the bookkeeping shared by every executor:
// a FIFO queue of runnable tasks, a ticket-indexed table of suspended
// tasks, and reference-counted tickets that decide when a suspended
// task is resumed versus abandoned.
//
// A Scheduler is not safe for concurrent use; callers (executors) must
// serialize access to it, typically behind a single mutex.
package scheduler
