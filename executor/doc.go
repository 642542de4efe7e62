// Package executor provides task executors that drive asyncring
// promises and pending tasks to completion: SingleThreadedExecutor
// runs a blocking dispatch loop guarded by a mutex and condition
// variable, waking whenever a task becomes runnable; InlineExecutor
// drives a single task to completion inline without any suspension
// support, for tests and trivial synchronous call sites.
package executor
