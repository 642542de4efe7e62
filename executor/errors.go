package executor

import "errors"

// Namespace prefixes this package's sentinel errors.
const Namespace = "executor"

var (
	// ErrShutdown is the panic value when ScheduleTask or suspending a
	// task is attempted on an executor that has already been closed.
	ErrShutdown = errors.New(Namespace + ": executor has been shut down")

	// ErrInlineSuspend is the panic value when a task run on
	// InlineExecutor attempts to suspend itself; InlineExecutor has no
	// facility to resume a suspended task later.
	ErrInlineSuspend = errors.New(Namespace + ": InlineExecutor does not support suspending tasks")
)
