package tests

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asyncring/asyncring"
	"github.com/asyncring/asyncring/executor"
)

func TestFunctional_SuspendAndResumeAcrossGoroutines(t *testing.T) {
	exec := executor.New()
	defer exec.Close()

	var result string
	polls := 0
	p := asyncring.New(func(ctx asyncring.Context) asyncring.AsyncResult[string, struct{}] {
		polls++
		if polls == 1 {
			handle := ctx.SuspendTask()
			go func() {
				handle.ResumeTask()
			}()
			return asyncring.Pending[string, struct{}]()
		}
		return asyncring.Ok[string, struct{}]("resumed")
	})

	observed := asyncring.Inspect(p, func(r asyncring.AsyncResult[string, struct{}]) {
		if r.IsOk() {
			result = r.Value()
		}
	})

	task := asyncring.NewPendingTask(observed)
	exec.ScheduleTask(&task)
	exec.Run()

	require.Equal(t, "resumed", result)
	require.GreaterOrEqual(t, polls, 2)
}

func TestFunctional_MultipleTasksDrainBeforeRunReturns(t *testing.T) {
	exec := executor.New()
	defer exec.Close()

	var mu sync.Mutex
	completed := 0
	const n = 20

	for i := 0; i < n; i++ {
		p := asyncring.MakeOkPromise[struct{}, struct{}](struct{}{})
		observed := asyncring.Inspect(p, func(asyncring.AsyncResult[struct{}, struct{}]) {
			mu.Lock()
			completed++
			mu.Unlock()
		})
		task := asyncring.NewPendingTask(observed)
		exec.ScheduleTask(&task)
	}

	exec.Run()

	require.Equal(t, n, completed)
}

func TestFunctional_AbandonedSuspendedTaskIsDroppedOnClose(t *testing.T) {
	exec := executor.New()

	neverResumes := asyncring.New(func(ctx asyncring.Context) asyncring.AsyncResult[struct{}, struct{}] {
		handle := ctx.SuspendTask()
		handle.Reset() // release without resuming: abandons the task
		return asyncring.Pending[struct{}, struct{}]()
	})

	task := asyncring.NewPendingTask(neverResumes)
	exec.ScheduleTask(&task)
	exec.Run()

	require.NotPanics(t, func() { exec.Close() })
}
