package tests

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asyncring/asyncring"
	"github.com/asyncring/asyncring/executor"
)

func runToCompletion[T, E any](t *testing.T, p asyncring.Promise[T, E]) asyncring.AsyncResult[T, E] {
	t.Helper()
	var result asyncring.AsyncResult[T, E]
	observed := asyncring.Inspect(p, func(r asyncring.AsyncResult[T, E]) { result = r })
	task := asyncring.NewPendingTask(observed)
	(executor.InlineExecutor{}).Run(&task)
	return result
}

func TestNominal_OkPromiseResolvesImmediately(t *testing.T) {
	p := asyncring.MakeOkPromise[int, string](10)
	got := runToCompletion(t, p)
	require.True(t, got.IsOk())
	require.Equal(t, 10, got.Value())
}

func TestNominal_ErrorPromisePropagates(t *testing.T) {
	p := asyncring.MakeErrorPromise[int, string]("boom")
	got := runToCompletion(t, p)
	require.True(t, got.IsError())
	require.Equal(t, "boom", got.Error())
}

func TestNominal_AndThenShortCircuitsOnError(t *testing.T) {
	called := false
	p := asyncring.MakeErrorPromise[int, error](errors.New("failed"))
	chained := asyncring.AndThen(p, func(n int) asyncring.Chain[int, error] {
		called = true
		return asyncring.DoneOk[int, error](n + 1)
	})

	got := runToCompletion(t, chained)
	require.False(t, called, "handler must not run when the source promise failed")
	require.True(t, got.IsError())
	require.EqualError(t, got.Error(), "failed")
}

func TestNominal_OrElseRecoversFromError(t *testing.T) {
	p := asyncring.MakeErrorPromise[int, error](errors.New("transient"))
	recovered := asyncring.OrElse(p, func(err error) asyncring.Chain[int, error] {
		return asyncring.DoneOk[int, error](0)
	})

	got := runToCompletion(t, recovered)
	require.True(t, got.IsOk())
	require.Equal(t, 0, got.Value())
}

func TestNominal_JoinPromises2CombinesBothResults(t *testing.T) {
	p1 := asyncring.MakeOkPromise[int, struct{}](1)
	p2 := asyncring.MakeOkPromise[string, struct{}]("a")

	joined := asyncring.JoinPromises2(p1, p2)
	got := runToCompletion(t, joined)
	require.True(t, got.IsOk())

	value := got.Value()
	require.True(t, value.First.IsOk())
	require.True(t, value.Second.IsOk())
	require.Equal(t, 1, value.First.Value())
	require.Equal(t, "a", value.Second.Value())
}

func TestNominal_JoinPromiseVectorPreservesOrder(t *testing.T) {
	promises := []asyncring.Promise[int, struct{}]{
		asyncring.MakeOkPromise[int, struct{}](1),
		asyncring.MakeOkPromise[int, struct{}](2),
		asyncring.MakeOkPromise[int, struct{}](3),
	}

	got := runToCompletion(t, asyncring.JoinPromiseVector(promises))
	require.True(t, got.IsOk())

	results := got.Value()
	require.Len(t, results, 3)
	for i, r := range results {
		require.True(t, r.IsOk())
		require.Equal(t, i+1, r.Value())
	}
}
