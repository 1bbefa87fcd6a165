package par

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForCoversAllIndices(t *testing.T) {
	const n = 1000
	var hits [n]atomic.Int32
	For(8, n, func(worker, i int) {
		hits[i].Add(1)
	})
	for i := range hits {
		assert.Equal(t, int32(1), hits[i].Load(), "index %d", i)
	}
}

func TestForWorkerIDsBounded(t *testing.T) {
	const workers = 4
	var bad atomic.Int32
	For(workers, 100, func(worker, i int) {
		if worker < 0 || worker >= workers {
			bad.Add(1)
		}
	})
	require.Zero(t, bad.Load())
}

func TestForSequentialFallback(t *testing.T) {
	var order []int
	For(1, 5, func(worker, i int) {
		assert.Zero(t, worker)
		order = append(order, i)
	})
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestForZeroItems(t *testing.T) {
	called := false
	For(4, 0, func(worker, i int) { called = true })
	assert.False(t, called)
}

func TestForMoreWorkersThanItems(t *testing.T) {
	var count atomic.Int32
	For(16, 3, func(worker, i int) {
		assert.Less(t, worker, 3)
		count.Add(1)
	})
	assert.Equal(t, int32(3), count.Load())
}

func TestWorkers(t *testing.T) {
	assert.Equal(t, 5, Workers(5))
	assert.Positive(t, Workers(0))
	assert.Positive(t, Workers(-1))
}
