package shard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskList(n int) []string {
	tasks := make([]string, n)
	for i := range tasks {
		tasks[i] = fmt.Sprintf("iteration-%06d", i)
	}
	return tasks
}

func TestShardsPartitionTasksDisjointly(t *testing.T) {
	tasks := taskList(200)
	const workers = 4

	claimed := map[string]int{}
	for w := 0; w < workers; w++ {
		it := NewTaskIterator(w, workers, tasks, nil)
		for {
			task, ok := it.Next()
			if !ok {
				break
			}
			prev, dup := claimed[task]
			require.False(t, dup, "task %q claimed by workers %d and %d", task, prev, w)
			claimed[task] = w
		}
	}
	// Every task lands in exactly one shard.
	assert.Len(t, claimed, len(tasks))
}

func TestSingleShardClaimsEverything(t *testing.T) {
	tasks := taskList(30)
	it := NewTaskIterator(0, 1, tasks, nil)

	var got []string
	for {
		task, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, task)
	}
	assert.Equal(t, tasks, got)
}

func TestCompletedTasksAreSkipped(t *testing.T) {
	tasks := taskList(10)
	completed := map[string]struct{}{
		tasks[2]: {},
		tasks[7]: {},
	}
	it := NewTaskIterator(0, 1, tasks, completed)

	for {
		task, ok := it.Next()
		if !ok {
			break
		}
		_, done := completed[task]
		assert.False(t, done, "completed task %q was yielded", task)
	}
}

func TestIteratorStateMachine(t *testing.T) {
	it := NewTaskIterator(0, 1, taskList(2), nil)
	assert.Equal(t, NotStarted, it.State())

	_, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, Iterating, it.State())

	_, ok = it.Next()
	require.True(t, ok)
	_, ok = it.Next()
	require.False(t, ok)
	assert.Equal(t, Exhausted, it.State())

	// Exhaustion is terminal.
	_, ok = it.Next()
	assert.False(t, ok)
	assert.Equal(t, Exhausted, it.State())
}

func TestInShardIsStableAcrossCalls(t *testing.T) {
	const count = 5
	for _, task := range taskList(50) {
		first := -1
		for index := 0; index < count; index++ {
			if InShard(task, index, count) {
				require.Equal(t, -1, first, "task %q matched shards %d and %d", task, first, index)
				first = index
			}
		}
		require.NotEqual(t, -1, first, "task %q matched no shard", task)
		assert.True(t, InShard(task, first, count))
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "not-started", NotStarted.String())
	assert.Equal(t, "iterating", Iterating.String())
	assert.Equal(t, "exhausted", Exhausted.String())
}
