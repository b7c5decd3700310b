// Package shard partitions a global task list across independently
// launched workers with no coordinator: shard membership is a stable hash
// of the task id, and completed work is recomputed from the filesystem
// rather than persisted queue state, which makes the whole pipeline safe
// to crash and restart.
package shard

import (
	"crypto/sha256"
	"math/big"
)

// State of a task iterator.
type State int

const (
	NotStarted State = iota
	Iterating
	Exhausted
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Iterating:
		return "iterating"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// TaskIterator walks an ordered task list and yields the tasks that belong
// to this worker's shard and are not already completed. Exhaustion is the
// expected terminal signal, not an error.
type TaskIterator struct {
	workerID     int
	totalWorkers int
	tasks        []string
	completed    map[string]struct{}
	cursor       int
	state        State
}

// NewTaskIterator builds an iterator for one worker. completed typically
// comes from scanning output files on disk; it may be nil.
func NewTaskIterator(workerID, totalWorkers int, tasks []string, completed map[string]struct{}) *TaskIterator {
	return &TaskIterator{
		workerID:     workerID,
		totalWorkers: totalWorkers,
		tasks:        tasks,
		completed:    completed,
		state:        NotStarted,
	}
}

// Next returns the next task for this shard, or ok=false once the list is
// exhausted. After exhaustion every call returns ok=false.
func (it *TaskIterator) Next() (task string, ok bool) {
	if it.state == Exhausted {
		return "", false
	}
	it.state = Iterating
	for it.cursor < len(it.tasks) {
		t := it.tasks[it.cursor]
		it.cursor++
		if _, done := it.completed[t]; done {
			continue
		}
		if InShard(t, it.workerID, it.totalWorkers) {
			return t, true
		}
	}
	it.state = Exhausted
	return "", false
}

// State reports where the iterator is in its lifecycle.
func (it *TaskIterator) State() State {
	return it.state
}

// InShard reports whether taskID belongs to the given shard. Membership is
// sha256(taskID) mod count: stable across processes, runs and languages,
// which is what lets uncoordinated workers partition work disjointly. A
// count of one (or less) claims everything.
func InShard(taskID string, index, count int) bool {
	if count <= 1 {
		return true
	}
	sum := sha256.Sum256([]byte(taskID))
	h := new(big.Int).SetBytes(sum[:])
	mod := new(big.Int).Mod(h, big.NewInt(int64(count)))
	return mod.Int64() == int64(index)
}
