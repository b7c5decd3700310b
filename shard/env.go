package shard

import (
	"fmt"
	"os"
	"strconv"
)

// Slurm array environment variables consulted by FromEnv.
const (
	envTaskID   = "SLURM_ARRAY_TASK_ID"
	envTaskMin  = "SLURM_ARRAY_TASK_MIN"
	envTaskMax  = "SLURM_ARRAY_TASK_MAX"
	envTaskStep = "SLURM_ARRAY_TASK_STEP"
)

// FromEnv infers (index, count) from Slurm array variables. Absent or
// malformed values never raise; they degrade to the single shard (0, 1),
// so a job launched outside an array just does all the work itself.
func FromEnv() (index, count int) {
	taskID := os.Getenv(envTaskID)
	if taskID == "" {
		return 0, 1
	}
	tid, err := strconv.Atoi(taskID)
	if err != nil {
		return 0, 1
	}

	min := 0
	if v := os.Getenv(envTaskMin); v != "" {
		min, err = strconv.Atoi(v)
		if err != nil {
			return 0, 1
		}
	}
	maxEnv := os.Getenv(envTaskMax)
	if maxEnv == "" {
		// Bounds unknown; treat as a single task.
		return 0, 1
	}
	max, err := strconv.Atoi(maxEnv)
	if err != nil {
		return 0, 1
	}
	step := 1
	if v := os.Getenv(envTaskStep); v != "" {
		step, err = strconv.Atoi(v)
		if err != nil || step <= 0 {
			return 0, 1
		}
	}

	count = (max-min)/step + 1
	index = (tid - min) / step
	if count <= 0 || index < 0 || index >= count {
		return 0, 1
	}
	return index, count
}

// Choose resolves the effective shard from CLI flags, falling back to the
// scheduler environment when the flags are absent. cliIndex is -1 when the
// flag was not given. Unlike the environment fallback, explicit flags are
// validated hard: a worker silently landing in the wrong shard would
// double-render or skip work.
func Choose(cliIndex, cliCount int) (index, count int, err error) {
	if cliCount > 1 {
		if cliIndex < 0 {
			return 0, 0, fmt.Errorf("shard: --shard-index is required when --shard-count > 1")
		}
		if cliIndex >= cliCount {
			return 0, 0, fmt.Errorf("shard: --shard-index must satisfy 0 <= index < count, got index=%d count=%d", cliIndex, cliCount)
		}
		return cliIndex, cliCount, nil
	}
	index, count = FromEnv()
	return index, count, nil
}
