package shard

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockedAppendCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "progress.csv")
	require.NoError(t, AppendLine(path, "hello"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestConcurrentAppendsProduceIntactRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.csv")
	const writers = 8
	const rowsPerWriter = 25

	var wg sync.WaitGroup
	errs := make([]error, writers)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < rowsPerWriter; i++ {
				row := []string{fmt.Sprintf("worker-%d", w), fmt.Sprintf("iteration-%06d", i), "done"}
				if err := AppendCSVRow(path, row); err != nil {
					errs[w] = err
					return
				}
			}
		}(w)
	}
	wg.Wait()
	for w, err := range errs {
		require.NoError(t, err, "worker %d", w)
	}

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err, "interleaved writes corrupted the CSV")
	assert.Len(t, rows, writers*rowsPerWriter)
	for _, row := range rows {
		require.Len(t, row, 3)
	}
}

func TestLockedAppendPropagatesWriteErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.csv")
	wantErr := fmt.Errorf("disk on fire")

	err := LockedAppend(path, func(*os.File) error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}
