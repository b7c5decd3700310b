package shard

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/AnsonSavage/contrastive-lighting-dataset-creation-utils/log"
)

var logger = log.New("shard")

// LockedAppend opens path for appending, holds an exclusive advisory lock
// for the duration of write, and flushes before releasing so the next lock
// holder observes the bytes. Safe for concurrent writers across array
// tasks on one shared file; on NFS this relies on the cluster supporting
// flock semantics. The lock is always released, even when write fails;
// release problems after a successful write are warnings, not errors.
func LockedAppend(path string, write func(f *os.File) error) error {
	if parent := filepath.Dir(path); parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("shard: creating directory for %s: %w", path, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("shard: opening %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Warningf("closing %s: %v", path, cerr)
		}
	}()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return fmt.Errorf("shard: locking %s: %w", path, err)
	}
	defer func() {
		if uerr := unix.Flock(int(f.Fd()), unix.LOCK_UN); uerr != nil {
			logger.Warningf("unlocking %s: %v", path, uerr)
		}
	}()

	writeErr := write(f)

	// Flush to stable storage before the lock drops, regardless of the
	// write outcome, so partial progress is at least visible.
	if serr := f.Sync(); serr != nil && writeErr == nil {
		writeErr = fmt.Errorf("shard: syncing %s: %w", path, serr)
	}
	return writeErr
}

// AppendLine appends a single newline-terminated line under the lock.
func AppendLine(path, line string) error {
	return LockedAppend(path, func(f *os.File) error {
		_, err := fmt.Fprintln(f, line)
		return err
	})
}

// AppendCSVRow appends one CSV row under the lock.
func AppendCSVRow(path string, row []string) error {
	return LockedAppend(path, func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write(row); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	})
}
