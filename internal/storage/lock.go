package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the result file lock
var ErrLocked = errors.New("result file is in use by another labeling session")

// FileLock guards a result file against concurrent writers in other processes
type FileLock struct {
	lock *flock.Flock
}

// LockPath returns the lock file path used for a result file
func LockPath(resultPath string) string {
	return resultPath + ".lock"
}

// AcquireLock takes an exclusive, non-blocking lock next to resultPath
func AcquireLock(resultPath string) (*FileLock, error) {
	if err := os.MkdirAll(filepath.Dir(resultPath), 0o755); err != nil {
		return nil, fmt.Errorf("create result directory: %w", err)
	}

	lock := flock.New(LockPath(resultPath))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire result lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, resultPath)
	}
	return &FileLock{lock: lock}, nil
}

// Release unlocks and removes the lock file
func (l *FileLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release result lock: %w", err)
	}
	_ = os.Remove(l.lock.Path())
	return nil
}
