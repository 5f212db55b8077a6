package store

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// DefaultLockTimeout is the default timeout for acquiring an export file lock.
const DefaultLockTimeout = 5 * time.Second

// lockRetryDelay is the polling interval while waiting for a lock.
const lockRetryDelay = 100 * time.Millisecond

// WithLock acquires an exclusive lock on path.lock, runs fn, then releases.
func WithLock(path string, timeout time.Duration, fn func() error) error {
	return withLock(path, timeout, false, fn)
}

// WithReadLock acquires a shared lock on path.lock, runs fn, then releases.
// Concurrent readers do not block each other; a writer holding WithLock does.
func WithReadLock(path string, timeout time.Duration, fn func() error) error {
	return withLock(path, timeout, true, fn)
}

func withLock(path string, timeout time.Duration, shared bool, fn func() error) error {
	lockPath := path + ".lock"
	fileLock := flock.New(lockPath)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	kind := "lock"
	tryLock := fileLock.TryLockContext
	if shared {
		kind = "read lock"
		tryLock = fileLock.TryRLockContext
	}

	locked, err := tryLock(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquiring %s on %s: %w", kind, lockPath, err)
	}
	if !locked {
		return fmt.Errorf("timed out acquiring %s on %s", kind, lockPath)
	}
	defer fileLock.Unlock()

	return fn()
}
