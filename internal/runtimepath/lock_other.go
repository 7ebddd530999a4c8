//go:build !unix

package runtimepath

import "errors"

// ErrLocked is returned when another process holds the lock.
var ErrLocked = errors.New("another floatpane daemon is running")

// Lock is a placeholder on platforms without flock; it never conflicts.
type Lock struct {
	path string
}

// AcquireLock returns an unenforced lock.
func AcquireLock() (*Lock, error) {
	path, err := LockPath()
	if err != nil {
		return nil, err
	}
	return AcquireLockAt(path)
}

// AcquireLockAt returns an unenforced lock.
func AcquireLockAt(path string) (*Lock, error) {
	return &Lock{path: path}, nil
}

func (l *Lock) Path() string { return l.path }

func (l *Lock) Release() error { return nil }
