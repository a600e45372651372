package platform

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created inside the download folder while a run is active
const LockFileName = ".yt-batch.lock"

// ErrLocked is returned when another run already owns the folder
var ErrLocked = errors.New("folder is in use by another run")

// RunLock guards a download folder against concurrent runs
type RunLock struct {
	lock *flock.Flock
}

// AcquireRunLock takes the folder lock without waiting
func AcquireRunLock(folder string) (*RunLock, error) {
	path := filepath.Join(folder, LockFileName)
	l := flock.New(path)

	locked, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, folder)
	}
	return &RunLock{lock: l}, nil
}

// Path returns the lock file location
func (r *RunLock) Path() string {
	return r.lock.Path()
}

// Release unlocks the folder
func (r *RunLock) Release() error {
	if r == nil || r.lock == nil {
		return nil
	}
	return r.lock.Unlock()
}
