// Package process terminates the browser process tree left behind by a
// converter.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID is returned for pids that would address more than one
// unrelated process (zero or negative).
var ErrInvalidPID = errors.New("invalid pid")

func checkPID(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return nil
}
