//go:build windows

package process

import (
	"errors"
	"os/exec"
	"strconv"
)

// taskkill exits with 128 when the process does not exist.
const taskkillNotFound = 128

// KillTree force-kills pid and its children with taskkill /T. A process
// that is already gone is not an error.
func KillTree(pid int) error {
	if err := checkPID(pid); err != nil {
		return err
	}

	err := exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == taskkillNotFound {
		return nil
	}
	return err
}
