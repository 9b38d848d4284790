package grub2

import (
	"errors"
	"fmt"
	"strings"

	"github.com/osbuild/bootloader/pkg/sysexec"
)

var (
	// ErrConfiguration is returned for settings that cannot work, e.g.
	// asking to encrypt an empty password.
	ErrConfiguration = errors.New("boot loader configuration error")

	// ErrBootLoader is returned when a required boot loader tool fails.
	ErrBootLoader = errors.New("boot loader error")

	// ErrInstall is returned when installing the boot records fails. It
	// wraps ErrBootLoader.
	ErrInstall = fmt.Errorf("%w: boot loader install failed", ErrBootLoader)

	// ErrUnsupportedStage2 is returned when the stage2 device cannot hold
	// the boot loader's core image.
	ErrUnsupportedStage2 = errors.New("unsupported stage2 device")
)

func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsBootLoader returns true for failures of the boot loader tools,
// including install failures.
func IsBootLoader(err error) bool {
	return errors.Is(err, ErrBootLoader)
}

func IsInstall(err error) bool {
	return errors.Is(err, ErrInstall)
}

// toolError describes a tool that could not be run (err) or that exited
// with a non-zero code.
func toolError(msg string, res *sysexec.Result, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", msg, err)
	}
	stderr := strings.TrimSpace(string(res.Stderr))
	if stderr == "" {
		return fmt.Errorf("%s: exit code %d", msg, res.ExitCode)
	}
	return fmt.Errorf("%s: exit code %d: %s", msg, res.ExitCode, stderr)
}
