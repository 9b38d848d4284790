// Package sysexec runs external tools on behalf of the installer.
//
// All tools are run synchronously. A non-zero exit code is not an error
// of Run: callers inspect Result.ExitCode and decide whether the failure
// is fatal for them.
package sysexec

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/osbuild/bootloader/pkg/shutil"
)

// Cmd describes a single tool invocation.
type Cmd struct {
	Name string
	Args []string

	// Stdin is fed to the process if not nil.
	Stdin []byte

	// Root is the directory the process is chrooted into. Empty or "/"
	// runs the tool in the installer environment.
	Root string

	// EnvPrune lists environment variables removed from the inherited
	// environment.
	EnvPrune []string
}

func (c Cmd) String() string {
	return shutil.QuoteCommand(c.Name, c.Args...)
}

// Result is the outcome of a tool that could be started.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Failed returns true if the tool exited with a non-zero code.
func (r *Result) Failed() bool {
	return r.ExitCode != 0
}

// Output returns the captured stdout with surrounding whitespace removed.
func (r *Result) Output() string {
	return strings.TrimSpace(string(r.Stdout))
}

// Runner executes tools. The error is only set if the tool could not be
// run at all (e.g. it is missing).
type Runner interface {
	Run(cmd Cmd) (*Result, error)
}

// HostRunner runs tools with os/exec.
type HostRunner struct{}

func NewHostRunner() *HostRunner {
	return &HostRunner{}
}

func (r *HostRunner) Run(c Cmd) (*Result, error) {
	cmd := exec.Command(c.Name, c.Args...)
	if c.Root != "" && c.Root != "/" {
		cmd.SysProcAttr = &syscall.SysProcAttr{Chroot: c.Root}
		cmd.Dir = "/"
	}
	cmd.Env = pruneEnv(os.Environ(), c.EnvPrune)
	if c.Stdin != nil {
		cmd.Stdin = bytes.NewReader(c.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		logrus.Debugf("Exec: %s (root=%s)", c, c.Root)
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		logrus.Debugf("Exec: %s (root=%s) exited with %d\n%s", c, c.Root, res.ExitCode, stderr.String())
	default:
		logrus.Debugf("Exec: %s (root=%s) failed: %v", c, c.Root, err)
		return nil, err
	}
	return res, nil
}

func pruneEnv(env []string, prune []string) []string {
	if len(prune) == 0 {
		return env
	}
	out := make([]string, 0, len(env))
outer:
	for _, kv := range env {
		for _, name := range prune {
			if strings.HasPrefix(kv, name+"=") {
				continue outer
			}
		}
		out = append(out, kv)
	}
	return out
}
