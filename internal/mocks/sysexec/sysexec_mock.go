package sysexec_mock

import (
	"strings"

	"github.com/osbuild/bootloader/pkg/sysexec"
)

// Runner is a sysexec.Runner that records every invocation and returns
// scripted results.
//
// Results are looked up by the full command line ("nvram --print-config=boot-device")
// first and by the tool name second. Unknown commands succeed with no
// output.
type Runner struct {
	Results map[string]sysexec.Result
	Errors  map[string]error

	// Calls holds every command in invocation order.
	Calls []sysexec.Cmd

	// Journal interleaves the command lines with events recorded via
	// Note, so tests can check the ordering of commands and other side
	// effects such as syncs.
	Journal []string
}

func NewRunner() *Runner {
	return &Runner{
		Results: map[string]sysexec.Result{},
		Errors:  map[string]error{},
	}
}

// On scripts the result for the given tool name or command line.
func (r *Runner) On(key string, res sysexec.Result) *Runner {
	r.Results[key] = res
	return r
}

// Fail makes the given tool name or command line exit with code.
func (r *Runner) Fail(key string, code int) *Runner {
	return r.On(key, sysexec.Result{ExitCode: code})
}

func (r *Runner) Note(event string) {
	r.Journal = append(r.Journal, event)
}

func (r *Runner) Run(cmd sysexec.Cmd) (*sysexec.Result, error) {
	r.Calls = append(r.Calls, cmd)
	line := joinArgs(cmd.Name, cmd.Args...)
	r.Note(line)

	for _, key := range []string{line, cmd.Name} {
		if err, ok := r.Errors[key]; ok {
			return nil, err
		}
		if res, ok := r.Results[key]; ok {
			res := res
			return &res, nil
		}
	}
	return &sysexec.Result{}, nil
}

// CallsTo returns the invocations of the given tool.
func (r *Runner) CallsTo(name string) []sysexec.Cmd {
	var calls []sysexec.Cmd
	for _, c := range r.Calls {
		if c.Name == name {
			calls = append(calls, c)
		}
	}
	return calls
}

// CommandLines returns all invocations as plain command lines.
func (r *Runner) CommandLines() []string {
	lines := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		lines = append(lines, joinArgs(c.Name, c.Args...))
	}
	return lines
}

func joinArgs(name string, arg ...string) string {
	return strings.Join(append([]string{name}, arg...), " ")
}
