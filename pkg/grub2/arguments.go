package grub2

import (
	"strings"
)

// Arguments is an ordered set of kernel command line arguments.
type Arguments struct {
	args []string
	seen map[string]bool
}

func NewArguments(args ...string) *Arguments {
	a := &Arguments{seen: map[string]bool{}}
	a.Add(args...)
	return a
}

// Add appends the arguments that are not in the set yet. Empty strings
// are ignored.
func (a *Arguments) Add(args ...string) {
	if a.seen == nil {
		a.seen = map[string]bool{}
	}
	for _, arg := range args {
		if arg == "" || a.seen[arg] {
			continue
		}
		a.seen[arg] = true
		a.args = append(a.args, arg)
	}
}

func (a *Arguments) Contains(arg string) bool {
	return a.seen[arg]
}

func (a *Arguments) List() []string {
	return append([]string(nil), a.args...)
}

func (a *Arguments) Len() int {
	return len(a.args)
}

func (a *Arguments) String() string {
	return strings.Join(a.args, " ")
}
