package shutil

import (
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^\w@%+=:,./-]`)

// Quote returns a shell-escaped version of the string s, the same way
// python's shlex.quote() does it.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if !unsafeChars.MatchString(s) {
		return s
	}

	// use single quotes, and put single quotes into double quotes
	// the string $'b is then quoted as '$'"'"'b'
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// QuoteCommand renders a command and its arguments as a single shell
// line, suitable for logging.
func QuoteCommand(name string, args ...string) string {
	l := make([]string, 0, len(args)+1)
	l = append(l, Quote(name))
	for _, arg := range args {
		l = append(l, Quote(arg))
	}
	return strings.Join(l, " ")
}
