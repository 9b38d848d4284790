package grub2

import (
	"regexp"
	"strings"
)

// serialOptionsRE matches the kernel serial console options, bbbbpnf:
// speed, parity, word length and flow control
var serialOptionsRE = regexp.MustCompile(`^(\d+)?([noe])?(\d)?(r)?$`)

// serialOptions are the settings of a serial console. The kernel syntax
// has no stop bits, GRUB's default of one is always used.
type serialOptions struct {
	speed  string
	parity string
	word   string
}

func parseSerialOptions(opts string) serialOptions {
	s := serialOptions{
		speed:  "9600",
		parity: "n",
		word:   "8",
	}
	m := serialOptionsRE.FindStringSubmatch(opts)
	if m == nil {
		return s
	}
	if m[1] != "" {
		s.speed = m[1]
	}
	if m[2] != "" {
		s.parity = m[2]
	}
	if m[3] != "" {
		s.word = m[3]
	}
	return s
}

// IsSerial returns true for the ttyS consoles.
func (c *ConsoleConfig) IsSerial() bool {
	return strings.Contains(c.Device, "ttyS")
}

// SerialCommand returns the GRUB serial command for the console, e.g.
// "serial --unit=1 --speed=115200". Settings matching the GRUB defaults
// are left out. The command is empty for other consoles.
func (c *ConsoleConfig) SerialCommand() string {
	if c == nil || !c.IsSerial() {
		return ""
	}

	command := []string{"serial"}
	unit := c.Device[strings.Index(c.Device, "ttyS")+len("ttyS"):]
	if unit != "" && unit != "0" {
		command = append(command, "--unit="+unit)
	}

	s := parseSerialOptions(c.Options)
	if s.speed != "9600" {
		command = append(command, "--speed="+s.speed)
	}
	switch s.parity {
	case "o":
		command = append(command, "--parity=odd")
	case "e":
		command = append(command, "--parity=even")
	}
	if s.word != "8" {
		command = append(command, "--word="+s.word)
	}
	return strings.Join(command, " ")
}

// KernelArg returns the console= argument for the kernel command line.
func (c *ConsoleConfig) KernelArg() string {
	if c.Options == "" {
		return "console=" + c.Device
	}
	return "console=" + c.Device + "," + c.Options
}

// WriteConsoleArgs adds the console to the kernel arguments.
func (i *Installer) WriteConsoleArgs() {
	c := i.State.Console
	if c == nil || c.Device == "" {
		return
	}
	i.State.BootArgs.Add(c.KernelArg())
}
