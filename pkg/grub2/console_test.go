package grub2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osbuild/bootloader/internal/testdisk"
	"github.com/osbuild/bootloader/pkg/grub2"
	"github.com/osbuild/bootloader/pkg/platform"
)

func TestSerialCommand(t *testing.T) {
	for _, tc := range []struct {
		console  grub2.ConsoleConfig
		expected string
	}{
		{grub2.ConsoleConfig{Device: "ttyS0"}, "serial"},
		{grub2.ConsoleConfig{Device: "ttyS0", Options: "9600n8"}, "serial"},
		{grub2.ConsoleConfig{Device: "ttyS1", Options: "115200n8"}, "serial --unit=1 --speed=115200"},
		{grub2.ConsoleConfig{Device: "ttyS0", Options: "19200e7"}, "serial --speed=19200 --parity=even --word=7"},
		{grub2.ConsoleConfig{Device: "ttyS2", Options: "57600o8r"}, "serial --unit=2 --speed=57600 --parity=odd"},
		{grub2.ConsoleConfig{Device: "ttyS0", Options: "bogus"}, "serial"},
		{grub2.ConsoleConfig{Device: "tty0"}, ""},
		{grub2.ConsoleConfig{Device: "hvc0", Options: "115200"}, ""},
	} {
		assert.Equal(t, tc.expected, tc.console.SerialCommand(), "%+v", tc.console)
	}
}

func TestWriteConsoleArgs(t *testing.T) {
	for _, tc := range []struct {
		console  *grub2.ConsoleConfig
		expected string
	}{
		{nil, ""},
		{&grub2.ConsoleConfig{}, ""},
		{&grub2.ConsoleConfig{Device: "tty0"}, "console=tty0"},
		{&grub2.ConsoleConfig{Device: "ttyS0", Options: "115200n8"}, "console=ttyS0,115200n8"},
	} {
		state := grub2.NewState(nil, nil)
		state.Console = tc.console
		f := newFixture(t, testdisk.MakeFakeLayout(), state, platform.PLATFORM_PC)

		f.installer.WriteConsoleArgs()
		f.installer.WriteConsoleArgs()
		assert.Equal(t, tc.expected, state.BootArgs.String())
	}
}
