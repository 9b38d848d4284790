package main

import (
	"io"

	"github.com/osbuild/bootloader/pkg/grub2"
)

var Run = run

func MockOsArgs(new []string) (restore func()) {
	saved := osArgs
	osArgs = new
	return func() {
		osArgs = saved
	}
}

func MockOsStdout(new io.Writer) (restore func()) {
	saved := osStdout
	osStdout = new
	return func() {
		osStdout = saved
	}
}

func MockNewOptions(f func(grub2.Options) grub2.Options) (restore func()) {
	saved := newOptions
	newOptions = f
	return func() {
		newOptions = saved
	}
}
