package grub2

import (
	"path/filepath"

	"github.com/osbuild/bootloader/pkg/disk"
	"github.com/osbuild/bootloader/pkg/platform"
	"github.com/osbuild/bootloader/pkg/sysexec"
)

// Installer writes the GRUB2 configuration and boot records for one
// installation run.
type Installer struct {
	State *State

	inv      disk.Inventory
	opts     Options
	strategy *strategy
}

func New(inv disk.Inventory, state *State, opts Options) *Installer {
	opts.setDefaults()
	if state.BootArgs == nil {
		state.BootArgs = NewArguments()
	}
	return &Installer{
		State:    state,
		inv:      inv,
		opts:     opts,
		strategy: strategyFor(opts.Platform),
	}
}

func (i *Installer) ProductName() string {
	return i.opts.ProductName
}

// strategy holds the platform specific parts of the installation.
type strategy struct {
	terminalType string
	// extraDefaults are appended to the defaults file
	extraDefaults []string
	// installArgs are passed to every install tool invocation
	installArgs []string
	// preInstall runs before the boot records are installed
	preInstall func(i *Installer)
}

func strategyFor(p platform.Platform) *strategy {
	switch p {
	case platform.PLATFORM_OPENFIRMWARE:
		return &strategy{
			terminalType: "ofconsole",
			extraDefaults: []string{
				// keep the console at a standard 80x24
				`GRUB_TERMINFO="terminfo -g 80x24 console"`,
				`GRUB_DISABLE_OS_PROBER=true`,
			},
			// the NVRAM boot list is managed by preInstall
			installArgs: []string{"--no-nvram"},
			preInstall:  (*Installer).updateNVRAMBootList,
		}
	default:
		return &strategy{
			terminalType: "console",
		}
	}
}

// sysrootPath returns p below the target root.
func (i *Installer) sysrootPath(p string) string {
	return filepath.Join(i.opts.Sysroot, p)
}

// runInSysroot runs a tool chrooted into the target system.
func (i *Installer) runInSysroot(name string, args ...string) (*sysexec.Result, error) {
	return i.opts.Runner.Run(sysexec.Cmd{
		Name: name,
		Args: args,
		Root: i.opts.Sysroot,
	})
}
