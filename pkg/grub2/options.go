package grub2

import (
	"github.com/osbuild/bootloader/pkg/platform"
	"github.com/osbuild/bootloader/pkg/sysexec"
)

const (
	ConfigDir     = "/boot/grub2"
	ConfigFile    = ConfigDir + "/grub.cfg"
	DeviceMapFile = ConfigDir + "/device.map"
	PasswordFile  = ConfigDir + "/user.cfg"
	DefaultsFile  = "/etc/default/grub"

	// deviceMapBackupSuffix is appended to an existing device map before
	// a new one is written
	deviceMapBackupSuffix = ".bak"

	// BLS snippets are not supported while this tool manages the kernels
	legacyKernelTool = "/usr/sbin/new-kernel-pkg"

	passwordHashPrefix = "grub.pbkdf2."
)

// Options are the installation wide settings the boot loader code needs.
// Nothing is read from the environment.
type Options struct {
	// Sysroot is where the target system is mounted. Configuration files
	// are written below it and the GRUB tools run chrooted into it.
	Sysroot string
	// PhysicalRoot is the root the stage2 filesystem is synced in.
	// Defaults to Sysroot.
	PhysicalRoot string

	// ProductName is the name of the installed product, e.g. "Fedora".
	ProductName string
	// Generator is named in the header of generated files.
	Generator string

	Platform platform.Platform
	// Hardware is false when installing into a virtual machine or an
	// image, where the firmware settings must not be touched.
	Hardware bool

	Tools  platform.Tools
	Runner sysexec.Runner
	Syncer Syncer
}

func (o *Options) setDefaults() {
	if o.Sysroot == "" {
		o.Sysroot = "/"
	}
	if o.PhysicalRoot == "" {
		o.PhysicalRoot = o.Sysroot
	}
	if o.Generator == "" {
		o.Generator = "grub2-target"
	}
	if o.Tools == (platform.Tools{}) {
		o.Tools = platform.DefaultTools()
	}
	if o.Runner == nil {
		o.Runner = sysexec.NewHostRunner()
	}
	if o.Syncer == nil {
		o.Syncer = NewHostSyncer(o.Runner, o.Tools.XFSFreeze)
	}
}
