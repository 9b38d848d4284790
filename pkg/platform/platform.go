package platform

import (
	"fmt"

	"github.com/osbuild/bootloader/pkg/arch"
)

// Platform selects the firmware family the boot loader is installed for.
type Platform uint64

const (
	// BIOS firmware, boot record in the MBR
	PLATFORM_PC Platform = iota
	// IBM POWER, PReP partition and NVRAM boot list
	PLATFORM_OPENFIRMWARE
)

func (p Platform) String() string {
	switch p {
	case PLATFORM_PC:
		return "pc"
	case PLATFORM_OPENFIRMWARE:
		return "openfirmware"
	default:
		panic(fmt.Errorf("unknown platform %d", p))
	}
}

var platformMap = map[string]Platform{
	"pc":           PLATFORM_PC,
	"openfirmware": PLATFORM_OPENFIRMWARE,

	// common aliases
	"bios":     PLATFORM_PC,
	"ipseries": PLATFORM_OPENFIRMWARE,
	"prep":     PLATFORM_OPENFIRMWARE,
}

func FromString(s string) (Platform, error) {
	p, ok := platformMap[s]
	if !ok {
		return 0, fmt.Errorf("unknown platform %q", s)
	}
	return p, nil
}

// ForArch returns the platform a machine of the given architecture boots
// with.
func ForArch(a arch.Arch) Platform {
	switch a {
	case arch.ARCH_PPC64, arch.ARCH_PPC64LE:
		return PLATFORM_OPENFIRMWARE
	default:
		return PLATFORM_PC
	}
}

// Current is the platform of the running machine.
func Current() Platform {
	return ForArch(arch.Current())
}

// Tools names the external binaries used to install and configure the
// boot loader. The names differ between distributions (grub2-* vs grub-*).
type Tools struct {
	Install    string
	MkConfig   string
	SetDefault string
	EditEnv    string
	MkPasswd   string
	NVRAM      string
	OFPathname string
	XFSFreeze  string
}

func DefaultTools() Tools {
	return Tools{
		Install:    "grub2-install",
		MkConfig:   "grub2-mkconfig",
		SetDefault: "grub2-set-default",
		EditEnv:    "grub2-editenv",
		MkPasswd:   "grub2-mkpasswd-pbkdf2",
		NVRAM:      "nvram",
		OFPathname: "ofpathname",
		XFSFreeze:  "xfs_freeze",
	}
}
