package grub2

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/osbuild/bootloader/pkg/disk"
	"github.com/osbuild/bootloader/pkg/osrelease"
)

// BootTarget is a pair of devices the boot loader is installed to. The
// primary boot record goes to Stage1, the core image is read from Stage2.
// Both may be the same device.
type BootTarget struct {
	Stage1 disk.Device
	Stage2 disk.Device
}

func (t BootTarget) SameDevice() bool {
	return t.Stage1 == t.Stage2
}

func (t BootTarget) String() string {
	return fmt.Sprintf("%s -> %s", devName(t.Stage1), devName(t.Stage2))
}

// ConsoleConfig selects the console the kernel and the boot loader use.
type ConsoleConfig struct {
	// Device is the kernel console name, e.g. ttyS0 or hvc0.
	Device string
	// Options uses the kernel syntax, e.g. 115200n8.
	Options string
}

// State collects everything needed to write the boot loader for one
// installation run.
type State struct {
	Stage1 disk.Device
	Stage2 disk.Device

	// Targets overrides the install targets derived from Stage1 and
	// Stage2.
	Targets []BootTarget

	// Disks are the disks the boot loader should know about in addition
	// to the ones holding the stages.
	Disks []*disk.Disk

	Timeout int

	// Images are the labels of the boot entries in menu order, Default
	// is the label of the entry that boots by default.
	Images  []string
	Default string

	Password          string
	EncryptedPassword string

	Console *ConsoleConfig

	// BootArgs is shared with other parts of the installer that add
	// kernel arguments (root=, rd.lvm.lv=, ...).
	BootArgs *Arguments
	// ExtraArgs are the boot-loader specific kernel arguments requested
	// by the user.
	ExtraArgs []string

	UseBLS        bool
	MenuAutoHide  bool
	KeepMBR       bool
	KeepBootOrder bool
	Skip          bool
	UpdateOnly    bool

	// Errors and Warnings are the results of the last layout check.
	Errors   []string
	Warnings []string

	// Advisories collects the failures that did not stop the write.
	Advisories *multierror.Error
}

func NewState(stage1, stage2 disk.Device) *State {
	return &State{
		Stage1:   stage1,
		Stage2:   stage2,
		BootArgs: NewArguments(),
	}
}

// Stage1Disk returns the disk holding the stage1 device or nil if it
// cannot be determined.
func (s *State) Stage1Disk() *disk.Disk {
	return diskOf(s.Stage1)
}

// InstallTargets returns the stage1/stage2 pairs to install to. A stage2
// on an MD array gets a boot record on every member's disk when stage1 is
// one of those disks, so the system still boots with a disk missing.
func (s *State) InstallTargets() []BootTarget {
	if len(s.Targets) > 0 {
		return s.Targets
	}
	if s.Stage1 == nil || s.Stage2 == nil {
		return nil
	}

	if array, ok := s.Stage2.(*disk.RAIDArray); ok {
		if d, ok := s.Stage1.(*disk.Disk); ok && slices.Contains(array.GetDisks(), d) {
			var targets []BootTarget
			for _, member := range array.Members {
				if member.Disk() == nil {
					continue
				}
				targets = append(targets, BootTarget{Stage1: member.Disk(), Stage2: array})
			}
			return targets
		}
	}

	return []BootTarget{{Stage1: s.Stage1, Stage2: s.Stage2}}
}

// missingTarget describes why there are no install targets.
func (s *State) missingTarget() error {
	if s.Stage1 == nil {
		return fmt.Errorf("%w: cannot determine the stage1 device", ErrConfiguration)
	}
	return fmt.Errorf("%w: cannot determine the stage2 device", ErrConfiguration)
}

func (s *State) hasPassword() bool {
	return s.Password != "" || s.EncryptedPassword != ""
}

func (s *State) addAdvisory(err error) {
	logrus.Error(err)
	s.Advisories = multierror.Append(s.Advisories, err)
}

// stage2 requirements
var (
	stage2DeviceKinds = []disk.DeviceKind{
		disk.KIND_PARTITION,
		disk.KIND_MDARRAY,
	}
	stage2RAIDLevels = []disk.RAIDLevel{
		disk.RAID0,
		disk.RAID1,
		disk.RAID4,
		disk.RAID5,
		disk.RAID6,
		disk.RAID10,
	}
	stage2RAIDMetadata = []string{"0", "0.90", "1.0", "1.2"}
)

// Stage2FormatTypes returns the filesystems the core image can be read
// from, in order of preference.
func Stage2FormatTypes(productName string) []disk.FSType {
	if osrelease.IsRedHat(productName) {
		return []disk.FSType{disk.FS_XFS, disk.FS_EXT4, disk.FS_EXT3, disk.FS_EXT2}
	}
	return []disk.FSType{disk.FS_EXT4, disk.FS_EXT3, disk.FS_EXT2, disk.FS_BTRFS, disk.FS_XFS}
}

// ValidateStage2 checks that the stage2 device is of a supported kind,
// RAID level, metadata version and format.
func (s *State) ValidateStage2(productName string) error {
	dev := s.Stage2
	if dev == nil {
		return fmt.Errorf("%w: no stage2 device", ErrUnsupportedStage2)
	}
	if !slices.Contains(stage2DeviceKinds, dev.GetKind()) {
		return fmt.Errorf("%w: %s is a %s", ErrUnsupportedStage2, dev.GetName(), dev.GetKind())
	}
	if array, ok := dev.(*disk.RAIDArray); ok {
		if !slices.Contains(stage2RAIDLevels, array.Level) {
			return fmt.Errorf("%w: %s uses RAID level %q", ErrUnsupportedStage2, array.Name, array.Level)
		}
		if !slices.Contains(stage2RAIDMetadata, array.MetadataVersion) {
			return fmt.Errorf("%w: %s uses RAID metadata version %q", ErrUnsupportedStage2, array.Name, array.MetadataVersion)
		}
	}
	if !slices.Contains(Stage2FormatTypes(productName), dev.GetFSType()) {
		return fmt.Errorf("%w: %s is formatted %q", ErrUnsupportedStage2, dev.GetName(), dev.GetFSType())
	}
	return nil
}

func diskOf(dev disk.Device) *disk.Disk {
	switch d := dev.(type) {
	case nil:
		return nil
	case *disk.Disk:
		return d
	case *disk.Partition:
		return d.Disk()
	}
	if disks := dev.GetDisks(); len(disks) > 0 {
		return disks[0]
	}
	return nil
}

func devName(dev disk.Device) string {
	if dev == nil {
		return "<none>"
	}
	return dev.GetName()
}
