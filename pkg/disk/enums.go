package disk

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type PartitionTableType uint64

const (
	PT_NONE PartitionTableType = iota
	PT_DOS
	PT_GPT
)

func (t PartitionTableType) String() string {
	switch t {
	case PT_NONE:
		return ""
	case PT_DOS:
		return "dos"
	case PT_GPT:
		return "gpt"
	default:
		panic(fmt.Sprintf("unknown or unsupported partition table type with enum value %d", t))
	}
}

// GrubLabel returns the partition table name used in GRUB device names,
// e.g. the "msdos" in (hd0,msdos1).
func (t PartitionTableType) GrubLabel() string {
	switch t {
	case PT_DOS:
		return "msdos"
	default:
		return t.String()
	}
}

func (t *PartitionTableType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	ptt, err := NewPartitionTableType(s)
	if err != nil {
		return err
	}
	*t = ptt
	return nil
}

func NewPartitionTableType(s string) (PartitionTableType, error) {
	switch s {
	case "":
		return PT_NONE, nil
	case "dos", "msdos":
		return PT_DOS, nil
	case "gpt":
		return PT_GPT, nil
	default:
		return PT_NONE, fmt.Errorf("unknown or unsupported partition table type name: %s", s)
	}
}

// FSType is the on-disk format of a device. Besides filesystems it covers
// the formats of container members (LVM physical volumes, MD members).
type FSType uint64

const (
	FS_NONE FSType = iota
	FS_VFAT
	FS_EXT2
	FS_EXT3
	FS_EXT4
	FS_XFS
	FS_BTRFS
	FS_SWAP
	FS_LVMPV
	FS_MDMEMBER
)

var fsTypeNames = []string{
	FS_NONE:     "",
	FS_VFAT:     "vfat",
	FS_EXT2:     "ext2",
	FS_EXT3:     "ext3",
	FS_EXT4:     "ext4",
	FS_XFS:      "xfs",
	FS_BTRFS:    "btrfs",
	FS_SWAP:     "swap",
	FS_LVMPV:    "lvmpv",
	FS_MDMEMBER: "mdmember",
}

func (f FSType) String() string {
	if int(f) >= len(fsTypeNames) {
		panic(fmt.Sprintf("unknown or unsupported filesystem type with enum value %d", f))
	}
	return fsTypeNames[f]
}

func NewFSType(s string) (FSType, error) {
	for i, name := range fsTypeNames {
		if name == s {
			return FSType(i), nil
		}
	}
	return FS_NONE, fmt.Errorf("unknown or unsupported filesystem type name: %s", s)
}

func (f *FSType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	fst, err := NewFSType(s)
	if err != nil {
		return err
	}
	*f = fst
	return nil
}

type RAIDLevel uint64

const (
	RAID_NONE RAIDLevel = iota
	RAID_LINEAR
	RAID0
	RAID1
	RAID4
	RAID5
	RAID6
	RAID10
)

var raidLevelNames = []string{
	RAID_NONE:   "",
	RAID_LINEAR: "linear",
	RAID0:       "raid0",
	RAID1:       "raid1",
	RAID4:       "raid4",
	RAID5:       "raid5",
	RAID6:       "raid6",
	RAID10:      "raid10",
}

func (l RAIDLevel) String() string {
	if int(l) >= len(raidLevelNames) {
		panic(fmt.Sprintf("unknown or unsupported raid level with enum value %d", l))
	}
	return raidLevelNames[l]
}

func NewRAIDLevel(s string) (RAIDLevel, error) {
	for i, name := range raidLevelNames {
		if name == s {
			return RAIDLevel(i), nil
		}
	}
	return RAID_NONE, fmt.Errorf("unknown or unsupported raid level name: %s", s)
}

func (l *RAIDLevel) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	lvl, err := NewRAIDLevel(s)
	if err != nil {
		return err
	}
	*l = lvl
	return nil
}

// DeviceKind is the type of a block device as far as the boot loader is
// concerned.
type DeviceKind uint64

const (
	KIND_DISK DeviceKind = iota
	KIND_PARTITION
	KIND_MDARRAY
	KIND_LVMLV
)

func (k DeviceKind) String() string {
	switch k {
	case KIND_DISK:
		return "disk"
	case KIND_PARTITION:
		return "partition"
	case KIND_MDARRAY:
		return "mdarray"
	case KIND_LVMLV:
		return "lvmlv"
	default:
		panic(fmt.Sprintf("unknown device kind with enum value %d", k))
	}
}
