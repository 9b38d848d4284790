package disk

import (
	"fmt"

	"github.com/osbuild/bootloader/pkg/datasizes"
)

// DefaultSectorSize is used for disks that do not state their logical
// sector size.
const DefaultSectorSize = 512

type Disk struct {
	Name       string             `yaml:"name"`
	Path       string             `yaml:"path"`
	Label      PartitionTableType `yaml:"label"`
	SectorSize uint64             `yaml:"sector_size"`
	Size       datasizes.Size     `yaml:"size"`

	Partitions []*Partition `yaml:"partitions"`
}

func (d *Disk) GetName() string {
	return d.Name
}

func (d *Disk) GetPath() string {
	if d.Path == "" {
		return "/dev/" + d.Name
	}
	return d.Path
}

func (d *Disk) GetKind() DeviceKind {
	return KIND_DISK
}

func (d *Disk) GetDisks() []*Disk {
	return []*Disk{d}
}

func (d *Disk) GetFSType() FSType {
	return FS_NONE
}

func (d *Disk) GetMountpoint() string {
	return ""
}

func (d *Disk) GetSectorSize() uint64 {
	if d.SectorSize == 0 {
		return DefaultSectorSize
	}
	return d.SectorSize
}

// HasBIOSBoot returns true if any partition of the disk is a BIOS boot
// partition.
func (d *Disk) HasBIOSBoot() bool {
	for _, p := range d.Partitions {
		if p.IsBIOSBoot() {
			return true
		}
	}
	return false
}

// attach numbers the partitions that do not carry an explicit number and
// links them back to the disk.
func (d *Disk) attach() error {
	if d.Name == "" {
		return fmt.Errorf("disk without a name")
	}
	seen := make(map[int]bool, len(d.Partitions))
	for idx, p := range d.Partitions {
		if p == nil {
			return fmt.Errorf("disk %s: partition %d is empty", d.Name, idx)
		}
		if p.Number == 0 {
			p.Number = idx + 1
		}
		if seen[p.Number] {
			return fmt.Errorf("disk %s: duplicate partition number %d", d.Name, p.Number)
		}
		seen[p.Number] = true
		p.disk = d
	}
	return nil
}
