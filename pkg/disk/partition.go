package disk

import (
	"fmt"
	"slices"
	"unicode"

	"github.com/google/uuid"

	"github.com/osbuild/bootloader/pkg/datasizes"
)

const (
	// BIOS boot partition, reserved for the GRUB core image on GPT disks
	BIOSBootPartitionGUID = "21686148-6449-6E6F-744E-656564454649"

	// PowerPC Reference Platform boot partition
	PRePartitionGUID = "9E1A2D38-C612-4316-AA26-8B49521E5A8B"

	// PReP partition id on dos partition tables
	PRePartitionDOSID = "41"
)

// Partition flags as reported by parted.
const (
	FlagBIOSGrub = "bios_grub"
	FlagPReP     = "prep"
	FlagBoot     = "boot"
)

type Partition struct {
	// Number is the 1-based position in the partition table. Partitions
	// loaded without a number get their list position.
	Number int `yaml:"number"`
	// Start of the partition in sectors of the owning disk
	Start uint64         `yaml:"start"`
	Size  datasizes.Size `yaml:"size"`
	// Partition type, e.g. 0x83 for MBR or a UUID for gpt
	Type  string   `yaml:"type"`
	Flags []string `yaml:"flags"`

	Format     FSType `yaml:"format"`
	Mountpoint string `yaml:"mountpoint"`

	disk *Disk
}

// NewPartition creates a partition that belongs to d. It is mostly useful
// for building layouts in code.
func NewPartition(d *Disk, p Partition) *Partition {
	np := p
	if np.Number == 0 {
		np.Number = len(d.Partitions) + 1
	}
	np.disk = d
	d.Partitions = append(d.Partitions, &np)
	return &np
}

// Disk returns the disk the partition belongs to.
func (p *Partition) Disk() *Disk {
	return p.disk
}

func (p *Partition) GetName() string {
	if p.disk == nil {
		return fmt.Sprintf("part%d", p.Number)
	}
	return partitionName(p.disk.Name, p.Number)
}

func (p *Partition) GetPath() string {
	if p.disk == nil {
		return "/dev/" + p.GetName()
	}
	return partitionName(p.disk.GetPath(), p.Number)
}

func (p *Partition) GetKind() DeviceKind {
	return KIND_PARTITION
}

func (p *Partition) GetDisks() []*Disk {
	if p.disk == nil {
		return nil
	}
	return []*Disk{p.disk}
}

func (p *Partition) GetFSType() FSType {
	return p.Format
}

func (p *Partition) GetMountpoint() string {
	return p.Mountpoint
}

func (p *Partition) GetSize() uint64 {
	return p.Size.Uint64()
}

// StartBytes returns the start offset of the partition in bytes.
func (p *Partition) StartBytes() uint64 {
	sectorSize := uint64(DefaultSectorSize)
	if p.disk != nil {
		sectorSize = p.disk.GetSectorSize()
	}
	return p.Start * sectorSize
}

func (p *Partition) HasFlag(flag string) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.Flags, flag)
}

func (p *Partition) IsBIOSBoot() bool {
	if p == nil {
		return false
	}

	return p.HasFlag(FlagBIOSGrub) || sameGUID(p.Type, BIOSBootPartitionGUID)
}

func (p *Partition) IsPReP() bool {
	if p == nil {
		return false
	}

	return p.HasFlag(FlagPReP) || p.Type == PRePartitionDOSID || sameGUID(p.Type, PRePartitionGUID)
}

// sameGUID compares two GUIDs regardless of case and formatting.
func sameGUID(a, b string) bool {
	ua, err := uuid.Parse(a)
	if err != nil {
		return false
	}
	ub, err := uuid.Parse(b)
	if err != nil {
		return false
	}
	return ua == ub
}

// partitionName follows the kernel naming scheme: a "p" separates the
// partition number from device names that end in a digit (nvme0n1p1,
// md127p2, loop0p1).
func partitionName(base string, number int) string {
	if base == "" {
		return fmt.Sprintf("%d", number)
	}
	if unicode.IsDigit(rune(base[len(base)-1])) {
		return fmt.Sprintf("%sp%d", base, number)
	}
	return fmt.Sprintf("%s%d", base, number)
}
