package grub2

import (
	"fmt"

	"github.com/osbuild/bootloader/pkg/disk"
)

// DeviceName returns the name GRUB uses for the device. Disks and their
// partitions are named after the disk's position in the inventory,
// (hd0) and (hd0,msdos1), anything else by its own name, e.g. (md0).
// A nil device has no name.
func (i *Installer) DeviceName(dev disk.Device) string {
	if dev == nil {
		return ""
	}

	var d *disk.Disk
	var part *disk.Partition
	switch dev := dev.(type) {
	case *disk.Disk:
		d = dev
	case *disk.Partition:
		d = dev.Disk()
		part = dev
	}

	idx := -1
	if d != nil {
		idx = disk.DiskIndex(i.inv, d)
	}
	if idx < 0 {
		return fmt.Sprintf("(%s)", dev.GetName())
	}

	if part == nil {
		return fmt.Sprintf("(hd%d)", idx)
	}
	return fmt.Sprintf("(hd%d,%s%d)", idx, d.Label.GrubLabel(), part.Number)
}
