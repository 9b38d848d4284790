package disk

// Device is any block device that can hold a boot loader stage: a whole
// disk, a partition, an MD RAID array or an LVM logical volume.
type Device interface {
	// GetName returns the kernel name of the device, e.g. sda1 or md0.
	GetName() string
	// GetPath returns the device node, e.g. /dev/sda1.
	GetPath() string
	GetKind() DeviceKind
	// GetDisks returns the physical disks backing the device, in table
	// order and without duplicates.
	GetDisks() []*Disk
	GetFSType() FSType
	GetMountpoint() string
}

// Inventory gives access to the finalized storage layout of the system
// being installed.
type Inventory interface {
	// Disks returns all disks in the order the boot loader enumerates
	// them.
	Disks() []*Disk
	DeviceByName(name string) (Device, bool)
}

// DiskIndex returns the position of d in the inventory's disk list or -1.
func DiskIndex(inv Inventory, d *Disk) int {
	for i, disk := range inv.Disks() {
		if disk == d {
			return i
		}
	}
	return -1
}

// appendDisks adds the disks to the list unless already present.
func appendDisks(list []*Disk, disks ...*Disk) []*Disk {
outer:
	for _, d := range disks {
		if d == nil {
			continue
		}
		for _, have := range list {
			if have == d {
				continue outer
			}
		}
		list = append(list, d)
	}
	return list
}
