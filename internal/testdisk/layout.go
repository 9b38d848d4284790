package testdisk

import (
	"github.com/osbuild/bootloader/pkg/datasizes"
	"github.com/osbuild/bootloader/pkg/disk"
)

const FakePartitionSize = datasizes.Size(789 * datasizes.MiB)

// MakeFakeDisk is a helper to create disks for tests. A partition is
// created for every start sector, formatted ext4.
func MakeFakeDisk(name string, label disk.PartitionTableType, starts ...uint64) *disk.Disk {
	d := &disk.Disk{
		Name:  name,
		Label: label,
	}
	for _, start := range starts {
		disk.NewPartition(d, disk.Partition{
			Start:  start,
			Size:   FakePartitionSize,
			Format: disk.FS_EXT4,
		})
	}
	return d
}

// MakeFakeLayout creates a layout of two dos disks, sda and sdb. sda
// holds /boot and / starting at 1 MiB, sdb a single data partition.
func MakeFakeLayout() *disk.Layout {
	sda := MakeFakeDisk("sda", disk.PT_DOS, 2048, 2048+uint64(FakePartitionSize)/512)
	sda.Partitions[0].Mountpoint = "/boot"
	sda.Partitions[1].Mountpoint = "/"
	sda.Partitions[1].Format = disk.FS_XFS
	sdb := MakeFakeDisk("sdb", disk.PT_DOS, 2048)

	layout, err := disk.NewLayout([]*disk.Disk{sda, sdb}, nil, nil)
	if err != nil {
		panic(err)
	}
	return layout
}

// MakeFakeRAIDLayout creates two gpt disks with a BIOS boot partition
// each and a RAID1 /boot array, md0, built from their second partitions.
func MakeFakeRAIDLayout() *disk.Layout {
	var disks []*disk.Disk
	var members []string
	for _, name := range []string{"vda", "vdb"} {
		d := &disk.Disk{Name: name, Label: disk.PT_GPT}
		disk.NewPartition(d, disk.Partition{
			Start: 2048,
			Size:  datasizes.Size(datasizes.MiB),
			Type:  disk.BIOSBootPartitionGUID,
		})
		member := disk.NewPartition(d, disk.Partition{
			Start:  4096,
			Size:   FakePartitionSize,
			Format: disk.FS_MDMEMBER,
		})
		disks = append(disks, d)
		members = append(members, member.GetName())
	}

	md := &disk.RAIDArray{
		Name:            "md0",
		Level:           disk.RAID1,
		MetadataVersion: "1.0",
		MemberNames:     members,
		Format:          disk.FS_EXT4,
		Mountpoint:      "/boot",
	}
	layout, err := disk.NewLayout(disks, []*disk.RAIDArray{md}, nil)
	if err != nil {
		panic(err)
	}
	return layout
}
