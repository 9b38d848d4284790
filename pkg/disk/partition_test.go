package disk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osbuild/bootloader/pkg/datasizes"
	"github.com/osbuild/bootloader/pkg/disk"
)

func TestPartitionNames(t *testing.T) {
	for _, tc := range []struct {
		disk   disk.Disk
		number int
		name   string
		path   string
	}{
		{disk.Disk{Name: "sda"}, 1, "sda1", "/dev/sda1"},
		{disk.Disk{Name: "vdb"}, 12, "vdb12", "/dev/vdb12"},
		{disk.Disk{Name: "nvme0n1"}, 2, "nvme0n1p2", "/dev/nvme0n1p2"},
		{disk.Disk{Name: "mmcblk0"}, 1, "mmcblk0p1", "/dev/mmcblk0p1"},
		{disk.Disk{Name: "xvda", Path: "/dev/mapper/xvda"}, 3, "xvda3", "/dev/mapper/xvda3"},
	} {
		d := tc.disk
		p := disk.NewPartition(&d, disk.Partition{Number: tc.number})
		assert.Equal(t, tc.name, p.GetName())
		assert.Equal(t, tc.path, p.GetPath())
		assert.Same(t, &d, p.Disk())
	}
}

func TestPartitionStartBytes(t *testing.T) {
	d := &disk.Disk{Name: "sda"}
	p := disk.NewPartition(d, disk.Partition{Start: 2048})
	assert.Equal(t, uint64(datasizes.MiB), p.StartBytes())

	d.SectorSize = 4096
	assert.Equal(t, uint64(8*datasizes.MiB), p.StartBytes())

	// not attached to a disk
	assert.Equal(t, uint64(63*512), (&disk.Partition{Start: 63}).StartBytes())
}

func TestPartitionBIOSBoot(t *testing.T) {
	for _, tc := range []struct {
		part     disk.Partition
		expected bool
	}{
		{disk.Partition{Flags: []string{disk.FlagBIOSGrub}}, true},
		{disk.Partition{Type: disk.BIOSBootPartitionGUID}, true},
		{disk.Partition{Type: "21686148-6449-6e6f-744e-656564454649"}, true},
		{disk.Partition{Type: "{21686148-6449-6E6F-744E-656564454649}"}, true},
		{disk.Partition{Flags: []string{disk.FlagBoot}}, false},
		{disk.Partition{Type: "83"}, false},
		{disk.Partition{Type: disk.PRePartitionGUID}, false},
	} {
		assert.Equal(t, tc.expected, tc.part.IsBIOSBoot(), "%+v", tc.part)
	}

	var nilPart *disk.Partition
	assert.False(t, nilPart.IsBIOSBoot())
}

func TestPartitionPReP(t *testing.T) {
	assert.True(t, (&disk.Partition{Type: "41"}).IsPReP())
	assert.True(t, (&disk.Partition{Type: "9e1a2d38-c612-4316-aa26-8b49521e5a8b"}).IsPReP())
	assert.True(t, (&disk.Partition{Flags: []string{disk.FlagPReP}}).IsPReP())
	assert.False(t, (&disk.Partition{Type: "83"}).IsPReP())
}

func TestDiskHasBIOSBoot(t *testing.T) {
	d := &disk.Disk{Name: "sda", Label: disk.PT_GPT}
	disk.NewPartition(d, disk.Partition{Start: 2048})
	assert.False(t, d.HasBIOSBoot())

	disk.NewPartition(d, disk.Partition{Start: 34, Type: disk.BIOSBootPartitionGUID})
	assert.True(t, d.HasBIOSBoot())
}
