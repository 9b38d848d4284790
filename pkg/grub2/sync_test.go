package grub2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	sysexec_mock "github.com/osbuild/bootloader/internal/mocks/sysexec"
	"github.com/osbuild/bootloader/pkg/disk"
	"github.com/osbuild/bootloader/pkg/grub2"
)

func TestHostSyncerXFS(t *testing.T) {
	runner := sysexec_mock.NewRunner()
	runner.Fail("xfs_freeze -f /mnt/sysroot/boot", 1)
	syncer := grub2.NewHostSyncer(runner, "xfs_freeze")

	d := &disk.Disk{Name: "sda"}
	boot := disk.NewPartition(d, disk.Partition{Format: disk.FS_XFS, Mountpoint: "/boot"})
	syncer.SyncFilesystem(boot, "/mnt/sysroot")

	// a failed freeze is logged only, the thaw is still attempted
	assert.Equal(t, []string{
		"xfs_freeze -f /mnt/sysroot/boot",
		"xfs_freeze -u /mnt/sysroot/boot",
	}, runner.CommandLines())
}

func TestHostSyncerOtherFilesystems(t *testing.T) {
	runner := sysexec_mock.NewRunner()
	syncer := grub2.NewHostSyncer(runner, "xfs_freeze")
	root := t.TempDir()

	d := &disk.Disk{Name: "sda"}
	for _, p := range []disk.Partition{
		{Format: disk.FS_EXT4, Mountpoint: "/"},
		// not mounted
		{Format: disk.FS_XFS},
		// mountpoint does not exist, logged only
		{Format: disk.FS_EXT4, Mountpoint: "/missing"},
	} {
		syncer.SyncFilesystem(disk.NewPartition(d, p), root)
	}
	syncer.SyncFilesystem(nil, root)
	assert.Empty(t, runner.Calls)
}
