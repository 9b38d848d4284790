package grub2

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/osbuild/bootloader/pkg/disk"
	"github.com/osbuild/bootloader/pkg/sysexec"
)

// Syncer flushes written data to the disks.
type Syncer interface {
	// Sync flushes all filesystems.
	Sync()
	// SyncFilesystem flushes the filesystem on dev, mounted below root.
	SyncFilesystem(dev disk.Device, root string)
}

// HostSyncer syncs the filesystems of the running system. Failures are
// logged only.
type HostSyncer struct {
	runner    sysexec.Runner
	xfsFreeze string
}

func NewHostSyncer(runner sysexec.Runner, xfsFreeze string) *HostSyncer {
	return &HostSyncer{
		runner:    runner,
		xfsFreeze: xfsFreeze,
	}
}

func (s *HostSyncer) Sync() {
	unix.Sync()
}

// SyncFilesystem makes sure the boot loader reads what was written. XFS
// keeps metadata in its log until the filesystem is frozen, which GRUB
// cannot replay, so XFS is frozen and thawed instead of synced.
func (s *HostSyncer) SyncFilesystem(dev disk.Device, root string) {
	if dev == nil || dev.GetMountpoint() == "" {
		return
	}
	mountpoint := filepath.Join(root, dev.GetMountpoint())

	if dev.GetFSType() == disk.FS_XFS {
		for _, flag := range []string{"-f", "-u"} {
			res, err := s.runner.Run(sysexec.Cmd{
				Name: s.xfsFreeze,
				Args: []string{flag, mountpoint},
			})
			if err != nil || res.Failed() {
				logrus.Errorf("Failed to sync %s: %v", mountpoint, toolError(s.xfsFreeze+" "+flag, res, err))
			}
		}
		return
	}

	f, err := os.Open(mountpoint)
	if err != nil {
		logrus.Errorf("Failed to sync %s: %v", mountpoint, err)
		return
	}
	defer f.Close()
	if err := unix.Syncfs(int(f.Fd())); err != nil {
		logrus.Errorf("Failed to sync %s: %v", mountpoint, err)
	}
}
