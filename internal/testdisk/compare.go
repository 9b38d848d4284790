package testdisk

import (
	"github.com/google/go-cmp/cmp"

	"github.com/osbuild/bootloader/pkg/disk"
)

// CompareDevices considers two devices equal if their kind, name and path
// are. Partitions point back to their disks, so the devices cannot be
// compared field by field.
func CompareDevices() cmp.Option {
	return cmp.Comparer(func(x, y disk.Device) bool {
		if x == nil || y == nil {
			return x == y
		}
		return x.GetKind() == y.GetKind() &&
			x.GetName() == y.GetName() &&
			x.GetPath() == y.GetPath()
	})
}
