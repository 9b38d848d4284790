package disk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/osbuild/bootloader/pkg/disk"
)

func TestEnumPartitionTableType(t *testing.T) {
	enumMap := map[string]disk.PartitionTableType{
		"":    disk.PT_NONE,
		"dos": disk.PT_DOS,
		"gpt": disk.PT_GPT,
	}

	assert := assert.New(t)
	for name, num := range enumMap {
		ptt, err := disk.NewPartitionTableType(name)
		expected := disk.PartitionTableType(num)

		assert.NoError(err)
		assert.Equal(expected, ptt)

		assert.Equal(name, ptt.String())
	}

	// error test: bad value
	badPtt := disk.PartitionTableType(3)
	assert.PanicsWithValue("unknown or unsupported partition table type with enum value 3", func() { _ = badPtt.String() })

	// error test: bad name
	_, err := disk.NewPartitionTableType("not-a-type")
	assert.EqualError(err, "unknown or unsupported partition table type name: not-a-type")
}

func TestEnumFSType(t *testing.T) {
	enumMap := map[string]disk.FSType{
		"":      disk.FS_NONE,
		"vfat":  disk.FS_VFAT,
		"ext4":  disk.FS_EXT4,
		"xfs":   disk.FS_XFS,
		"btrfs": disk.FS_BTRFS,
		"swap":  disk.FS_SWAP,
		"lvmpv": disk.FS_LVMPV,
	}

	assert := assert.New(t)
	for name, num := range enumMap {
		fst, err := disk.NewFSType(name)
		expected := disk.FSType(num)

		assert.NoError(err)
		assert.Equal(expected, fst)

		assert.Equal(name, fst.String())
	}

	// error test: bad value
	badFst := disk.FSType(42)
	assert.PanicsWithValue("unknown or unsupported filesystem type with enum value 42", func() { _ = badFst.String() })

	// error test: bad name
	_, err := disk.NewFSType("not-a-type")
	assert.EqualError(err, "unknown or unsupported filesystem type name: not-a-type")
}

func TestGrubLabel(t *testing.T) {
	assert.Equal(t, "msdos", disk.PT_DOS.GrubLabel())
	assert.Equal(t, "gpt", disk.PT_GPT.GrubLabel())
}

func TestEnumRAIDLevel(t *testing.T) {
	for _, name := range []string{"linear", "raid0", "raid1", "raid4", "raid5", "raid6", "raid10"} {
		lvl, err := disk.NewRAIDLevel(name)
		require.NoError(t, err)
		assert.Equal(t, name, lvl.String())
	}

	_, err := disk.NewRAIDLevel("raid3")
	assert.EqualError(t, err, "unknown or unsupported raid level name: raid3")
}

func TestEnumDeviceKind(t *testing.T) {
	assert.Equal(t, "disk", disk.KIND_DISK.String())
	assert.Equal(t, "partition", disk.KIND_PARTITION.String())
	assert.Equal(t, "mdarray", disk.KIND_MDARRAY.String())
	assert.Equal(t, "lvmlv", disk.KIND_LVMLV.String())
	assert.PanicsWithValue(t, "unknown device kind with enum value 9", func() { _ = disk.DeviceKind(9).String() })
}

func TestEnumsUnmarshalYAML(t *testing.T) {
	var v struct {
		Label  disk.PartitionTableType `yaml:"label"`
		Format disk.FSType             `yaml:"format"`
		Level  disk.RAIDLevel          `yaml:"level"`
	}
	err := yaml.Unmarshal([]byte("label: msdos\nformat: xfs\nlevel: raid1\n"), &v)
	require.NoError(t, err)
	assert.Equal(t, disk.PT_DOS, v.Label)
	assert.Equal(t, disk.FS_XFS, v.Format)
	assert.Equal(t, disk.RAID1, v.Level)

	err = yaml.Unmarshal([]byte("format: zfs\n"), &v)
	assert.EqualError(t, err, "unknown or unsupported filesystem type name: zfs")
}
