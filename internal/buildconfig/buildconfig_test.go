package buildconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osbuild/bootloader/internal/buildconfig"
	"github.com/osbuild/bootloader/internal/testdisk"
	"github.com/osbuild/bootloader/pkg/grub2"
	"github.com/osbuild/bootloader/pkg/platform"
)

func makeConfig(t *testing.T, content string) string {
	t.Helper()

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.toml")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)
	return tmpFile
}

const fullConfig = `
product = "Fedora"
platform = "ipseries"
stage1 = "sda"
stage2 = "/dev/sda1"
disks = ["sdb"]
timeout = 3
images = ["Fedora", "Windows"]
default = "Fedora"
password = "s3cret"
console = "ttyS0"
console_options = "115200n8"
boot_args = ["root=/dev/sda2", "ro"]
extra_args = ["quiet"]
use_bls = true
menu_auto_hide = true
keep_boot_order = true
`

func TestNew_Success(t *testing.T) {
	path := makeConfig(t, fullConfig)

	conf, err := buildconfig.New(path, nil)
	require.NoError(t, err)
	assert.Equal(t, &buildconfig.BuildConfig{
		Product:        "Fedora",
		Platform:       "ipseries",
		Stage1:         "sda",
		Stage2:         "/dev/sda1",
		Disks:          []string{"sdb"},
		Timeout:        3,
		Images:         []string{"Fedora", "Windows"},
		Default:        "Fedora",
		Password:       "s3cret",
		Console:        "ttyS0",
		ConsoleOptions: "115200n8",
		BootArgs:       []string{"root=/dev/sda2", "ro"},
		ExtraArgs:      []string{"quiet"},
		UseBLS:         true,
		MenuAutoHide:   true,
		KeepBootOrder:  true,
	}, conf)

	p, err := conf.GetPlatform()
	require.NoError(t, err)
	assert.Equal(t, platform.PLATFORM_OPENFIRMWARE, p)
}

func TestNew_InvalidTOML(t *testing.T) {
	path := makeConfig(t, `timeout = `)

	_, err := buildconfig.New(path, nil)
	assert.ErrorContains(t, err, "cannot decode build config: ")
}

func TestNew_UnknownFields(t *testing.T) {
	content := `
timeout = 5
unknown = 42
`
	for _, tc := range []struct {
		opts        *buildconfig.Options
		expectedErr string
	}{
		{nil, `cannot decode build config: unknown keys unknown in `},
		{&buildconfig.Options{AllowUnknownFields: false}, `cannot decode build config: unknown keys unknown in `},
		{&buildconfig.Options{AllowUnknownFields: true}, ""},
	} {
		path := makeConfig(t, content)

		_, err := buildconfig.New(path, tc.opts)
		if tc.expectedErr == "" {
			assert.NoError(t, err)
		} else {
			assert.ErrorContains(t, err, tc.expectedErr)
		}
	}
}

func TestState(t *testing.T) {
	conf, err := buildconfig.New(makeConfig(t, fullConfig), nil)
	require.NoError(t, err)

	layout := testdisk.MakeFakeLayout()
	state, err := conf.State(layout)
	require.NoError(t, err)

	assert.Equal(t, "sda", state.Stage1.GetName())
	assert.Equal(t, "sda1", state.Stage2.GetName())
	require.Len(t, state.Disks, 1)
	assert.Equal(t, "sdb", state.Disks[0].Name)
	assert.Equal(t, 3, state.Timeout)
	assert.Equal(t, &grub2.ConsoleConfig{Device: "ttyS0", Options: "115200n8"}, state.Console)
	assert.Equal(t, "root=/dev/sda2 ro", state.BootArgs.String())
	assert.Equal(t, []string{"quiet"}, state.ExtraArgs)
	assert.True(t, state.UseBLS)
	assert.True(t, state.MenuAutoHide)
	assert.True(t, state.KeepBootOrder)
	assert.False(t, state.KeepMBR)
}

func TestStateErrors(t *testing.T) {
	for name, tc := range map[string]struct {
		content     string
		expectedErr string
	}{
		"no-stage1":       {`stage2 = "sda1"`, "no stage1 device configured"},
		"unknown-stage2":  {"stage1 = \"sda\"\nstage2 = \"sdq1\"", `stage2 device "sdq1" not found`},
		"disk-not-a-disk": {"stage1 = \"sda\"\nstage2 = \"sda1\"\ndisks = [\"sda2\"]", `boot device "sda2" is a partition, not a disk`},
	} {
		t.Run(name, func(t *testing.T) {
			conf, err := buildconfig.New(makeConfig(t, tc.content), nil)
			require.NoError(t, err)

			_, err = conf.State(testdisk.MakeFakeLayout())
			assert.EqualError(t, err, tc.expectedErr)
		})
	}
}

func TestStateSkip(t *testing.T) {
	conf, err := buildconfig.New(makeConfig(t, "skip = true"), nil)
	require.NoError(t, err)

	state, err := conf.State(testdisk.MakeFakeLayout())
	require.NoError(t, err)
	assert.True(t, state.Skip)
	assert.Nil(t, state.Stage1)
}
