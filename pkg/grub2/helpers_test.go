package grub2_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	sysexec_mock "github.com/osbuild/bootloader/internal/mocks/sysexec"
	"github.com/osbuild/bootloader/pkg/disk"
	"github.com/osbuild/bootloader/pkg/grub2"
	"github.com/osbuild/bootloader/pkg/platform"
)

const fakeHash = "grub.pbkdf2.sha512.10000.C0FFEE.BEEF"

// recordingSyncer notes the syncs in the runner's journal so the order of
// syncs and tool invocations can be checked.
type recordingSyncer struct {
	runner *sysexec_mock.Runner
}

func (s *recordingSyncer) Sync() {
	s.runner.Note("sync")
}

func (s *recordingSyncer) SyncFilesystem(dev disk.Device, root string) {
	s.runner.Note("syncfs " + dev.GetName())
}

type fixture struct {
	installer *grub2.Installer
	runner    *sysexec_mock.Runner
	sysroot   string
}

func newFixture(t *testing.T, inv disk.Inventory, state *grub2.State, p platform.Platform) *fixture {
	t.Helper()

	runner := sysexec_mock.NewRunner()
	sysroot := t.TempDir()
	installer := grub2.New(inv, state, grub2.Options{
		Sysroot:     sysroot,
		ProductName: "Fedora",
		Platform:    p,
		Hardware:    true,
		Runner:      runner,
		Syncer:      &recordingSyncer{runner},
	})
	return &fixture{
		installer: installer,
		runner:    runner,
		sysroot:   sysroot,
	}
}

func (f *fixture) readFile(t *testing.T, p string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.sysroot, p))
	require.NoError(t, err)
	return string(data)
}

func (f *fixture) writeFile(t *testing.T, p string, content string) {
	t.Helper()
	path := filepath.Join(f.sysroot, p)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func mustDevice(t *testing.T, inv disk.Inventory, name string) disk.Device {
	t.Helper()
	dev, ok := inv.DeviceByName(name)
	require.True(t, ok, "no device %s", name)
	return dev
}
