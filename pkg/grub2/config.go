package grub2

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/osbuild/bootloader/pkg/disk"
)

// deviceMapDisks returns the disks GRUB needs to know about: the directly
// listed disks followed by the stage1 device and the disks backing
// stage2 of every target.
func (i *Installer) deviceMapDisks() []*disk.Disk {
	var disks []*disk.Disk
	add := func(d *disk.Disk) {
		if d != nil && !slices.Contains(disks, d) {
			disks = append(disks, d)
		}
	}

	for _, d := range i.State.Disks {
		add(d)
	}
	for _, target := range i.State.InstallTargets() {
		// only whole disks go into the map
		if d, ok := target.Stage1.(*disk.Disk); ok {
			add(d)
		}
		if target.Stage2 != nil {
			for _, d := range target.Stage2.GetDisks() {
				add(d)
			}
		}
	}
	return disks
}

// WriteDeviceMap writes the device map of all disks the boot loader is
// installed to or reads from. An existing map is kept as a backup.
func (i *Installer) WriteDeviceMap() error {
	disks := i.deviceMapDisks()
	if len(disks) == 0 {
		return nil
	}

	mapPath := i.sysrootPath(DeviceMapFile)
	if _, err := os.Stat(mapPath); err == nil {
		if err := os.Rename(mapPath, mapPath+deviceMapBackupSuffix); err != nil {
			return fmt.Errorf("cannot back up device map: %w", err)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# this device map was generated by %s\n", i.opts.Generator)
	for _, d := range disks {
		fmt.Fprintf(&b, "%s      %s\n", i.DeviceName(d), d.GetPath())
	}
	return writeFile(mapPath, b.String(), 0644)
}

// WriteDefaults writes the defaults file grub2-mkconfig reads its
// settings from.
func (i *Installer) WriteDefaults() error {
	s := i.State

	var b strings.Builder
	fmt.Fprintf(&b, "GRUB_TIMEOUT=%d\n", s.Timeout)
	b.WriteString("GRUB_DISTRIBUTOR=\"$(sed 's, release .*$,,g' /etc/system-release)\"\n")
	b.WriteString("GRUB_DEFAULT=saved\n")
	b.WriteString("GRUB_DISABLE_SUBMENU=true\n")
	if s.Console != nil && s.Console.IsSerial() {
		b.WriteString("GRUB_TERMINAL=\"serial console\"\n")
		fmt.Fprintf(&b, "GRUB_SERIAL_COMMAND=\"%s\"\n", s.Console.SerialCommand())
	} else {
		fmt.Fprintf(&b, "GRUB_TERMINAL_OUTPUT=\"%s\"\n", i.strategy.terminalType)
	}

	logrus.Infof("Used boot args: %s", s.BootArgs)
	fmt.Fprintf(&b, "GRUB_CMDLINE_LINUX=\"%s\"\n", s.BootArgs)
	b.WriteString("GRUB_DISABLE_RECOVERY=\"true\"\n")

	if s.UseBLS && i.exists(legacyKernelTool) {
		logrus.Warnf("BLS support disabled due to %s being present", legacyKernelTool)
		s.UseBLS = false
	}
	if s.UseBLS {
		b.WriteString("GRUB_ENABLE_BLSCFG=true\n")
	}

	for _, line := range i.strategy.extraDefaults {
		b.WriteString(line + "\n")
	}

	return writeFile(i.sysrootPath(DefaultsFile), b.String(), 0644)
}

// WritePasswordConfig writes the boot loader password hash for the root
// user. Nothing is written if no password is configured.
func (i *Installer) WritePasswordConfig() error {
	if !i.State.hasPassword() {
		return nil
	}
	if err := i.EnsureEncrypted(); err != nil {
		return err
	}

	line := "GRUB2_PASSWORD=" + i.State.EncryptedPassword + "\n"
	return writeFile(i.sysrootPath(PasswordFile), line, 0700)
}

// WriteConfig writes the defaults and the password file, selects the
// default entry and generates the main configuration file. Only a
// failure to write the defaults or to generate the configuration is
// returned; the other steps are advisory.
func (i *Installer) WriteConfig() error {
	s := i.State

	s.BootArgs.Add(s.ExtraArgs...)
	i.WriteConsoleArgs()
	// a password is pointless if the initramfs drops to a shell
	if s.hasPassword() {
		s.BootArgs.Add("rd.shell=0")
	}
	if err := i.WriteDefaults(); err != nil {
		return fmt.Errorf("cannot write boot loader defaults: %w", err)
	}

	// the system is bootable without the password, keep going
	if err := i.WritePasswordConfig(); err != nil {
		s.addAdvisory(fmt.Errorf("boot loader password setup failed: %w", err))
	}

	if s.Default != "" {
		i.setDefaultEntry()
	}

	if s.MenuAutoHide {
		// boot_success hides the menu on the first boot
		res, err := i.runInSysroot(i.opts.Tools.EditEnv, "-", "set", "menu_auto_hide=1", "boot_success=1")
		if err != nil || res.Failed() {
			s.addAdvisory(toolError("failed to set menu_auto_hide=1", res, err))
		}
	}

	res, err := i.runInSysroot(i.opts.Tools.MkConfig, "-o", ConfigFile)
	if err != nil || res.Failed() {
		return fmt.Errorf("%w: %w", ErrBootLoader, toolError("failed to write boot loader configuration", res, err))
	}
	return nil
}

// setDefaultEntry makes the entry of the installed system the saved
// default.
func (i *Installer) setDefaultEntry() {
	s := i.State
	idx := slices.Index(s.Images, s.Default)
	if idx < 0 {
		logrus.Warnf("Failed to find default image (%s), defaulting to 0", s.Default)
		idx = 0
	}

	res, err := i.runInSysroot(i.opts.Tools.SetDefault, strconv.Itoa(idx))
	if err != nil || res.Failed() {
		s.addAdvisory(toolError(fmt.Sprintf("failed to set default menu entry to %s", i.opts.ProductName), res, err))
	}
}

// Update regenerates the configuration of an installed boot loader
// without touching the boot records.
func (i *Installer) Update() error {
	err := i.WriteConfig()
	i.sync()
	return err
}

func (i *Installer) exists(p string) bool {
	_, err := os.Stat(i.sysrootPath(p))
	return err == nil
}

// writeFile creates or truncates the file and makes sure it ends up with
// the given permissions regardless of the umask.
func writeFile(path string, content string, perm fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		return errors.Join(err, f.Close())
	}
	if err := f.Chmod(perm); err != nil {
		return errors.Join(err, f.Close())
	}
	return f.Close()
}
