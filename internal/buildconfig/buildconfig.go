package buildconfig

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/osbuild/bootloader/pkg/disk"
	"github.com/osbuild/bootloader/pkg/grub2"
	"github.com/osbuild/bootloader/pkg/platform"
)

// BuildConfig is the boot loader part of an installation, as read from a
// TOML file.
type BuildConfig struct {
	Product  string `toml:"product"`
	Platform string `toml:"platform"`

	Stage1 string   `toml:"stage1"`
	Stage2 string   `toml:"stage2"`
	Disks  []string `toml:"disks"`

	Timeout int      `toml:"timeout"`
	Images  []string `toml:"images"`
	Default string   `toml:"default"`

	Password          string `toml:"password"`
	EncryptedPassword string `toml:"encrypted_password"`

	Console        string   `toml:"console"`
	ConsoleOptions string   `toml:"console_options"`
	BootArgs       []string `toml:"boot_args"`
	ExtraArgs      []string `toml:"extra_args"`

	UseBLS        bool `toml:"use_bls"`
	MenuAutoHide  bool `toml:"menu_auto_hide"`
	KeepMBR       bool `toml:"keep_mbr"`
	KeepBootOrder bool `toml:"keep_boot_order"`
	Skip          bool `toml:"skip"`
	UpdateOnly    bool `toml:"update_only"`
}

type Options struct {
	AllowUnknownFields bool
}

func New(path string, opts *Options) (*BuildConfig, error) {
	if opts == nil {
		opts = &Options{}
	}

	var conf BuildConfig
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return nil, fmt.Errorf("cannot decode build config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 && !opts.AllowUnknownFields {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("cannot decode build config: unknown keys %s in %q", strings.Join(keys, ", "), path)
	}
	return &conf, nil
}

// GetPlatform returns the configured platform or the one of the running
// machine.
func (c *BuildConfig) GetPlatform() (platform.Platform, error) {
	if c.Platform == "" {
		return platform.Current(), nil
	}
	return platform.FromString(c.Platform)
}

// State resolves the configured devices in the inventory and returns the
// boot loader state.
func (c *BuildConfig) State(inv disk.Inventory) (*grub2.State, error) {
	lookup := func(what, name string) (disk.Device, error) {
		if name == "" {
			return nil, fmt.Errorf("no %s device configured", what)
		}
		dev, ok := inv.DeviceByName(name)
		if !ok {
			return nil, fmt.Errorf("%s device %q not found", what, name)
		}
		return dev, nil
	}

	var stage1, stage2 disk.Device
	if !c.Skip {
		var err error
		if stage1, err = lookup("stage1", c.Stage1); err != nil {
			return nil, err
		}
		if stage2, err = lookup("stage2", c.Stage2); err != nil {
			return nil, err
		}
	}

	s := grub2.NewState(stage1, stage2)
	for _, name := range c.Disks {
		dev, err := lookup("boot", name)
		if err != nil {
			return nil, err
		}
		d, ok := dev.(*disk.Disk)
		if !ok {
			return nil, fmt.Errorf("boot device %q is a %s, not a disk", name, dev.GetKind())
		}
		s.Disks = append(s.Disks, d)
	}

	s.Timeout = c.Timeout
	s.Images = c.Images
	s.Default = c.Default
	s.Password = c.Password
	s.EncryptedPassword = c.EncryptedPassword
	if c.Console != "" {
		s.Console = &grub2.ConsoleConfig{
			Device:  c.Console,
			Options: c.ConsoleOptions,
		}
	}
	s.BootArgs.Add(c.BootArgs...)
	s.ExtraArgs = c.ExtraArgs
	s.UseBLS = c.UseBLS
	s.MenuAutoHide = c.MenuAutoHide
	s.KeepMBR = c.KeepMBR
	s.KeepBootOrder = c.KeepBootOrder
	s.Skip = c.Skip
	s.UpdateOnly = c.UpdateOnly
	return s, nil
}
