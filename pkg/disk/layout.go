package disk

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout is a static Inventory, typically loaded from the YAML description
// of the already partitioned target system.
type Layout struct {
	DiskList       []*Disk             `yaml:"disks"`
	RAIDArrays     []*RAIDArray        `yaml:"raid_arrays"`
	LogicalVolumes []*LVMLogicalVolume `yaml:"logical_volumes"`

	devices map[string]Device
}

// NewLayout creates a layout from the given disks and resolves it.
func NewLayout(disks []*Disk, arrays []*RAIDArray, lvs []*LVMLogicalVolume) (*Layout, error) {
	l := &Layout{
		DiskList:       disks,
		RAIDArrays:     arrays,
		LogicalVolumes: lvs,
	}
	if err := l.Resolve(); err != nil {
		return nil, err
	}
	return l, nil
}

// LoadLayout reads a layout description from a YAML file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("cannot load layout %q: %w", path, err)
	}
	return l, nil
}

func ParseLayout(data []byte) (*Layout, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var l Layout
	if err := dec.Decode(&l); err != nil {
		return nil, err
	}
	if err := l.Resolve(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Resolve links partitions to their disks and container members to their
// partitions. It must be called after the layout was modified.
func (l *Layout) Resolve() error {
	l.devices = make(map[string]Device)
	add := func(dev Device) error {
		name := dev.GetName()
		if _, ok := l.devices[name]; ok {
			return fmt.Errorf("duplicate device name %q", name)
		}
		l.devices[name] = dev
		return nil
	}

	for _, d := range l.DiskList {
		if d == nil {
			return fmt.Errorf("empty disk entry")
		}
		if err := d.attach(); err != nil {
			return err
		}
		if err := add(d); err != nil {
			return err
		}
		for _, p := range d.Partitions {
			if err := add(p); err != nil {
				return err
			}
		}
	}

	members := func(owner string, names []string) ([]*Partition, error) {
		parts := make([]*Partition, 0, len(names))
		for _, name := range names {
			dev, ok := l.devices[name]
			if !ok {
				return nil, fmt.Errorf("%s: unknown member %q", owner, name)
			}
			p, ok := dev.(*Partition)
			if !ok {
				return nil, fmt.Errorf("%s: member %q is a %s, not a partition", owner, name, dev.GetKind())
			}
			parts = append(parts, p)
		}
		return parts, nil
	}

	for _, a := range l.RAIDArrays {
		if len(a.MemberNames) > 0 {
			parts, err := members(a.Name, a.MemberNames)
			if err != nil {
				return err
			}
			a.Members = parts
		}
		if len(a.Members) == 0 {
			return fmt.Errorf("raid array %s has no members", a.Name)
		}
		if err := add(a); err != nil {
			return err
		}
	}
	for _, lv := range l.LogicalVolumes {
		if len(lv.MemberNames) > 0 {
			parts, err := members(lv.GetName(), lv.MemberNames)
			if err != nil {
				return err
			}
			lv.Members = parts
		}
		if err := add(lv); err != nil {
			return err
		}
	}
	return nil
}

func (l *Layout) Disks() []*Disk {
	return l.DiskList
}

func (l *Layout) DeviceByName(name string) (Device, bool) {
	if l.devices == nil {
		if err := l.Resolve(); err != nil {
			return nil, false
		}
	}
	dev, ok := l.devices[name]
	if !ok {
		// accept device nodes as well
		for _, d := range l.devices {
			if d.GetPath() == name {
				return d, true
			}
		}
	}
	return dev, ok
}
