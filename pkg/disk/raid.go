package disk

// RAIDArray is an MD RAID array built from partitions.
type RAIDArray struct {
	Name            string    `yaml:"name"`
	Path            string    `yaml:"path"`
	Level           RAIDLevel `yaml:"level"`
	MetadataVersion string    `yaml:"metadata"`

	// MemberNames lists the partitions by name; they are resolved to
	// Members when the layout is loaded.
	MemberNames []string     `yaml:"members"`
	Members     []*Partition `yaml:"-"`

	Format     FSType `yaml:"format"`
	Mountpoint string `yaml:"mountpoint"`
}

func (a *RAIDArray) GetName() string {
	return a.Name
}

func (a *RAIDArray) GetPath() string {
	if a.Path == "" {
		return "/dev/" + a.Name
	}
	return a.Path
}

func (a *RAIDArray) GetKind() DeviceKind {
	return KIND_MDARRAY
}

func (a *RAIDArray) GetDisks() []*Disk {
	var disks []*Disk
	for _, m := range a.Members {
		disks = appendDisks(disks, m.GetDisks()...)
	}
	return disks
}

func (a *RAIDArray) GetFSType() FSType {
	return a.Format
}

func (a *RAIDArray) GetMountpoint() string {
	return a.Mountpoint
}
