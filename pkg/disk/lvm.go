package disk

// LVMLogicalVolume is a logical volume of a volume group whose physical
// volumes are partitions.
type LVMLogicalVolume struct {
	Name   string `yaml:"name"`
	VGName string `yaml:"vg_name"`

	// MemberNames lists the physical volume partitions by name.
	MemberNames []string     `yaml:"members"`
	Members     []*Partition `yaml:"-"`

	Format     FSType `yaml:"format"`
	Mountpoint string `yaml:"mountpoint"`
}

// GetName returns the device-mapper name of the volume, with dashes in
// the VG and LV names doubled.
func (lv *LVMLogicalVolume) GetName() string {
	if lv.VGName == "" {
		return lv.Name
	}
	return dmEscape(lv.VGName) + "-" + dmEscape(lv.Name)
}

func (lv *LVMLogicalVolume) GetPath() string {
	return "/dev/mapper/" + lv.GetName()
}

func (lv *LVMLogicalVolume) GetKind() DeviceKind {
	return KIND_LVMLV
}

func (lv *LVMLogicalVolume) GetDisks() []*Disk {
	var disks []*Disk
	for _, m := range lv.Members {
		disks = appendDisks(disks, m.GetDisks()...)
	}
	return disks
}

func (lv *LVMLogicalVolume) GetFSType() FSType {
	return lv.Format
}

func (lv *LVMLogicalVolume) GetMountpoint() string {
	return lv.Mountpoint
}

func dmEscape(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '-' {
			out = append(out, '-')
		}
		out = append(out, s[i])
	}
	return string(out)
}
