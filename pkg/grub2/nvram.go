package grub2

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/osbuild/bootloader/pkg/disk"
	"github.com/osbuild/bootloader/pkg/sysexec"
)

// updateNVRAMBootList is the pre-install step on Open Firmware machines.
func (i *Installer) updateNVRAMBootList() {
	if i.State.KeepBootOrder {
		logrus.Info("Keeping the boot order, will not update the NVRAM boot list")
		return
	}
	i.ReconcileBootOrder(i.State.Stage1)
}

// ReconcileBootOrder moves the firmware path of stage1 to the front of
// the NVRAM boot-device list. Failures are logged and recorded as
// advisories, a machine with the old boot order may still boot from the
// installed disk. Nothing is done when not running on real hardware.
func (i *Installer) ReconcileBootOrder(stage1 disk.Device) {
	if !i.opts.Hardware {
		return
	}
	if stage1 == nil {
		i.State.addAdvisory(fmt.Errorf("no stage1 device to put into the NVRAM boot list"))
		return
	}
	logrus.Debugf("Updating NVRAM boot list for %s", stage1.GetPath())
	if p, ok := stage1.(*disk.Partition); ok && !p.IsPReP() {
		logrus.Warnf("%s is not a PReP partition, the firmware may not boot from it", stage1.GetName())
	}

	res, err := i.opts.Runner.Run(sysexec.Cmd{
		Name: i.opts.Tools.NVRAM,
		Args: []string{"--print-config=boot-device"},
	})
	if err != nil {
		i.State.addAdvisory(toolError("failed to determine nvram boot device", res, err))
		return
	}
	if res.Output() == "" {
		i.State.addAdvisory(fmt.Errorf("failed to determine nvram boot device: empty boot list"))
		return
	}
	bootList := strings.Fields(strings.ReplaceAll(res.Output(), `"`, ""))
	logrus.Debugf("NVRAM boot list: %v", bootList)

	res, err = i.opts.Runner.Run(sysexec.Cmd{
		Name: i.opts.Tools.OFPathname,
		Args: []string{stage1.GetPath()},
	})
	if err != nil {
		i.State.addAdvisory(toolError("failed to translate boot path into device name", res, err))
		return
	}
	if res.Output() == "" {
		i.State.addAdvisory(fmt.Errorf("failed to translate boot path into device name: no firmware path for %s", stage1.GetPath()))
		return
	}

	bootList = ReorderBootList(bootList, res.Output())
	res, err = i.opts.Runner.Run(sysexec.Cmd{
		Name: i.opts.Tools.NVRAM,
		Args: []string{"--update-config", "boot-device=" + strings.Join(bootList, " ")},
	})
	if err != nil || res.Failed() {
		i.State.addAdvisory(toolError("failed to update new boot device order", res, err))
	}
}

// ReorderBootList returns the list with first at the front and all other
// occurrences of it removed.
func ReorderBootList(list []string, first string) []string {
	order := []string{first}
	for _, dev := range list {
		if dev != first {
			order = append(order, dev)
		}
	}
	return order
}
