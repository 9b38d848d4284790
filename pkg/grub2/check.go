package grub2

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/osbuild/bootloader/pkg/disk"
)

// GRUB embeds its core image into the gap in front of the first
// partition. A core image that reads a plain partition fits into the
// traditional 63 sector gap, anything more complex needs more room.
const (
	basicGapBytes    = 32256  // 31.5 KiB
	advancedGapBytes = 524288 // 512 KiB
)

// CheckLayout returns whether the stage1 disk of the target has room for
// the core image. The problems found are stored in the state's Errors and
// Warnings, which are reset on every call, and returned as well.
func (i *Installer) CheckLayout(target BootTarget) (bool, []string, []string) {
	s := i.State
	s.Errors = nil
	s.Warnings = nil

	if target.SameDevice() {
		return true, s.Errors, s.Warnings
	}

	stage1Disk := diskOf(target.Stage1)
	if stage1Disk == nil {
		return false, s.Errors, s.Warnings
	}

	minStart := uint64(advancedGapBytes)
	if target.Stage2 != nil && target.Stage2.GetKind() == disk.KIND_PARTITION {
		minStart = basicGapBytes
	}

	// a BIOS boot partition holds the core image instead of the gap
	if stage1Disk.HasBIOSBoot() {
		return true, s.Errors, s.Warnings
	}

	tooLow := false
	for _, p := range stage1Disk.Partitions {
		if p.StartBytes() < minStart {
			tooLow = true
		}
	}
	if !tooLow {
		return true, s.Errors, s.Warnings
	}

	var fsType, kind string
	if target.Stage2 != nil {
		fsType = target.Stage2.GetFSType().String()
		kind = target.Stage2.GetKind().String()
	}
	msg := fmt.Sprintf("%s may not have enough space for grub2 to embed core.img when using the %s file system on %s",
		stage1Disk.GetName(), fsType, kind)
	logrus.Error(msg)
	s.Errors = append(s.Errors, msg)
	return false, s.Errors, s.Warnings
}

// Check runs CheckLayout for every install target and returns false if
// any of them fails or if there is no target at all. The Errors and
// Warnings of all targets are kept.
func (i *Installer) Check() bool {
	targets := i.State.InstallTargets()
	if len(targets) == 0 {
		msg := i.State.missingTarget().Error()
		logrus.Error(msg)
		i.State.Errors = []string{msg}
		i.State.Warnings = nil
		return false
	}

	ok := true
	var errs, warnings []string
	for _, target := range targets {
		targetOK, targetErrs, targetWarnings := i.CheckLayout(target)
		ok = ok && targetOK
		errs = append(errs, targetErrs...)
		warnings = append(warnings, targetWarnings...)
	}
	i.State.Errors = errs
	i.State.Warnings = warnings
	return ok
}
