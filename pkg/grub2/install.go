package grub2

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/osbuild/bootloader/pkg/sysexec"
)

// Install writes the boot records of every install target. The first
// failing target aborts the install with ErrInstall.
func (i *Installer) Install(extraArgs ...string) error {
	targets := i.State.InstallTargets()
	if len(targets) == 0 {
		return fmt.Errorf("%w: %w", ErrInstall, i.State.missingTarget())
	}

	if i.strategy.preInstall != nil {
		i.strategy.preInstall(i)
	}

	args := append(append([]string{}, extraArgs...), i.strategy.installArgs...)
	for _, target := range targets {
		if err := i.installTarget(target, args); err != nil {
			return err
		}
	}
	return nil
}

func (i *Installer) installTarget(target BootTarget, args []string) error {
	grubArgs := append(append([]string{}, args...), "--no-floppy", target.Stage1.GetPath())
	if target.SameDevice() {
		// grub2-install refuses to write to a partition boot block
		// without --force
		grubArgs = append([]string{"--force"}, grubArgs...)
	} else if i.State.KeepMBR {
		grubArgs = append([]string{"--grub-setup=/bin/true"}, grubArgs...)
		logrus.Infof("MBR update of %s by grub2 disabled", target.Stage1.GetName())
	} else {
		logrus.Infof("MBR of %s will be updated for grub2", target.Stage1.GetName())
	}

	res, err := i.opts.Runner.Run(sysexec.Cmd{
		Name:     i.opts.Tools.Install,
		Args:     grubArgs,
		Root:     i.opts.Sysroot,
		EnvPrune: []string{"MALLOC_PERTURB_"},
	})
	if err != nil || res.Failed() {
		return fmt.Errorf("%w: %w", ErrInstall, toolError(fmt.Sprintf("installing to %s", target), res, err))
	}
	return nil
}
