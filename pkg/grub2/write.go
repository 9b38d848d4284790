package grub2

import (
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// Write installs the boot loader and writes its configuration.
//
// The configuration is written and synced even if the install fails, so
// the disk is left in the most recoverable state. Errors of both steps
// are returned.
func (i *Installer) Write() (err error) {
	s := i.State
	if s.Skip {
		logrus.Info("Skipping boot loader installation")
		return nil
	}
	if s.UpdateOnly {
		return i.Update()
	}

	defer func() {
		cfgErr := i.WriteConfig()
		i.sync()
		switch {
		case cfgErr == nil:
		case err == nil:
			err = cfgErr
		default:
			err = multierror.Append(err, cfgErr)
		}
	}()

	if err := i.WriteDeviceMap(); err != nil {
		return err
	}
	i.syncStage2()
	i.opts.Syncer.Sync()
	if err := i.Install(); err != nil {
		return err
	}
	i.sync()
	return nil
}

func (i *Installer) sync() {
	i.opts.Syncer.Sync()
	i.syncStage2()
}

func (i *Installer) syncStage2() {
	i.opts.Syncer.SyncFilesystem(i.State.Stage2, i.opts.PhysicalRoot)
}
