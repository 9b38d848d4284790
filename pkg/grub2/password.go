package grub2

import (
	"fmt"
	"strings"

	"github.com/osbuild/bootloader/pkg/sysexec"
)

// EnsureEncrypted hashes the plaintext password with the GRUB tool unless
// a hash is already set. The hash is only stored once it is known to be
// valid, so the tool runs at most once per successful hash.
func (i *Installer) EnsureEncrypted() error {
	s := i.State
	if s.EncryptedPassword != "" {
		return nil
	}
	if s.Password == "" {
		return fmt.Errorf("%w: cannot encrypt empty password", ErrConfiguration)
	}

	// the tool asks for the password twice
	res, err := i.opts.Runner.Run(sysexec.Cmd{
		Name:  i.opts.Tools.MkPasswd,
		Stdin: []byte(s.Password + "\n" + s.Password + "\n"),
		Root:  i.opts.Sysroot,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to encrypt boot loader password: %w", ErrBootLoader, err)
	}

	fields := strings.Fields(string(res.Stdout))
	if len(fields) == 0 || !strings.HasPrefix(fields[len(fields)-1], passwordHashPrefix) {
		return fmt.Errorf("%w: failed to encrypt boot loader password", ErrBootLoader)
	}
	s.EncryptedPassword = fields[len(fields)-1]
	return nil
}
