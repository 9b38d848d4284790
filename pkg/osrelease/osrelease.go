// Package osrelease reads the os-release(5) file of an installed tree.
package osrelease

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// Paths are tried in order, relative to the tree root.
var Paths = []string{
	"etc/os-release",
	"usr/lib/os-release",
}

type Info struct {
	ID         string
	Name       string
	VersionID  string
	PrettyName string
}

// Parse parses the KEY=value lines of an os-release file.
func Parse(data []byte) (map[string]string, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:       true,
		UnescapeValueDoubleQuotes: true,
		KeyValueDelimiters:        "=",
	}, data)
	if err != nil {
		return nil, err
	}
	return cfg.Section(ini.DefaultSection).KeysHash(), nil
}

// ReadFromTree reads the os-release of the tree rooted at root.
func ReadFromTree(root string) (*Info, error) {
	for _, p := range Paths {
		data, err := os.ReadFile(filepath.Join(root, p))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		kv, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %s: %w", p, err)
		}
		return &Info{
			ID:         kv["ID"],
			Name:       kv["NAME"],
			VersionID:  kv["VERSION_ID"],
			PrettyName: kv["PRETTY_NAME"],
		}, nil
	}
	return nil, fmt.Errorf("no os-release found in %s", root)
}

// IsRedHat returns true for Red Hat branded products.
func IsRedHat(productName string) bool {
	return strings.HasPrefix(productName, "Red Hat ")
}
