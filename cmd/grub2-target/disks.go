package main

import (
	"fmt"

	"github.com/gobwas/glob"

	"github.com/osbuild/bootloader/pkg/disk"
)

// selectDisks returns the disks of the layout whose name or path matches
// any of the glob patterns, in layout order.
func selectDisks(layout disk.Inventory, patterns []string) ([]*disk.Disk, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("cannot use disk pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}

	var disks []*disk.Disk
	for _, d := range layout.Disks() {
		for _, g := range globs {
			if g.Match(d.GetName()) || g.Match(d.GetPath()) {
				disks = append(disks, d)
				break
			}
		}
	}
	if len(patterns) > 0 && len(disks) == 0 {
		return nil, fmt.Errorf("no disk matches %v", patterns)
	}
	return disks, nil
}
