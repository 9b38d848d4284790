package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/osbuild/bootloader/internal/buildconfig"
	"github.com/osbuild/bootloader/pkg/disk"
	"github.com/osbuild/bootloader/pkg/grub2"
	"github.com/osbuild/bootloader/pkg/osrelease"
	"github.com/osbuild/bootloader/pkg/platform"
)

var (
	osStdout io.Writer = os.Stdout
	osArgs             = os.Args[1:]

	// newOptions allows replacing the host runner and syncer
	newOptions = func(opts grub2.Options) grub2.Options { return opts }
)

// setup loads the layout and the configuration named on the command line
// and creates the installer.
func setup(cmd *cobra.Command) (*grub2.Installer, *disk.Layout, error) {
	flags := cmd.Flags()
	layoutPath, err := flags.GetString("layout")
	if err != nil {
		return nil, nil, err
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, nil, err
	}
	root, err := flags.GetString("root")
	if err != nil {
		return nil, nil, err
	}
	physicalRoot, err := flags.GetString("physical-root")
	if err != nil {
		return nil, nil, err
	}
	platformName, err := flags.GetString("platform")
	if err != nil {
		return nil, nil, err
	}
	hardware, err := flags.GetBool("hardware")
	if err != nil {
		return nil, nil, err
	}
	diskGlobs, err := flags.GetStringArray("disk")
	if err != nil {
		return nil, nil, err
	}

	layout, err := disk.LoadLayout(layoutPath)
	if err != nil {
		return nil, nil, err
	}
	conf, err := buildconfig.New(configPath, nil)
	if err != nil {
		return nil, nil, err
	}
	if platformName != "" {
		conf.Platform = platformName
	}
	p, err := conf.GetPlatform()
	if err != nil {
		return nil, nil, err
	}

	state, err := conf.State(layout)
	if err != nil {
		return nil, nil, err
	}
	extraDisks, err := selectDisks(layout, diskGlobs)
	if err != nil {
		return nil, nil, err
	}
	state.Disks = append(state.Disks, extraDisks...)

	product := conf.Product
	if product == "" {
		info, err := osrelease.ReadFromTree(root)
		if err != nil {
			logrus.Warnf("Cannot determine the product name: %v", err)
		} else {
			product = info.Name
		}
	}

	opts := newOptions(grub2.Options{
		Sysroot:      root,
		PhysicalRoot: physicalRoot,
		ProductName:  product,
		Platform:     p,
		Hardware:     hardware,
		Tools:        platform.DefaultTools(),
	})
	return grub2.New(layout, state, opts), layout, nil
}

func cmdCheck(cmd *cobra.Command, args []string) error {
	installer, _, err := setup(cmd)
	if err != nil {
		return err
	}

	if err := installer.State.ValidateStage2(installer.ProductName()); err != nil {
		return err
	}
	ok := installer.Check()
	for _, msg := range installer.State.Warnings {
		fmt.Fprintf(osStdout, "warning: %s\n", msg)
	}
	for _, msg := range installer.State.Errors {
		fmt.Fprintf(osStdout, "error: %s\n", msg)
	}
	if !ok {
		return fmt.Errorf("the disk layout cannot hold the boot loader")
	}
	fmt.Fprintln(osStdout, "ok")
	return nil
}

func cmdNames(cmd *cobra.Command, args []string) error {
	installer, layout, err := setup(cmd)
	if err != nil {
		return err
	}

	for _, d := range layout.Disks() {
		fmt.Fprintf(osStdout, "%s\t%s\n", d.GetPath(), installer.DeviceName(d))
		for _, p := range d.Partitions {
			fmt.Fprintf(osStdout, "%s\t%s\n", p.GetPath(), installer.DeviceName(p))
		}
	}
	for _, a := range layout.RAIDArrays {
		fmt.Fprintf(osStdout, "%s\t%s\n", a.GetPath(), installer.DeviceName(a))
	}
	return nil
}

func cmdWrite(cmd *cobra.Command, args []string) error {
	installer, _, err := setup(cmd)
	if err != nil {
		return err
	}

	state := installer.State
	if !state.Skip {
		if err := state.ValidateStage2(installer.ProductName()); err != nil {
			return err
		}
	}
	if err := installer.Write(); err != nil {
		return err
	}
	if state.Advisories != nil {
		logrus.Warnf("Boot loader installed with problems:\n%s", state.Advisories)
	}
	return nil
}

func addTargetFlags(flags *pflag.FlagSet) {
	flags.String("layout", "layout.yaml", "Storage layout of the target system (YAML)")
	flags.String("config", "bootloader.toml", "Boot loader configuration (TOML)")
	flags.String("root", "/mnt/sysroot", "Where the target system is mounted")
	flags.String("physical-root", "", "Physical root of the target system, defaults to --root")
	flags.String("platform", "", "Platform to install for (pc, openfirmware), defaults to the running one")
	flags.Bool("hardware", true, "Installing to real hardware, firmware settings may be changed")
	flags.StringArray("disk", nil, "Additional disks for the device map, glob patterns are supported")
	flags.BoolP("verbose", "v", false, "Show debug output")
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "grub2-target",
		Short: "Install the GRUB2 boot loader onto an installed system",
		Long: `Install the GRUB2 boot loader onto an installed system

grub2-target writes the boot loader configuration of a freshly installed
system mounted at --root and installs the boot records onto the disks of
the layout description.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}
	rootCmd.SetArgs(osArgs)
	rootCmd.SetOut(osStdout)

	addTargetFlags(rootCmd.PersistentFlags())

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the layout leaves room for the boot loader",
		RunE:  cmdCheck,
		Args:  cobra.NoArgs,
	}
	rootCmd.AddCommand(checkCmd)

	namesCmd := &cobra.Command{
		Use:   "device-names",
		Short: "List the GRUB names of the devices in the layout",
		RunE:  cmdNames,
		Args:  cobra.NoArgs,
	}
	rootCmd.AddCommand(namesCmd)

	writeCmd := &cobra.Command{
		Use:   "write",
		Short: "Write the boot loader configuration and install the boot loader",
		RunE:  cmdWrite,
		Args:  cobra.NoArgs,
	}
	rootCmd.AddCommand(writeCmd)

	return rootCmd.Execute()
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("error: %s", err)
	}
}
