// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sammodule/sam-boot/acpi"
)

// TablesDir is the sysfs directory exposing the firmware ACPI tables.
const TablesDir = "/sys/firmware/acpi/tables"

func NewACPICmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "acpi",
		Short: "Inspect and patch ACPI tables",
	}

	dump := &cobra.Command{
		Use:   "dump",
		Args:  cobra.ExactArgs(0),
		Short: "Print the header of every firmware ACPI table",
		RunE:  acpiDump,
	}
	dump.Flags().String("dir", TablesDir, "ACPI tables directory")
	dump.Flags().Bool("raw", false, "Dump headers as Go structures")
	_ = viper.BindPFlag("acpi.dir", dump.Flags().Lookup("dir"))

	patch := &cobra.Command{
		Use:   "patch <file> <name> <hex value>",
		Args:  cobra.ExactArgs(3),
		Short: "Update the integer value of an AML Name object in a DSDT or SSDT file",
		RunE:  acpiPatch,
	}
	patch.Flags().Bool("fix-checksum", false, "Recompute the table checksum")
	patch.Flags().StringP("output", "o", "", "Output file (default: overwrite input)")

	c.AddCommand(dump, patch)
	root.AddCommand(c)

	return c
}

// register the subcommand into rootCmd
var _ = NewACPICmd(rootCmd)

func acpiDump(cmd *cobra.Command, _ []string) error {
	var result *multierror.Error

	dir := viper.GetString("acpi.dir")
	raw, _ := cmd.Flags().GetBool("raw")
	out := cmd.OutOrStdout()

	entries, err := config.Fs.ReadDir(dir)

	if err != nil {
		return fmt.Errorf("could not read %s, %v", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		path := filepath.Join(dir, e.Name())
		config.Logger.Debugf("reading %s", path)

		buf, err := config.Fs.ReadFile(path)

		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		h, err := acpi.ParseHeader(buf)

		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", e.Name(), err))
			continue
		}

		fmt.Fprintf(out, "=============== %s ================\n", e.Name())

		if raw {
			fmt.Fprintln(out, litter.Sdump(h))
		} else {
			h.Print(out)
		}

		fmt.Fprintf(out, "Valid: %v\n\n", acpi.Checksum(buf[:h.Length]) == 0)
	}

	return result.ErrorOrNil()
}

func acpiPatch(cmd *cobra.Command, args []string) (err error) {
	path, name := args[0], args[1]

	val, err := strconv.ParseUint(args[2], 16, 64)

	if err != nil {
		return fmt.Errorf("invalid value, %v", err)
	}

	output, _ := cmd.Flags().GetString("output")
	fix, _ := cmd.Flags().GetBool("fix-checksum")

	if len(output) == 0 {
		output = path
	}

	table, err := config.Fs.ReadFile(path)

	if err != nil {
		return
	}

	o, err := acpi.FindNameObject(table, name)

	if err != nil {
		return fmt.Errorf("could not find %s, %w", name, err)
	}

	prev, _, err := o.Value(table)

	if err != nil {
		return
	}

	if err = o.Set(table, val); err != nil {
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s @ %#x: %#x -> %#x\n", o.Name, o.ValueOffset, prev, val)

	if fix {
		if err = acpi.FixChecksum(table); err != nil {
			return
		}

		config.Logger.Infof("checksum updated")
	} else if acpi.Checksum(table) != 0 {
		config.Logger.Warnf("table checksum is now invalid, use --fix-checksum to update it")
	}

	config.Logger.Debugf("writing %s", output)

	return config.Fs.WriteFile(output, table, 0644)
}
