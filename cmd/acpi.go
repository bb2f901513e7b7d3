// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"github.com/sammodule/sam-boot/acpi"
	"github.com/sammodule/sam-boot/bytefmt"
	"github.com/sammodule/sam-boot/shell"
	"github.com/sammodule/sam-boot/uefi"
	"github.com/sammodule/sam-boot/uefi/x64"
)

func init() {
	shell.Add(shell.Cmd{
		Name: "acpi",
		Help: "ACPI table information",
		Fn:   acpiCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "aml",
		Args:    4,
		Pattern: regexp.MustCompile(`^aml (\S{1,8}) (\S{1,4}) ([[:xdigit:]]+)( fix)?$`),
		Syntax:  "<DSDT|SSDT OEM table ID> <name> <hex value> (fix)?",
		Help:    "update AML Name object integer value",
		Fn:      amlCmd,
	})
}

// rsdp locates the Root System Description Pointer in the EFI Configuration
// Tables, the ACPI 2.0 table is preferred.
func rsdp() (r *acpi.RSDP, err error) {
	addr, err := x64.UEFI.SystemTable.ACPIRoot()

	if err != nil {
		return nil, fmt.Errorf("could not locate RSDP, %v", err)
	}

	return acpi.ReadRSDP(uefi.Memory{}, addr)
}

func rootTable() (r *acpi.RSDP, root *acpi.RootTable, err error) {
	if r, err = rsdp(); err != nil {
		return
	}

	addr, width, err := r.Root(bytefmt.BitMode())

	if err != nil {
		return
	}

	root, err = acpi.ReadRoot(uefi.Memory{}, addr, width)

	return
}

func acpiCmd(_ *shell.Interface, _ []string) (res string, err error) {
	var buf bytes.Buffer

	r, root, err := rootTable()

	if err != nil {
		return
	}

	r.Print(&buf)

	tables, errs := root.Tables(uefi.Memory{})
	root.Print(&buf, tables)

	for _, err := range errs {
		fmt.Fprintf(&buf, "warning: %v\n", err)
	}

	return buf.String(), nil
}

func amlCmd(_ *shell.Interface, arg []string) (res string, err error) {
	var t *acpi.Table
	var buf bytes.Buffer

	val, err := strconv.ParseUint(arg[2], 16, 64)

	if err != nil {
		return "", fmt.Errorf("invalid value, %v", err)
	}

	_, root, err := rootTable()

	if err != nil {
		return
	}

	mem := uefi.Memory{}

	switch id := arg[0]; id {
	case acpi.DSDTSignature:
		t, err = root.DSDT(mem)
	default:
		t, err = root.FindOEMTableID(mem, id)
	}

	if err != nil {
		return "", fmt.Errorf("could not find table %s, %v", arg[0], err)
	}

	table, err := acpi.ReadTable(mem, t.Address)

	if err != nil {
		return
	}

	o, err := acpi.FindNameObject(table, arg[1])

	if err != nil {
		return
	}

	prev, _, err := o.Value(table)

	if err != nil {
		return
	}

	if _, err = acpi.UpdateNameObject(mem, t.Address, arg[1], val); err != nil {
		return
	}

	fmt.Fprintf(&buf, "%s %s @ %#x: %#x -> %#x\n", t.Signature[:], o.Name, t.Address+uint64(o.ValueOffset), prev, val)

	if len(arg[3]) > 0 {
		sum, err := acpi.UpdateChecksum(mem, t.Address)

		if err != nil {
			return "", fmt.Errorf("could not update checksum, %v", err)
		}

		fmt.Fprintf(&buf, "checksum: %#02x\n", sum)
	}

	return buf.String(), nil
}
