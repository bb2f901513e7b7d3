// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ACPI configuration table GUIDs
var (
	ACPI_TABLE_GUID    = MustParseGUID("eb9d2d30-2d88-11d3-9a16-0090273fc14d")
	ACPI_20_TABLE_GUID = MustParseGUID("8868e871-e4f1-11d3-bc22-0080c73c8881")
)

// ConfigurationTable represents an EFI Configuration Table.
type ConfigurationTable struct {
	GUID        GUID
	VendorTable uint64
}

// ConfigurationTables returns the EFI Configuration Tables.
func (d *SystemTable) ConfigurationTables() (c []*ConfigurationTable, err error) {
	if d.NumberOfTableEntries == 0 || d.ConfigurationTable == 0 {
		return nil, errors.New("EFI Configuration Table is invalid")
	}

	entrySize := binary.Size(&ConfigurationTable{})

	buf, err := Memory{}.Read(d.ConfigurationTable, entrySize*int(d.NumberOfTableEntries))

	if err != nil {
		return
	}

	for i := 0; i < len(buf); i += entrySize {
		t := &ConfigurationTable{}

		if err = unmarshalBinary(buf[i:i+entrySize], t); err != nil {
			return
		}

		c = append(c, t)
	}

	return
}

// LocateConfiguration locates an EFI Configuration Table.
func (d *SystemTable) LocateConfiguration(guid GUID) (t *ConfigurationTable, err error) {
	var c []*ConfigurationTable

	if c, err = d.ConfigurationTables(); err != nil {
		return
	}

	for _, t := range c {
		if t.GUID == guid {
			return t, nil
		}
	}

	return nil, fmt.Errorf("configuration table %s, %w", guid, ErrEfiNotFound)
}

// ACPIRoot returns the address of the ACPI Root System Description Pointer,
// the ACPI 2.0 configuration table is preferred over the 1.0 one.
func (d *SystemTable) ACPIRoot() (addr uint64, err error) {
	var t *ConfigurationTable

	for _, guid := range []GUID{ACPI_20_TABLE_GUID, ACPI_TABLE_GUID} {
		if t, err = d.LocateConfiguration(guid); err == nil {
			return t.VendorTable, nil
		}
	}

	return
}
