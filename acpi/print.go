// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package acpi

import (
	"fmt"
	"io"
)

// Print writes the RSDP fields.
func (r *RSDP) Print(w io.Writer) {
	fmt.Fprintf(w, "=============== RSDP ================\n")
	fmt.Fprintf(w, "Signature: %s\n", r.Signature[:])
	fmt.Fprintf(w, "Checksum: 0x%02x\n", r.Checksum)
	fmt.Fprintf(w, "OEMID: %s\n", r.OEMID[:])
	fmt.Fprintf(w, "Revision: 0x%02x\n", r.Revision)
	fmt.Fprintf(w, "rsdtAddress: 0x%08x\n", r.RsdtAddress)
	fmt.Fprintf(w, "Length: 0x%08x\n", r.Length)
	fmt.Fprintf(w, "xsdtAddress: 0x%016x\n", r.XsdtAddress)
	fmt.Fprintf(w, "Extended Checksum: 0x%02x\n", r.ExtendedChecksum)
	fmt.Fprintf(w, "Reserved: 0x%x 0x%x 0x%x\n", r.Reserved[0], r.Reserved[1], r.Reserved[2])
	fmt.Fprintf(w, "Valid: %v\n\n", r.Valid)
}

// Print writes the header fields.
func (h *Header) Print(w io.Writer) {
	fmt.Fprintf(w, "Signature: %s\n", h.Signature[:])
	fmt.Fprintf(w, "Length: 0x%08x\n", h.Length)
	fmt.Fprintf(w, "Revision: 0x%02x\n", h.Revision)
	fmt.Fprintf(w, "Checksum: 0x%02x\n", h.Checksum)
	fmt.Fprintf(w, "OEMID: %s\n", h.OEMID[:])
	fmt.Fprintf(w, "OEM Table ID: %s\n", h.OEMTableID[:])
	fmt.Fprintf(w, "OEM Revision: 0x%08x\n", h.OEMRevision)
	fmt.Fprintf(w, "Creator ID: %s\n", h.CreatorID[:])
	fmt.Fprintf(w, "Creator Revision: 0x%08x\n", h.CreatorRevision)
}

// Print writes the root table header followed by the list of referenced
// tables.
func (t *RootTable) Print(w io.Writer, tables []*Table) {
	sig := string(t.Signature[:])
	addrFmt := fmt.Sprintf("0x%%0%dx", t.Width*2)

	fmt.Fprintf(w, "=============== %s ================\n", sig)
	t.Header.Print(w)

	if len(t.Entries) > 0 {
		fmt.Fprintf(w, "Entry: "+addrFmt+"\n", t.Entries[0])
	}

	fmt.Fprintf(w, "========== ACPI %s LIST ==========\n", sig)
	fmt.Fprintf(w, "Index Signature   Address\n")

	for i, table := range tables {
		fmt.Fprintf(w, "%04d    %s    "+addrFmt+"\n", i, table.Signature[:], table.Address)
	}

	fmt.Fprintln(w)
}
