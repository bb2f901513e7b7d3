// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package acpi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"
)

const (
	testBase = 0xe0000
	rsdpAddr = testBase
	xsdtAddr = testBase + 0x100
	rsdtAddr = testBase + 0x200
	facpAddr = testBase + 0x400
	ssdtAddr = testBase + 0x800
	dsdtAddr = testBase + 0xc00
)

func makeSDT(sig string, oemTableID string, body []byte) []byte {
	buf := &bytes.Buffer{}

	buf.WriteString(sig)
	binary.Write(buf, binary.LittleEndian, uint32(0))
	buf.WriteByte(2)
	buf.WriteByte(0)
	buf.WriteString("SAMMOD")

	id := make([]byte, 8)
	copy(id, oemTableID)
	buf.Write(id)

	binary.Write(buf, binary.LittleEndian, uint32(1))
	buf.WriteString("INTL")
	binary.Write(buf, binary.LittleEndian, uint32(0x20240322))
	buf.Write(body)

	b := buf.Bytes()
	binary.LittleEndian.PutUint32(b[4:], uint32(len(b)))
	b[9] = -Checksum(b)

	return b
}

func makeRSDP(rsdt uint32, xsdt uint64) []byte {
	b := make([]byte, 36)

	copy(b[0:], RSDPSignature)
	copy(b[9:], "SAMMOD")
	b[15] = 2

	binary.LittleEndian.PutUint32(b[16:], rsdt)
	binary.LittleEndian.PutUint32(b[20:], uint32(len(b)))
	binary.LittleEndian.PutUint64(b[24:], xsdt)

	b[8] = -Checksum(b[:20])
	b[32] = -Checksum(b)

	return b
}

// amlBody returns a definition block body holding a decoy reference to WMIR
// (Store opcode) followed by Name objects of every supported type.
func amlBody() []byte {
	return []byte{
		0x70, 'W', 'M', 'I', 'R', 0x60, // Store (WMIR, Local0)
		0x08, 'W', 'M', 'I', 'B', 0x0a, 0x12,
		0x08, 'W', 'M', 'I', 'W', 0x0b, 0x34, 0x12,
		0x08, 'W', 'M', 'I', 'R', 0x0c, 0x21, 0x43, 0x65, 0x87,
		0x08, 'W', 'M', 'I', 'Q', 0x0e, 1, 2, 3, 4, 5, 6, 7, 8,
		0x08, 'S', 'T', 'R', '_', 0x0d, 'a', 'b', 'c', 0x00,
	}
}

func testMemory() *Buffer {
	mem := &Buffer{
		Base: testBase,
		Data: make([]byte, 0x1000),
	}

	put := func(addr uint64, b []byte) {
		copy(mem.Data[addr-testBase:], b)
	}

	var xsdt, rsdt []byte

	for _, addr := range []uint64{facpAddr, ssdtAddr} {
		xsdt = binary.LittleEndian.AppendUint64(xsdt, addr)
		rsdt = binary.LittleEndian.AppendUint32(rsdt, uint32(addr))
	}

	put(rsdpAddr, makeRSDP(rsdtAddr, xsdtAddr))
	put(xsdtAddr, makeSDT(XSDTSignature, "SAMXSDT", xsdt))
	put(rsdtAddr, makeSDT(RSDTSignature, "SAMRSDT", rsdt))
	facp := make([]byte, 16)
	binary.LittleEndian.PutUint32(facp[4:], dsdtAddr)

	put(facpAddr, makeSDT(FACPSignature, "SAMFACP", facp))
	put(ssdtAddr, makeSDT(SSDTSignature, "WmiStudy", amlBody()))
	put(dsdtAddr, makeSDT(DSDTSignature, "SAMDSDT", amlBody()))

	return mem
}

func TestReadRSDP(t *testing.T) {
	mem := testMemory()

	r, err := ReadRSDP(mem, rsdpAddr)

	if err != nil {
		t.Fatal(err)
	}

	if !r.Valid {
		t.Fatal("RSDP checksum should be valid")
	}

	if r.RsdtAddress != rsdtAddr || r.XsdtAddress != xsdtAddr {
		t.Fatalf("unexpected root addresses %#x %#x", r.RsdtAddress, r.XsdtAddress)
	}

	mem.Data[10] ^= 0xff

	if r, err = ReadRSDP(mem, rsdpAddr); err != nil {
		t.Fatal(err)
	}

	if r.Valid {
		t.Fatal("corrupted RSDP reported as valid")
	}

	mem.Data[0] = 'X'

	if _, err = ReadRSDP(mem, rsdpAddr); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected invalid signature, got %v", err)
	}
}

func TestRSDPRoot(t *testing.T) {
	r, err := ParseRSDP(makeRSDP(rsdtAddr, xsdtAddr))

	if err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		bits  int
		addr  uint64
		width int
	}{
		{64, xsdtAddr, 8},
		{32, rsdtAddr, 4},
	} {
		addr, width, err := r.Root(tc.bits)

		if err != nil {
			t.Fatal(err)
		}

		if addr != tc.addr || width != tc.width {
			t.Errorf("%d-bit mode: got %#x/%d, want %#x/%d", tc.bits, addr, width, tc.addr, tc.width)
		}
	}

	if _, _, err = r.Root(16); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected unsupported bit mode, got %v", err)
	}

	// ACPI 1.0 pointers only provide the RSDT
	v1 := makeRSDP(rsdtAddr, 0)[:20]
	v1[15] = 0

	if r, err = ParseRSDP(v1); err != nil {
		t.Fatal(err)
	}

	if addr, width, _ := r.Root(64); addr != rsdtAddr || width != 4 {
		t.Fatalf("expected RSDT fallback, got %#x/%d", addr, width)
	}
}

func TestReadRoot(t *testing.T) {
	mem := testMemory()

	for _, tc := range []struct {
		addr  uint64
		width int
	}{
		{xsdtAddr, 8},
		{rsdtAddr, 4},
	} {
		root, err := ReadRoot(mem, tc.addr, tc.width)

		if err != nil {
			t.Fatal(err)
		}

		if len(root.Entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(root.Entries))
		}

		tables, errs := root.Tables(mem)

		if len(errs) > 0 {
			t.Fatal(errs)
		}

		if sig := string(tables[1].Signature[:]); sig != SSDTSignature {
			t.Fatalf("unexpected signature %q", sig)
		}
	}

	if _, err := ReadRoot(mem, xsdtAddr, 4); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected signature mismatch, got %v", err)
	}
}

func TestFindTables(t *testing.T) {
	mem := testMemory()
	root, err := ReadRoot(mem, xsdtAddr, 8)

	if err != nil {
		t.Fatal(err)
	}

	facp, err := root.Find(mem, FACPSignature)

	if err != nil {
		t.Fatal(err)
	}

	if facp.Address != facpAddr {
		t.Fatalf("unexpected FACP address %#x", facp.Address)
	}

	ssdt, err := root.FindOEMTableID(mem, "WmiStudy")

	if err != nil {
		t.Fatal(err)
	}

	if ssdt.Address != ssdtAddr {
		t.Fatalf("unexpected SSDT address %#x", ssdt.Address)
	}

	if _, err = root.FindOEMTableID(mem, "Missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if _, err = root.FindOEMTableID(mem, "TooLongTableID"); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter, got %v", err)
	}
}

func TestChecksum(t *testing.T) {
	table := makeSDT(SSDTSignature, "WmiStudy", amlBody())

	if Checksum(table) != 0 {
		t.Fatal("fixture checksum is invalid")
	}

	table[len(table)-2] = 'x'

	if Checksum(table) == 0 {
		t.Fatal("checksum not affected by modification")
	}

	if err := FixChecksum(table); err != nil {
		t.Fatal(err)
	}

	if Checksum(table) != 0 {
		t.Fatal("checksum not fixed")
	}
}

func TestPrint(t *testing.T) {
	mem := testMemory()
	buf := &bytes.Buffer{}

	r, _ := ReadRSDP(mem, rsdpAddr)
	r.Print(buf)

	root, err := ReadRoot(mem, xsdtAddr, 8)

	if err != nil {
		t.Fatal(err)
	}

	tables, _ := root.Tables(mem)
	root.Print(buf, tables)

	for _, s := range []string{
		"Signature: RSD PTR ",
		"xsdtAddress: 0x00000000000e0100",
		"=============== XSDT ================",
		"OEM Table ID: SAMXSDT",
		"0001    SSDT    0x00000000000e0800",
	} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("missing %q in:\n%s", s, buf.String())
		}
	}
}

func TestDSDT(t *testing.T) {
	mem := testMemory()

	root, err := ReadRoot(mem, xsdtAddr, 8)

	if err != nil {
		t.Fatal(err)
	}

	dsdt, err := root.DSDT(mem)

	if err != nil {
		t.Fatal(err)
	}

	if dsdt.Address != dsdtAddr || string(dsdt.Signature[:]) != DSDTSignature {
		t.Fatalf("unexpected DSDT %s at %#x", dsdt.Signature[:], dsdt.Address)
	}

	o, err := UpdateNameObject(mem, dsdt.Address, "WMIW", 0xbeef)

	if err != nil {
		t.Fatal(err)
	}

	table, err := ReadTable(mem, dsdtAddr)

	if err != nil {
		t.Fatal(err)
	}

	if n, _, _ := o.Value(table); n != 0xbeef {
		t.Fatalf("unexpected value %#x", n)
	}
}
