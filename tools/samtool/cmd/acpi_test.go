// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"encoding/binary"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/twpayne/go-vfs/vfst"

	"github.com/sammodule/sam-boot/acpi"
)

// WMIW value offset: header, NameOp and NameSeg, WordPrefix
const wmiwOffset = acpi.HeaderSize + 1 + 4 + 1

func ssdt() []byte {
	body := []byte{acpi.NameOp, 'W', 'M', 'I', 'W', acpi.WordPrefix, 0x34, 0x12}

	h := &acpi.Header{
		Signature:  [4]byte{'S', 'S', 'D', 'T'},
		Length:     uint32(acpi.HeaderSize + len(body)),
		Revision:   2,
		OEMID:      [6]byte{'S', 'A', 'M', ' ', ' ', ' '},
		OEMTableID: [8]byte{'S', 'A', 'M', 'T', 'A', 'B', 'L', 'E'},
		CreatorID:  [4]byte{'S', 'A', 'M', ' '},
	}

	buf := append(h.Bytes(), body...)
	_ = acpi.FixChecksum(buf)

	return buf
}

var _ = Describe("ACPI", Label("acpi", "cmd"), func() {
	var fs *vfst.TestFS
	var cleanup func()

	BeforeEach(func() {
		var err error

		fs, cleanup, err = vfst.NewTestFS(map[string]interface{}{
			"/tables/SSDT1":   string(ssdt()),
			"/tables/BAD":     "XX",
			"/tables/dynamic": &vfst.Dir{Perm: 0755},
			"/out":            &vfst.Dir{Perm: 0755},
		})
		Expect(err).To(BeNil())

		config = &Config{
			Fs:         fs,
			Logger:     NewNullLogger(),
			VarContext: config.VarContext,
		}

		rootCmd = NewRootCmd()
		_ = NewACPICmd(rootCmd)
	})
	AfterEach(func() {
		cleanup()
	})
	Describe("dump", func() {
		It("Prints valid tables and reports invalid ones", func() {
			_, output, err := executeCommandC(rootCmd, "acpi", "dump", "--dir", "/tables")
			Expect(err).NotTo(BeNil())
			Expect(err.Error()).To(ContainSubstring("BAD"))
			Expect(output).To(ContainSubstring("Signature: SSDT"))
			Expect(output).To(ContainSubstring("OEM Table ID: SAMTABLE"))
			Expect(output).To(ContainSubstring("Valid: true"))
			Expect(output).NotTo(ContainSubstring("dynamic"))
		})
		It("Dumps raw headers", Label("flags"), func() {
			_, output, _ := executeCommandC(rootCmd, "acpi", "dump", "--dir", "/tables", "--raw")
			Expect(output).To(ContainSubstring("acpi.Header"))
		})
		It("Fails on a missing directory", func() {
			_, _, err := executeCommandC(rootCmd, "acpi", "dump", "--dir", "/missing")
			Expect(err).NotTo(BeNil())
		})
	})
	Describe("patch", func() {
		It("Updates a name object and its checksum", func() {
			_, output, err := executeCommandC(rootCmd, "acpi", "patch", "/tables/SSDT1", "WMIW", "beef", "-o", "/out/SSDT1", "--fix-checksum")
			Expect(err).To(BeNil())
			Expect(output).To(ContainSubstring("0x1234 -> 0xbeef"))

			buf, err := fs.ReadFile("/out/SSDT1")
			Expect(err).To(BeNil())
			Expect(binary.LittleEndian.Uint16(buf[wmiwOffset:])).To(Equal(uint16(0xbeef)))
			Expect(acpi.Checksum(buf)).To(Equal(uint8(0)))

			orig, err := fs.ReadFile("/tables/SSDT1")
			Expect(err).To(BeNil())
			Expect(orig).To(Equal(ssdt()))
		})
		It("Leaves the checksum stale by default", func() {
			_, _, err := executeCommandC(rootCmd, "acpi", "patch", "/tables/SSDT1", "WMIW", "beef")
			Expect(err).To(BeNil())

			buf, err := fs.ReadFile("/tables/SSDT1")
			Expect(err).To(BeNil())
			Expect(binary.LittleEndian.Uint16(buf[wmiwOffset:])).To(Equal(uint16(0xbeef)))
			Expect(acpi.Checksum(buf)).NotTo(Equal(uint8(0)))
		})
		It("Rejects truncated tables", func() {
			_, _, err := executeCommandC(rootCmd, "acpi", "patch", "/tables/BAD", "WMIW", "1")
			Expect(err).NotTo(BeNil())
		})
		It("Fails on unknown names", func() {
			_, _, err := executeCommandC(rootCmd, "acpi", "patch", "/tables/SSDT1", "NONE", "1")
			Expect(err).NotTo(BeNil())
			Expect(err.Error()).To(ContainSubstring("could not find"))
		})
		It("Fails on invalid values", func() {
			_, _, err := executeCommandC(rootCmd, "acpi", "patch", "/tables/SSDT1", "WMIW", "xyz")
			Expect(err).NotTo(BeNil())
		})
	})
})
