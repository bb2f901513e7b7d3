// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package acpi

// checksum byte offset within the system description table header
const checksumOffset = 9

// Checksum returns the 8-bit sum of all bytes, valid tables sum to zero.
func Checksum(buf []byte) (sum uint8) {
	for _, b := range buf {
		sum += b
	}

	return
}

// FixChecksum updates the checksum field of the system description table
// held in the argument buffer.
func FixChecksum(buf []byte) (err error) {
	h, err := ParseHeader(buf)

	if err != nil {
		return
	}

	table := buf[:h.Length]
	table[checksumOffset] = 0
	table[checksumOffset] = -Checksum(table)

	return
}

// UpdateChecksum recomputes the checksum of the system description table at
// the argument address.
func UpdateChecksum(mem Memory, addr uint64) (sum uint8, err error) {
	buf, err := ReadTable(mem, addr)

	if err != nil {
		return
	}

	if err = FixChecksum(buf); err != nil {
		return
	}

	sum = buf[checksumOffset]
	_, err = mem.WriteAt([]byte{sum}, int64(addr)+checksumOffset)

	return
}
