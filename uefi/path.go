// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/usbarmory/tamago/dma"
)

var EFI_DEVICE_PATH_PROTOCOL_GUID = MustParseGUID("09576e91-6d3f-11d2-8e39-00a0c969723b")

// Device path types
const (
	HardwareDevicePath  = 0x01
	ACPIDevicePath      = 0x02
	MessagingDevicePath = 0x03
	MediaDevicePath     = 0x04
	BBSDevicePath       = 0x05
	EndDevicePath       = 0x7f
)

// Device path sub-types
const (
	HardwarePCI         = 0x01
	HardwareVendor      = 0x04
	MediaFilePath       = 0x04
	EndEntireDevicePath = 0xff
)

const (
	bufferSize = (1 << 12)
	maxDepth   = 16
)

// DevicePathNode represents an EFI Generic Device Path Node structure.
type DevicePathNode struct {
	Type    uint8
	SubType uint8
	Length  uint16
}

// Bytes converts the descriptor structure to byte array format.
func (d *DevicePathNode) Bytes() []byte {
	buf := new(bytes.Buffer)

	binary.Write(buf, binary.LittleEndian, d.Type)
	binary.Write(buf, binary.LittleEndian, d.SubType)
	binary.Write(buf, binary.LittleEndian, d.Length)

	return buf.Bytes()
}

// DevicePath represents an EFI Device Path Protocol node.
type DevicePath struct {
	DevicePathNode
	Data []byte
}

// Bytes converts the node to byte array format.
func (d *DevicePath) Bytes() []byte {
	return append(d.DevicePathNode.Bytes(), d.Data...)
}

// String returns the node text representation.
func (d *DevicePath) String() string {
	switch {
	case d.Type == HardwareDevicePath && d.SubType == HardwarePCI && len(d.Data) >= 2:
		return fmt.Sprintf("Pci(%#x,%#x)", d.Data[1], d.Data[0])
	case d.Type == HardwareDevicePath && d.SubType == HardwareVendor && len(d.Data) >= 16:
		var g GUID
		copy(g[:], d.Data)
		return fmt.Sprintf("VenHw(%s)", g)
	case d.Type == ACPIDevicePath && d.SubType == 0x01 && len(d.Data) >= 8:
		return fmt.Sprintf("Acpi(%#x,%#x)",
			binary.LittleEndian.Uint32(d.Data[0:4]),
			binary.LittleEndian.Uint32(d.Data[4:8]))
	case d.Type == MediaDevicePath && d.SubType == MediaFilePath:
		return fromUTF16(d.Data)
	default:
		return fmt.Sprintf("Path(%d,%d,%x)", d.Type, d.SubType, d.Data)
	}
}

// VendorDevicePath returns a vendor defined hardware device path, terminated
// with an end node, in byte array format.
func VendorDevicePath(guid GUID) []byte {
	vendor := &DevicePath{
		DevicePathNode: DevicePathNode{
			Type:    HardwareDevicePath,
			SubType: HardwareVendor,
			Length:  uint16(4 + len(guid)),
		},
		Data: guid[:],
	}

	end := &DevicePathNode{
		Type:    EndDevicePath,
		SubType: EndEntireDevicePath,
		Length:  4,
	}

	return append(vendor.Bytes(), end.Bytes()...)
}

// ParseDevicePath parses a device path buffer up to its end node.
//
// While we could use UEFI functions to perform the same, we prefer to keep
// control on this parsing given that UEFI firmware does not handle
// gracefully invalid pointers (e.g. DoS condition).
func ParseDevicePath(buf []byte) (devicePath []*DevicePath, err error) {
	off := 0

	for i := 0; i <= maxDepth; i++ {
		if i == maxDepth {
			return nil, errors.New("device path nodes limit exceeded")
		}

		if off+4 > len(buf) {
			return nil, errors.New("missing end node")
		}

		node := DevicePathNode{}

		if err = unmarshalBinary(buf[off:off+4], &node); err != nil {
			return nil, err
		}

		if node.Type == EndDevicePath && node.SubType == EndEntireDevicePath {
			break
		}

		if node.Length < 4 || off+int(node.Length) > len(buf) {
			return nil, errors.New("invalid length")
		}

		d := &DevicePath{
			DevicePathNode: node,
			Data:           make([]byte, node.Length-4),
		}

		copy(d.Data, buf[off+4:off+int(node.Length)])
		off += int(node.Length)

		devicePath = append(devicePath, d)
	}

	return
}

// FormatDevicePath returns the text representation of a device path.
func FormatDevicePath(devicePath []*DevicePath) string {
	var s []string

	for _, d := range devicePath {
		s = append(s, d.String())
	}

	return strings.Join(s, "/")
}

// DevicePath returns the parsed device path of the argument handle.
func (s *BootServices) DevicePath(handle uint64) (devicePath []*DevicePath, err error) {
	addr, err := s.HandleProtocol(handle, EFI_DEVICE_PATH_PROTOCOL_GUID)

	if err != nil {
		return
	}

	r, err := dma.NewRegion(uint(addr), bufferSize, false)

	if err != nil {
		return
	}

	ptr, buf := r.Reserve(bufferSize, 0)
	defer r.Release(ptr)

	return ParseDevicePath(buf)
}
