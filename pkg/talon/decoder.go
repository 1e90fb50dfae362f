// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package talon

import (
	"encoding/binary"
	"fmt"
)

// ErrShortResponse is returned when a response is too short to carry a
// feedback value. Wrapped errors can be tested with errors.Is.
var ErrShortResponse = fmt.Errorf("response too short")

// ParseFeedback extracts the feedback value from a response frame. Both
// variants reply with the value as a big-endian signed 16-bit quantity at
// bytes 3-4; negative values arrive shifted down by one and are compensated
// here.
func ParseFeedback(raw []byte) (int, error) {
	if len(raw) < MinResponseLength {
		return 0, fmt.Errorf("%w: got %d bytes, need at least %d", ErrShortResponse, len(raw), MinResponseLength)
	}
	value := int(int16(binary.BigEndian.Uint16(raw[3:5])))
	if value < 0 {
		value++
	}
	return value, nil
}

// ParseDH3Command decodes a DH3 command frame back into its register,
// value, and direction. Used for trace display and replaying captures, not
// in the live command path.
func ParseDH3Command(raw []byte) (reg Register, value int, write bool, err error) {
	if len(raw) != DH3FrameLength {
		return 0, 0, false, fmt.Errorf("invalid DH3 frame length: %d", len(raw))
	}
	for i, b := range dh3Preamble {
		if raw[i] != b {
			return 0, 0, false, fmt.Errorf("invalid DH3 preamble byte %d: 0x%02X", i, raw[i])
		}
	}
	if raw[DH3FrameLength-1] != dh3Trailer {
		return 0, 0, false, fmt.Errorf("invalid DH3 trailer: 0x%02X", raw[DH3FrameLength-1])
	}
	if raw[4] != deviceAddress {
		return 0, 0, false, fmt.Errorf("unexpected device address: 0x%02X", raw[4])
	}

	switch raw[7] {
	case dh3ModeWrite:
		write = true
	case dh3ModeRead:
		write = false
	default:
		return 0, 0, false, fmt.Errorf("invalid DH3 mode byte: 0x%02X", raw[7])
	}

	reg = Register(uint16(raw[5])<<8 | uint16(raw[6]))
	value = int(int32(binary.BigEndian.Uint32(raw[9:13])))
	return reg, value, write, nil
}

// ParseRGDCommand decodes an RGD command frame back into its register,
// value, and direction, verifying the frame CRC. The negative-value
// off-by-one applied on encode is undone here. Used for trace display and
// replaying captures, not in the live command path.
func ParseRGDCommand(raw []byte) (reg Register, value int, write bool, err error) {
	if len(raw) != RGDFrameLength {
		return 0, 0, false, fmt.Errorf("invalid RGD frame length: %d", len(raw))
	}
	if raw[0] != deviceAddress {
		return 0, 0, false, fmt.Errorf("unexpected device address: 0x%02X", raw[0])
	}

	switch raw[1] {
	case rgdFuncWrite:
		write = true
	case rgdFuncRead:
		write = false
	default:
		return 0, 0, false, fmt.Errorf("invalid RGD function code: 0x%02X", raw[1])
	}

	expected := CalculateCRC(raw[:6])
	got := binary.LittleEndian.Uint16(raw[6:8])
	if got != expected {
		return 0, 0, false, fmt.Errorf("CRC mismatch: expected 0x%04X, got 0x%04X", expected, got)
	}

	reg = Register(uint16(raw[2])<<8 | uint16(raw[3]))
	value = int(int16(binary.LittleEndian.Uint16(raw[4:6])))
	if value < 0 {
		value++
	}
	return reg, value, write, nil
}
