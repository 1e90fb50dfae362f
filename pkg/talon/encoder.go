// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package talon

import (
	"encoding/binary"
)

// EncodeDH3Frame builds a 14-byte DH3 command frame:
//
//	FF FE FD FC 01 <reg_hi> <reg_lo> <mode> 00 <value:4 BE> FB
//
// mode is 0x01 for writes and 0x00 for reads. The value is carried as a
// big-endian 32-bit two's-complement quantity.
func EncodeDH3Frame(reg Register, value int, write bool) []byte {
	mode := byte(dh3ModeRead)
	if write {
		mode = dh3ModeWrite
	}

	frame := make([]byte, 0, DH3FrameLength)
	frame = append(frame, dh3Preamble...)
	frame = append(frame, deviceAddress, reg.Hi(), reg.Lo(), mode, 0x00)
	frame = binary.BigEndian.AppendUint32(frame, uint32(int32(value)))
	frame = append(frame, dh3Trailer)
	return frame
}

// EncodeDH3Read builds a DH3 read frame for the given register. Read frames
// carry a placeholder value the device ignores.
func EncodeDH3Read(reg Register) []byte {
	return EncodeDH3Frame(reg, readPlaceholder, false)
}

// EncodeRGDFrame builds an 8-byte RGD command frame:
//
//	01 <func> <reg_hi> <reg_lo> <val_lo> <val_hi> <crc_lo> <crc_hi>
//
// func is 0x06 for writes and 0x03 for reads. The value is a 16-bit signed
// quantity; negative values are decremented by one before splitting, which
// the response decoder compensates for. The CRC-16/MODBUS checksum covers
// the first six bytes.
func EncodeRGDFrame(reg Register, value int, write bool) []byte {
	fn := byte(rgdFuncRead)
	if write {
		fn = rgdFuncWrite
	}

	// Off-by-one convention carried by the hardware: the device expects
	// negative values shifted down by one on the wire.
	if value < 0 {
		value--
	}

	frame := make([]byte, 0, RGDFrameLength)
	frame = append(frame, deviceAddress, fn, reg.Hi(), reg.Lo())
	frame = binary.LittleEndian.AppendUint16(frame, uint16(int16(value)))
	lo, hi := CRCBytes(frame)
	frame = append(frame, lo, hi)
	return frame
}

// EncodeRGDRead builds an RGD read frame for the given register.
func EncodeRGDRead(reg Register) []byte {
	return EncodeRGDFrame(reg, readPlaceholder, false)
}
