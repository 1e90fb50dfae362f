// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package talon

// CalculateCRC computes CRC-16/MODBUS over the given data
// Used for RGD frame integrity; DH3 frames carry no checksum
func CalculateCRC(data []byte) uint16 {
	crc := uint16(crcInitial)
	for _, b := range data {
		crc ^= uint16(b)
		for i := 0; i < 8; i++ {
			if crc&0x0001 != 0 {
				crc = (crc >> 1) ^ crcPolynomial
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}

// CRCBytes computes CRC-16/MODBUS over the given data and returns the
// checksum split in wire order: low byte first, then high byte
func CRCBytes(data []byte) (lo, hi byte) {
	crc := CalculateCRC(data)
	return byte(crc), byte(crc >> 8)
}
