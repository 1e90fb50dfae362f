// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

// Package talon provides a reference Go implementation of the Talon register protocol.
//
// Talon is a Modbus-style register protocol for controlling DH3 and RGD series
// grippers over a half-duplex serial line. This package provides frame
// encoding/decoding for both device variants, range validation, command
// dispatch with the timing the hardware requires, and trace capture.
//
// The two variants share a register addressing scheme and response layout but
// use incompatible frame formats: DH3 frames are 14 bytes with a fixed
// preamble and trailer, RGD frames are 8 bytes with a CRC-16/MODBUS suffix.
package talon

import "time"

// Serial line configuration. Both gripper families run at a fixed rate.
const (
	BaudRate = 115200
)

// Frame sizes per variant
const (
	DH3FrameLength = 14
	RGDFrameLength = 8

	// Responses carry the feedback value at bytes 3-4, so anything
	// shorter cannot be parsed.
	MinResponseLength = 5
)

// DH3 framing
const (
	dh3Trailer   = 0xFB
	dh3ModeWrite = 0x01
	dh3ModeRead  = 0x00
)

// Read frames still carry a value field; the device ignores it.
const readPlaceholder = 0x01

// dh3Preamble opens every DH3 command frame.
var dh3Preamble = []byte{0xFF, 0xFE, 0xFD, 0xFC}

// RGD framing (standard Modbus RTU function codes)
const (
	rgdFuncWrite = 0x06
	rgdFuncRead  = 0x03
)

// deviceAddress is the station ID both variants answer on.
const deviceAddress = 0x01

// CRC-16/MODBUS configuration (RGD frames only)
const (
	crcPolynomial = 0xA001
	crcInitial    = 0xFFFF
)

// Protocol timing. The hardware has no response-ready signaling, so the
// driver substitutes fixed delays observed to be sufficient at 115200 baud.
const (
	// ResponseSettleDelay is the wait between sending a command and
	// draining the response.
	ResponseSettleDelay = 80 * time.Millisecond

	// DH3CommandDelay and RGDCommandDelay pace commands that do not
	// wait for a response.
	DH3CommandDelay = 10 * time.Millisecond
	RGDCommandDelay = 5 * time.Millisecond

	// BusyPollDelay spaces readiness re-reads while the device
	// reports BUSY.
	BusyPollDelay = 100 * time.Millisecond

	// PositionPollDelay spaces position-feedback reads during an RGD
	// blocking move.
	PositionPollDelay = 10 * time.Millisecond
)

// Model selects a gripper family.
type Model int

const (
	ModelDH3 Model = iota
	ModelRGD
)

// String returns the lowercase model name used on the command line.
func (m Model) String() string {
	switch m {
	case ModelDH3:
		return "dh3"
	case ModelRGD:
		return "rgd"
	default:
		return "unknown"
	}
}

// ReadyState is the value of an RGD readiness register.
// Any value other than NOT_READY and BUSY means the device is ready.
type ReadyState int

const (
	ReadyNotReady ReadyState = 0
	ReadyBusy     ReadyState = 2
)

func (s ReadyState) String() string {
	switch s {
	case ReadyNotReady:
		return "NOT_READY"
	case ReadyBusy:
		return "BUSY"
	default:
		return "READY"
	}
}

// Grip direction codes for the RGD INIT_DIRECTION register
const (
	DirectionOpen  = 0
	DirectionClose = 1
)
