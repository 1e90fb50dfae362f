// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package talon

import "strings"

// Register is a 16-bit device register address. The wire format splits it
// into a (high, low) byte pair.
type Register uint16

// Hi returns the high address byte
func (r Register) Hi() byte {
	return byte(r >> 8)
}

// Lo returns the low address byte
func (r Register) Lo() byte {
	return byte(r)
}

// DH3 registers
const (
	DH3RegOpenForce    Register = 0x0502
	DH3RegCloseForce   Register = 0x0503
	DH3RegPosition     Register = 0x0602
	DH3RegAngle        Register = 0x0702
	DH3RegInitFeedback Register = 0x0801
	DH3RegInitState    Register = 0x0802
	DH3RegGripState    Register = 0x0F01
)

// RGD registers - command group (0x01xx)
const (
	RGDRegInitState   Register = 0x0100
	RGDRegForce       Register = 0x0101
	RGDRegPosition    Register = 0x0103
	RGDRegVelocity    Register = 0x0104
	RGDRegAbsRotation Register = 0x0105
	RGDRegRotVelocity Register = 0x0107
	RGDRegRotForce    Register = 0x0108
	RGDRegRelRotation Register = 0x0109
)

// RGD registers - feedback group (0x02xx)
const (
	RGDRegReadyState    Register = 0x0200
	RGDRegGripState     Register = 0x0201
	RGDRegPosFeedback   Register = 0x0202
	RGDRegCurrent       Register = 0x0204
	RGDRegErrorCode     Register = 0x0205
	RGDRegRotAngle      Register = 0x0208
	RGDRegRotReadyState Register = 0x020A
	RGDRegRotState      Register = 0x020B
)

// RGD registers - configuration group (0x03xx)
const (
	RGDRegInitDirection Register = 0x0301
)

// Access describes how a register may be used
type Access int

const (
	ReadWrite Access = iota
	ReadOnly
	WriteOnly
)

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "RO"
	case WriteOnly:
		return "WO"
	default:
		return "RW"
	}
}

// RegisterInfo describes one register of a device variant: its name, how it
// may be accessed, the accepted value range for writes (nil when the device
// imposes none), and whether writes to it go unanswered.
type RegisterInfo struct {
	Register Register
	Name     string
	Access   Access
	Bounds   *Bounds
	NoReply  bool
}

// dh3Registers is the DH3 register table with write bounds.
var dh3Registers = []RegisterInfo{
	{DH3RegOpenForce, "OPEN_FORCE", ReadWrite, &Bounds{10, 90}, false},
	{DH3RegCloseForce, "CLOSE_FORCE", ReadWrite, &Bounds{10, 90}, false},
	{DH3RegPosition, "POSITION", ReadWrite, &Bounds{0, 95}, false},
	{DH3RegAngle, "ANGLE", ReadWrite, &Bounds{0, 100}, false},
	{DH3RegInitFeedback, "INIT_FEEDBACK", WriteOnly, nil, true},
	{DH3RegInitState, "INIT_STATE", WriteOnly, nil, false},
	{DH3RegGripState, "GRIP_STATE", ReadOnly, nil, false},
}

// rgdRegisters is the RGD register table with write bounds.
var rgdRegisters = []RegisterInfo{
	{RGDRegInitState, "INIT_STATE", WriteOnly, nil, false},
	{RGDRegForce, "FORCE", WriteOnly, &Bounds{20, 100}, false},
	{RGDRegPosition, "POSITION", WriteOnly, &Bounds{0, 1000}, false},
	{RGDRegVelocity, "VELOCITY", WriteOnly, &Bounds{1, 100}, false},
	{RGDRegAbsRotation, "ABS_ROTATION", WriteOnly, &Bounds{-32768, 32767}, true},
	{RGDRegRotVelocity, "ROT_VELOCITY", WriteOnly, &Bounds{1, 100}, true},
	{RGDRegRotForce, "ROT_FORCE", WriteOnly, &Bounds{20, 100}, false},
	{RGDRegRelRotation, "REL_ROTATION", WriteOnly, &Bounds{-32768, 32767}, false},
	{RGDRegReadyState, "READY_STATE", ReadOnly, nil, false},
	{RGDRegGripState, "GRIP_STATE", ReadOnly, nil, false},
	{RGDRegPosFeedback, "POSITION_FEEDBACK", ReadOnly, nil, false},
	{RGDRegCurrent, "CURRENT", ReadOnly, nil, false},
	{RGDRegErrorCode, "ERROR_CODE", ReadOnly, nil, false},
	{RGDRegRotAngle, "ROT_ANGLE", ReadOnly, nil, false},
	{RGDRegRotReadyState, "ROT_READY_STATE", ReadOnly, nil, false},
	{RGDRegRotState, "ROT_STATE", ReadOnly, nil, false},
	{RGDRegInitDirection, "INIT_DIRECTION", WriteOnly, nil, false},
}

// Registers returns the register table for a model. The returned slice is
// shared; callers must not modify it.
func Registers(m Model) []RegisterInfo {
	switch m {
	case ModelDH3:
		return dh3Registers
	case ModelRGD:
		return rgdRegisters
	default:
		return nil
	}
}

// LookupRegister finds a register by name, ignoring case and treating '-'
// and '_' as equivalent.
func LookupRegister(m Model, name string) (RegisterInfo, bool) {
	name = strings.ReplaceAll(name, "-", "_")
	for _, info := range Registers(m) {
		if strings.EqualFold(info.Name, name) {
			return info, true
		}
	}
	return RegisterInfo{}, false
}

// registerInfo resolves an address to its table entry.
func registerInfo(m Model, reg Register) (RegisterInfo, bool) {
	for _, info := range Registers(m) {
		if info.Register == reg {
			return info, true
		}
	}
	return RegisterInfo{}, false
}
