// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package talon

import (
	"fmt"
	"time"
)

// Protocol is the per-variant framing capability: frame construction,
// response parsing, and the register table. The two gripper families are
// independent implementations sharing only this surface.
type Protocol interface {
	// Model identifies the device family.
	Model() Model

	// FrameLength is the fixed command frame size in bytes.
	FrameLength() int

	// EncodeWrite builds a write frame for a register and value.
	EncodeWrite(reg Register, value int) []byte

	// EncodeRead builds a read frame for a register.
	EncodeRead(reg Register) []byte

	// ParseResponse extracts the feedback value from a raw response.
	ParseResponse(raw []byte) (int, error)

	// CommandDelay is the pacing wait after a command that expects no
	// response.
	CommandDelay() time.Duration

	// Registers returns the variant's register table.
	Registers() []RegisterInfo
}

// DH3Protocol implements Protocol for DH3 grippers.
type DH3Protocol struct{}

func (DH3Protocol) Model() Model { return ModelDH3 }

func (DH3Protocol) FrameLength() int { return DH3FrameLength }

func (DH3Protocol) EncodeWrite(reg Register, value int) []byte {
	return EncodeDH3Frame(reg, value, true)
}

func (DH3Protocol) EncodeRead(reg Register) []byte { return EncodeDH3Read(reg) }

func (DH3Protocol) ParseResponse(raw []byte) (int, error) { return ParseFeedback(raw) }

func (DH3Protocol) CommandDelay() time.Duration { return DH3CommandDelay }

func (DH3Protocol) Registers() []RegisterInfo { return dh3Registers }

// RGDProtocol implements Protocol for RGD grippers.
type RGDProtocol struct{}

func (RGDProtocol) Model() Model { return ModelRGD }

func (RGDProtocol) FrameLength() int { return RGDFrameLength }

func (RGDProtocol) EncodeWrite(reg Register, value int) []byte {
	return EncodeRGDFrame(reg, value, true)
}

func (RGDProtocol) EncodeRead(reg Register) []byte { return EncodeRGDRead(reg) }

func (RGDProtocol) ParseResponse(raw []byte) (int, error) { return ParseFeedback(raw) }

func (RGDProtocol) CommandDelay() time.Duration { return RGDCommandDelay }

func (RGDProtocol) Registers() []RegisterInfo { return rgdRegisters }

// ProtocolFor returns the Protocol implementation for a model.
func ProtocolFor(m Model) (Protocol, error) {
	switch m {
	case ModelDH3:
		return DH3Protocol{}, nil
	case ModelRGD:
		return RGDProtocol{}, nil
	default:
		return nil, fmt.Errorf("unknown gripper model: %d", m)
	}
}

// ParseModel parses a model name as used on the command line ("dh3", "rgd").
func ParseModel(s string) (Model, error) {
	switch s {
	case "dh3", "DH3":
		return ModelDH3, nil
	case "rgd", "RGD":
		return ModelRGD, nil
	default:
		return 0, fmt.Errorf("unknown gripper model %q (use dh3 or rgd)", s)
	}
}
