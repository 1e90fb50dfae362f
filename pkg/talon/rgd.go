// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package talon

import (
	"context"
	"fmt"
	"time"
)

// rgdInitValue is the magic constant a RGD expects on its INIT_STATE
// register.
const rgdInitValue = 165

// RGD drives an RGD rotating parallel gripper. One instance exclusively
// owns its transport for the life of the process.
//
// Poll controls the convergence loop of the blocking position setter. The
// constructor seeds it with the protocol's standard 10 ms read spacing; a
// zero Interval turns it into a tight loop.
type RGD struct {
	d    *Dispatcher
	Poll PollConfig
}

// NewRGD creates an RGD driver on an open transport and sends the
// initialization command the device expects before accepting motion
// commands.
func NewRGD(tr Transport) (*RGD, error) {
	g := &RGD{
		d:    NewDispatcher(RGDProtocol{}, tr),
		Poll: PollConfig{Interval: PositionPollDelay},
	}
	if err := g.InitState(); err != nil {
		return nil, fmt.Errorf("rgd init failed: %w", err)
	}
	return g, nil
}

// OpenRGD opens the serial port and creates an RGD driver on it.
func OpenRGD(portName string) (*RGD, error) {
	tr, err := OpenSerial(portName)
	if err != nil {
		return nil, err
	}
	g, err := NewRGD(tr)
	if err != nil {
		tr.Close()
		return nil, err
	}
	return g, nil
}

// Dispatcher exposes the underlying dispatcher for raw register access,
// statistics, and tracing.
func (g *RGD) Dispatcher() *Dispatcher {
	return g.d
}

// Close closes the transport.
func (g *RGD) Close() error {
	return g.d.Close()
}

// InitState sends the initialization command (165 to INIT_STATE). The
// device echoes a value which is discarded.
func (g *RGD) InitState() error {
	_, err := g.d.Write(RGDRegInitState, rgdInitValue)
	return err
}

// SetForce sets the grip force, range 20-100.
func (g *RGD) SetForce(val int) error {
	return g.write(RGDRegForce, val)
}

// SetPosition commands a jaw position, range 0-1000, and blocks until the
// position feedback register reads back the commanded value or ctx is
// cancelled.
func (g *RGD) SetPosition(ctx context.Context, val int) error {
	if err := g.SetPositionNoWait(val); err != nil {
		return err
	}
	return pollUntil(ctx, g.Poll, g.Position, val)
}

// SetPositionNoWait commands a jaw position without waiting for the move
// to complete.
func (g *RGD) SetPositionNoWait(val int) error {
	return g.write(RGDRegPosition, val)
}

// SetVelocity sets the jaw speed, range 1-100.
func (g *RGD) SetVelocity(val int) error {
	return g.write(RGDRegVelocity, val)
}

// SetAbsRotation commands an absolute rotation angle. The device sends no
// response to this command.
func (g *RGD) SetAbsRotation(val int) error {
	return g.writeNoReply(RGDRegAbsRotation, val)
}

// SetRotationVelocity sets the rotation speed, range 1-100. The device
// sends no response to this command.
func (g *RGD) SetRotationVelocity(val int) error {
	return g.writeNoReply(RGDRegRotVelocity, val)
}

// SetRotationForce sets the rotation force, range 20-100.
func (g *RGD) SetRotationForce(val int) error {
	return g.write(RGDRegRotForce, val)
}

// SetRelRotation commands a rotation relative to the current angle.
// Unlike SetAbsRotation this command is answered and the echo is waited
// for.
func (g *RGD) SetRelRotation(val int) error {
	return g.write(RGDRegRelRotation, val)
}

// InitDirection sets which way the jaws home during initialization:
// DirectionOpen or DirectionClose. The device accepts the raw value
// unchecked.
func (g *RGD) InitDirection(val int) error {
	_, err := g.d.Write(RGDRegInitDirection, val)
	return err
}

// Ready reads the gripper readiness register.
func (g *RGD) Ready() (ReadyState, error) {
	v, err := g.d.Read(RGDRegReadyState)
	return ReadyState(v), err
}

// RotationReady reads the rotation readiness register.
func (g *RGD) RotationReady() (ReadyState, error) {
	v, err := g.d.Read(RGDRegRotReadyState)
	return ReadyState(v), err
}

// State reads the grip state register.
func (g *RGD) State() (int, error) {
	return g.d.Read(RGDRegGripState)
}

// Position reads the jaw position feedback register.
func (g *RGD) Position() (int, error) {
	return g.d.Read(RGDRegPosFeedback)
}

// Current reads the motor current register.
func (g *RGD) Current() (int, error) {
	return g.d.Read(RGDRegCurrent)
}

// ErrorCode reads the device error register.
func (g *RGD) ErrorCode() (int, error) {
	return g.d.Read(RGDRegErrorCode)
}

// RotationAngle reads the rotation angle register.
func (g *RGD) RotationAngle() (int, error) {
	return g.d.Read(RGDRegRotAngle)
}

// RotationState reads the rotation state register.
func (g *RGD) RotationState() (int, error) {
	return g.d.Read(RGDRegRotState)
}

// AwaitReady runs the readiness state machine on the gripper readiness
// register: while NOT_READY the initialization command is resent, while
// BUSY the next read is delayed, and any other state means ready. The
// device gives no upper bound on how long this takes; ctx is the escape
// path.
func (g *RGD) AwaitReady(ctx context.Context) (ReadyState, error) {
	return g.awaitReadiness(ctx, RGDRegReadyState)
}

// AwaitRotationReady runs the readiness state machine on the rotation
// readiness register.
func (g *RGD) AwaitRotationReady(ctx context.Context) (ReadyState, error) {
	return g.awaitReadiness(ctx, RGDRegRotReadyState)
}

func (g *RGD) awaitReadiness(ctx context.Context, reg Register) (ReadyState, error) {
	for {
		if err := ctx.Err(); err != nil {
			return ReadyNotReady, err
		}

		v, err := g.d.Read(reg)
		if err != nil {
			return ReadyNotReady, err
		}

		switch state := ReadyState(v); state {
		case ReadyNotReady:
			if err := g.InitState(); err != nil {
				return state, err
			}
		case ReadyBusy:
			select {
			case <-ctx.Done():
				return state, ctx.Err()
			case <-time.After(BusyPollDelay):
			}
		default:
			return state, nil
		}
	}
}

// write validates against the register table, then dispatches and discards
// the echoed value.
func (g *RGD) write(reg Register, val int) error {
	if err := checkRegisterRange(ModelRGD, reg, val); err != nil {
		g.d.Statistics().RecordRangeError()
		return err
	}
	_, err := g.d.Write(reg, val)
	return err
}

// writeNoReply validates, then dispatches without a response cycle.
func (g *RGD) writeNoReply(reg Register, val int) error {
	if err := checkRegisterRange(ModelRGD, reg, val); err != nil {
		g.d.Statistics().RecordRangeError()
		return err
	}
	return g.d.WriteNoReply(reg, val)
}
