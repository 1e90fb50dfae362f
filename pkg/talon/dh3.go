// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package talon

import (
	"context"
	"fmt"
)

// DH3 drives a DH3 three-finger gripper. One instance exclusively owns its
// transport for the life of the process.
//
// Poll controls the convergence loop of the blocking setters. The zero
// value re-reads in a tight loop with no delay and no attempt cap, which is
// what the hardware protocol historically specifies; if the device never
// reaches the target that loop only ends when the context is cancelled.
type DH3 struct {
	d    *Dispatcher
	Poll PollConfig
}

// NewDH3 creates a DH3 driver on an open transport and sends the
// initialization command the device expects before accepting motion
// commands.
func NewDH3(tr Transport) (*DH3, error) {
	g := &DH3{d: NewDispatcher(DH3Protocol{}, tr)}
	if err := g.InitState(); err != nil {
		return nil, fmt.Errorf("dh3 init failed: %w", err)
	}
	return g, nil
}

// OpenDH3 opens the serial port and creates a DH3 driver on it.
func OpenDH3(portName string) (*DH3, error) {
	tr, err := OpenSerial(portName)
	if err != nil {
		return nil, err
	}
	g, err := NewDH3(tr)
	if err != nil {
		tr.Close()
		return nil, err
	}
	return g, nil
}

// Dispatcher exposes the underlying dispatcher for raw register access,
// statistics, and tracing.
func (g *DH3) Dispatcher() *Dispatcher {
	return g.d
}

// Close closes the transport.
func (g *DH3) Close() error {
	return g.d.Close()
}

// InitState sends the initialization command (0 to INIT_STATE). The device
// echoes a value which is discarded.
func (g *DH3) InitState() error {
	_, err := g.d.Write(DH3RegInitState, 0)
	return err
}

// InitFeedback arms feedback reporting by writing -1 to INIT_FEEDBACK.
// The device sends no response to this command.
func (g *DH3) InitFeedback() error {
	return g.d.WriteNoReply(DH3RegInitFeedback, -1)
}

// OpenForce reads the opening force setting.
func (g *DH3) OpenForce() (int, error) {
	return g.d.Read(DH3RegOpenForce)
}

// SetOpenForce sets the opening force, range 10-90.
func (g *DH3) SetOpenForce(val int) error {
	return g.write(DH3RegOpenForce, val)
}

// CloseForce reads the closing force setting.
func (g *DH3) CloseForce() (int, error) {
	return g.d.Read(DH3RegCloseForce)
}

// SetCloseForce sets the closing force, range 10-90.
func (g *DH3) SetCloseForce(val int) error {
	return g.write(DH3RegCloseForce, val)
}

// Position reads the finger position.
func (g *DH3) Position() (int, error) {
	return g.d.Read(DH3RegPosition)
}

// SetPosition commands a finger position, range 0-95, and blocks until the
// device reads back the commanded value or ctx is cancelled.
func (g *DH3) SetPosition(ctx context.Context, val int) error {
	if err := g.SetPositionNoWait(val); err != nil {
		return err
	}
	return pollUntil(ctx, g.Poll, g.Position, val)
}

// SetPositionNoWait commands a finger position without waiting for the
// move to complete.
func (g *DH3) SetPositionNoWait(val int) error {
	return g.write(DH3RegPosition, val)
}

// Angle reads the finger rotation angle.
func (g *DH3) Angle() (int, error) {
	return g.d.Read(DH3RegAngle)
}

// SetAngle commands a finger rotation angle, range 0-100, and blocks until
// the device reads back the commanded value or ctx is cancelled.
func (g *DH3) SetAngle(ctx context.Context, val int) error {
	if err := g.SetAngleNoWait(val); err != nil {
		return err
	}
	return pollUntil(ctx, g.Poll, g.Angle, val)
}

// SetAngleNoWait commands a finger rotation angle without waiting for the
// move to complete.
func (g *DH3) SetAngleNoWait(val int) error {
	return g.write(DH3RegAngle, val)
}

// State reads the grip state register.
func (g *DH3) State() (int, error) {
	return g.d.Read(DH3RegGripState)
}

// write validates against the register table, then dispatches and discards
// the echoed value.
func (g *DH3) write(reg Register, val int) error {
	if err := checkRegisterRange(ModelDH3, reg, val); err != nil {
		g.d.Statistics().RecordRangeError()
		return err
	}
	_, err := g.d.Write(reg, val)
	return err
}
