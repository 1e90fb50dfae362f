// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package talon

import (
	"fmt"
	"time"
)

// Dispatcher sequences single commands over a transport with the timing the
// hardware requires: write frame, settle, drain response, parse, flush.
//
// The transport is exclusively owned by the dispatcher and the dispatcher
// itself must only be used from one goroutine at a time; the line is
// half-duplex and a second command before the first response cycle
// completes corrupts both.
type Dispatcher struct {
	proto Protocol
	tr    Transport
	stats *Statistics
	trace TraceFunc
}

// NewDispatcher creates a dispatcher for one device on one transport.
func NewDispatcher(proto Protocol, tr Transport) *Dispatcher {
	return &Dispatcher{
		proto: proto,
		tr:    tr,
		stats: NewStatistics(),
	}
}

// Protocol returns the variant protocol this dispatcher speaks.
func (d *Dispatcher) Protocol() Protocol {
	return d.proto
}

// Statistics returns the dispatcher's traffic counters.
func (d *Dispatcher) Statistics() *Statistics {
	return d.stats
}

// SetTrace installs a hook that receives every command and response frame.
// Pass nil to disable tracing.
func (d *Dispatcher) SetTrace(fn TraceFunc) {
	d.trace = fn
}

// Close closes the underlying transport.
func (d *Dispatcher) Close() error {
	return d.tr.Close()
}

// Read sends a read frame for a register and returns the feedback value.
func (d *Dispatcher) Read(reg Register) (int, error) {
	frame := d.proto.EncodeRead(reg)
	d.stats.RecordCommand(false, false)
	return d.transact(reg, 0, frame)
}

// Write sends a write frame and returns the value echoed by the device.
func (d *Dispatcher) Write(reg Register, value int) (int, error) {
	frame := d.proto.EncodeWrite(reg, value)
	d.stats.RecordCommand(true, false)
	return d.transact(reg, value, frame)
}

// WriteNoReply sends a write frame without waiting for a response, pausing
// only the variant's command pacing delay.
func (d *Dispatcher) WriteNoReply(reg Register, value int) error {
	frame := d.proto.EncodeWrite(reg, value)
	d.stats.RecordCommand(true, true)
	d.emit(NewTraceEntry(DirectionCommand, d.proto.Model(), reg, value, frame))

	if _, err := d.tr.Write(frame); err != nil {
		d.stats.RecordTransportError()
		return fmt.Errorf("failed to write frame: %w", err)
	}

	time.Sleep(d.proto.CommandDelay())
	return nil
}

// transact performs one full command/response cycle.
func (d *Dispatcher) transact(reg Register, value int, frame []byte) (int, error) {
	d.emit(NewTraceEntry(DirectionCommand, d.proto.Model(), reg, value, frame))

	if _, err := d.tr.Write(frame); err != nil {
		d.stats.RecordTransportError()
		return 0, fmt.Errorf("failed to write frame: %w", err)
	}

	// No response-ready signal exists; the settle delay stands in for it.
	time.Sleep(ResponseSettleDelay)

	raw, err := d.tr.ReadAvailable()
	if err != nil {
		d.stats.RecordTransportError()
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	feedback, err := d.proto.ParseResponse(raw)
	if err != nil {
		d.stats.RecordResponseError(raw)
		entry := NewTraceEntry(DirectionResponse, d.proto.Model(), reg, 0, raw)
		entry.Error = err.Error()
		d.emit(entry)
		return 0, err
	}

	// Residual bytes would desynchronize the next parse.
	if err := d.tr.Flush(); err != nil {
		d.stats.RecordTransportError()
		return 0, fmt.Errorf("failed to flush transport: %w", err)
	}

	d.stats.RecordReply()
	d.emit(NewTraceEntry(DirectionResponse, d.proto.Model(), reg, feedback, raw))
	return feedback, nil
}

func (d *Dispatcher) emit(entry TraceEntry) {
	if d.trace != nil {
		d.trace(entry)
	}
}
