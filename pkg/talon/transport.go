// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package talon

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// Transport is the byte-level connection a dispatcher drives. It must be
// exclusively owned by one dispatcher for its whole lifetime; the protocol
// is strictly one-command-at-a-time and concurrent access is undefined.
type Transport interface {
	// Write sends a complete command frame.
	Write(p []byte) (int, error)

	// ReadAvailable drains whatever response bytes the device has
	// already sent, returning an empty slice when the line is idle.
	ReadAvailable() ([]byte, error)

	// Flush discards any residual unread bytes so the next response
	// starts clean.
	Flush() error

	// Close releases the underlying connection.
	Close() error
}

// readDrainTimeout bounds how long ReadAvailable waits for the line to go
// idle after the last byte.
const readDrainTimeout = 10 * time.Millisecond

// SerialTransport drives a gripper over a local serial port.
type SerialTransport struct {
	port serial.Port
	name string
}

// OpenSerial opens a serial port at the fixed gripper baud rate (115200,
// 8N1) and returns a transport ready for a dispatcher.
func OpenSerial(portName string) (*SerialTransport, error) {
	mode := &serial.Mode{
		BaudRate: BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}

	return &SerialTransport{port: port, name: portName}, nil
}

func (t *SerialTransport) Write(p []byte) (int, error) {
	return t.port.Write(p)
}

// ReadAvailable collects buffered response bytes, stopping once the line
// has been idle for readDrainTimeout. The caller is expected to have waited
// the settle delay already, so in the common case the whole response is
// returned by the first read.
func (t *SerialTransport) ReadAvailable() ([]byte, error) {
	if err := t.port.SetReadTimeout(readDrainTimeout); err != nil {
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}

	var data []byte
	buf := make([]byte, 64)
	for {
		n, err := t.port.Read(buf)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			// Timeout with nothing new; the device is done talking.
			return data, nil
		}
		data = append(data, buf[:n]...)
	}
}

func (t *SerialTransport) Flush() error {
	return t.port.ResetInputBuffer()
}

func (t *SerialTransport) Close() error {
	return t.port.Close()
}

// Name returns the port device name the transport was opened on.
func (t *SerialTransport) Name() string {
	return t.name
}

// ListPorts enumerates serial port device names on this host.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}
	return ports, nil
}
