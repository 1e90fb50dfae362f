// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package talon

import "fmt"

// Bounds is an inclusive accepted value range for a register write.
type Bounds struct {
	Min int
	Max int
}

// Contains reports whether val lies within the bounds.
func (b Bounds) Contains(val int) bool {
	return val >= b.Min && val <= b.Max
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%d, %d]", b.Min, b.Max)
}

// RangeError reports a command value outside the accepted range for its
// register. Callers can distinguish it from transport failures with
// errors.As.
type RangeError struct {
	Name  string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s value %d out of range [%d, %d]", e.Name, e.Value, e.Min, e.Max)
}

// CheckRange validates val against bounds, returning a *RangeError on
// violation. The name identifies the quantity in the error message.
func CheckRange(name string, val int, b Bounds) error {
	if !b.Contains(val) {
		return &RangeError{Name: name, Value: val, Min: b.Min, Max: b.Max}
	}
	return nil
}

// checkRegisterRange validates a write value against the register table.
// Registers without declared bounds accept any value.
func checkRegisterRange(m Model, reg Register, val int) error {
	info, ok := registerInfo(m, reg)
	if !ok || info.Bounds == nil {
		return nil
	}
	return CheckRange(info.Name, val, *info.Bounds)
}
