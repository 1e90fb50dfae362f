// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package talon

import (
	"fmt"
	"strings"
	"time"
)

// FormatRegister returns a human-readable register label like
// "POSITION (0x0602)". Addresses missing from the register table are shown
// numerically.
func FormatRegister(m Model, reg Register) string {
	if info, ok := registerInfo(m, reg); ok {
		return fmt.Sprintf("%s (0x%04X)", info.Name, uint16(reg))
	}
	return fmt.Sprintf("0x%04X", uint16(reg))
}

// FormatFrame renders a raw command frame as a one-line summary, falling
// back to a hex dump when the frame does not parse.
func FormatFrame(m Model, raw []byte) string {
	var (
		reg   Register
		value int
		write bool
		err   error
	)
	switch m {
	case ModelDH3:
		reg, value, write, err = ParseDH3Command(raw)
	case ModelRGD:
		reg, value, write, err = ParseRGDCommand(raw)
	default:
		err = fmt.Errorf("unknown model")
	}
	if err != nil {
		return fmt.Sprintf("unparsed [% X] (%v)", raw, err)
	}

	if write {
		return fmt.Sprintf("%s write %d", FormatRegister(m, reg), value)
	}
	return fmt.Sprintf("%s read", FormatRegister(m, reg))
}

// FormatTraceEntry renders a trace entry in a two-line log format: a
// timestamped summary followed by the raw bytes.
func FormatTraceEntry(e TraceEntry) string {
	m := Model(e.Model)
	ts := e.Time().Format("15:04:05.000000")

	var summary string
	switch Direction(e.Direction) {
	case DirectionCommand:
		summary = FormatFrame(m, e.Raw)
	case DirectionResponse:
		if e.Error != "" {
			summary = fmt.Sprintf("%s error: %s", FormatRegister(m, Register(e.Register)), e.Error)
		} else {
			summary = fmt.Sprintf("%s value %d", FormatRegister(m, Register(e.Register)), e.Value)
		}
	default:
		summary = fmt.Sprintf("unknown direction %d", e.Direction)
	}

	result := fmt.Sprintf("[%s] %s %s %s\n", ts, Direction(e.Direction), m, summary)
	if len(e.Raw) > 0 {
		result += fmt.Sprintf("    % X\n", e.Raw)
	}
	return result
}

// FormatDuration renders a duration in human terms, e.g.
// "1 hour, 2 minutes, and 5 seconds".
func FormatDuration(d time.Duration) string {
	totalSeconds := int64(d.Seconds())
	if totalSeconds < 0 {
		totalSeconds = 0
	}

	days := totalSeconds / 86400
	hours := (totalSeconds % 86400) / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	var parts []string
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, plural(seconds, "second"))
	}

	switch len(parts) {
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
