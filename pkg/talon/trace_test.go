// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package talon

import (
	"bytes"
	"io"
	"testing"
)

func TestTraceStream_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewTraceWriter(&buf)

	frame := EncodeRGDFrame(RGDRegForce, 50, true)
	tx := NewTraceEntry(DirectionCommand, ModelRGD, RGDRegForce, 50, frame)

	rx := NewTraceEntry(DirectionResponse, ModelRGD, RGDRegForce, 50, []byte{0x01, 0x06, 0x01, 0x00, 0x32})

	failed := NewTraceEntry(DirectionResponse, ModelDH3, DH3RegPosition, 0, nil)
	failed.Error = "response too short: got 0 bytes, need at least 5"

	for _, e := range []TraceEntry{tx, rx, failed} {
		if err := w.Append(e); err != nil {
			t.Fatalf("Append error: %v", err)
		}
	}

	r := NewTraceReader(&buf)

	got, err := r.Next()
	if err != nil {
		t.Fatalf("Next error: %v", err)
	}
	if Direction(got.Direction) != DirectionCommand {
		t.Errorf("direction = %d, want command", got.Direction)
	}
	if Model(got.Model) != ModelRGD {
		t.Errorf("model = %d, want rgd", got.Model)
	}
	if Register(got.Register) != RGDRegForce {
		t.Errorf("register = 0x%04X, want 0x%04X", got.Register, uint16(RGDRegForce))
	}
	if got.Value != 50 {
		t.Errorf("value = %d, want 50", got.Value)
	}
	if !bytes.Equal(got.Raw, frame) {
		t.Errorf("raw = % X, want % X", got.Raw, frame)
	}
	if got.Timestamp != tx.Timestamp {
		t.Errorf("timestamp = %d, want %d", got.Timestamp, tx.Timestamp)
	}
	if got.Error != "" {
		t.Errorf("unexpected error field: %q", got.Error)
	}

	got, err = r.Next()
	if err != nil {
		t.Fatalf("Next error: %v", err)
	}
	if Direction(got.Direction) != DirectionResponse || got.Value != 50 {
		t.Errorf("response entry = direction %d value %d", got.Direction, got.Value)
	}

	got, err = r.Next()
	if err != nil {
		t.Fatalf("Next error: %v", err)
	}
	if got.Error != failed.Error {
		t.Errorf("error field = %q, want %q", got.Error, failed.Error)
	}

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("expected io.EOF at end of stream, got %v", err)
	}
}

func TestTraceEntry_Time(t *testing.T) {
	e := NewTraceEntry(DirectionCommand, ModelDH3, DH3RegPosition, 10, nil)
	if e.Time().UnixMicro() != e.Timestamp {
		t.Errorf("Time() = %d, want %d", e.Time().UnixMicro(), e.Timestamp)
	}
}

func TestTraceReader_Garbage(t *testing.T) {
	r := NewTraceReader(bytes.NewReader([]byte{0xFF, 0x00, 0x13, 0x37}))
	if _, err := r.Next(); err == nil {
		t.Error("expected decode error on garbage stream")
	}
}

func TestDirection_String(t *testing.T) {
	if DirectionCommand.String() != "TX" || DirectionResponse.String() != "RX" {
		t.Error("direction strings changed")
	}
	if Direction(9).String() != "??" {
		t.Errorf("unknown direction = %s", Direction(9))
	}
}
