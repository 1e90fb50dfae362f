// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package talon

import (
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Direction tells whether a trace entry is an outgoing command or an
// incoming response.
type Direction uint8

const (
	DirectionCommand  Direction = 0
	DirectionResponse Direction = 1
)

func (d Direction) String() string {
	switch d {
	case DirectionCommand:
		return "TX"
	case DirectionResponse:
		return "RX"
	default:
		return "??"
	}
}

// TraceEntry records one frame crossing the transport. Entries are encoded
// as CBOR maps with integer keys to keep capture files compact.
type TraceEntry struct {
	Timestamp int64  `cbor:"0,keyasint"` // unix microseconds
	Direction uint8  `cbor:"1,keyasint"`
	Model     uint8  `cbor:"2,keyasint"`
	Register  uint16 `cbor:"3,keyasint"`
	Value     int64  `cbor:"4,keyasint"`
	Raw       []byte `cbor:"5,keyasint"`
	Error     string `cbor:"6,keyasint,omitempty"`
}

// NewTraceEntry builds an entry stamped with the current time.
func NewTraceEntry(dir Direction, m Model, reg Register, value int, raw []byte) TraceEntry {
	return TraceEntry{
		Timestamp: time.Now().UnixMicro(),
		Direction: uint8(dir),
		Model:     uint8(m),
		Register:  uint16(reg),
		Value:     int64(value),
		Raw:       raw,
	}
}

// Time returns the entry timestamp as a time.Time
func (e *TraceEntry) Time() time.Time {
	return time.UnixMicro(e.Timestamp)
}

// TraceFunc receives a copy of every entry a dispatcher emits.
type TraceFunc func(TraceEntry)

// TraceWriter streams trace entries to an io.Writer as back-to-back CBOR
// values.
type TraceWriter struct {
	enc *cbor.Encoder
}

// NewTraceWriter creates a trace writer on w.
func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{enc: cbor.NewEncoder(w)}
}

// Append writes one entry to the stream.
func (t *TraceWriter) Append(entry TraceEntry) error {
	if err := t.enc.Encode(entry); err != nil {
		return fmt.Errorf("failed to encode trace entry: %w", err)
	}
	return nil
}

// TraceReader streams trace entries back from an io.Reader.
type TraceReader struct {
	dec *cbor.Decoder
}

// NewTraceReader creates a trace reader on r.
func NewTraceReader(r io.Reader) *TraceReader {
	return &TraceReader{dec: cbor.NewDecoder(r)}
}

// Next returns the next entry, or io.EOF at end of stream.
func (t *TraceReader) Next() (TraceEntry, error) {
	var entry TraceEntry
	if err := t.dec.Decode(&entry); err != nil {
		if err == io.EOF {
			return TraceEntry{}, io.EOF
		}
		return TraceEntry{}, fmt.Errorf("failed to decode trace entry: %w", err)
	}
	return entry, nil
}
