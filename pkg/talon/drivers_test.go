// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package talon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

// ============================================================
// Test Doubles
// ============================================================

// simDevice emulates the gripper end of the line: it decodes each command
// frame, applies it to a register file, and queues the response the real
// device would send.
type simDevice struct {
	model Model

	regs     map[Register]int
	scripted map[Register][]int    // per-read value overrides, popped in order
	mirror   map[Register]Register // writes copied to a feedback register

	pending   []byte
	writes    int
	regReads  map[Register]int
	regWrites map[Register]int
	flushes   int
	closed    bool
}

func newSimDevice(m Model) *simDevice {
	return &simDevice{
		model:     m,
		regs:      make(map[Register]int),
		scripted:  make(map[Register][]int),
		mirror:    make(map[Register]Register),
		regReads:  make(map[Register]int),
		regWrites: make(map[Register]int),
	}
}

func (s *simDevice) Write(p []byte) (int, error) {
	s.writes++

	var (
		reg   Register
		value int
		write bool
		err   error
	)
	if s.model == ModelDH3 {
		reg, value, write, err = ParseDH3Command(p)
	} else {
		reg, value, write, err = ParseRGDCommand(p)
	}
	if err != nil {
		return 0, fmt.Errorf("simulated device received a bad frame: %v", err)
	}

	if write {
		s.regWrites[reg]++
		s.regs[reg] = value
		if dst, ok := s.mirror[reg]; ok {
			s.regs[dst] = value
		}
		if info, ok := registerInfo(s.model, reg); ok && info.NoReply {
			s.pending = nil
			return len(p), nil
		}
		s.pending = s.respond(value)
		return len(p), nil
	}

	s.regReads[reg]++
	v := s.regs[reg]
	if queue := s.scripted[reg]; len(queue) > 0 {
		v = queue[0]
		s.scripted[reg] = queue[1:]
	}
	s.pending = s.respond(v)
	return len(p), nil
}

// respond builds a feedback frame, applying the device's shift-down-by-one
// convention for negative values.
func (s *simDevice) respond(value int) []byte {
	wire := value
	if wire < 0 {
		wire--
	}
	u := uint16(int16(wire))

	if s.model == ModelDH3 {
		return []byte{0xFF, 0xFE, 0xFD, byte(u >> 8), byte(u), 0xFB}
	}
	frame := []byte{deviceAddress, 0x03, 0x02, byte(u >> 8), byte(u)}
	crc := CalculateCRC(frame)
	return append(frame, byte(crc), byte(crc>>8))
}

func (s *simDevice) ReadAvailable() ([]byte, error) {
	p := s.pending
	s.pending = nil
	return p, nil
}

func (s *simDevice) Flush() error {
	s.flushes++
	return nil
}

func (s *simDevice) Close() error {
	s.closed = true
	return nil
}

// scriptTransport returns canned raw responses with no device logic at
// all, for exercising the dispatcher's error paths.
type scriptTransport struct {
	responses [][]byte
	frames    [][]byte
	flushes   int
	closed    bool
	writeErr  error
	readErr   error
	flushErr  error
}

func (s *scriptTransport) Write(p []byte) (int, error) {
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	s.frames = append(s.frames, append([]byte{}, p...))
	return len(p), nil
}

func (s *scriptTransport) ReadAvailable() ([]byte, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	if len(s.responses) == 0 {
		return nil, nil
	}
	r := s.responses[0]
	s.responses = s.responses[1:]
	return r, nil
}

func (s *scriptTransport) Flush() error {
	if s.flushErr != nil {
		return s.flushErr
	}
	s.flushes++
	return nil
}

func (s *scriptTransport) Close() error {
	s.closed = true
	return nil
}

// ============================================================
// DH3 Driver Tests
// ============================================================

func TestNewDH3_SendsInit(t *testing.T) {
	sim := newSimDevice(ModelDH3)

	g, err := NewDH3(sim)
	if err != nil {
		t.Fatalf("NewDH3 error: %v", err)
	}

	if sim.regWrites[DH3RegInitState] != 1 {
		t.Errorf("INIT_STATE written %d times, want 1", sim.regWrites[DH3RegInitState])
	}
	if sim.regs[DH3RegInitState] != 0 {
		t.Errorf("INIT_STATE = %d, want 0", sim.regs[DH3RegInitState])
	}

	stats := g.Dispatcher().Statistics()
	if stats.Commands != 1 || stats.Replies != 1 {
		t.Errorf("Commands/Replies = %d/%d, want 1/1", stats.Commands, stats.Replies)
	}

	if err := g.Close(); err != nil {
		t.Errorf("Close error: %v", err)
	}
	if !sim.closed {
		t.Error("transport not closed")
	}
}

func TestDH3_BlockingSetters(t *testing.T) {
	sim := newSimDevice(ModelDH3)
	g, err := NewDH3(sim)
	if err != nil {
		t.Fatalf("NewDH3 error: %v", err)
	}

	if err := g.SetPosition(context.Background(), 50); err != nil {
		t.Fatalf("SetPosition error: %v", err)
	}
	if sim.regs[DH3RegPosition] != 50 {
		t.Errorf("position = %d, want 50", sim.regs[DH3RegPosition])
	}
	if sim.regReads[DH3RegPosition] != 1 {
		t.Errorf("position converged after %d reads, want 1", sim.regReads[DH3RegPosition])
	}

	if err := g.SetAngle(context.Background(), 70); err != nil {
		t.Fatalf("SetAngle error: %v", err)
	}
	if sim.regs[DH3RegAngle] != 70 {
		t.Errorf("angle = %d, want 70", sim.regs[DH3RegAngle])
	}
}

func TestDH3_SetPosition_PollExhausted(t *testing.T) {
	sim := newSimDevice(ModelDH3)
	sim.scripted[DH3RegPosition] = []int{10, 20, 30}

	g, err := NewDH3(sim)
	if err != nil {
		t.Fatalf("NewDH3 error: %v", err)
	}
	g.Poll.MaxAttempts = 3

	err = g.SetPosition(context.Background(), 95)
	if !errors.Is(err, ErrPollExhausted) {
		t.Fatalf("expected ErrPollExhausted, got %v", err)
	}
	if !strings.Contains(err.Error(), "last value 30") {
		t.Errorf("error should report the last read value: %v", err)
	}
	if sim.regReads[DH3RegPosition] != 3 {
		t.Errorf("poll made %d reads, want 3", sim.regReads[DH3RegPosition])
	}
}

func TestDH3_RangeValidation(t *testing.T) {
	sim := newSimDevice(ModelDH3)
	g, err := NewDH3(sim)
	if err != nil {
		t.Fatalf("NewDH3 error: %v", err)
	}
	before := sim.writes

	err = g.SetOpenForce(9)
	if err == nil {
		t.Error("open force 9 should be rejected")
	}
	var re *RangeError
	if !errors.As(err, &re) {
		t.Errorf("expected *RangeError, got %T", err)
	}

	if err := g.SetCloseForce(91); err == nil {
		t.Error("close force 91 should be rejected")
	}
	if err := g.SetPositionNoWait(96); err == nil {
		t.Error("position 96 should be rejected")
	}
	if err := g.SetAngleNoWait(-1); err == nil {
		t.Error("angle -1 should be rejected")
	}

	if sim.writes != before {
		t.Errorf("rejected commands reached the transport: %d frames sent", sim.writes-before)
	}
	if got := g.Dispatcher().Statistics().RangeErrors; got != 4 {
		t.Errorf("RangeErrors = %d, want 4", got)
	}

	// Boundary values go through.
	if err := g.SetOpenForce(10); err != nil {
		t.Errorf("open force 10 should be accepted: %v", err)
	}
	if err := g.SetOpenForce(90); err != nil {
		t.Errorf("open force 90 should be accepted: %v", err)
	}
}

func TestDH3_InitFeedback_FireAndForget(t *testing.T) {
	sim := newSimDevice(ModelDH3)
	g, err := NewDH3(sim)
	if err != nil {
		t.Fatalf("NewDH3 error: %v", err)
	}

	if err := g.InitFeedback(); err != nil {
		t.Fatalf("InitFeedback error: %v", err)
	}

	if sim.regs[DH3RegInitFeedback] != -1 {
		t.Errorf("INIT_FEEDBACK = %d, want -1", sim.regs[DH3RegInitFeedback])
	}

	stats := g.Dispatcher().Statistics()
	if stats.NoReplyWrites != 1 {
		t.Errorf("NoReplyWrites = %d, want 1", stats.NoReplyWrites)
	}
	if stats.Replies != 1 {
		t.Errorf("Replies = %d, want 1 (init only): feedback arming must not wait", stats.Replies)
	}
}

func TestDH3_Reads(t *testing.T) {
	sim := newSimDevice(ModelDH3)
	sim.regs[DH3RegOpenForce] = 45
	sim.regs[DH3RegGripState] = 2

	g, err := NewDH3(sim)
	if err != nil {
		t.Fatalf("NewDH3 error: %v", err)
	}

	force, err := g.OpenForce()
	if err != nil {
		t.Fatalf("OpenForce error: %v", err)
	}
	if force != 45 {
		t.Errorf("OpenForce = %d, want 45", force)
	}

	state, err := g.State()
	if err != nil {
		t.Fatalf("State error: %v", err)
	}
	if state != 2 {
		t.Errorf("State = %d, want 2", state)
	}
}

// ============================================================
// RGD Driver Tests
// ============================================================

func TestNewRGD_SendsInit(t *testing.T) {
	sim := newSimDevice(ModelRGD)

	g, err := NewRGD(sim)
	if err != nil {
		t.Fatalf("NewRGD error: %v", err)
	}

	if sim.regWrites[RGDRegInitState] != 1 {
		t.Errorf("INIT_STATE written %d times, want 1", sim.regWrites[RGDRegInitState])
	}
	if sim.regs[RGDRegInitState] != rgdInitValue {
		t.Errorf("INIT_STATE = %d, want %d", sim.regs[RGDRegInitState], rgdInitValue)
	}
	if g.Poll.Interval != PositionPollDelay {
		t.Errorf("Poll.Interval = %v, want %v", g.Poll.Interval, PositionPollDelay)
	}
}

func TestRGD_SetPosition_Converges(t *testing.T) {
	sim := newSimDevice(ModelRGD)
	sim.mirror[RGDRegPosition] = RGDRegPosFeedback

	g, err := NewRGD(sim)
	if err != nil {
		t.Fatalf("NewRGD error: %v", err)
	}

	if err := g.SetPosition(context.Background(), 800); err != nil {
		t.Fatalf("SetPosition error: %v", err)
	}
	if sim.regs[RGDRegPosition] != 800 {
		t.Errorf("position = %d, want 800", sim.regs[RGDRegPosition])
	}
	if sim.regReads[RGDRegPosFeedback] != 1 {
		t.Errorf("converged after %d feedback reads, want 1", sim.regReads[RGDRegPosFeedback])
	}
}

func TestRGD_SetPosition_SlowConvergence(t *testing.T) {
	sim := newSimDevice(ModelRGD)
	sim.mirror[RGDRegPosition] = RGDRegPosFeedback
	sim.scripted[RGDRegPosFeedback] = []int{780, 795}

	g, err := NewRGD(sim)
	if err != nil {
		t.Fatalf("NewRGD error: %v", err)
	}

	if err := g.SetPosition(context.Background(), 800); err != nil {
		t.Fatalf("SetPosition error: %v", err)
	}
	if sim.regReads[RGDRegPosFeedback] != 3 {
		t.Errorf("converged after %d feedback reads, want 3", sim.regReads[RGDRegPosFeedback])
	}
}

func TestRGD_SetPosition_PollExhausted(t *testing.T) {
	sim := newSimDevice(ModelRGD)
	sim.scripted[RGDRegPosFeedback] = []int{1, 2, 3, 4}

	g, err := NewRGD(sim)
	if err != nil {
		t.Fatalf("NewRGD error: %v", err)
	}
	g.Poll.MaxAttempts = 2

	err = g.SetPosition(context.Background(), 500)
	if !errors.Is(err, ErrPollExhausted) {
		t.Fatalf("expected ErrPollExhausted, got %v", err)
	}
	if sim.regReads[RGDRegPosFeedback] != 2 {
		t.Errorf("poll made %d reads, want 2", sim.regReads[RGDRegPosFeedback])
	}
}

func TestRGD_SetPosition_ContextCancelled(t *testing.T) {
	sim := newSimDevice(ModelRGD)
	g, err := NewRGD(sim)
	if err != nil {
		t.Fatalf("NewRGD error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = g.SetPosition(ctx, 500)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if sim.regReads[RGDRegPosFeedback] != 0 {
		t.Error("no poll read should happen after cancellation")
	}
}

func TestRGD_FireAndForget(t *testing.T) {
	sim := newSimDevice(ModelRGD)
	g, err := NewRGD(sim)
	if err != nil {
		t.Fatalf("NewRGD error: %v", err)
	}

	if err := g.SetAbsRotation(-5000); err != nil {
		t.Fatalf("SetAbsRotation error: %v", err)
	}
	if err := g.SetRotationVelocity(50); err != nil {
		t.Fatalf("SetRotationVelocity error: %v", err)
	}

	if sim.regs[RGDRegAbsRotation] != -5000 {
		t.Errorf("ABS_ROTATION = %d, want -5000", sim.regs[RGDRegAbsRotation])
	}
	if sim.regs[RGDRegRotVelocity] != 50 {
		t.Errorf("ROT_VELOCITY = %d, want 50", sim.regs[RGDRegRotVelocity])
	}

	stats := g.Dispatcher().Statistics()
	if stats.NoReplyWrites != 2 {
		t.Errorf("NoReplyWrites = %d, want 2", stats.NoReplyWrites)
	}
	if stats.Replies != 1 {
		t.Errorf("Replies = %d, want 1 (init only): rotation commands must not wait", stats.Replies)
	}
}

func TestRGD_SetRelRotation_Answered(t *testing.T) {
	sim := newSimDevice(ModelRGD)
	g, err := NewRGD(sim)
	if err != nil {
		t.Fatalf("NewRGD error: %v", err)
	}

	if err := g.SetRelRotation(-90); err != nil {
		t.Fatalf("SetRelRotation error: %v", err)
	}
	if sim.regs[RGDRegRelRotation] != -90 {
		t.Errorf("REL_ROTATION = %d, want -90", sim.regs[RGDRegRelRotation])
	}
	if got := g.Dispatcher().Statistics().Replies; got != 2 {
		t.Errorf("Replies = %d, want 2: REL_ROTATION is an answered command", got)
	}
}

func TestRGD_AwaitReady_Sequence(t *testing.T) {
	sim := newSimDevice(ModelRGD)
	sim.scripted[RGDRegReadyState] = []int{0, 0, 2, 2, 5}

	g, err := NewRGD(sim)
	if err != nil {
		t.Fatalf("NewRGD error: %v", err)
	}

	state, err := g.AwaitReady(context.Background())
	if err != nil {
		t.Fatalf("AwaitReady error: %v", err)
	}
	if state != ReadyState(5) {
		t.Errorf("state = %v, want 5", state)
	}
	if sim.regReads[RGDRegReadyState] != 5 {
		t.Errorf("readiness read %d times, want 5", sim.regReads[RGDRegReadyState])
	}
	// One init from the constructor plus one per NOT_READY read.
	if sim.regWrites[RGDRegInitState] != 3 {
		t.Errorf("INIT_STATE written %d times, want 3", sim.regWrites[RGDRegInitState])
	}
}

func TestRGD_AwaitRotationReady_CancelWhileBusy(t *testing.T) {
	sim := newSimDevice(ModelRGD)
	sim.regs[RGDRegRotReadyState] = 2 // busy forever

	g, err := NewRGD(sim)
	if err != nil {
		t.Fatalf("NewRGD error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	_, err = g.AwaitRotationReady(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestRGD_RangeValidation(t *testing.T) {
	sim := newSimDevice(ModelRGD)
	g, err := NewRGD(sim)
	if err != nil {
		t.Fatalf("NewRGD error: %v", err)
	}
	before := sim.writes

	rejects := []struct {
		name string
		err  error
	}{
		{"force 19", g.SetForce(19)},
		{"force 101", g.SetForce(101)},
		{"velocity 0", g.SetVelocity(0)},
		{"position 1001", g.SetPositionNoWait(1001)},
		{"rotation force 10", g.SetRotationForce(10)},
		{"rotation velocity 0", g.SetRotationVelocity(0)},
	}
	for _, r := range rejects {
		if r.err == nil {
			t.Errorf("%s should be rejected", r.name)
		}
	}

	if sim.writes != before {
		t.Errorf("rejected commands reached the transport: %d frames sent", sim.writes-before)
	}
	if got := g.Dispatcher().Statistics().RangeErrors; got != 6 {
		t.Errorf("RangeErrors = %d, want 6", got)
	}

	if err := g.SetForce(20); err != nil {
		t.Errorf("force 20 should be accepted: %v", err)
	}
	if err := g.SetForce(100); err != nil {
		t.Errorf("force 100 should be accepted: %v", err)
	}
}

func TestRGD_InitDirection_Unchecked(t *testing.T) {
	sim := newSimDevice(ModelRGD)
	g, err := NewRGD(sim)
	if err != nil {
		t.Fatalf("NewRGD error: %v", err)
	}

	if err := g.InitDirection(DirectionClose); err != nil {
		t.Fatalf("InitDirection error: %v", err)
	}
	if sim.regs[RGDRegInitDirection] != DirectionClose {
		t.Errorf("INIT_DIRECTION = %d, want %d", sim.regs[RGDRegInitDirection], DirectionClose)
	}

	// The register declares no bounds; raw values pass through.
	if err := g.InitDirection(7); err != nil {
		t.Fatalf("InitDirection(7) error: %v", err)
	}
	if sim.regs[RGDRegInitDirection] != 7 {
		t.Errorf("INIT_DIRECTION = %d, want 7", sim.regs[RGDRegInitDirection])
	}
}

// ============================================================
// Dispatcher Tests
// ============================================================

func TestDispatcher_EchoRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		model Model
		reg   Register
		value int
	}{
		{"dh3 position", ModelDH3, DH3RegPosition, 50},
		{"dh3 negative", ModelDH3, DH3RegInitState, -1},
		{"rgd zero", ModelRGD, RGDRegPosition, 0},
		{"rgd max", ModelRGD, RGDRegPosition, 1000},
		{"rgd negative", ModelRGD, RGDRegRelRotation, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newSimDevice(tt.model)
			proto, err := ProtocolFor(tt.model)
			if err != nil {
				t.Fatalf("ProtocolFor error: %v", err)
			}
			d := NewDispatcher(proto, sim)

			echo, err := d.Write(tt.reg, tt.value)
			if err != nil {
				t.Fatalf("Write error: %v", err)
			}
			if echo != tt.value {
				t.Errorf("echo = %d, want %d", echo, tt.value)
			}
			if sim.regs[tt.reg] != tt.value {
				t.Errorf("device stored %d, want %d", sim.regs[tt.reg], tt.value)
			}
		})
	}
}

func TestDispatcher_Read(t *testing.T) {
	sim := newSimDevice(ModelRGD)
	sim.regs[RGDRegCurrent] = 320
	d := NewDispatcher(RGDProtocol{}, sim)

	v, err := d.Read(RGDRegCurrent)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if v != 320 {
		t.Errorf("Read = %d, want 320", v)
	}
	if sim.flushes != 1 {
		t.Errorf("transport flushed %d times, want 1", sim.flushes)
	}

	stats := d.Statistics()
	if stats.Commands != 1 || stats.Reads != 1 || stats.Replies != 1 {
		t.Errorf("Commands/Reads/Replies = %d/%d/%d, want 1/1/1",
			stats.Commands, stats.Reads, stats.Replies)
	}
}

func TestDispatcher_ResponseErrors(t *testing.T) {
	tr := &scriptTransport{responses: [][]byte{{0x01, 0x03}, nil}}
	d := NewDispatcher(RGDProtocol{}, tr)

	_, err := d.Read(RGDRegGripState)
	if !errors.Is(err, ErrShortResponse) {
		t.Fatalf("expected ErrShortResponse for truncated response, got %v", err)
	}

	_, err = d.Read(RGDRegGripState)
	if !errors.Is(err, ErrShortResponse) {
		t.Fatalf("expected ErrShortResponse for missing response, got %v", err)
	}

	stats := d.Statistics()
	if stats.ShortResponses != 1 {
		t.Errorf("ShortResponses = %d, want 1", stats.ShortResponses)
	}
	if stats.Timeouts != 1 {
		t.Errorf("Timeouts = %d, want 1", stats.Timeouts)
	}
	if tr.flushes != 0 {
		t.Error("failed cycles must not flush the transport")
	}
}

func TestDispatcher_WriteError(t *testing.T) {
	tr := &scriptTransport{writeErr: fmt.Errorf("port gone")}
	d := NewDispatcher(DH3Protocol{}, tr)

	_, err := d.Write(DH3RegPosition, 10)
	if err == nil || !strings.Contains(err.Error(), "failed to write frame") {
		t.Fatalf("expected write failure, got %v", err)
	}

	if err := d.WriteNoReply(DH3RegInitFeedback, -1); err == nil {
		t.Fatal("expected write failure")
	}

	if got := d.Statistics().TransportErrors; got != 2 {
		t.Errorf("TransportErrors = %d, want 2", got)
	}
}

// A severed error chain would hide connection loss from callers that test
// for it with errors.Is.
func TestDispatcher_KeepsTransportErrorChain(t *testing.T) {
	errDown := errors.New("transport down")

	tr := &scriptTransport{readErr: errDown}
	d := NewDispatcher(RGDProtocol{}, tr)
	if _, err := d.Read(RGDRegGripState); !errors.Is(err, errDown) {
		t.Errorf("read error hides the transport error: %v", err)
	}

	tr = &scriptTransport{writeErr: errDown}
	d = NewDispatcher(DH3Protocol{}, tr)
	if _, err := d.Write(DH3RegPosition, 10); !errors.Is(err, errDown) {
		t.Errorf("write error hides the transport error: %v", err)
	}
	if err := d.WriteNoReply(DH3RegInitState, -1); !errors.Is(err, errDown) {
		t.Errorf("no-reply write error hides the transport error: %v", err)
	}

	tr = &scriptTransport{
		responses: [][]byte{{0x01, 0x03, 0x02, 0x00, 0x32, 0xAA, 0xBB}},
		flushErr:  errDown,
	}
	d = NewDispatcher(RGDProtocol{}, tr)
	if _, err := d.Read(RGDRegPosition); !errors.Is(err, errDown) {
		t.Errorf("flush error hides the transport error: %v", err)
	}
}

func TestDispatcher_Trace(t *testing.T) {
	sim := newSimDevice(ModelRGD)
	d := NewDispatcher(RGDProtocol{}, sim)

	var entries []TraceEntry
	d.SetTrace(func(e TraceEntry) { entries = append(entries, e) })

	if _, err := d.Write(RGDRegForce, 50); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d trace entries, want 2", len(entries))
	}

	tx := entries[0]
	if Direction(tx.Direction) != DirectionCommand {
		t.Error("first entry should be the command")
	}
	if Register(tx.Register) != RGDRegForce || tx.Value != 50 {
		t.Errorf("command entry = register 0x%04X value %d", tx.Register, tx.Value)
	}
	if len(tx.Raw) != RGDFrameLength {
		t.Errorf("command raw length = %d, want %d", len(tx.Raw), RGDFrameLength)
	}

	rx := entries[1]
	if Direction(rx.Direction) != DirectionResponse {
		t.Error("second entry should be the response")
	}
	if rx.Value != 50 {
		t.Errorf("response value = %d, want 50", rx.Value)
	}
	if rx.Error != "" {
		t.Errorf("unexpected response error: %s", rx.Error)
	}

	d.SetTrace(nil)
	if _, err := d.Read(RGDRegForce); err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(entries) != 2 {
		t.Error("disabled trace should not record entries")
	}
}

func TestDispatcher_TraceResponseError(t *testing.T) {
	tr := &scriptTransport{}
	d := NewDispatcher(RGDProtocol{}, tr)

	var entries []TraceEntry
	d.SetTrace(func(e TraceEntry) { entries = append(entries, e) })

	if _, err := d.Read(RGDRegGripState); err == nil {
		t.Fatal("expected parse failure on empty response")
	}

	if len(entries) != 2 {
		t.Fatalf("got %d trace entries, want 2", len(entries))
	}
	if entries[1].Error == "" {
		t.Error("response entry should carry the parse error")
	}
}

// ============================================================
// Transport Tests
// ============================================================

func TestSerialTransport_Name(t *testing.T) {
	tr := &SerialTransport{name: "/dev/ttyUSB0"}
	if got := tr.Name(); got != "/dev/ttyUSB0" {
		t.Errorf("Name = %q, want %q", got, "/dev/ttyUSB0")
	}
}
