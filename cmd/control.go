// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Clastech Robotics

package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Clastech/gripstat/pkg/talon"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var controlCmd = &cobra.Command{
	Use:   "control",
	Short: "Interactive TUI for driving a gripper",
	Long: `Drive a gripper via an interactive terminal UI.

This command provides a TUI for commanding and watching a gripper connected
via serial or WebSocket (through a serial bridge).

Features:
  - Motion commands for the selected model (position, angle, force, rotation)
  - Live status display polled between commands
  - Statistics tracking
  - Event logging
  - Automatic reconnection on connection loss

Tab switches between the action list, the value field, and the send button.
Arrow keys navigate the action list.

The serial line carries one command at a time, so status polling pauses
while a blocking command (such as a position move) is in flight.`,
	RunE: runControl,
}

func init() {
	rootCmd.AddCommand(controlCmd)
}

const (
	// controlActionTimeout caps blocking commands; the position setters
	// poll without bound and rely on context cancellation.
	controlActionTimeout = 15 * time.Second

	// controlPollInterval spaces the status sweeps between commands.
	controlPollInterval = time.Second
)

// driverManager owns the gripper. Every transaction, whether a command from
// the TUI or a background status poll, runs on its single worker goroutine;
// the transport never sees two frames in flight.
type driverManager struct {
	g        gripper
	regs     []talon.RegisterInfo
	p        *tea.Program
	requests chan actionRequest
	done     chan struct{}
}

func runControl(cmd *cobra.Command, args []string) error {
	model, err := selectedModel()
	if err != nil {
		return err
	}

	g, connInfo, err := openGripper()
	if err != nil {
		return err
	}

	dm := &driverManager{
		g:        g,
		regs:     liveRegisters(model),
		requests: make(chan actionRequest, 4),
		done:     make(chan struct{}),
	}

	// Create TUI model with driver manager
	m := initialControlModel(dm, connInfo, model)

	// Create TUI program with alt screen and mouse support
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	dm.p = p

	// Start worker goroutine
	go dm.workerLoop()

	// Run TUI; the worker owns the driver and closes it on shutdown
	if _, err := p.Run(); err != nil {
		close(dm.done)
		return fmt.Errorf("TUI error: %v", err)
	}

	close(dm.done)
	return nil
}

// liveRegisters is the subset of readable registers the control TUI keeps
// fresh. A full sweep of everything readable would crowd out commands on
// the half-duplex line.
func liveRegisters(model talon.Model) []talon.RegisterInfo {
	var names []string
	switch model {
	case talon.ModelDH3:
		names = []string{"POSITION", "ANGLE", "GRIP_STATE"}
	case talon.ModelRGD:
		names = []string{"READY_STATE", "GRIP_STATE", "POSITION_FEEDBACK", "ROT_ANGLE", "ROT_READY_STATE", "ERROR_CODE"}
	}

	regs := make([]talon.RegisterInfo, 0, len(names))
	for _, name := range names {
		if info, ok := talon.LookupRegister(model, name); ok {
			regs = append(regs, info)
		}
	}
	return regs
}

// workerLoop alternates between executing queued commands and polling the
// live registers until shutdown
func (dm *driverManager) workerLoop() {
	ticker := time.NewTicker(controlPollInterval)
	defer ticker.Stop()

	// Fill the display before the first tick
	dm.p.Send(dm.sweep())

	for {
		select {
		case <-dm.done:
			dm.g.Close()
			return

		case req := <-dm.requests:
			dm.p.Send(dm.execute(req))
			// Refresh right away so the display catches up with the move
			dm.p.Send(dm.sweep())

		case <-ticker.C:
			snap := dm.sweep()
			dm.p.Send(snap)

			if sweepDead(snap.readings) {
				dm.p.Send(connectionLostMsg{})
				if !dm.reconnect() {
					return // Shutdown requested during reconnect
				}
			}
		}
	}
}

// execute runs one command against the driver with a bounded context
func (dm *driverManager) execute(req actionRequest) actionResultMsg {
	ctx, cancel := context.WithTimeout(context.Background(), controlActionTimeout)
	defer cancel()

	start := time.Now()
	err := req.act.run(ctx, dm.g, req.value)
	return actionResultMsg{
		name:     req.act.name,
		value:    req.value,
		hasValue: req.act.hasValue,
		err:      err,
		elapsed:  time.Since(start),
	}
}

// sweep reads the live registers and snapshots the statistics
func (dm *driverManager) sweep() controlSweepMsg {
	d := dm.g.Dispatcher()
	readings := make([]regReading, 0, len(dm.regs))
	for _, info := range dm.regs {
		v, err := d.Read(info.Register)
		readings = append(readings, regReading{info: info, value: v, err: err})
	}
	stats := d.Statistics()
	stats.CalculateRates()
	return controlSweepMsg{readings: readings, stats: *stats}
}

// sweepDead reports whether every read failed because the connection is
// gone. Response timeouts don't count; a silent device is still a live
// line.
func sweepDead(readings []regReading) bool {
	if len(readings) == 0 {
		return false
	}
	for _, r := range readings {
		if !errors.Is(r.err, ErrConnectionClosed) {
			return false
		}
	}
	return true
}

// reconnect attempts to reconnect with exponential backoff
// Returns false if shutdown was requested during reconnection
func (dm *driverManager) reconnect() bool {
	// Close old connection
	dm.g.Close()

	backoff := 1 * time.Second
	maxBackoff := 30 * time.Second

	for {
		select {
		case <-dm.done:
			return false
		case <-time.After(backoff):
		}

		// Attempt to reconnect; the constructor re-sends the device
		// initialization command
		g, connInfo, err := openGripper()
		if err == nil {
			dm.g = g
			dm.p.Send(reconnectedMsg{connInfo: connInfo})
			dm.p.Send(dm.sweep())
			return true
		}

		// Exponential backoff
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}
