// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Clastech/gripstat/pkg/talon"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	showAll       bool
	statsInterval int
	useTUI        bool
	pollInterval  int
	traceFile     string
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Continuously poll and display gripper registers",
	Long: `Poll every readable register of the gripper and track values, changes, and
communication errors with statistics.

This command watches for:
  - Response timeouts (device never answered)
  - Short responses (truncated frames)
  - Transport failures on the serial line or WebSocket bridge
  - Register value changes as the gripper moves

By default only errors and value changes are logged. Use --show-all to log
every read.

--trace records every command and response frame to a CBOR file while
monitoring runs. Entries are written through as they happen, so killing
the monitor loses at most the frame in flight; inspect the file with
"gripstat trace" or re-drive the session with "gripstat replay".

The protocol allows one command on the wire at a time, so registers are
polled back to back; a full sweep of an RGD takes just under a second.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().BoolVar(&showAll, "show-all", false, "Log all reads (not just errors and changes)")
	monitorCmd.Flags().IntVar(&statsInterval, "stats-interval", 10, "Statistics update interval in text mode (seconds)")
	monitorCmd.Flags().BoolVar(&useTUI, "tui", true, "Use terminal UI (false for text mode)")
	monitorCmd.Flags().IntVar(&pollInterval, "interval", 500, "Pause between sweeps (milliseconds)")
	monitorCmd.Flags().StringVar(&traceFile, "trace", "", "Record all frames to a CBOR trace file")
}

// regReading is one polled register together with its outcome.
type regReading struct {
	info  talon.RegisterInfo
	value int
	err   error
}

// snapshotMsg carries one complete sweep from the poller goroutine.
type snapshotMsg struct {
	sweep    int
	readings []regReading
	stats    talon.Statistics
}

func runMonitor(cmd *cobra.Command, args []string) error {
	model, err := selectedModel()
	if err != nil {
		return err
	}

	var regs []talon.RegisterInfo
	for _, info := range talon.Registers(model) {
		if info.Access != talon.WriteOnly {
			regs = append(regs, info)
		}
	}

	// Open the trace file before touching hardware so a bad path fails fast
	var trace *talon.TraceWriter
	if traceFile != "" {
		f, err := os.Create(traceFile)
		if err != nil {
			return fmt.Errorf("failed to create trace file: %v", err)
		}
		defer f.Close()
		trace = talon.NewTraceWriter(f)
	}

	g, connInfo, err := openGripper()
	if err != nil {
		return err
	}
	defer g.Close()

	if trace != nil {
		// The hook runs on the poller goroutine; log the first failure
		// instead of stalling the sweep on every one.
		logged := false
		g.Dispatcher().SetTrace(func(e talon.TraceEntry) {
			if err := trace.Append(e); err != nil && !logged {
				logged = true
				log.Printf("Trace write error: %v", err)
			}
		})
	}

	if useTUI {
		return runMonitorTUI(g, regs, connInfo, model)
	}
	return runMonitorText(g, regs, connInfo, model)
}

// pollLoop sweeps the readable registers forever, delivering one snapshot
// per sweep. It is the only goroutine that touches the dispatcher; the
// snapshot carries a copy of the statistics so the display side never does.
func pollLoop(g gripper, regs []talon.RegisterInfo, send func(snapshotMsg)) {
	d := g.Dispatcher()
	interval := time.Duration(pollInterval) * time.Millisecond

	for sweep := 1; ; sweep++ {
		readings := make([]regReading, 0, len(regs))
		for _, info := range regs {
			v, err := d.Read(info.Register)
			readings = append(readings, regReading{info: info, value: v, err: err})
		}
		stats := d.Statistics()
		stats.CalculateRates()
		send(snapshotMsg{sweep: sweep, readings: readings, stats: *stats})
		time.Sleep(interval)
	}
}

// readingDetail renders the symbolic meaning of a value where one exists.
func readingDetail(info talon.RegisterInfo, value int) string {
	switch info.Register {
	case talon.RGDRegReadyState, talon.RGDRegRotReadyState:
		return fmt.Sprintf(" (%s)", talon.ReadyState(value))
	default:
		return ""
	}
}

// runMonitorTUI runs the monitor in TUI mode
func runMonitorTUI(g gripper, regs []talon.RegisterInfo, connInfo string, model talon.Model) error {
	p := tea.NewProgram(initialMonitorModel(connInfo, model, regs))

	go pollLoop(g, regs, func(s snapshotMsg) {
		p.Send(s)
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}

// printReadError prints a failed read in highlighted format
func printReadError(model talon.Model, info talon.RegisterInfo, err error) {
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Printf("[%s] \033[1;31mREAD ERROR:\033[0m %s: %v\n",
		timestamp, talon.FormatRegister(model, info.Register), err)
}

// printReading prints one successful read
func printReading(model talon.Model, r regReading) {
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Printf("[%s] %s = %d%s\n",
		timestamp, talon.FormatRegister(model, r.info.Register), r.value,
		readingDetail(r.info, r.value))
}

// printValueChange prints a register transition in highlighted format
func printValueChange(model talon.Model, r regReading, previous int) {
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Printf("[%s] \033[1;33m%s:\033[0m %d -> %d%s\n",
		timestamp, talon.FormatRegister(model, r.info.Register), previous, r.value,
		readingDetail(r.info, r.value))
}

// runMonitorText runs the monitor in text mode (no TUI)
func runMonitorText(g gripper, regs []talon.RegisterInfo, connInfo string, model talon.Model) error {
	fmt.Printf("Gripstat - Live Monitor\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Model: %s\n", model)
	fmt.Printf("Statistics interval: %d seconds\n", statsInterval)
	if showAll {
		fmt.Printf("Mode: All reads\n")
	} else {
		fmt.Printf("Mode: Errors and changes only\n")
	}
	fmt.Printf("Press Ctrl+C to exit\n\n")

	snapshots := make(chan snapshotMsg, 4)
	go pollLoop(g, regs, func(s snapshotMsg) {
		snapshots <- s
	})

	statsTicker := time.NewTicker(time.Duration(statsInterval) * time.Second)
	defer statsTicker.Stop()

	last := make(map[talon.Register]int)
	seen := make(map[talon.Register]bool)
	var stats talon.Statistics
	haveStats := false

	for {
		select {
		case snap := <-snapshots:
			stats = snap.stats
			haveStats = true
			for _, r := range snap.readings {
				if r.err != nil {
					printReadError(model, r.info, r.err)
					continue
				}
				switch {
				case !seen[r.info.Register]:
					// First sweep establishes the baseline
					printReading(model, r)
				case last[r.info.Register] != r.value:
					printValueChange(model, r, last[r.info.Register])
				case showAll:
					printReading(model, r)
				}
				seen[r.info.Register] = true
				last[r.info.Register] = r.value
			}

		case <-statsTicker.C:
			if haveStats {
				fmt.Println()
				fmt.Print(stats.String())
				fmt.Println()
			}
		}
	}
}
