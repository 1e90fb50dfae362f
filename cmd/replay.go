// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Clastech Robotics

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Clastech/gripstat/pkg/talon"
	"github.com/spf13/cobra"
)

var (
	replayDryRun bool
	replayDelay  int
)

var replayCmd = &cobra.Command{
	Use:   "replay <trace-file>",
	Short: "Re-send captured command frames to the gripper",
	Long: `Parse the command frames out of a trace file and re-issue them over the
current connection, reproducing a captured session against live hardware.

Response frames in the trace are skipped; the device answers on the wire.
Each command runs through the normal command/response cycle, so the
replay paces itself to the protocol; --delay adds an extra pause on top.
--dry-run lists the commands without opening a connection.

The trace must come from the model the connection targets. Use
"gripstat trace <file>" to inspect a capture first.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayDryRun, "dry-run", false, "List the commands without sending them")
	replayCmd.Flags().IntVar(&replayDelay, "delay", 0, "Extra pause between commands (milliseconds)")
}

// replayOp is one command frame lifted back out of a trace.
type replayOp struct {
	reg   talon.Register
	value int
	write bool
}

func runReplay(cmd *cobra.Command, args []string) error {
	model, err := selectedModel()
	if err != nil {
		return err
	}

	ops, skipped, err := loadReplayOps(args[0], model)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		return fmt.Errorf("no %s command frames in %s", model, args[0])
	}

	fmt.Printf("Gripstat - Trace Replay\n")
	fmt.Printf("File: %s\n", args[0])
	fmt.Printf("Commands: %d", len(ops))
	if skipped > 0 {
		fmt.Printf(" (%d unparseable frames skipped)", skipped)
	}
	fmt.Printf("\n")

	if replayDryRun {
		fmt.Printf("\n")
		for i, op := range ops {
			fmt.Printf("%3d: %s\n", i+1, formatReplayOp(model, op))
		}
		return nil
	}

	g, connInfo, err := openGripper()
	if err != nil {
		return err
	}
	defer g.Close()
	fmt.Printf("Connection: %s\n\n", connInfo)

	// Fire-and-forget registers never answer; putting them through the
	// response cycle would count a spurious timeout per frame.
	noReply := make(map[talon.Register]bool)
	for _, info := range talon.Registers(model) {
		if info.NoReply {
			noReply[info.Register] = true
		}
	}

	d := g.Dispatcher()
	failed := 0
	for i, op := range ops {
		name := talon.FormatRegister(model, op.reg)
		switch {
		case !op.write:
			value, err := d.Read(op.reg)
			if err != nil {
				failed++
				fmt.Printf("%3d: %s = (error: %v)\n", i+1, name, err)
			} else {
				fmt.Printf("%3d: %s = %d\n", i+1, name, value)
			}
		case noReply[op.reg]:
			if err := d.WriteNoReply(op.reg, op.value); err != nil {
				failed++
				fmt.Printf("%3d: %s <- %d (error: %v)\n", i+1, name, op.value, err)
			} else {
				fmt.Printf("%3d: %s <- %d (no reply expected)\n", i+1, name, op.value)
			}
		default:
			echo, err := d.Write(op.reg, op.value)
			if err != nil {
				failed++
				fmt.Printf("%3d: %s <- %d (error: %v)\n", i+1, name, op.value, err)
			} else {
				fmt.Printf("%3d: %s <- %d (device echoed %d)\n", i+1, name, op.value, echo)
			}
		}

		if replayDelay > 0 && i < len(ops)-1 {
			time.Sleep(time.Duration(replayDelay) * time.Millisecond)
		}
	}

	stats := d.Statistics()
	stats.CalculateRates()
	fmt.Printf("\nReplay complete: %d commands, %d failed\n\n%s\n", len(ops), failed, stats)
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}

// loadReplayOps reads a trace and decodes every command frame for the given
// model, skipping frames that no longer parse. A trace from the other model
// is an error before anything touches the wire.
func loadReplayOps(path string, model talon.Model) ([]replayOp, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open trace file: %v", err)
	}
	defer f.Close()

	var (
		ops     []replayOp
		skipped int
	)
	r := talon.NewTraceReader(f)
	for {
		entry, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("malformed trace: %v", err)
		}
		if talon.Direction(entry.Direction) != talon.DirectionCommand {
			continue
		}
		if talon.Model(entry.Model) != model {
			return nil, 0, fmt.Errorf("trace was captured from a %s gripper but --model is %s",
				talon.Model(entry.Model), model)
		}

		var op replayOp
		switch model {
		case talon.ModelDH3:
			op.reg, op.value, op.write, err = talon.ParseDH3Command(entry.Raw)
		case talon.ModelRGD:
			op.reg, op.value, op.write, err = talon.ParseRGDCommand(entry.Raw)
		}
		if err != nil {
			skipped++
			continue
		}
		ops = append(ops, op)
	}
	return ops, skipped, nil
}

func formatReplayOp(model talon.Model, op replayOp) string {
	if op.write {
		return fmt.Sprintf("%s <- %d", talon.FormatRegister(model, op.reg), op.value)
	}
	return fmt.Sprintf("read %s", talon.FormatRegister(model, op.reg))
}
