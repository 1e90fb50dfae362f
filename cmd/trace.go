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

var traceErrorsOnly bool

var traceCmd = &cobra.Command{
	Use:   "trace <trace-file>",
	Short: "Display a captured trace file in human-readable format",
	Long: `Decode a trace file written by "monitor --trace" and print each frame
with timestamp, direction, register, decoded value, and raw bytes.

Works offline; no gripper connection is needed.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().BoolVar(&traceErrorsOnly, "errors-only", false, "Show only entries that carry a response error")
}

func runTrace(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open trace file: %v", err)
	}
	defer f.Close()

	fmt.Printf("Gripstat - Trace Inspect\n")
	fmt.Printf("File: %s\n\n", args[0])

	r := talon.NewTraceReader(f)
	var (
		total     int
		shown     int
		errCount  int
		first     time.Time
		last      time.Time
		malformed bool
	)
	for {
		entry, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A torn final entry from an interrupted capture lands here
			fmt.Fprintf(os.Stderr, "Warning: stopping at malformed entry %d: %v\n", total+1, err)
			malformed = true
			break
		}
		total++
		if first.IsZero() {
			first = entry.Time()
		}
		last = entry.Time()
		if entry.Error != "" {
			errCount++
		}
		if traceErrorsOnly && entry.Error == "" {
			continue
		}
		shown++
		fmt.Print(talon.FormatTraceEntry(entry))
	}

	fmt.Printf("\n%d entries", total)
	if traceErrorsOnly {
		fmt.Printf(" (%d shown)", shown)
	}
	fmt.Printf(", %d with errors", errCount)
	if total > 0 {
		fmt.Printf(", spanning %s", talon.FormatDuration(last.Sub(first)))
	}
	fmt.Printf("\n")
	if malformed {
		os.Exit(1)
	}
	return nil
}
