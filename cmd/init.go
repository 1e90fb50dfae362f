// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Clastech Robotics

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Clastech/gripstat/pkg/talon"
	"github.com/spf13/cobra"
)

var (
	initTimeout   int
	initDirection string
	initFeedback  bool
	initRotation  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the gripper and wait for readiness",
	Long: `Send the gripper its initialization command and wait until it reports ready.

An RGD homes its jaws on initialization; --direction picks which way
(open or close). The command then polls the readiness register, resending
the initialization while the device reports NOT_READY and waiting while it
reports BUSY. --rotation additionally waits for the rotation axis.

A DH3 accepts its initialization silently; --feedback additionally arms
position feedback reporting.

Exit codes:
  0 - Gripper initialized and ready
  1 - Timeout waiting for readiness
  2 - Connection error`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().IntVar(&initTimeout, "timeout", 30, "Timeout in seconds to wait for readiness")
	initCmd.Flags().StringVar(&initDirection, "direction", "", "RGD homing direction (open or close)")
	initCmd.Flags().BoolVar(&initFeedback, "feedback", false, "DH3: arm position feedback reporting")
	initCmd.Flags().BoolVar(&initRotation, "rotation", false, "RGD: also wait for the rotation axis")
}

func runInit(cmd *cobra.Command, args []string) error {
	g, connInfo, err := openGripper()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer g.Close()

	fmt.Printf("Gripstat - Initialize\n")
	fmt.Printf("Connection: %s\n\n", connInfo)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(initTimeout)*time.Second)
	defer cancel()

	switch g := g.(type) {
	case *talon.DH3:
		return initDH3(g)
	case *talon.RGD:
		return initRGD(ctx, g)
	}
	return nil
}

func initDH3(g *talon.DH3) error {
	// The constructor already sent the initialization command.
	fmt.Printf("Initialization command sent\n")

	if initFeedback {
		if err := g.InitFeedback(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to arm feedback: %v\n", err)
			os.Exit(2)
		}
		fmt.Printf("Position feedback armed\n")
	}

	os.Exit(0)
	return nil
}

func initRGD(ctx context.Context, g *talon.RGD) error {
	if initDirection != "" {
		var dir int
		switch initDirection {
		case "open":
			dir = talon.DirectionOpen
		case "close":
			dir = talon.DirectionClose
		default:
			return fmt.Errorf("invalid direction %q (use open or close)", initDirection)
		}
		if err := g.InitDirection(dir); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to set homing direction: %v\n", err)
			os.Exit(2)
		}
		fmt.Printf("Homing direction: %s\n", initDirection)

		// Direction only takes effect on the next initialization
		if err := g.InitState(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reinitialize: %v\n", err)
			os.Exit(2)
		}
	}

	fmt.Printf("Waiting for gripper readiness (timeout %ds)...\n", initTimeout)
	state, err := g.AwaitReady(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			fmt.Fprintf(os.Stderr, "TIMEOUT: gripper not ready within %d seconds\n", initTimeout)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Readiness poll failed: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("Gripper ready (state %d)\n", int(state))

	if initRotation {
		fmt.Printf("Waiting for rotation axis readiness...\n")
		state, err = g.AwaitRotationReady(ctx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				fmt.Fprintf(os.Stderr, "TIMEOUT: rotation axis not ready within %d seconds\n", initTimeout)
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "Readiness poll failed: %v\n", err)
			os.Exit(2)
		}
		fmt.Printf("Rotation axis ready (state %d)\n", int(state))
	}

	os.Exit(0)
	return nil
}
