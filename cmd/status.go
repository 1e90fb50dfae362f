// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Clastech Robotics

package cmd

import (
	"fmt"

	"github.com/Clastech/gripstat/pkg/talon"
	"github.com/spf13/cobra"
)

var statusShowStats bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Read and display the gripper's current state",
	Long: `Read every feedback register of the selected gripper once and print it.

For a DH3 this covers force settings, finger position, rotation angle, and
grip state. For an RGD this covers readiness, grip state, position, motor
current, error code, and the rotation axis.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusShowStats, "stats", false, "Print traffic statistics after the reads")
}

func runStatus(cmd *cobra.Command, args []string) error {
	g, connInfo, err := openGripper()
	if err != nil {
		return err
	}
	defer g.Close()

	fmt.Printf("Gripstat - Status\n")
	fmt.Printf("Connection: %s\n\n", connInfo)

	switch g := g.(type) {
	case *talon.DH3:
		printDH3Status(g)
	case *talon.RGD:
		printRGDStatus(g)
	}

	if statusShowStats {
		stats := g.Dispatcher().Statistics()
		stats.CalculateRates()
		fmt.Printf("\n%s\n", stats)
	}
	return nil
}

func printStatusRow(label string, value int, err error) {
	if err != nil {
		fmt.Printf("  %-16s (error: %v)\n", label+":", err)
		return
	}
	fmt.Printf("  %-16s %d\n", label+":", value)
}

func printDH3Status(g *talon.DH3) {
	v, err := g.OpenForce()
	printStatusRow("Open force", v, err)
	v, err = g.CloseForce()
	printStatusRow("Close force", v, err)
	v, err = g.Position()
	printStatusRow("Position", v, err)
	v, err = g.Angle()
	printStatusRow("Angle", v, err)
	v, err = g.State()
	printStatusRow("Grip state", v, err)
}

func printRGDStatus(g *talon.RGD) {
	ready, err := g.Ready()
	if err != nil {
		fmt.Printf("  %-16s (error: %v)\n", "Readiness:", err)
	} else {
		fmt.Printf("  %-16s %s\n", "Readiness:", ready)
	}

	v, err := g.State()
	printStatusRow("Grip state", v, err)
	v, err = g.Position()
	printStatusRow("Position", v, err)
	v, err = g.Current()
	printStatusRow("Current", v, err)
	v, err = g.ErrorCode()
	printStatusRow("Error code", v, err)

	rotReady, err := g.RotationReady()
	if err != nil {
		fmt.Printf("  %-16s (error: %v)\n", "Rot readiness:", err)
	} else {
		fmt.Printf("  %-16s %s\n", "Rot readiness:", rotReady)
	}

	v, err = g.RotationAngle()
	printStatusRow("Rotation angle", v, err)
	v, err = g.RotationState()
	printStatusRow("Rotation state", v, err)
}
