// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Clastech Robotics

package cmd

import (
	"fmt"

	"github.com/Clastech/gripstat/pkg/talon"
	"github.com/spf13/cobra"
)

var registersCmd = &cobra.Command{
	Use:   "registers",
	Short: "List the registers of the selected gripper model",
	Long: `Print the register table for the selected model: address, name, access
(RW, RO, or WO), accepted value range, and whether the device answers
writes to it. These names are accepted by the get and set commands.`,
	RunE: runRegisters,
}

func init() {
	rootCmd.AddCommand(registersCmd)
}

func runRegisters(cmd *cobra.Command, args []string) error {
	model, err := selectedModel()
	if err != nil {
		return err
	}

	fmt.Printf("Registers for model %s:\n\n", model)
	fmt.Printf("  %-8s %-18s %-6s %-16s %s\n", "ADDR", "NAME", "ACCESS", "RANGE", "NOTES")

	for _, info := range talon.Registers(model) {
		bounds := "-"
		if info.Bounds != nil {
			bounds = info.Bounds.String()
		}
		notes := ""
		if info.NoReply {
			notes = "no reply"
		}
		fmt.Printf("  0x%04X   %-18s %-6s %-16s %s\n",
			uint16(info.Register), info.Name, info.Access, bounds, notes)
	}
	return nil
}
