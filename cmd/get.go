// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Clastech Robotics

package cmd

import (
	"fmt"
	"strconv"

	"github.com/Clastech/gripstat/pkg/talon"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <register>...",
	Short: "Read one or more registers",
	Long: `Read registers by name or address and print their values.

Register names are case-insensitive and accept dashes or underscores, e.g.
"position_feedback" or "POSITION-FEEDBACK". Addresses are given numerically,
e.g. 0x0202. Use "gripstat registers" to list the names a model knows.

Each read is a full command/response cycle on the half-duplex line, so
reading several registers takes roughly 100 ms per register.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

// resolveRegister turns a name or numeric address into a register, plus its
// table entry when the address is a known one.
func resolveRegister(model talon.Model, arg string) (talon.Register, *talon.RegisterInfo, error) {
	if info, ok := talon.LookupRegister(model, arg); ok {
		return info.Register, &info, nil
	}

	addr, err := strconv.ParseUint(arg, 0, 16)
	if err != nil {
		return 0, nil, fmt.Errorf("unknown register %q for model %s", arg, model)
	}
	return talon.Register(addr), nil, nil
}

func runGet(cmd *cobra.Command, args []string) error {
	model, err := selectedModel()
	if err != nil {
		return err
	}

	// Resolve all names before touching the device
	regs := make([]talon.Register, 0, len(args))
	for _, arg := range args {
		reg, info, err := resolveRegister(model, arg)
		if err != nil {
			return err
		}
		if info != nil && info.Access == talon.WriteOnly {
			return fmt.Errorf("register %s is write-only", info.Name)
		}
		regs = append(regs, reg)
	}

	g, _, err := openGripper()
	if err != nil {
		return err
	}
	defer g.Close()

	d := g.Dispatcher()
	for _, reg := range regs {
		value, err := d.Read(reg)
		if err != nil {
			fmt.Printf("%s = (error: %v)\n", talon.FormatRegister(model, reg), err)
			continue
		}
		fmt.Printf("%s = %d\n", talon.FormatRegister(model, reg), value)
	}
	return nil
}
