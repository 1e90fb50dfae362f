// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Clastech Robotics

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Clastech/gripstat/pkg/talon"
	"github.com/spf13/cobra"
)

var (
	setForce    bool
	setNoWait   bool
	setTimeout  int
	setInterval int
	setAttempts int
)

var setCmd = &cobra.Command{
	Use:   "set <register> <value>",
	Short: "Write a value to a register",
	Long: `Write a value to a register by name or address.

Register names are case-insensitive and accept dashes or underscores.
Values are validated against the register's documented range before
anything is sent; --force skips that check for registers with a known
range (useful when probing undocumented behavior) and always takes the
raw write path.

Position and angle registers hold a motion target. By default set waits
for the device to report the commanded value before returning, bounded
by --timeout; --interval and --attempts tune the convergence poll (the
DH3 re-reads back to back, the RGD pauses 10 ms between reads). With
--no-wait set returns as soon as the device echoes the write.

Registers the device never answers (the RGD rotation commands) are sent
fire-and-forget.`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().BoolVar(&setForce, "force", false, "Skip range validation")
	setCmd.Flags().BoolVar(&setNoWait, "no-wait", false, "Do not wait for motion registers to converge")
	setCmd.Flags().IntVar(&setTimeout, "timeout", 30, "Seconds to wait for convergence (0 = forever)")
	setCmd.Flags().IntVar(&setInterval, "interval", 0, "Pause between convergence reads (milliseconds)")
	setCmd.Flags().IntVar(&setAttempts, "attempts", 0, "Cap on convergence reads (0 = unbounded)")
}

func runSet(cmd *cobra.Command, args []string) error {
	model, err := selectedModel()
	if err != nil {
		return err
	}

	reg, info, err := resolveRegister(model, args[0])
	if err != nil {
		return err
	}

	value, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid value %q: %v", args[1], err)
	}

	if info != nil {
		if info.Access == talon.ReadOnly {
			return fmt.Errorf("register %s is read-only", info.Name)
		}
		if info.Bounds != nil && !setForce {
			if err := talon.CheckRange(info.Name, value, *info.Bounds); err != nil {
				return err
			}
		}
	}

	g, _, err := openGripper()
	if err != nil {
		return err
	}
	defer g.Close()

	// Motion registers converge through the driver, which re-validates;
	// --force has to stay on the raw path for out-of-range writes to
	// reach the wire at all.
	if info != nil && !setNoWait && !setForce && isMotionRegister(model, reg) {
		return setBlocking(cmd, g, model, reg, value)
	}

	d := g.Dispatcher()
	if info != nil && info.NoReply {
		if err := d.WriteNoReply(reg, value); err != nil {
			return err
		}
		fmt.Printf("%s <- %d (no reply expected)\n", talon.FormatRegister(model, reg), value)
		return nil
	}

	echo, err := d.Write(reg, value)
	if err != nil {
		return err
	}
	fmt.Printf("%s <- %d (device echoed %d)\n", talon.FormatRegister(model, reg), value, echo)
	return nil
}

// isMotionRegister reports whether a register commands a motion the device
// reports back on, making a convergence wait meaningful.
func isMotionRegister(model talon.Model, reg talon.Register) bool {
	switch model {
	case talon.ModelDH3:
		return reg == talon.DH3RegPosition || reg == talon.DH3RegAngle
	case talon.ModelRGD:
		return reg == talon.RGDRegPosition
	}
	return false
}

// setBlocking drives a motion register through the driver's convergence
// loop, re-reading until the device reports the commanded value.
func setBlocking(cmd *cobra.Command, g gripper, model talon.Model, reg talon.Register, value int) error {
	ctx := context.Background()
	cancel := func() {}
	if setTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(setTimeout)*time.Second)
	}
	defer cancel()

	start := time.Now()
	var err error
	switch g := g.(type) {
	case *talon.DH3:
		applyPollFlags(cmd, &g.Poll)
		if reg == talon.DH3RegAngle {
			err = g.SetAngle(ctx, value)
		} else {
			err = g.SetPosition(ctx, value)
		}
	case *talon.RGD:
		applyPollFlags(cmd, &g.Poll)
		err = g.SetPosition(ctx, value)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("target %d not reached within %d seconds", value, setTimeout)
		}
		return err
	}

	fmt.Printf("%s <- %d (reached in %s)\n",
		talon.FormatRegister(model, reg), value, time.Since(start).Round(time.Millisecond))
	return nil
}

// applyPollFlags overrides the poll settings the flags were given for;
// untouched fields keep the variant default.
func applyPollFlags(cmd *cobra.Command, poll *talon.PollConfig) {
	if cmd.Flags().Changed("interval") {
		poll.Interval = time.Duration(setInterval) * time.Millisecond
	}
	if cmd.Flags().Changed("attempts") {
		poll.MaxAttempts = setAttempts
	}
}
