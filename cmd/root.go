// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Clastech Robotics

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Device flags
	modelName string
)

var rootCmd = &cobra.Command{
	Use:   "gripstat",
	Short: "Talon Gripper Control and Analysis",
	Long: `Gripstat - A CLI tool for controlling and analyzing Talon protocol grippers.

Provides commands for register access, initialization, live monitoring, and
traffic capture for DH3 three-finger and RGD rotating parallel grippers.

Connection modes:
  Serial:    --port /dev/ttyUSB0
  WebSocket: --url ws://host/path [--username user]

The serial line always runs at 115200 baud, 8 data bits, no parity, one stop
bit, as the grippers require; there is no baud rate flag.

For WebSocket authentication, the password is read from the GRIPSTAT_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell history.`,
	Version: "1.2.0",
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Device flags
	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "Gripper model (dh3 or rgd)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
