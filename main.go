// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics
//
// Gripstat - Talon Gripper Console
//
// A CLI tool for driving and inspecting DH3 three-finger and RGD rotating
// parallel grippers over their serial register protocol.

package main

import (
	"os"

	"github.com/Clastech/gripstat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
