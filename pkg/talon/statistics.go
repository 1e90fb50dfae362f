// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package talon

import (
	"fmt"
	"time"
)

// Statistics tracks command traffic and error rates for one dispatcher.
// It is not safe for concurrent use; like the transport, it belongs to the
// single goroutine driving the device.
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	Commands        uint64
	Reads           uint64
	Writes          uint64
	NoReplyWrites   uint64
	Replies         uint64
	Timeouts        uint64
	ShortResponses  uint64
	TransportErrors uint64
	RangeErrors     uint64

	// Rates (calculated)
	CommandRate float64 // commands/sec
	ErrorRate   float64 // errors/sec
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// RecordCommand counts one dispatched command frame
func (s *Statistics) RecordCommand(write, noReply bool) {
	s.Commands++
	if write {
		s.Writes++
	} else {
		s.Reads++
	}
	if noReply {
		s.NoReplyWrites++
	}
	s.LastUpdateTime = time.Now()
}

// RecordReply counts one successfully parsed response
func (s *Statistics) RecordReply() {
	s.Replies++
	s.LastUpdateTime = time.Now()
}

// RecordResponseError classifies a failed response cycle: an empty read is
// a timeout (device never answered), a truncated one is a short response.
func (s *Statistics) RecordResponseError(raw []byte) {
	if len(raw) == 0 {
		s.Timeouts++
	} else {
		s.ShortResponses++
	}
	s.LastUpdateTime = time.Now()
}

// RecordTransportError counts a failed write or read on the connection
func (s *Statistics) RecordTransportError() {
	s.TransportErrors++
	s.LastUpdateTime = time.Now()
}

// RecordRangeError counts a command value rejected before dispatch
func (s *Statistics) RecordRangeError() {
	s.RangeErrors++
	s.LastUpdateTime = time.Now()
}

// CalculateRates calculates command and error rates
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.CommandRate = float64(s.Commands) / elapsed
		errorCount := s.Timeouts + s.ShortResponses + s.TransportErrors + s.RangeErrors
		s.ErrorRate = float64(errorCount) / elapsed
	}
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	s.CalculateRates()

	var replyPercent, timeoutPercent, shortPercent float64
	responded := s.Commands - s.NoReplyWrites
	if responded > 0 {
		replyPercent = float64(s.Replies) * 100.0 / float64(responded)
		timeoutPercent = float64(s.Timeouts) * 100.0 / float64(responded)
		shortPercent = float64(s.ShortResponses) * 100.0 / float64(responded)
	}

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Commands Sent:   %8d\n", s.Commands)
	result += fmt.Sprintf("  Reads:         %8d\n", s.Reads)
	result += fmt.Sprintf("  Writes:        %8d\n", s.Writes)
	if s.NoReplyWrites > 0 {
		result += fmt.Sprintf("  Fire-and-forget:%7d\n", s.NoReplyWrites)
	}
	result += fmt.Sprintf("Replies:         %8d (%.1f%%)\n", s.Replies, replyPercent)

	if s.Timeouts > 0 {
		result += fmt.Sprintf("Timeouts:        %8d (%.1f%%)\n", s.Timeouts, timeoutPercent)
	}
	if s.ShortResponses > 0 {
		result += fmt.Sprintf("Short Responses: %8d (%.1f%%)\n", s.ShortResponses, shortPercent)
	}
	if s.TransportErrors > 0 {
		result += fmt.Sprintf("Transport Errors:%8d\n", s.TransportErrors)
	}
	if s.RangeErrors > 0 {
		result += fmt.Sprintf("Range Errors:    %8d\n", s.RangeErrors)
	}

	result += fmt.Sprintf("Command Rate:    %8.1f cmds/sec\n", s.CommandRate)
	result += fmt.Sprintf("Error Rate:      %8.1f errors/sec\n", s.ErrorRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters
func (s *Statistics) Reset() {
	now := time.Now()
	s.StartTime = now
	s.LastUpdateTime = now
	s.Commands = 0
	s.Reads = 0
	s.Writes = 0
	s.NoReplyWrites = 0
	s.Replies = 0
	s.Timeouts = 0
	s.ShortResponses = 0
	s.TransportErrors = 0
	s.RangeErrors = 0
	s.CommandRate = 0
	s.ErrorRate = 0
}
