// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Clastech Robotics

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/Clastech/gripstat/pkg/talon"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Event log entry
type eventLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool // true for errors, false for informational entries
}

// Monitor TUI model
type monitorModel struct {
	connInfo      string
	gripModel     talon.Model
	regOrder      []talon.RegisterInfo
	values        map[talon.Register]regReading
	lastGood      map[talon.Register]int
	haveGood      map[talon.Register]bool
	stats         talon.Statistics
	haveSnapshot  bool
	sweep         int
	eventLog      []eventLogEntry
	maxLogEntries int
	start         time.Time
	width         int
	height        int
	quitting      bool
}

// Messages
type tickMsg time.Time

func initialMonitorModel(connInfo string, gripModel talon.Model, regs []talon.RegisterInfo) monitorModel {
	return monitorModel{
		connInfo:      connInfo,
		gripModel:     gripModel,
		regOrder:      regs,
		values:        make(map[talon.Register]regReading),
		lastGood:      make(map[talon.Register]int),
		haveGood:      make(map[talon.Register]bool),
		eventLog:      make([]eventLogEntry, 0),
		maxLogEntries: 100,
		start:         time.Now(),
		width:         80,
		height:        24,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		tea.EnterAltScreen,
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		// Redraw so the elapsed time keeps moving
		return m, tickCmd()

	case snapshotMsg:
		m.processSnapshot(msg)
	}

	return m, nil
}

func (m *monitorModel) addLogEntry(message string, isError bool) {
	entry := eventLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	}
	m.eventLog = append(m.eventLog, entry)

	// Keep only last N entries
	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}
}

// processSnapshot folds one sweep into the display state and logs errors
// and value transitions.
func (m *monitorModel) processSnapshot(msg snapshotMsg) {
	first := !m.haveSnapshot
	m.haveSnapshot = true
	m.sweep = msg.sweep
	m.stats = msg.stats

	for _, r := range msg.readings {
		reg := r.info.Register
		m.values[reg] = r

		if r.err != nil {
			m.addLogEntry(fmt.Sprintf("%s: %v", talon.FormatRegister(m.gripModel, reg), r.err), true)
			continue
		}
		if m.haveGood[reg] && m.lastGood[reg] != r.value {
			m.addLogEntry(fmt.Sprintf("%s: %d -> %d%s",
				r.info.Name, m.lastGood[reg], r.value, readingDetail(r.info, r.value)), false)
		} else if showAll && m.haveGood[reg] {
			m.addLogEntry(fmt.Sprintf("%s = %d", r.info.Name, r.value), false)
		}
		m.haveGood[reg] = true
		m.lastGood[reg] = r.value
	}

	if first {
		m.addLogEntry(fmt.Sprintf("First sweep complete (%d registers)", len(msg.readings)), false)
	}
}

func (m monitorModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	statsLabelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	statsValueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	// Header
	var s strings.Builder
	s.WriteString(titleStyle.Render("GRIPSTAT - LIVE MONITOR"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("Connection: %s | Model: %s | Press 'q' to quit",
		m.connInfo, m.gripModel)))
	s.WriteString("\n\n")

	// Sweep status
	if !m.haveSnapshot {
		s.WriteString(warningStyle.Render("⏳ Waiting for first sweep..."))
		s.WriteString("\n\n")
	} else {
		s.WriteString(statsValueStyle.Render(fmt.Sprintf("✓ Sweep %d", m.sweep)))
		s.WriteString(headerStyle.Render(fmt.Sprintf(" (up %s)", talon.FormatDuration(time.Since(m.start)))))
		s.WriteString("\n\n")
	}

	// Statistics
	var replyPercent float64
	responded := m.stats.Commands - m.stats.NoReplyWrites
	if responded > 0 {
		replyPercent = float64(m.stats.Replies) * 100.0 / float64(responded)
	}

	statsContent := strings.Builder{}
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s   %s %s\n",
		statsLabelStyle.Render("Commands:"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.Commands)),
		statsLabelStyle.Render("Reads:"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.Reads)),
		statsLabelStyle.Render("Writes:"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.Writes)),
		statsLabelStyle.Render("Replies:"), statsValueStyle.Render(fmt.Sprintf("%d (%.1f%%)", m.stats.Replies, replyPercent)),
	))

	if m.stats.Timeouts > 0 || m.stats.ShortResponses > 0 {
		statsContent.WriteString(fmt.Sprintf("%s %s   %s %s\n",
			statsLabelStyle.Render("Timeouts:"), errorStyle.Render(fmt.Sprintf("%d", m.stats.Timeouts)),
			statsLabelStyle.Render("Short Responses:"), errorStyle.Render(fmt.Sprintf("%d", m.stats.ShortResponses)),
		))
	}

	if m.stats.TransportErrors > 0 || m.stats.RangeErrors > 0 {
		statsContent.WriteString(fmt.Sprintf("%s %s   %s %s\n",
			statsLabelStyle.Render("Transport Errors:"), errorStyle.Render(fmt.Sprintf("%d", m.stats.TransportErrors)),
			statsLabelStyle.Render("Range Errors:"), warningStyle.Render(fmt.Sprintf("%d", m.stats.RangeErrors)),
		))
	}

	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s",
		statsLabelStyle.Render("Command Rate:"), statsValueStyle.Render(fmt.Sprintf("%.1f cmds/s", m.stats.CommandRate)),
		statsLabelStyle.Render("Error Rate:"), func() string {
			if m.stats.ErrorRate > 0 {
				return errorStyle.Render(fmt.Sprintf("%.1f err/s", m.stats.ErrorRate))
			}
			return statsValueStyle.Render(fmt.Sprintf("%.1f err/s", m.stats.ErrorRate))
		}(),
	))

	s.WriteString(boxStyle.Render(statsContent.String()))
	s.WriteString("\n\n")

	// Register values
	if m.haveSnapshot {
		s.WriteString(statsLabelStyle.Render("Register Values:"))
		s.WriteString("\n")

		regContent := strings.Builder{}
		for i, info := range m.regOrder {
			if i > 0 {
				regContent.WriteString("\n")
			}
			regContent.WriteString(statsLabelStyle.Render(fmt.Sprintf("%-18s", info.Name)))
			r, ok := m.values[info.Register]
			switch {
			case !ok:
				regContent.WriteString(headerStyle.Render("(not yet read)"))
			case r.err != nil:
				regContent.WriteString(errorStyle.Render(fmt.Sprintf("read failed: %v", r.err)))
			default:
				regContent.WriteString(statsValueStyle.Render(fmt.Sprintf("%6d", r.value)))
				if detail := readingDetail(r.info, r.value); detail != "" {
					regContent.WriteString(headerStyle.Render(detail))
				}
			}
		}

		s.WriteString(boxStyle.Render(regContent.String()))
		s.WriteString("\n\n")
	}

	// Event log
	s.WriteString(statsLabelStyle.Render("Recent Events:"))
	s.WriteString("\n")

	// Calculate how many log entries we can show
	logHeight := m.height - 24 // Reserve space for header, stats, and values
	if logHeight < 5 {
		logHeight = 5
	}

	logContent := strings.Builder{}
	startIdx := len(m.eventLog) - logHeight
	if startIdx < 0 {
		startIdx = 0
	}

	if len(m.eventLog) == 0 {
		logContent.WriteString(headerStyle.Render("  (no events yet)"))
	} else {
		for i := startIdx; i < len(m.eventLog); i++ {
			entry := m.eventLog[i]
			timestamp := entry.timestamp.Format("01/02/06 15:04:05.000")
			if entry.isError {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					errorStyle.Render("✗ "+entry.message),
				))
			} else {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					warningStyle.Render("ℹ "+entry.message),
				))
			}
		}
	}

	s.WriteString(boxStyle.Width(m.width - 4).Render(logContent.String()))

	return s.String()
}
