// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Clastech Robotics

package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Clastech/gripstat/pkg/talon"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

//////////////////////////////////////////////////////////////
// Constants
//////////////////////////////////////////////////////////////

// Focus states
const (
	focusActionList = iota
	focusValueInput
	focusButton
)

//////////////////////////////////////////////////////////////
// Types
//////////////////////////////////////////////////////////////

// action is one command the TUI can queue on the driver worker
type action struct {
	name     string
	desc     string
	hasValue bool
	bounds   *talon.Bounds
	run      func(ctx context.Context, g gripper, value int) error
}

// Implement list.Item interface
func (a action) Title() string       { return a.name }
func (a action) Description() string { return a.desc }
func (a action) FilterValue() string { return a.name }

// controlModel is the Bubble Tea model for the control TUI
type controlModel struct {
	// Driver manager (for queueing commands)
	driver    *driverManager
	connInfo  string
	gripModel talon.Model

	// Actions
	actions    []action
	actionList list.Model

	// Live status
	regOrder  []talon.RegisterInfo
	readings  map[talon.Register]regReading
	haveSweep bool
	stats     talon.Statistics

	// Control
	valueInput   textinput.Model
	focusedField int
	pending      string // name of the command in flight, empty when idle

	// Monitoring
	eventLog      []eventLogEntry
	maxLogEntries int

	// UI state
	width          int
	height         int
	quitting       bool
	connectionLost bool
}

//////////////////////////////////////////////////////////////
// Messages
//////////////////////////////////////////////////////////////

type controlTickMsg time.Time

// actionRequest travels from the TUI to the driver worker
type actionRequest struct {
	act   action
	value int
}

// actionResultMsg reports a finished command back to the TUI
type actionResultMsg struct {
	name     string
	value    int
	hasValue bool
	err      error
	elapsed  time.Duration
}

// controlSweepMsg carries one status poll from the driver worker
type controlSweepMsg struct {
	readings []regReading
	stats    talon.Statistics
}

type connectionLostMsg struct{}

type reconnectedMsg struct {
	connInfo string
}

//////////////////////////////////////////////////////////////
// Actions
//////////////////////////////////////////////////////////////

// boundsDesc renders the range note shown under an action name
func boundsDesc(b *talon.Bounds, extra string) string {
	if b == nil {
		return extra
	}
	if extra == "" {
		return fmt.Sprintf("range %s", b)
	}
	return fmt.Sprintf("range %s, %s", b, extra)
}

// boundsOf pulls the write bounds for a named register from the table
func boundsOf(model talon.Model, name string) *talon.Bounds {
	if info, ok := talon.LookupRegister(model, name); ok {
		return info.Bounds
	}
	return nil
}

// actionsFor builds the command list for a model. Blocking commands get a
// context so the worker's timeout can cut them loose.
func actionsFor(model talon.Model) []action {
	switch model {
	case talon.ModelDH3:
		return []action{
			{
				name: "Set position", hasValue: true,
				bounds: boundsOf(model, "POSITION"),
				desc:   boundsDesc(boundsOf(model, "POSITION"), "waits for arrival"),
				run: func(ctx context.Context, g gripper, v int) error {
					return g.(*talon.DH3).SetPosition(ctx, v)
				},
			},
			{
				name: "Set angle", hasValue: true,
				bounds: boundsOf(model, "ANGLE"),
				desc:   boundsDesc(boundsOf(model, "ANGLE"), "waits for arrival"),
				run: func(ctx context.Context, g gripper, v int) error {
					return g.(*talon.DH3).SetAngle(ctx, v)
				},
			},
			{
				name: "Set open force", hasValue: true,
				bounds: boundsOf(model, "OPEN_FORCE"),
				desc:   boundsDesc(boundsOf(model, "OPEN_FORCE"), ""),
				run: func(ctx context.Context, g gripper, v int) error {
					return g.(*talon.DH3).SetOpenForce(v)
				},
			},
			{
				name: "Set close force", hasValue: true,
				bounds: boundsOf(model, "CLOSE_FORCE"),
				desc:   boundsDesc(boundsOf(model, "CLOSE_FORCE"), ""),
				run: func(ctx context.Context, g gripper, v int) error {
					return g.(*talon.DH3).SetCloseForce(v)
				},
			},
			{
				name: "Arm drop feedback", desc: "no reply expected",
				run: func(ctx context.Context, g gripper, v int) error {
					return g.(*talon.DH3).InitFeedback()
				},
			},
			{
				name: "Re-initialize", desc: "repeats the power-on handshake",
				run: func(ctx context.Context, g gripper, v int) error {
					return g.(*talon.DH3).InitState()
				},
			},
		}

	case talon.ModelRGD:
		return []action{
			{
				name: "Set position", hasValue: true,
				bounds: boundsOf(model, "POSITION"),
				desc:   boundsDesc(boundsOf(model, "POSITION"), "waits for arrival"),
				run: func(ctx context.Context, g gripper, v int) error {
					return g.(*talon.RGD).SetPosition(ctx, v)
				},
			},
			{
				name: "Set force", hasValue: true,
				bounds: boundsOf(model, "FORCE"),
				desc:   boundsDesc(boundsOf(model, "FORCE"), ""),
				run: func(ctx context.Context, g gripper, v int) error {
					return g.(*talon.RGD).SetForce(v)
				},
			},
			{
				name: "Set velocity", hasValue: true,
				bounds: boundsOf(model, "VELOCITY"),
				desc:   boundsDesc(boundsOf(model, "VELOCITY"), ""),
				run: func(ctx context.Context, g gripper, v int) error {
					return g.(*talon.RGD).SetVelocity(v)
				},
			},
			{
				name: "Rotate to angle", hasValue: true,
				bounds: boundsOf(model, "ABS_ROTATION"),
				desc:   boundsDesc(boundsOf(model, "ABS_ROTATION"), "no reply expected"),
				run: func(ctx context.Context, g gripper, v int) error {
					return g.(*talon.RGD).SetAbsRotation(v)
				},
			},
			{
				name: "Rotate by angle", hasValue: true,
				bounds: boundsOf(model, "REL_ROTATION"),
				desc:   boundsDesc(boundsOf(model, "REL_ROTATION"), ""),
				run: func(ctx context.Context, g gripper, v int) error {
					return g.(*talon.RGD).SetRelRotation(v)
				},
			},
			{
				name: "Set rotation velocity", hasValue: true,
				bounds: boundsOf(model, "ROT_VELOCITY"),
				desc:   boundsDesc(boundsOf(model, "ROT_VELOCITY"), "no reply expected"),
				run: func(ctx context.Context, g gripper, v int) error {
					return g.(*talon.RGD).SetRotationVelocity(v)
				},
			},
			{
				name: "Set rotation force", hasValue: true,
				bounds: boundsOf(model, "ROT_FORCE"),
				desc:   boundsDesc(boundsOf(model, "ROT_FORCE"), ""),
				run: func(ctx context.Context, g gripper, v int) error {
					return g.(*talon.RGD).SetRotationForce(v)
				},
			},
			{
				name: "Wait until ready", desc: "polls READY_STATE, re-sends init if needed",
				run: func(ctx context.Context, g gripper, v int) error {
					_, err := g.(*talon.RGD).AwaitReady(ctx)
					return err
				},
			},
			{
				name: "Wait until rotation ready", desc: "polls ROT_READY_STATE",
				run: func(ctx context.Context, g gripper, v int) error {
					_, err := g.(*talon.RGD).AwaitRotationReady(ctx)
					return err
				},
			},
			{
				name: "Re-initialize", desc: "repeats the power-on handshake",
				run: func(ctx context.Context, g gripper, v int) error {
					return g.(*talon.RGD).InitState()
				},
			},
		}
	}
	return nil
}

//////////////////////////////////////////////////////////////
// Model Initialization
//////////////////////////////////////////////////////////////

func initialControlModel(dm *driverManager, connInfo string, gripModel talon.Model) controlModel {
	// Initialize text input for command values
	ti := textinput.New()
	ti.Placeholder = "0"
	ti.CharLimit = 6
	ti.Width = 10

	// Initialize action list
	actions := actionsFor(gripModel)
	items := make([]list.Item, len(actions))
	for i, a := range actions {
		items[i] = a
	}
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.SetHeight(2)
	actionList := list.New(items, delegate, 30, 10)
	actionList.Title = "Actions"
	actionList.SetShowStatusBar(false)
	actionList.SetShowHelp(false)
	actionList.SetFilteringEnabled(false)

	return controlModel{
		driver:        dm,
		connInfo:      connInfo,
		gripModel:     gripModel,
		actions:       actions,
		actionList:    actionList,
		regOrder:      dm.regs,
		readings:      make(map[talon.Register]regReading),
		valueInput:    ti,
		focusedField:  focusActionList,
		eventLog:      make([]eventLogEntry, 0),
		maxLogEntries: 100,
		width:         80,
		height:        24,
	}
}

//////////////////////////////////////////////////////////////
// Bubble Tea Interface
//////////////////////////////////////////////////////////////

func (m controlModel) Init() tea.Cmd {
	return controlTickCmd()
}

func controlTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return controlTickMsg(t)
	})
}

func (m controlModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateListSize()

	case controlTickMsg:
		// Redraw each second so elapsed indicators stay honest
		return m, controlTickCmd()

	case controlSweepMsg:
		m.processSweep(msg)

	case actionResultMsg:
		m.pending = ""
		elapsed := msg.elapsed.Round(time.Millisecond)
		switch {
		case msg.err != nil:
			m.addLogEntry(fmt.Sprintf("%s failed: %v", msg.name, msg.err), true)
		case msg.hasValue:
			m.addLogEntry(fmt.Sprintf("%s (%d) done in %s", msg.name, msg.value, elapsed), false)
		default:
			m.addLogEntry(fmt.Sprintf("%s done in %s", msg.name, elapsed), false)
		}

	case connectionLostMsg:
		m.connectionLost = true
		m.addLogEntry("Connection lost - reconnecting...", true)

	case reconnectedMsg:
		m.connectionLost = false
		m.connInfo = msg.connInfo
		m.addLogEntry("Reconnected - device re-initialized", false)
	}

	// Update child components
	var cmd tea.Cmd
	if m.focusedField == focusValueInput {
		m.valueInput, cmd = m.valueInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.focusedField == focusActionList {
		m.actionList, cmd = m.actionList.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *controlModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		return m.cycleFocus(1), nil

	case "shift+tab":
		return m.cycleFocus(-1), nil

	case "enter":
		return m.handleEnter()

	case "up", "k":
		if m.focusedField == focusActionList {
			m.actionList, _ = m.actionList.Update(msg)
		}

	case "down", "j":
		if m.focusedField == focusActionList {
			m.actionList, _ = m.actionList.Update(msg)
		}
	}

	// Pass through to focused component
	if m.focusedField == focusValueInput {
		var cmd tea.Cmd
		m.valueInput, cmd = m.valueInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *controlModel) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	// Pass mouse events to the list; button detection by position is not
	// worth the coupling to the exact layout
	m.actionList, _ = m.actionList.Update(msg)

	return m, nil
}

func (m *controlModel) cycleFocus(delta int) *controlModel {
	selected := m.getSelectedAction()
	if selected == nil {
		m.focusedField = focusActionList
		return m
	}

	// Cycle through focus states
	maxFocus := focusButton
	m.focusedField = (m.focusedField + delta + maxFocus + 1) % (maxFocus + 1)

	// Skip the value field for actions that take none
	if m.focusedField == focusValueInput && !selected.hasValue {
		m.focusedField = (m.focusedField + delta + maxFocus + 1) % (maxFocus + 1)
	}

	// Update focus state
	if m.focusedField == focusValueInput {
		m.valueInput.Focus()
	} else {
		m.valueInput.Blur()
	}

	return m
}

func (m *controlModel) handleEnter() (tea.Model, tea.Cmd) {
	// Enter acts from the value field or the send button
	if m.focusedField != focusValueInput && m.focusedField != focusButton {
		return m, nil
	}

	// Don't allow commands while the connection is down
	if m.connectionLost {
		m.addLogEntry("Cannot send command: connection lost", true)
		return m, nil
	}

	// One command at a time; the worker is busy until the result lands
	if m.pending != "" {
		m.addLogEntry(fmt.Sprintf("Still running: %s", m.pending), true)
		return m, nil
	}

	return m.sendAction()
}

//////////////////////////////////////////////////////////////
// Commands
//////////////////////////////////////////////////////////////

func (m *controlModel) sendAction() (tea.Model, tea.Cmd) {
	selected := m.getSelectedAction()
	if selected == nil {
		return m, nil
	}

	value := 0
	if selected.hasValue {
		valStr := m.valueInput.Value()
		if valStr == "" {
			valStr = m.valueInput.Placeholder
		}

		v, err := strconv.Atoi(valStr)
		if err != nil {
			m.addLogEntry(fmt.Sprintf("Invalid value: %s", valStr), true)
			return m, nil
		}

		// The driver checks too, but rejecting here keeps the bad value
		// off the queue
		if selected.bounds != nil {
			if err := talon.CheckRange(selected.name, v, *selected.bounds); err != nil {
				m.addLogEntry(err.Error(), true)
				return m, nil
			}
		}
		value = v
	}

	select {
	case m.driver.requests <- actionRequest{act: *selected, value: value}:
		m.pending = selected.name
		if selected.hasValue {
			m.addLogEntry(fmt.Sprintf("Sent %s (%d)", selected.name, value), false)
		} else {
			m.addLogEntry(fmt.Sprintf("Sent %s", selected.name), false)
		}
	default:
		m.addLogEntry("Command queue full", true)
	}

	return m, nil
}

//////////////////////////////////////////////////////////////
// Data Processing
//////////////////////////////////////////////////////////////

// processSweep folds a status poll into the display. State registers that
// change get a log line; position feedback moves too often to log.
func (m *controlModel) processSweep(msg controlSweepMsg) {
	m.haveSweep = true
	m.stats = msg.stats

	for _, r := range msg.readings {
		old, had := m.readings[r.info.Register]
		m.readings[r.info.Register] = r

		if r.err != nil || !had || old.err != nil || old.value == r.value {
			continue
		}
		switch r.info.Register {
		case talon.DH3RegGripState, talon.RGDRegGripState, talon.RGDRegReadyState,
			talon.RGDRegRotReadyState, talon.RGDRegErrorCode:
			m.addLogEntry(fmt.Sprintf("%s: %d -> %d%s",
				r.info.Name, old.value, r.value, readingDetail(r.info, r.value)), false)
		}
	}
}

//////////////////////////////////////////////////////////////
// View
//////////////////////////////////////////////////////////////

func (m controlModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	var s strings.Builder

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

	focusedBoxStyle := boxStyle.
		BorderForeground(lipgloss.Color("12"))

	buttonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("12")).
		Padding(0, 2)

	focusedButtonStyle := buttonStyle.
		Background(lipgloss.Color("10"))

	// Header
	s.WriteString(titleStyle.Render("GRIPSTAT CONTROL"))
	s.WriteString(" ")
	connStatus := m.connInfo
	if m.connectionLost {
		connStatus = warningStyle.Render("RECONNECTING...")
	}
	s.WriteString(headerStyle.Render(fmt.Sprintf("| %s | %s | q=quit Tab=switch", connStatus, m.gripModel)))
	s.WriteString("\n\n")

	// Layout: left panel (actions) | right panel (control)
	leftWidth := 30
	rightWidth := m.width - leftWidth - 6

	listStyle := boxStyle.Width(leftWidth)
	if m.focusedField == focusActionList {
		listStyle = focusedBoxStyle.Width(leftWidth)
	}
	actionPanel := listStyle.Render(m.actionList.View())

	controlContent := m.renderControlPanel(statsLabelStyle, statsValueStyle, headerStyle, warningStyle, buttonStyle, focusedButtonStyle)
	controlStyle := boxStyle.Width(rightWidth)
	if m.focusedField != focusActionList {
		controlStyle = focusedBoxStyle.Width(rightWidth)
	}
	controlPanel := controlStyle.Render(controlContent)

	// Join panels horizontally
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, actionPanel, " ", controlPanel))
	s.WriteString("\n\n")

	// Statistics bar
	s.WriteString(m.renderStatisticsBar(statsLabelStyle, statsValueStyle, errorStyle, boxStyle))
	s.WriteString("\n\n")

	// Live status for the gripper
	s.WriteString(m.renderStatus(statsLabelStyle, statsValueStyle, errorStyle, boxStyle))
	s.WriteString("\n\n")

	// Event log
	s.WriteString(m.renderEventLog(statsLabelStyle, warningStyle, boxStyle))

	return s.String()
}

//////////////////////////////////////////////////////////////
// View Helpers
//////////////////////////////////////////////////////////////

func (m controlModel) renderControlPanel(statsLabelStyle, statsValueStyle, headerStyle, warningStyle, buttonStyle, focusedButtonStyle lipgloss.Style) string {
	var s strings.Builder

	selected := m.getSelectedAction()
	if selected == nil {
		s.WriteString(headerStyle.Render("No action selected"))
		return s.String()
	}

	// Selected action info
	s.WriteString(fmt.Sprintf("%s %s\n", statsLabelStyle.Render("Selected:"), statsValueStyle.Render(selected.name)))
	if selected.desc != "" {
		s.WriteString(headerStyle.Render(selected.desc))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	// Value input for actions that take one
	if selected.hasValue {
		s.WriteString(statsLabelStyle.Render("Value: "))
		if m.focusedField == focusValueInput {
			s.WriteString(m.valueInput.View())
		} else {
			// Show as plain text when not focused
			val := m.valueInput.Value()
			if val == "" {
				val = m.valueInput.Placeholder
			}
			s.WriteString(fmt.Sprintf("[%s]", val))
		}
		s.WriteString("\n\n")
	}

	// Send button, or the command in flight
	if m.pending != "" {
		s.WriteString(warningStyle.Render(fmt.Sprintf("Running: %s...", m.pending)))
	} else {
		btnText := "[ Send ]"
		if m.focusedField == focusButton {
			s.WriteString(focusedButtonStyle.Render(btnText))
		} else {
			s.WriteString(buttonStyle.Render(btnText))
		}
	}

	return s.String()
}

func (m controlModel) renderStatisticsBar(statsLabelStyle, statsValueStyle, errorStyle, boxStyle lipgloss.Style) string {
	var replyPercent float64
	responded := m.stats.Commands - m.stats.NoReplyWrites
	if responded > 0 {
		replyPercent = float64(m.stats.Replies) * 100.0 / float64(responded)
	}
	totalErrors := m.stats.Timeouts + m.stats.ShortResponses + m.stats.TransportErrors + m.stats.RangeErrors

	content := fmt.Sprintf("%s %s  %s %s  %s %s  %s %s",
		statsLabelStyle.Render("Commands:"), statsValueStyle.Render(fmt.Sprintf("%d", m.stats.Commands)),
		statsLabelStyle.Render("Replies:"), statsValueStyle.Render(fmt.Sprintf("%.1f%%", replyPercent)),
		statsLabelStyle.Render("Errors:"), func() string {
			if totalErrors > 0 {
				return errorStyle.Render(fmt.Sprintf("%d", totalErrors))
			}
			return statsValueStyle.Render("0")
		}(),
		statsLabelStyle.Render("Rate:"), statsValueStyle.Render(fmt.Sprintf("%.1f cmd/s", m.stats.CommandRate)),
	)

	return boxStyle.Width(m.width - 4).Render(content)
}

func (m controlModel) renderStatus(statsLabelStyle, statsValueStyle, errorStyle, boxStyle lipgloss.Style) string {
	var content strings.Builder
	content.WriteString(statsLabelStyle.Render("STATUS"))
	content.WriteString(" | ")

	if !m.haveSweep {
		content.WriteString("No status data")
		return boxStyle.Width(m.width - 4).Render(content.String())
	}

	for _, info := range m.regOrder {
		r, ok := m.readings[info.Register]
		if !ok {
			continue
		}
		content.WriteString(statsLabelStyle.Render(fmt.Sprintf("%s:", info.Name)))
		content.WriteString(" ")
		if r.err != nil {
			content.WriteString(errorStyle.Render("ERR"))
		} else {
			content.WriteString(statsValueStyle.Render(fmt.Sprintf("%d%s", r.value, readingDetail(r.info, r.value))))
		}
		content.WriteString("  ")
	}

	return boxStyle.Width(m.width - 4).Render(content.String())
}

func (m controlModel) renderEventLog(statsLabelStyle, warningStyle, boxStyle lipgloss.Style) string {
	var s strings.Builder
	s.WriteString(statsLabelStyle.Render("EVENTS"))
	s.WriteString("\n")

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyleLocal := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	// Calculate available height for log
	logHeight := 8
	if len(m.eventLog) < logHeight {
		logHeight = len(m.eventLog)
	}

	startIdx := len(m.eventLog) - logHeight
	if startIdx < 0 {
		startIdx = 0
	}

	if len(m.eventLog) == 0 {
		s.WriteString(headerStyle.Render("  (no events yet)"))
	} else {
		for i := startIdx; i < len(m.eventLog); i++ {
			entry := m.eventLog[i]
			timestamp := entry.timestamp.Format("15:04:05.000")
			icon := "i"
			style := warningStyle
			if entry.isError {
				icon = "x"
				style = errorStyleLocal
			}
			s.WriteString(fmt.Sprintf("%s %s %s\n",
				headerStyle.Render(timestamp),
				style.Render(icon),
				entry.message))
		}
	}

	return boxStyle.Width(m.width - 4).Render(s.String())
}

//////////////////////////////////////////////////////////////
// Helpers
//////////////////////////////////////////////////////////////

func (m *controlModel) addLogEntry(message string, isError bool) {
	entry := eventLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	}
	m.eventLog = append(m.eventLog, entry)

	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}
}

func (m *controlModel) getSelectedAction() *action {
	if len(m.actions) == 0 {
		return nil
	}

	idx := m.actionList.Index()
	if idx < 0 || idx >= len(m.actions) {
		return nil
	}

	return &m.actions[idx]
}

func (m *controlModel) updateListSize() {
	// Adjust list size based on terminal size
	listHeight := m.height / 3
	if listHeight < 5 {
		listHeight = 5
	}
	m.actionList.SetSize(28, listHeight)
}
