// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     deployview
// Description: Bubbletea model showing live deployment progress
// Author:      Mike Stoffels
// Created:     2026-08-18
// License:     MIT
// ============================================================================

package deployview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/mPC/internal/deploy"
)

// EventMsg wraps a deployment progress event
type EventMsg deploy.ProgressEvent

// DoneMsg reports the finished run
type DoneMsg struct {
	Result *deploy.Result
	Err    error
}

type step struct {
	state   deploy.State
	message string
	err     error
}

// Model is the Bubbletea model for a deployment run. It consumes progress
// events until the done message arrives and then quits on any key.
type Model struct {
	events <-chan deploy.ProgressEvent
	done   <-chan DoneMsg

	spinner spinner.Model
	steps   []step
	result  *deploy.Result
	err     error
	doneSet bool
}

// New creates a model reading from the given channels. The events channel
// must be closed by the producer once the run returns.
func New(events <-chan deploy.ProgressEvent, done <-chan DoneMsg) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return Model{
		events:  events,
		done:    done,
		spinner: s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitActivity())
}

// waitActivity waits for the next progress event or the final result
func (m Model) waitActivity() tea.Cmd {
	events := m.events
	done := m.done
	return func() tea.Msg {
		if ev, ok := <-events; ok {
			return EventMsg(ev)
		}
		return <-done
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.doneSet {
				return m, tea.Quit
			}
		}
		return m, nil

	case EventMsg:
		m.steps = append(m.steps, step{state: msg.State, message: msg.Message, err: msg.Err})
		return m, m.waitActivity()

	case DoneMsg:
		m.doneSet = true
		m.result = msg.Result
		m.err = msg.Err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress list
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("mPC Deployment"))
	b.WriteString("\n")

	for i, s := range m.steps {
		last := i == len(m.steps)-1

		switch {
		case s.err != nil:
			b.WriteString(StepFailedStyle.Render(fmt.Sprintf("  ✗ %-14s %s (%v)", s.state, s.message, s.err)))
		case last && !m.doneSet:
			b.WriteString(StepStyle.Render(fmt.Sprintf("  %s %-14s %s", m.spinner.View(), s.state, s.message)))
		default:
			b.WriteString(StepDoneStyle.Render(fmt.Sprintf("  ✓ %-14s %s", s.state, s.message)))
		}
		b.WriteString("\n")
	}

	if m.doneSet {
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(StepFailedStyle.Render("Deployment fehlgeschlagen: " + m.err.Error()))
		} else if m.result != nil {
			if m.result.AlreadyProvisioned {
				b.WriteString(StepDoneStyle.Render("Bereits installiert, Queue: " + m.result.Queue))
			} else {
				b.WriteString(StepDoneStyle.Render("Erfolgreich bereitgestellt, Queue: " + m.result.Queue))
			}
		}
		b.WriteString("\n")
		b.WriteString(FooterStyle.Render("Beenden mit Enter oder q"))
	} else {
		b.WriteString(FooterStyle.Render("Abbrechen mit q"))
	}
	b.WriteString("\n")

	return b.String()
}
