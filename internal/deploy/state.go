// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     deploy
// Description: Deployment states, phases and progress events
// Author:      Mike Stoffels
// Created:     2026-08-17
// License:     MIT
// ============================================================================

package deploy

import (
	"fmt"
	"time"
)

// State describes how far a deployment run has progressed
type State int

const (
	// StateDetect checks the current installation before touching anything
	StateDetect State = iota

	// StateDownload resolves and downloads the installer package
	StateDownload

	// StateInstall runs the installer unattended
	StateInstall

	// StateAwaitService waits for the client service to report running
	StateAwaitService

	// StateProvision triggers queue provisioning and waits for a queue
	StateProvision

	// StateDone is the terminal success state: a matching queue exists
	StateDone
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateDetect:
		return "detect"
	case StateDownload:
		return "download"
	case StateInstall:
		return "install"
	case StateAwaitService:
		return "await-service"
	case StateProvision:
		return "provision"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// ProgressEvent reports a deployment step to observers (TUI, audit trail)
type ProgressEvent struct {
	RunID     string
	State     State
	Message   string
	Err       error
	Timestamp time.Time
}

// Recorder receives progress events for persistence. Implementations must
// tolerate being called from the deployment goroutine.
type Recorder interface {
	Record(event ProgressEvent) error
}

// TimeoutError is returned when a bounded polling phase did not reach its
// goal in time. It is distinct from context cancellation.
type TimeoutError struct {
	State State
	After time.Duration
}

// Error implements the error interface
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("deploy: %s did not complete within %s", e.State, e.After)
}
