// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     audit
// Description: Adapter feeding deployment progress events into the store
// Author:      Mike Stoffels
// Created:     2026-08-18
// License:     MIT
// ============================================================================

package audit

import (
	"context"
	"time"

	"github.com/msto63/mPC/internal/deploy"
)

// DeployRecorder adapts a Store to the deployer's Recorder interface
type DeployRecorder struct {
	Store Store

	// Timeout bounds each insert so a wedged disk cannot stall a run
	Timeout time.Duration
}

// Record implements deploy.Recorder
func (r *DeployRecorder) Record(event deploy.ProgressEvent) error {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	entry := &Event{
		RunID:     event.RunID,
		Timestamp: event.Timestamp,
		Phase:     event.State.String(),
		Message:   event.Message,
	}
	if event.Err != nil {
		entry.Error = event.Err.Error()
	}

	return r.Store.Record(ctx, entry)
}
