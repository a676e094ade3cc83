package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/msto63/mPC/internal/deploy"
	"github.com/msto63/mPC/internal/tui/deployview"
)

func TestDeployOutcomeReturnsRunError(t *testing.T) {
	events := make(chan deploy.ProgressEvent)
	done := make(chan deployview.DoneMsg, 1)
	wantErr := errors.New("installer exited with code 2")

	// Producer still blocked on the unbuffered channel when the consumer
	// stops reading, as after quitting the progress view mid-run
	go func() {
		events <- deploy.ProgressEvent{State: deploy.StateInstall, Message: "running installer unattended"}
		events <- deploy.ProgressEvent{State: deploy.StateInstall, Message: "installer failed", Err: wantErr}
		close(events)
		done <- deployview.DoneMsg{Err: wantErr}
	}()

	got := make(chan error, 1)
	go func() {
		got <- deployOutcome(events, done)
	}()

	select {
	case err := <-got:
		if !errors.Is(err, wantErr) {
			t.Errorf("deployOutcome() = %v, want %v", err, wantErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("deployOutcome() did not drain the blocked producer")
	}
}

func TestDeployOutcomeNilOnSuccess(t *testing.T) {
	events := make(chan deploy.ProgressEvent)
	done := make(chan deployview.DoneMsg, 1)

	go func() {
		events <- deploy.ProgressEvent{State: deploy.StateDone, Message: "deployment complete"}
		close(events)
		done <- deployview.DoneMsg{Result: &deploy.Result{State: deploy.StateDone, Queue: "Mobility on PRINT01"}}
	}()

	if err := deployOutcome(events, done); err != nil {
		t.Errorf("deployOutcome() = %v, want nil", err)
	}
}
