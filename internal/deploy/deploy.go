// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     deploy
// Description: Unattended Mobility Print client deployment orchestration
// Author:      Mike Stoffels
// Created:     2026-08-17
// License:     MIT
// ============================================================================

// Package deploy installs the Mobility Print client and provisions its
// print queues, idempotently. A run is a linear pass through the states
// in state.go; every polling phase is bounded by a configured timeout and
// honors context cancellation between attempts.
package deploy

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/msto63/mPC/pkg/core/logging"
)

// Options configures a deployment run. Zero values are filled from the
// defaults below; Token is the only mandatory field.
type Options struct {
	// Token authorizes queue provisioning against the Mobility Print server
	Token string

	// PackageURL is the stable "latest" installer location (redirecting)
	PackageURL string

	// ProvisionURI overrides the provisioning URI; {token} is replaced by
	// the URL-escaped token
	ProvisionURI string

	// QueueMatch is the case-insensitive substring identifying our queues
	QueueMatch string

	PollInterval   time.Duration
	InstallTimeout time.Duration
	ServiceTimeout time.Duration
	QueueTimeout   time.Duration

	// KeepPackage leaves the downloaded installer in place for inspection
	KeepPackage bool
}

func (o *Options) fillDefaults() {
	if o.QueueMatch == "" {
		o.QueueMatch = "Mobility"
	}
	if o.ProvisionURI == "" {
		o.ProvisionURI = "pc-mobility-print://provision?token={token}"
	}
	if o.PollInterval == 0 {
		o.PollInterval = 5 * time.Second
	}
	if o.InstallTimeout == 0 {
		o.InstallTimeout = 10 * time.Minute
	}
	if o.ServiceTimeout == 0 {
		o.ServiceTimeout = 5 * time.Minute
	}
	if o.QueueTimeout == 0 {
		o.QueueTimeout = 10 * time.Minute
	}
}

// Result summarizes a finished deployment run
type Result struct {
	RunID              string
	State              State
	AlreadyProvisioned bool
	Downloaded         bool
	Queue              string
	Duration           time.Duration
}

// Deployer executes deployment runs against one machine
type Deployer struct {
	opts       Options
	insp       Inspector
	downloader *Downloader
	log        *logging.Logger
	recorder   Recorder
	events     chan<- ProgressEvent
}

// New creates a deployer. The inspector performs all machine access;
// logger may be nil.
func New(opts Options, insp Inspector, logger *logging.Logger) (*Deployer, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("deploy: token is required")
	}
	if opts.PackageURL == "" {
		return nil, fmt.Errorf("deploy: package URL is required")
	}
	opts.fillDefaults()

	if logger == nil {
		logger = logging.Nop()
	}

	return &Deployer{
		opts:       opts,
		insp:       insp,
		downloader: &Downloader{},
		log:        logger.WithName("deploy"),
	}, nil
}

// WithDownloader replaces the package downloader
func (d *Deployer) WithDownloader(dl *Downloader) *Deployer {
	d.downloader = dl
	return d
}

// WithRecorder attaches an audit recorder
func (d *Deployer) WithRecorder(r Recorder) *Deployer {
	d.recorder = r
	return d
}

// WithEvents attaches a progress channel; the consumer must keep reading
// until the run returns
func (d *Deployer) WithEvents(ch chan<- ProgressEvent) *Deployer {
	d.events = ch
	return d
}

// Run executes one deployment pass. It returns the result of a successful
// run or the first phase error; the temporary package is removed in either
// case unless KeepPackage is set.
func (d *Deployer) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString()}
	log := d.log.WithField("run_id", res.RunID)

	finish := func(err error) (*Result, error) {
		res.Duration = time.Since(start)
		return res, err
	}

	d.emit(res.RunID, StateDetect, "checking current installation", nil)
	installed := d.insp.AppInstalled()

	if installed {
		queue, found, err := d.matchingQueue(ctx)
		if err != nil {
			d.emit(res.RunID, StateDetect, "printer enumeration failed", err)
			return finish(fmt.Errorf("deploy: detect: %w", err))
		}
		if found {
			res.State = StateDone
			res.AlreadyProvisioned = true
			res.Queue = queue
			log.Info("client already installed and provisioned", "queue", queue)
			d.emit(res.RunID, StateDone, "already installed and provisioned", nil)
			return finish(nil)
		}
		log.Info("client installed but no matching queue, provisioning only")
	}

	if !installed {
		d.emit(res.RunID, StateDownload, "downloading installer package", nil)
		path, finalURL, err := d.downloader.Fetch(ctx, d.opts.PackageURL)
		if err != nil {
			d.emit(res.RunID, StateDownload, "download failed", err)
			return finish(fmt.Errorf("deploy: %w", err))
		}
		res.Downloaded = true
		log.Info("package downloaded", "url", finalURL, "path", path)

		if !d.opts.KeepPackage {
			defer os.Remove(path)
		}

		d.emit(res.RunID, StateInstall, "running installer unattended", nil)
		installCtx, cancel := context.WithTimeout(ctx, d.opts.InstallTimeout)
		err = d.insp.RunInstaller(installCtx, path)
		cancel()
		if err != nil {
			d.emit(res.RunID, StateInstall, "installer failed", err)
			return finish(fmt.Errorf("deploy: install: %w", err))
		}
	}

	d.emit(res.RunID, StateAwaitService, "waiting for client service", nil)
	err := d.poll(ctx, StateAwaitService, d.opts.ServiceTimeout, func(ctx context.Context) (bool, error) {
		state, err := d.insp.ServiceState(ctx)
		if err != nil {
			// The service appears in the registry partway through the
			// install; a lookup failure here means "not yet"
			log.Debug("service not queryable yet", "error", err.Error())
			return false, nil
		}
		return strings.EqualFold(state, "running"), nil
	})
	if err != nil {
		d.emit(res.RunID, StateAwaitService, "service did not start", err)
		return finish(err)
	}
	res.State = StateAwaitService

	d.emit(res.RunID, StateProvision, "provisioning print queues", nil)
	uri := d.provisionURI()
	err = d.poll(ctx, StateProvision, d.opts.QueueTimeout, func(ctx context.Context) (bool, error) {
		if err := d.insp.LaunchURI(ctx, uri); err != nil {
			log.Warn("provisioning URI launch failed", "error", err.Error())
		}
		queue, found, err := d.matchingQueue(ctx)
		if err != nil {
			log.Warn("printer enumeration failed", "error", err.Error())
			return false, nil
		}
		if found {
			res.Queue = queue
		}
		return found, nil
	})
	if err != nil {
		d.emit(res.RunID, StateProvision, "no queue appeared", err)
		return finish(err)
	}

	res.State = StateDone
	log.Info("deployment complete", "queue", res.Queue, "downloaded", res.Downloaded)
	d.emit(res.RunID, StateDone, "deployment complete", nil)
	return finish(nil)
}

// matchingQueue returns the first printer whose name contains the
// configured match, case-insensitively
func (d *Deployer) matchingQueue(ctx context.Context) (string, bool, error) {
	names, err := d.insp.PrinterNames(ctx)
	if err != nil {
		return "", false, err
	}

	match := strings.ToLower(d.opts.QueueMatch)
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), match) {
			return name, true, nil
		}
	}
	return "", false, nil
}

// provisionURI builds the queue provisioning URI with the escaped token
func (d *Deployer) provisionURI() string {
	return strings.ReplaceAll(d.opts.ProvisionURI, "{token}", url.QueryEscape(d.opts.Token))
}

// poll runs step until it reports done, the phase timeout elapses, or the
// context is canceled. The first attempt happens immediately.
func (d *Deployer) poll(ctx context.Context, state State, timeout time.Duration, step func(context.Context) (bool, error)) error {
	deadline := time.After(timeout)

	for {
		done, err := step(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return &TimeoutError{State: state, After: timeout}
		case <-time.After(d.opts.PollInterval):
		}
	}
}

// emit reports a progress event to the recorder and the event channel
func (d *Deployer) emit(runID string, state State, message string, err error) {
	event := ProgressEvent{
		RunID:     runID,
		State:     state,
		Message:   message,
		Err:       err,
		Timestamp: time.Now(),
	}

	if d.recorder != nil {
		if rerr := d.recorder.Record(event); rerr != nil {
			d.log.Warn("audit record failed", "error", rerr.Error())
		}
	}
	if d.events != nil {
		d.events <- event
	}
}
