// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     deploy
// Description: Local system inspection and side effects behind an interface
// Author:      Mike Stoffels
// Created:     2026-08-17
// License:     MIT
// ============================================================================

package deploy

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Inspector abstracts every local-machine query and side effect the
// deployer performs, so runs can be tested without a Windows host.
type Inspector interface {
	// AppInstalled reports whether the client application is present
	AppInstalled() bool

	// ServiceState returns the client service's state ("Running",
	// "Stopped", ...) or an error when the service is not registered
	ServiceState(ctx context.Context) (string, error)

	// PrinterNames enumerates the locally registered printer queues
	PrinterNames(ctx context.Context) ([]string, error)

	// RunInstaller executes the downloaded package unattended
	RunInstaller(ctx context.Context, path string) error

	// LaunchURI hands a custom-scheme URI to the OS URI handler
	LaunchURI(ctx context.Context, uri string) error
}

// PowerShellInspector implements Inspector by shelling out to PowerShell.
// All queries work identically on Windows PowerShell and pwsh.
type PowerShellInspector struct {
	// InstallPath is the application binary whose presence marks an install
	InstallPath string

	// ServiceName is the Windows service to query
	ServiceName string

	// Shell overrides the PowerShell executable, default "powershell"
	Shell string
}

func (p *PowerShellInspector) shell() string {
	if p.Shell != "" {
		return p.Shell
	}
	return "powershell"
}

func (p *PowerShellInspector) run(ctx context.Context, script string) (string, error) {
	cmd := exec.CommandContext(ctx, p.shell(), "-NoProfile", "-NonInteractive", "-Command", script)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("powershell: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// AppInstalled reports whether the install path exists
func (p *PowerShellInspector) AppInstalled() bool {
	_, err := os.Stat(p.InstallPath)
	return err == nil
}

// ServiceState queries the service state via Get-Service
func (p *PowerShellInspector) ServiceState(ctx context.Context) (string, error) {
	script := fmt.Sprintf("(Get-Service -Name '%s').Status", escapePS(p.ServiceName))
	return p.run(ctx, script)
}

// PrinterNames enumerates printer queues via Get-Printer
func (p *PowerShellInspector) PrinterNames(ctx context.Context) ([]string, error) {
	out, err := p.run(ctx, "Get-Printer | Select-Object -ExpandProperty Name")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	lines := strings.Split(out, "\n")
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// RunInstaller executes the package with the usual unattended switches
// and waits for it to exit
func (p *PowerShellInspector) RunInstaller(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, path, "/VERYSILENT", "/SUPPRESSMSGBOXES", "/NORESTART")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("installer %s: %w", path, err)
	}
	return nil
}

// LaunchURI opens a custom-scheme URI through Start-Process. The handler
// is registered by the client install.
func (p *PowerShellInspector) LaunchURI(ctx context.Context, uri string) error {
	script := fmt.Sprintf("Start-Process '%s'", escapePS(uri))
	_, err := p.run(ctx, script)
	return err
}

// escapePS escapes a value for a single-quoted PowerShell string; a quote
// is doubled, everything else is literal there
func escapePS(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
