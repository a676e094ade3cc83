// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     deploy
// Description: Installer package download with redirect resolution
// Author:      Mike Stoffels
// Created:     2026-08-17
// License:     MIT
// ============================================================================

package deploy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Downloader fetches the installer package. The package URL is a stable
// "latest" location that redirects to the current release; the final URL
// after redirects is reported for logging.
type Downloader struct {
	// Client is the HTTP client to use; nil means a default with a
	// 10 minute timeout
	Client *http.Client

	// Dir is the target directory, default os.TempDir()
	Dir string
}

func (d *Downloader) client() *http.Client {
	if d.Client != nil {
		return d.Client
	}
	return &http.Client{Timeout: 10 * time.Minute}
}

func (d *Downloader) dir() string {
	if d.Dir != "" {
		return d.Dir
	}
	return os.TempDir()
}

// Fetch downloads the package behind url into a uniquely named temporary
// file and returns its path together with the resolved final URL. The
// caller owns the file and removes it when done.
func (d *Downloader) Fetch(ctx context.Context, url string) (path, finalURL string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", fmt.Errorf("download: %w", err)
	}

	resp, err := d.client().Do(req)
	if err != nil {
		return "", "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("download: server answered %s", resp.Status)
	}
	finalURL = resp.Request.URL.String()

	path = filepath.Join(d.dir(), fmt.Sprintf("mpc-%s.exe", uuid.NewString()))
	file, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("download: %w", err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(path)
		return "", "", fmt.Errorf("download: writing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("download: closing %s: %w", path, err)
	}

	return path, finalURL, nil
}
