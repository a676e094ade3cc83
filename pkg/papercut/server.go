// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     papercut
// Description: Server-level commands (task status, backup, health probe)
// Author:      Mike Stoffels
// Created:     2026-08-16
// License:     MIT
// ============================================================================

package papercut

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// TaskStatus describes the state of a long-running server task started by
// methods such as PerformGroupSync or AddNewGroup
type TaskStatus struct {
	Completed bool
	Message   string
}

// GetTaskStatus returns the status of the current or most recent
// long-running task
func (c *Client) GetTaskStatus(ctx context.Context, token string) (TaskStatus, error) {
	result, err := c.Call(ctx, "getTaskStatus", token)
	if err != nil {
		return TaskStatus{}, err
	}

	members, ok := result.(map[string]interface{})
	if !ok {
		return TaskStatus{}, fmt.Errorf("getTaskStatus: result is %T, want struct", result)
	}

	status := TaskStatus{}
	if completed, ok := members["completed"].(bool); ok {
		status.Completed = completed
	}
	if message, ok := members["message"].(string); ok {
		status.Message = message
	}
	return status, nil
}

// PerformOnlineBackup starts an online backup of the server database
func (c *Client) PerformOnlineBackup(ctx context.Context, token string) error {
	return c.callVoid(ctx, "performOnlineBackup", token)
}

// Health probes the application server's health endpoint. A nil error
// means the server answered 200 OK.
func (c *Client) Health(ctx context.Context) error {
	c.once.Do(func() {
		c.http = &http.Client{Timeout: c.timeout}
	})

	url := strings.TrimSuffix(c.url, rpcPath) + "/api/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("health: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health: server answered %s", resp.Status)
	}
	return nil
}
