// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     papercut
// Description: Group management server commands
// Author:      Mike Stoffels
// Created:     2026-08-16
// License:     MIT
// ============================================================================

package papercut

import "context"

// AddNewGroup adds a group from the network user directory to the system's
// group list. Progress of the import can be watched with GetTaskStatus.
func (c *Client) AddNewGroup(ctx context.Context, token, groupName string) error {
	return c.callVoid(ctx, "addNewGroup", token, groupName)
}

// AddUserToGroup adds a user to an internal group
func (c *Client) AddUserToGroup(ctx context.Context, token, userName, groupName string) error {
	return c.callVoid(ctx, "addUserToGroup", token, userName, groupName)
}

// RemoveUserFromGroup removes a user from an internal group
func (c *Client) RemoveUserFromGroup(ctx context.Context, token, userName, groupName string) error {
	return c.callVoid(ctx, "removeUserFromGroup", token, userName, groupName)
}

// AddAdminAccessGroup grants a group the default admin rights
func (c *Client) AddAdminAccessGroup(ctx context.Context, token, groupName string) error {
	return c.callVoid(ctx, "addAdminAccessGroup", token, groupName)
}

// AddAdminAccessUser grants a user the default admin rights
func (c *Client) AddAdminAccessUser(ctx context.Context, token, userName string) error {
	return c.callVoid(ctx, "addAdminAccessUser", token, userName)
}

// ListUserGroups returns group names sorted by name, paged by offset and limit
func (c *Client) ListUserGroups(ctx context.Context, token string, offset, limit int) ([]string, error) {
	return c.callStrings(ctx, "listUserGroups", token, offset, limit)
}

// GetGroupMembers returns the members of a group, paged by offset and limit
func (c *Client) GetGroupMembers(ctx context.Context, token, groupName string, offset, limit int) ([]string, error) {
	return c.callStrings(ctx, "getGroupMembers", token, groupName, offset, limit)
}

// PerformGroupSync starts a synchronization against the linked user
// directory. The sync runs server-side; poll GetTaskStatus for completion.
func (c *Client) PerformGroupSync(ctx context.Context, token string) error {
	return c.callVoid(ctx, "performGroupSync", token)
}
