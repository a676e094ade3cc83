// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     papercut
// Description: Shared account server commands
// Author:      Mike Stoffels
// Created:     2026-08-16
// License:     MIT
// ============================================================================

package papercut

import "context"

// AddNewSharedAccount creates a shared account with the given name.
// Subaccounts are written as "parent\sub".
func (c *Client) AddNewSharedAccount(ctx context.Context, token, accountName string) error {
	return c.callVoid(ctx, "addNewSharedAccount", token, accountName)
}

// DeleteExistingSharedAccount removes a shared account; history remains
func (c *Client) DeleteExistingSharedAccount(ctx context.Context, token, accountName string) error {
	return c.callVoid(ctx, "deleteExistingSharedAccount", token, accountName)
}

// IsSharedAccountExists reports whether the shared account exists
func (c *Client) IsSharedAccountExists(ctx context.Context, token, accountName string) (bool, error) {
	return c.callBool(ctx, "isSharedAccountExists", token, accountName)
}

// GetSharedAccountAccountBalance returns the shared account's balance
func (c *Client) GetSharedAccountAccountBalance(ctx context.Context, token, accountName string) (float64, error) {
	return c.callFloat(ctx, "getSharedAccountAccountBalance", token, accountName)
}

// AdjustSharedAccountAccountBalance adjusts the shared account's balance
// by the given amount
func (c *Client) AdjustSharedAccountAccountBalance(ctx context.Context, token, accountName string, adjustment float64, comment string) error {
	return c.callVoid(ctx, "adjustSharedAccountAccountBalance", token, accountName, adjustment, orNil(comment))
}

// SetSharedAccountAccountBalance sets the shared account's balance to an
// absolute value
func (c *Client) SetSharedAccountAccountBalance(ctx context.Context, token, accountName string, balance float64, comment string) error {
	return c.callVoid(ctx, "setSharedAccountAccountBalance", token, accountName, balance, orNil(comment))
}

// GetSharedAccountProperty returns a single shared account property such
// as "balance", "pin" or "restricted"
func (c *Client) GetSharedAccountProperty(ctx context.Context, token, accountName, propertyName string) (string, error) {
	return c.callString(ctx, "getSharedAccountProperty", token, accountName, propertyName)
}

// SetSharedAccountProperty sets a single shared account property
func (c *Client) SetSharedAccountProperty(ctx context.Context, token, accountName, propertyName, propertyValue string) error {
	return c.callVoid(ctx, "setSharedAccountProperty", token, accountName, propertyName, propertyValue)
}

// ListSharedAccounts returns shared account names sorted by name, paged by
// offset and limit
func (c *Client) ListSharedAccounts(ctx context.Context, token string, offset, limit int) ([]string, error) {
	return c.callStrings(ctx, "listSharedAccounts", token, offset, limit)
}

// ListUserSharedAccounts returns the shared accounts a user may charge to.
// ignoreAccountMode lists all accessible accounts regardless of the user's
// account selection configuration.
func (c *Client) ListUserSharedAccounts(ctx context.Context, token, userName string, offset, limit int, ignoreAccountMode bool) ([]string, error) {
	return c.callStrings(ctx, "listUserSharedAccounts", token, userName, offset, limit, ignoreAccountMode)
}
