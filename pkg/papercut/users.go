// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     papercut
// Description: User management server commands
// Author:      Mike Stoffels
// Created:     2026-08-16
// License:     MIT
// ============================================================================

package papercut

import "context"

// InternalUserDetails holds the optional fields of an internal user.
// Empty fields are sent as nil so the server keeps its defaults.
type InternalUserDetails struct {
	FullName string
	Email    string
	CardID   string
	PIN      string
}

// AddNewUser adds a user from the linked user directory to the system
func (c *Client) AddNewUser(ctx context.Context, token, userName string) error {
	return c.callVoid(ctx, "addNewUser", token, userName)
}

// AddNewInternalUser creates an internal user account. Username and
// password are required; details may be nil.
func (c *Client) AddNewInternalUser(ctx context.Context, token, userName, password string, details *InternalUserDetails) error {
	if details == nil {
		details = &InternalUserDetails{}
	}
	return c.callVoid(ctx, "addNewInternalUser",
		token, userName, password,
		orNil(details.FullName), orNil(details.Email), orNil(details.CardID), orNil(details.PIN))
}

// DeleteExistingUser permanently removes a user account. Print and
// transaction history remain unless redactUserData is set.
func (c *Client) DeleteExistingUser(ctx context.Context, token, userName string, redactUserData bool) error {
	return c.callVoid(ctx, "deleteExistingUser", token, userName, redactUserData)
}

// IsUserExists reports whether the user exists in the system
func (c *Client) IsUserExists(ctx context.Context, token, userName string) (bool, error) {
	return c.callBool(ctx, "isUserExists", token, userName)
}

// GetTotalUsers returns the number of users registered in the system
func (c *Client) GetTotalUsers(ctx context.Context, token string) (int, error) {
	return c.callInt(ctx, "getTotalUsers", token)
}

// GetUserProperty returns a single user property such as "balance",
// "email" or "department"
func (c *Client) GetUserProperty(ctx context.Context, token, userName, propertyName string) (string, error) {
	return c.callString(ctx, "getUserProperty", token, userName, propertyName)
}

// SetUserProperty sets a single user property
func (c *Client) SetUserProperty(ctx context.Context, token, userName, propertyName, propertyValue string) error {
	return c.callVoid(ctx, "setUserProperty", token, userName, propertyName, propertyValue)
}

// GetUserAccountBalance returns the user's balance. accountName selects a
// personal account; empty means the built-in default account.
func (c *Client) GetUserAccountBalance(ctx context.Context, token, userName, accountName string) (float64, error) {
	return c.callFloat(ctx, "getUserAccountBalance", token, userName, orNil(accountName))
}

// AdjustUserAccountBalance adjusts the user's balance by the given amount,
// positive to add credit and negative to subtract
func (c *Client) AdjustUserAccountBalance(ctx context.Context, token, userName string, adjustment float64, comment, accountName string) error {
	return c.callVoid(ctx, "adjustUserAccountBalance", token, userName, adjustment, orNil(comment), orNil(accountName))
}

// SetUserAccountBalance sets the user's balance to an absolute value
func (c *Client) SetUserAccountBalance(ctx context.Context, token, userName string, balance float64, comment, accountName string) error {
	return c.callVoid(ctx, "setUserAccountBalance", token, userName, balance, orNil(comment), orNil(accountName))
}

// RenameUserAccount renames a user account, keeping history attached
func (c *Client) RenameUserAccount(ctx context.Context, token, currentUserName, newUserName string) error {
	return c.callVoid(ctx, "renameUserAccount", token, currentUserName, newUserName)
}

// ListUserAccounts returns user names sorted by name, paged by offset and
// limit; the server recommends pages of 1000
func (c *Client) ListUserAccounts(ctx context.Context, token string, offset, limit int) ([]string, error) {
	return c.callStrings(ctx, "listUserAccounts", token, offset, limit)
}

// GetUserGroups returns the groups a user belongs to
func (c *Client) GetUserGroups(ctx context.Context, token, userName string) ([]string, error) {
	return c.callStrings(ctx, "getUserGroups", token, userName)
}

// orNil maps an empty string to nil, matching the server's treatment of
// omitted optional arguments
func orNil(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
