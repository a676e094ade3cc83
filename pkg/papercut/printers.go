// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     papercut
// Description: Printer management server commands
// Author:      Mike Stoffels
// Created:     2026-08-16
// License:     MIT
// ============================================================================

package papercut

import "context"

// ListPrinters returns printer names in "server\printer" form, paged by
// offset and limit
func (c *Client) ListPrinters(ctx context.Context, token string, offset, limit int) ([]string, error) {
	return c.callStrings(ctx, "listPrinters", token, offset, limit)
}

// GetPrinterProperty returns a single printer property such as
// "cost-model", "disabled" or "print-stats.total-pages"
func (c *Client) GetPrinterProperty(ctx context.Context, token, serverName, printerName, propertyName string) (string, error) {
	return c.callString(ctx, "getPrinterProperty", token, serverName, printerName, propertyName)
}

// SetPrinterProperty sets a single printer property
func (c *Client) SetPrinterProperty(ctx context.Context, token, serverName, printerName, propertyName, propertyValue string) error {
	return c.callVoid(ctx, "setPrinterProperty", token, serverName, printerName, propertyName, propertyValue)
}

// GetPrinterCostSimple returns the per-page cost of a printer configured
// with the simple cost model
func (c *Client) GetPrinterCostSimple(ctx context.Context, token, serverName, printerName string) (float64, error) {
	return c.callFloat(ctx, "getPrinterCostSimple", token, serverName, printerName)
}

// SetPrinterCostSimple sets the per-page cost using the simple cost model
func (c *Client) SetPrinterCostSimple(ctx context.Context, token, serverName, printerName string, costPerPage float64) error {
	return c.callVoid(ctx, "setPrinterCostSimple", token, serverName, printerName, costPerPage)
}

// EnablePrinter enables a printer that was disabled
func (c *Client) EnablePrinter(ctx context.Context, token, serverName, printerName string) error {
	return c.callVoid(ctx, "enablePrinter", token, serverName, printerName)
}

// DisablePrinter disables a printer for the given number of minutes;
// -1 disables it until re-enabled
func (c *Client) DisablePrinter(ctx context.Context, token, serverName, printerName string, disableMins int) error {
	return c.callVoid(ctx, "disablePrinter", token, serverName, printerName, disableMins)
}

// DeletePrinter removes a printer from the system
func (c *Client) DeletePrinter(ctx context.Context, token, serverName, printerName string) error {
	return c.callVoid(ctx, "deletePrinter", token, serverName, printerName)
}

// RenamePrinter renames a printer, keeping statistics and logs attached
func (c *Client) RenamePrinter(ctx context.Context, token, serverName, printerName, newServerName, newPrinterName string) error {
	return c.callVoid(ctx, "renamePrinter", token, serverName, printerName, newServerName, newPrinterName)
}
