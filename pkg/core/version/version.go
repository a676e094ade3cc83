// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     version
// Description: Central version management for all mPC components
// Author:      Mike Stoffels
// Created:     2026-08-15
// License:     MIT
// ============================================================================

package version

// Version constants for all mPC components
const (
	// Toolkit version
	Toolkit = "1.0.0"

	// Component versions
	Client   = "1.0.0"
	Deployer = "1.0.0"
	Audit    = "1.0.0"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "client":
		return Client
	case "deployer":
		return Deployer
	case "audit":
		return Audit
	default:
		return Toolkit
	}
}
