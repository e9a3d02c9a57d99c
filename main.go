// =============================================================================
// Monthly Meals Report - Main Entry Point
// =============================================================================
//
// This is the main entry point for the monthly meals report CLI. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   refeed tally <files...>    - Aggregate attendance workbooks to CSV
//   refeed merge <files...>    - Merge the tally into a report template
//   refeed version             - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core business logic (not for external import)
//   - pkg/       : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/Shrimpo22/Refood-Montly-Report/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
