// Package ui provides styled output for the non-interactive carbon
// commands.
//
// Commands print through a Printer so output can be captured in tests:
//
//	p := ui.NewPrinter(cmd.OutOrStdout())
//	p.Header(ui.NewHeader("Log Food", "carbon log food",
//	    ui.Param{Key: "Server", Value: settings.Server.URL}))
//	p.Banner("Food logged successfully!", tracker.SeveritySuccess)
//
// Components:
//
//   - Header: command banner with ordered parameters
//   - Result: success, failure and warning boxes with details and hints
//   - Banner: single-line alert styled by severity, shared with the TUI
//   - RenderItems: reference item table
//   - RenderShares: per-category share bars for an activity range
//
// Logging is controlled by CARBON_LOG_LEVEL. When unset, zap is silent so
// only this package's output reaches the terminal.
package ui
