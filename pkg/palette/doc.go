// Package palette implements the command-dispatch engine behind the command
// palette: a registry of named commands, breadcrumb navigation through nested
// sub-menus with most-recently-used resumption, and safe background execution
// of command work functions with cooperative supersession.
//
// The engine is presentation-agnostic. A front-end feeds user events into
// [Controller] and renders its observable state; command authors register
// [WorkFunc] implementations through [Registry].
package palette
