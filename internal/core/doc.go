// Package core provides the desk's command interface.
//
// This package sits between the presentation adapters (the web server and
// the ticketctl CLI) and the ticket pipeline. It can be used by HTTP
// handlers, the CLI, or tests without modification.
//
// # Service
//
// [Service] owns the ticket store, the current filter and the loaded
// settings, and guards them for concurrent use. Adapters never touch the
// store directly; they issue commands:
//
//   - [Service.OnSortRequested]: toggle or change the sort field
//   - [Service.OnFilterChanged]: change the status filter
//   - [Service.OnSaveRequested]: apply an edit and produce the export
//   - [Service.Export]: serialize the current collection
//
// # Loading
//
// [Service.Load] fetches the ticket file and the settings documents
// concurrently. A failed ticket fetch leaves the service in an error state
// ([ErrTicketsNotLoaded]) while settings still load; failed settings fall
// back to defaults.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - SRC001-SRC004: ticket source failures
//   - TKT001-TKT002: ticket state (not loaded, not found)
//   - CFG001-CFG003: settings, translations and form input
//   - DB001-DB003: audit database
//   - REQ001-REQ003: request cancelled, timed out or throttled
//
// # Audit Logging
//
// Saves, exports and settings downloads are recorded through an
// [AuditSink]: a PostgreSQL table when DATABASE_URL is set, the structured
// log otherwise. Audit failures never fail the user action.
package core
