// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// # Source Errors (SRC001-SRC099)
//
// Errors raised while fetching the ticket file and its companion documents:
//
//	SRC001 - Document too large: The ticket file exceeds the size limit
//	         Action: Ask an administrator to raise SOURCE_MAX_BYTES
//	         Patterns: "document too large"
//
//	SRC002 - Source rejected request: The ticket source answered with an error
//	         Action: Check that the ticket file is published at the configured location
//	         Patterns: ": status "
//
//	SRC003 - File not found: The ticket file does not exist
//	         Action: Check SOURCE_BASE and SOURCE_TICKETS_FILE
//	         Patterns: "no such file or directory"
//
//	SRC004 - Source unreachable: Unable to load tickets
//	         Action: Please try again in a few moments
//	         Patterns: "fetch failed"
//
// # Ticket Errors (TKT001-TKT099)
//
//	TKT001 - Not loaded: Tickets are not available
//	         Action: Reload the page once the ticket file is reachable
//	         Patterns: "tickets not loaded"
//
//	TKT002 - Not found: Ticket not found
//	         Action: Return to the list and pick an existing ticket
//	         Patterns: "ticket not found"
//
// # Configuration Errors (CFG001-CFG099)
//
//	CFG001 - Invalid settings: The settings file could not be read
//	         Action: Defaults are in use; fix settings.json
//	         Patterns: "parse settings"
//
//	CFG002 - Invalid translations: The translations file could not be read
//	         Action: Texts are shown untranslated; fix translations.json
//	         Patterns: "parse translations"
//
//	CFG003 - Invalid form: The submitted form could not be read
//	         Action: Check the values and submit again
//	         Patterns: "invalid form", "invalid request body"
//
// # Database Errors (DB001-DB099)
//
// Only the optional audit store talks to a database:
//
//	DB001 - Connection refused: Unable to connect to database
//	DB002 - Connection reset: Database connection was interrupted
//	DB003 - Audit disabled: The audit log is not enabled
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled: Request was cancelled
//	REQ002 - Request timeout: Request timed out
//	REQ003 - Rate limited: Too many requests
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches:
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns are defined
// before general ones. A fetch error carries "fetch failed" plus its cause,
// which is why the SRC causes come before SRC004.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (lower case) to user messages.
// Order matters: the first match wins.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Source Errors (SRC001-SRC004)
	// =========================================================================
	{
		pattern: "document too large",
		msg: UserMessage{
			Message: "The ticket file exceeds the size limit",
			Action:  "Ask an administrator to raise SOURCE_MAX_BYTES",
			Code:    "SRC001",
		},
	},
	{
		pattern: ": status ",
		msg: UserMessage{
			Message: "The ticket source answered with an error",
			Action:  "Check that the ticket file is published at the configured location",
			Code:    "SRC002",
		},
	},
	{
		pattern: "no such file or directory",
		msg: UserMessage{
			Message: "The ticket file does not exist",
			Action:  "Check SOURCE_BASE and SOURCE_TICKETS_FILE",
			Code:    "SRC003",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "fetch failed",
		msg: UserMessage{
			Message: "Unable to load tickets",
			Action:  "Please try again in a few moments",
			Code:    "SRC004",
		},
	},

	// =========================================================================
	// Ticket Errors (TKT001-TKT002)
	// =========================================================================
	{
		pattern: "tickets not loaded",
		msg: UserMessage{
			Message: "Tickets are not available",
			Action:  "Reload the page once the ticket file is reachable",
			Code:    "TKT001",
		},
	},
	{
		pattern: "ticket not found",
		msg: UserMessage{
			Message: "Ticket not found",
			Action:  "Return to the list and pick an existing ticket",
			Code:    "TKT002",
		},
	},

	// =========================================================================
	// Configuration Errors (CFG001-CFG003)
	// =========================================================================
	{
		pattern: "parse settings",
		msg: UserMessage{
			Message: "The settings file could not be read",
			Action:  "Defaults are in use; fix settings.json",
			Code:    "CFG001",
		},
	},
	{
		pattern: "parse translations",
		msg: UserMessage{
			Message: "The translations file could not be read",
			Action:  "Texts are shown untranslated; fix translations.json",
			Code:    "CFG002",
		},
	},
	{
		pattern: "invalid form",
		msg: UserMessage{
			Message: "The submitted form could not be read",
			Action:  "Check the values and submit again",
			Code:    "CFG003",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "The submitted data could not be read",
			Action:  "Check the values and submit again",
			Code:    "CFG003",
		},
	},

	// =========================================================================
	// Database Errors (DB001-DB003)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB002",
		},
	},
	{
		pattern: "audit log not enabled",
		msg: UserMessage{
			Message: "The audit log is not enabled",
			Action:  "Set DATABASE_URL to record saves and exports",
			Code:    "DB003",
		},
	},

	// =========================================================================
	// Request Errors (REQ001, REQ003)
	// =========================================================================
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "REQ003",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, a generic fallback with code ERR000 is returned.
//
// Example:
//
//	msg := MapError(fmt.Errorf("load: %w", ErrTicketsNotLoaded))
//	// msg.Code == "TKT001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error (for logs) with its user message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
