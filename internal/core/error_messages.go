package core

// error_messages.go maps technical errors to user-facing messages with codes.
//
// # Error Codes Reference
//
// Users can quote a code to support staff for faster diagnosis. Codes are
// grouped by where the failure happened.
//
// # Import Errors (ETL001-ETL099)
//
//	ETL001 - Missing column: A required column is missing from the file
//	         Patterns: "missing required column"
//	ETL002 - Duplicate ids: The file contains the same id more than once
//	         Patterns: "duplicate id"
//	ETL003 - Unknown model: The requested import type does not exist
//	         Patterns: "unknown model type"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the upload size limit
//	          Patterns: "file too large", "request body too large"
//	FILE002 - Unsupported format: Only .csv, .xls and .xlsx are accepted
//	          Patterns: "unsupported file format"
//	FILE003 - Invalid CSV: File is not a valid CSV
//	          Patterns: "invalid csv"
//	FILE004 - Unreadable workbook: The spreadsheet could not be opened
//	          Patterns: "workbook"
//	FILE005 - Empty file: The file has no header row or no bytes
//	          Patterns: "empty file"
//	FILE006 - Duplicate column: Two columns share a name after normalization
//	          Patterns: "duplicate column"
//	FILE007 - No file: No file was attached
//	          Patterns: "no file provided"
//	FILE008 - Extraction failed: The file could not be parsed
//	          Patterns: "extraction failed"
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Duplicate key            Patterns: "duplicate key"
//	DB002 - Unique constraint        Patterns: "unique constraint", "violates unique"
//	DB003 - Foreign key              Patterns: "foreign key constraint", "violates foreign key"
//	DB004 - Connection refused       Patterns: "connection refused"
//	DB005 - Connection reset         Patterns: "connection reset"
//	DB006 - Timeout                  Patterns: "timeout"
//	DB007 - Deadlock                 Patterns: "deadlock"
//	DB008 - Reference read failed    Patterns: "reference ids"
//	DB009 - Load failed              Patterns: "load into"
//
// # Import Scheduling (IMP001-IMP099)
//
//	IMP001 - System busy             Patterns: "too many imports"
//	IMP002 - Request cancelled       Patterns: "context canceled"
//	IMP003 - Request timeout         Patterns: "context deadline exceeded"
//	IMP004 - Rate limited            Patterns: "rate limit exceeded"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check the application log for the
// original error, which is logged with the run id.
//
// # Pattern Matching
//
// Patterns are matched case-insensitively with strings.Contains and the first
// match wins, so specific patterns precede general ones. Wrapped errors carry
// their causes in the message, which is why "invalid csv" must come before
// "extraction failed" and the connection errors before "load into".

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

var errorPatterns = []errorPattern{
	// Import validation
	{"missing required column", UserMessage{
		Message: "A required column is missing from the file",
		Action:  "Check the column headers against the import type's required columns",
		Code:    "ETL001",
	}},
	{"duplicate id", UserMessage{
		Message: "The file contains the same id more than once",
		Action:  "Remove or renumber the duplicated rows",
		Code:    "ETL002",
	}},
	{"unknown model type", UserMessage{
		Message: "Unknown import type",
		Action:  "Use one of the types listed by /api/v1/etl/models",
		Code:    "ETL003",
	}},

	// Files
	{"file too large", UserMessage{
		Message: "File exceeds the upload size limit",
		Action:  "Split the file into smaller chunks",
		Code:    "FILE001",
	}},
	{"request body too large", UserMessage{
		Message: "File exceeds the upload size limit",
		Action:  "Split the file into smaller chunks",
		Code:    "FILE001",
	}},
	{"unsupported file format", UserMessage{
		Message: "Unsupported file format",
		Action:  "Upload a .csv, .xls or .xlsx file",
		Code:    "FILE002",
	}},
	{"invalid csv", UserMessage{
		Message: "File is not a valid CSV",
		Action:  "Ensure the file uses one delimiter and balanced quotes",
		Code:    "FILE003",
	}},
	{"workbook", UserMessage{
		Message: "The spreadsheet could not be opened",
		Action:  "Re-save the workbook in Excel and try again",
		Code:    "FILE004",
	}},
	{"empty file", UserMessage{
		Message: "The uploaded file is empty",
		Action:  "Upload a file with a header row and data rows",
		Code:    "FILE005",
	}},
	{"duplicate column", UserMessage{
		Message: "Two columns have the same name",
		Action:  "Rename or remove the repeated header",
		Code:    "FILE006",
	}},
	{"no file provided", UserMessage{
		Message: "No file was attached",
		Action:  "Send the file in the multipart field \"file\"",
		Code:    "FILE007",
	}},
	{"extraction failed", UserMessage{
		Message: "The file could not be parsed",
		Action:  "Check that the file is not corrupted and matches its extension",
		Code:    "FILE008",
	}},

	// Database
	{"duplicate key", UserMessage{
		Message: "A record with this ID already exists",
		Action:  "Upload the file again; existing ids are skipped",
		Code:    "DB001",
	}},
	{"unique constraint", UserMessage{
		Message: "This value must be unique but already exists",
		Action:  "Check for duplicate entries in your file",
		Code:    "DB002",
	}},
	{"violates unique", UserMessage{
		Message: "A duplicate value was found",
		Action:  "Review your data for duplicate key values",
		Code:    "DB002",
	}},
	{"foreign key constraint", UserMessage{
		Message: "Referenced record does not exist",
		Action:  "Import the referenced records first",
		Code:    "DB003",
	}},
	{"violates foreign key", UserMessage{
		Message: "Referenced record does not exist",
		Action:  "Import the referenced records first",
		Code:    "DB003",
	}},
	{"connection refused", UserMessage{
		Message: "Unable to connect to database",
		Action:  "Please try again in a few moments",
		Code:    "DB004",
	}},
	{"connection reset", UserMessage{
		Message: "Database connection was interrupted",
		Action:  "Please try again",
		Code:    "DB005",
	}},
	{"timeout", UserMessage{
		Message: "Operation timed out",
		Action:  "Try a smaller file or try again later",
		Code:    "DB006",
	}},
	{"deadlock", UserMessage{
		Message: "Database was busy with conflicting operations",
		Action:  "Please try again",
		Code:    "DB007",
	}},
	{"reference ids", UserMessage{
		Message: "Could not read the referenced records",
		Action:  "Check that the database schema is installed",
		Code:    "DB008",
	}},

	// Scheduling
	{"too many imports", UserMessage{
		Message: "System is busy processing other imports",
		Action:  "Please wait a moment and try again",
		Code:    "IMP001",
	}},
	{"context canceled", UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "IMP002",
	}},
	{"context deadline exceeded", UserMessage{
		Message: "Request timed out",
		Action:  "Try a smaller file or check your connection",
		Code:    "IMP003",
	}},
	{"rate limit exceeded", UserMessage{
		Message: "Too many requests",
		Action:  "Wait a minute before sending more requests",
		Code:    "IMP004",
	}},

	// Generic load failure, after every more specific cause
	{"load into", UserMessage{
		Message: "The import could not be saved",
		Action:  "Nothing was written. Please try again or contact support",
		Code:    "DB009",
	}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, the ERR000 fallback is returned.
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

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// UserError pairs a technical error (for logs) with its user message (for display).
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
