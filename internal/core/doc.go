// Package core imports barista back-office spreadsheets into the database.
//
// It holds the domain logic independent of any transport: the HTTP API, the
// etl command and tests all drive the same [Service].
//
// # Pipeline
//
// One run moves a single file through four stages:
//
//  1. [Extract] parses .csv, .xls or .xlsx into a [Dataset] of text cells
//  2. [Validate] checks required columns, emails, dates, foreign keys and
//     duplicate ids and returns a [Report]
//  3. [Transform] trims text and converts date and numeric columns
//  4. [Load] inserts new rows in one transaction through a [Gateway]
//
// A report with missing columns or duplicate ids is critical: the run stops
// after validation and nothing is written. Other findings are informational;
// the affected rows are rejected one by one at load time.
//
// # Model Registry
//
// Each importable entity is described by a [Descriptor] registered at init
// time (see internal/core/tables):
//
//	core.Register(core.Descriptor{
//	    Model:      core.ModelClients,
//	    Label:      "Clients",
//	    Collection: entities.TableClients,
//	    Required:   []string{"id", "favorite_coffee_type_id", "full_name"},
//	    Build:      buildClient,
//	})
//
// # Error Handling
//
// Fatal stages return typed errors ([ExtractionError], [LoadError]) or
// sentinels ([ErrUnsupportedFormat], [ErrUnknownModel], [ErrTooManyImports]).
// [MapError] turns any of them into a user-facing message with a stable code:
//
//   - ETL001-ETL003: import and validation errors
//   - FILE001-FILE008: upload and parsing errors
//   - DB001-DB009: database errors
//   - IMP001-IMP004: capacity, cancellation and rate limits
package core
