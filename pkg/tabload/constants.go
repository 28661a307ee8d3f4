package tabload

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Load completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration or parameters
	ExitConnectionError   = 11 // Failed to connect to the target database
	ExitUnsupportedFormat = 12 // File extension maps to no known reader
	ExitReadFailed        = 13 // Source missing, unreadable or malformed
	ExitSchemaMismatch    = 14 // Existing table incompatible with the data
	ExitWriteFailed       = 15 // Insert failed before anything committed
	ExitPartialWrite      = 16 // Some batches committed before a failure
)

const (
	// DefaultBatchSize is the number of rows sent per round trip when the
	// caller does not choose one.
	DefaultBatchSize = 10000

	// DefaultDelimiter is the field separator assumed for delimited text
	// files when the caller does not choose one.
	DefaultDelimiter = ','
)
