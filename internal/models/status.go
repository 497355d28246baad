package models

/*
Batch state and operation constants shared by the categorizer, the cost
tracker and the CLI report.
*/

// BatchState is the lifecycle position of one categorization batch.
// Parsed and Fallback are terminal; no state is revisited.
type BatchState string

const (
	BatchStatePending               BatchState = "pending"
	BatchStateAwaitingFirstResponse BatchState = "awaiting_first_response"
	BatchStateAwaitingRetryResponse BatchState = "awaiting_retry_response"
	BatchStateParsed                BatchState = "parsed"
	BatchStateFallback              BatchState = "fallback"
)

// Operation names recorded with usage events.
const (
	OperationCategorization      = "categorization"
	OperationCategorizationRetry = "categorization_retry"
)
