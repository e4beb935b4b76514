package generate

// Sentinel values substituted when a value cannot be resolved. They keep a
// configuration gap visible in the generated output instead of aborting the
// run.
const (
	// SentinelMissingRef marks a reference rule whose file is absent or empty.
	SentinelMissingRef = "MISSING_REF"
	// SentinelMissingSourceVal marks a linked value whose parent data is missing.
	SentinelMissingSourceVal = "MISSING_SOURCE_VAL"
	// SentinelOrphan marks a row the planner could not attach to a parent row.
	SentinelOrphan = "ORPHAN"
	// SentinelUnconfiguredLink marks a linked rule with no target configured.
	SentinelUnconfiguredLink = "UNCONFIGURED_LINK"
	// SentinelGenerationFailed fills an entire column when the content
	// service fails for it.
	SentinelGenerationFailed = "GENERATION_FAILED"
)
