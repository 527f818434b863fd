// Package defaults provides canonical default values for the entire codebase.
// This is the SINGLE SOURCE OF TRUTH for all runtime defaults.
//
// DO NOT use hardcoded values like `Count: 10` anywhere.
// Instead, reference the appropriate constant from this package.
package defaults

// Version is the current promptraid version
const Version = "0.4.1"

// ToolName identifies the tool in telemetry and reports
const ToolName = "promptraid"

// ============================================================================
// MUTATION SETTINGS
// ============================================================================

const (
	// VariantCountDefault is the variant count used when none is requested (10)
	VariantCountDefault = 10

	// VariantCountMax caps a single generation call (10000)
	VariantCountMax = 10000

	// VariantAttemptsPerSlot bounds dedup retries per requested variant.
	// Once a technique space is exhausted the generator returns fewer
	// variants instead of spinning.
	VariantAttemptsPerSlot = 16
)

// ============================================================================
// CONFIDENCE SETTINGS
// ============================================================================
//
// Documented, stable constants for verdict confidence. Tests pin these;
// changing them is a behavioral change for every consumer that thresholds
// on confidence.
// ============================================================================

const (
	// ConfidenceSuccess is the base confidence when only success
	// indicators match (0.9)
	ConfidenceSuccess = 0.9

	// ConfidenceSuccessStep is added per extra distinct success match (0.02)
	ConfidenceSuccessStep = 0.02

	// ConfidenceSuccessCap bounds escalated success confidence (0.98)
	ConfidenceSuccessCap = 0.98

	// ConfidenceMixedSuccess applies when both indicator types match and
	// success matches outnumber failure matches (0.7)
	ConfidenceMixedSuccess = 0.7

	// ConfidenceMixedFailure applies when both indicator types match and
	// failure matches outnumber success matches (0.3)
	ConfidenceMixedFailure = 0.3

	// ConfidenceAmbiguous applies on an exact tie between indicator types (0.5)
	ConfidenceAmbiguous = 0.5

	// ConfidenceNone applies when nothing matched, or only failure
	// indicators matched (0.1)
	ConfidenceNone = 0.1

	// VulnerableThreshold is the confidence at or above which a successful
	// verdict is treated as a confirmed vulnerability (0.7)
	VulnerableThreshold = 0.7
)

// ============================================================================
// RANKING SETTINGS
// ============================================================================

const (
	// RankWeightName weights the candidate name field (0.6)
	RankWeightName = 0.6

	// RankWeightTags weights the best tag match (0.3)
	RankWeightTags = 0.3

	// RankWeightDescription weights the description field (0.1)
	RankWeightDescription = 0.1

	// RankMinScore filters candidates below this combined score from
	// search results (0.05)
	RankMinScore = 0.05
)

// ============================================================================
// OUTPUT SETTINGS
// ============================================================================

const (
	// ResponseSnippetLen is the rune length responses are truncated to in
	// reports and table output (120)
	ResponseSnippetLen = 120

	// PayloadSnippetLen is the rune length payloads are truncated to (80)
	PayloadSnippetLen = 80
)

// ============================================================================
// TELEMETRY SETTINGS
// ============================================================================

const (
	// MetricsPortDefault is the prometheus scrape port (9090)
	MetricsPortDefault = 9090

	// MetricsPathDefault is the prometheus scrape path
	MetricsPathDefault = "/metrics"

	// OTLPEndpointDefault is the default collector endpoint
	OTLPEndpointDefault = "localhost:4317"
)
