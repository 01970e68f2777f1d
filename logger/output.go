package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - Facts and errors
//	1 (-v)      - + Gather summary, which config files were loaded
//	2 (-vv)     - + Per-domain acquisitions and timing
//	3 (-vvv)    - + Every resolve call and raw resolver values

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults OutputCategory = iota // Resolved facts
	OutputErrors                        // Errors with hints

	// Level 1 (-v) - Informational
	OutputSummary // Gather summary (fact count, run id)
	OutputConfig  // Config sources loaded

	// Level 2 (-vv) - Detailed
	OutputAcquisitions // Domain acquisitions and their outcome
	OutputTiming       // Acquisition and gather timing

	// Level 3 (-vvv) - Trace
	OutputResolves  // Individual resolve calls
	OutputRawValues // Raw resolver cache contents
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults: VerbosityUser,
	OutputErrors:  VerbosityUser,

	OutputSummary: VerbosityInfo,
	OutputConfig:  VerbosityInfo,

	OutputAcquisitions: VerbosityDebug,
	OutputTiming:       VerbosityDebug,

	OutputResolves:  VerbosityTrace,
	OutputRawValues: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

// categoryNames provides human-readable names for output categories
var categoryNames = map[OutputCategory]string{
	OutputResults:      "results",
	OutputErrors:       "errors",
	OutputSummary:      "summary",
	OutputConfig:       "config",
	OutputAcquisitions: "acquisitions",
	OutputTiming:       "timing",
	OutputResolves:     "resolves",
	OutputRawValues:    "raw-values",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
