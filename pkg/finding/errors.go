package finding

import "errors"

// Sentinel errors for the report engine failure taxonomy.
// Callers should use errors.Is() to check for these.
var (
	// ErrParse indicates a malformed or truncated scanner payload. Parsers
	// degrade to an empty or partial record set instead of returning it.
	ErrParse = errors.New("finding: malformed input")

	// ErrValidation indicates an AI insight payload that is not well-formed.
	// Only the AI enrichment step is rejected.
	ErrValidation = errors.New("finding: invalid insight payload")

	// ErrRender indicates an unsupported document style (list, table or
	// image). Renderers substitute a fallback and keep going.
	ErrRender = errors.New("finding: render failure")

	// ErrIO indicates the output artifact could not be written.
	ErrIO = errors.New("finding: artifact write failed")
)
