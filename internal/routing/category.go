// Package routing implements the intent classification and parameter
// extraction engine behind the gateway's chat endpoint: the ordered rule
// evaluation that maps a free-text chemistry question to a backend tool, the
// heuristics that pull the tool parameter out of the text, and the dispatch
// logic with its fallback-on-failure behaviour.
package routing

// Category is the task category assigned to an incoming question. Exactly
// one category is assigned per question; CategoryUnknown is the catch-all,
// so assignment is total.
type Category string

const (
	// CategoryExtract routes to the chemical-entity extraction backend.
	CategoryExtract Category = "extract"

	// CategorySpectro routes to the spectroscopy prediction backend.
	CategorySpectro Category = "spectro"

	// CategoryRetro routes to the retrosynthesis planning backend.
	CategoryRetro Category = "retro"

	// CategoryUnknown means no rule matched; the question goes straight to
	// the fallback completion service.
	CategoryUnknown Category = "unknown"
)

// String returns the category tag as used in response envelopes and metrics.
func (c Category) String() string { return string(c) }

// Default parameter values used when heuristic extraction yields nothing
// usable. Benzene is the canonical harmless molecule for both.
const (
	// DefaultMolecule is substituted when spectroscopy extraction produces
	// an empty or bare-keyword result.
	DefaultMolecule = "benzene"

	// DefaultSMILES is benzene's line notation, substituted when no
	// notation-like token is found in a retrosynthesis question.
	DefaultSMILES = "c1ccccc1"
)
