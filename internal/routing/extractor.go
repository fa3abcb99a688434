package routing

import (
	"regexp"
	"strings"
)

// Parameter extraction is intentionally heuristic and lossy: it optimises
// for a good-enough molecule name most of the time, not guaranteed
// correctness. Callers must treat the extracted value as a best-effort hint,
// never as a validated identifier — the backends do their own validation.

// ofForRe captures the phrase after "of" or "for", the common shape of
// spectroscopy questions ("the IR spectrum of aspirin").
var ofForRe = regexp.MustCompile(`(?i)\b(?:of|for)\s+(.+)`)

// fillerRe strips the spectroscopy vocabulary plus conversational filler
// from a question when the of/for pattern is absent, leaving the molecule
// name as the residue. The article/pronoun fillers matter: without them
// "show me a spectrum" leaves "me a" behind instead of reducing to empty.
var fillerRe = regexp.MustCompile(
	`(?i)\b(?:spectroscopy|spectrum|spectra|uv[-\s]?vis|mass\s+spec|uv|ir|nmr|` +
		`show|please|plot|give|draw|for|of|the|me|a|an|my|what|is)\b`)

// bareKeywords are residues that name the measurement rather than a
// molecule; they trigger the default instead of being sent to the backend.
var bareKeywords = map[string]struct{}{
	"spectrum": {}, "spectra": {}, "spectroscopy": {},
	"uv": {}, "ir": {}, "nmr": {},
}

// notationTokenRe is a permissive chemical line-notation token pattern.
var notationTokenRe = regexp.MustCompile(`[A-Za-z0-9@+\-\[\]()=#$%]+`)

// trailingPunct trims the question-mark-and-friends tail left behind when a
// molecule name sits at the end of a sentence.
const trailingPunct = ".,!?;:'\" \t\n"

// ExtractParameter produces the backend parameter for a classified
// question. Pure function of its inputs; the zero value is returned for
// CategoryUnknown, where no parameter applies.
func ExtractParameter(category Category, question string) string {
	switch category {
	case CategoryExtract:
		// Passthrough: the extraction backend performs its own entity
		// recognition over the full text.
		return question
	case CategorySpectro:
		return extractMolecule(question)
	case CategoryRetro:
		return extractNotation(question)
	default:
		return ""
	}
}

// extractMolecule guesses the molecule name in a spectroscopy question.
// Two stages: take the phrase after of/for when present, otherwise strip
// the spectroscopy vocabulary and filler words and use the residue. Either
// way an empty or bare-keyword result collapses to the benzene default.
//
// The stripping stage can produce nonsense for multi-clause questions;
// that is accepted — the value is a hint, and the backend copes.
func extractMolecule(question string) string {
	var candidate string
	if m := ofForRe.FindStringSubmatch(question); m != nil {
		candidate = strings.TrimSpace(m[1])
	} else {
		candidate = fillerRe.ReplaceAllString(question, " ")
		candidate = strings.Join(strings.Fields(candidate), " ")
	}

	candidate = strings.Trim(candidate, trailingPunct)

	if candidate == "" {
		return DefaultMolecule
	}
	if _, bare := bareKeywords[strings.ToLower(candidate)]; bare {
		return DefaultMolecule
	}
	return candidate
}

// extractNotation scans for the first token that plausibly encodes a
// molecular structure. The character class alone admits every plain English
// word, so a token must also carry at least one notation indicator (ring
// digit, branch, bond symbol, charge, bracket atom) before it wins;
// otherwise "give" would beat "c1ccccc1" on position.
func extractNotation(question string) string {
	for _, tok := range notationTokenRe.FindAllString(question, -1) {
		if hasNotationIndicator(tok) {
			return tok
		}
	}
	return DefaultSMILES
}

func hasNotationIndicator(tok string) bool {
	return strings.ContainsAny(tok, "0123456789@+[]()=#$%")
}
