package routing

import (
	"regexp"
	"strings"
)

// spectroKeywordRe matches the spectroscopy vocabulary. Word boundaries keep
// short tokens like "ir" and "uv" from firing inside ordinary words
// ("first", "fluvoxamine"). Alternatives are ordered longest-first so the
// regexp engine prefers "uv-vis" over the bare "uv".
var spectroKeywordRe = regexp.MustCompile(
	`(?i)\b(?:spectroscopy|spectrum|spectra|uv[-\s]?vis|mass\s+spec|uv|ir|nmr)\b`)

// retroKeywords are matched as plain substrings of the lowercased question,
// so "retrosynthesis" and "synthesize" hit via their stems.
var retroKeywords = []string{"retro", "synth", "route", "smiles"}

// Classify assigns exactly one Category to a question. It is a pure function
// evaluated as an ordered decision list; the first matching rule wins.
//
// Rule order is part of the contract: a question mentioning both
// "compound" and "spectrum" satisfies two keyword sets, and extraction
// takes priority. Do not reorder the checks.
func Classify(question string) Category {
	lower := strings.ToLower(question)

	if strings.Contains(lower, "extract") || strings.Contains(lower, "compound") {
		return CategoryExtract
	}

	if spectroKeywordRe.MatchString(question) {
		return CategorySpectro
	}

	for _, kw := range retroKeywords {
		if strings.Contains(lower, kw) {
			return CategoryRetro
		}
	}

	return CategoryUnknown
}
