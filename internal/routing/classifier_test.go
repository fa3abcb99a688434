package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     Category
	}{
		{"extract keyword", "extract compounds from this abstract", CategoryExtract},
		{"compound keyword", "list the compounds mentioned here", CategoryExtract},
		{"uv spectrum", "What is the UV spectrum of aspirin?", CategorySpectro},
		{"nmr", "predict the NMR for toluene", CategorySpectro},
		{"ir mixed case", "Show the Ir Spectrum of phenol", CategorySpectro},
		{"uv-vis hyphen", "uv-vis of anthracene", CategorySpectro},
		{"mass spec", "run a mass spec on this sample", CategorySpectro},
		{"retro prefix", "retro c1ccccc1", CategoryRetro},
		{"retrosynthesis", "plan a retrosynthesis of ibuprofen", CategoryRetro},
		{"synth substring", "how would you synthesize this", CategoryRetro},
		{"route substring", "best route to paracetamol", CategoryRetro},
		{"smiles substring", "here is a SMILES string CCO", CategoryRetro},
		{"no match", "tell me about caffeine", CategoryUnknown},
		{"empty", "", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.question))
		})
	}
}

// Rule order is part of the contract: extraction questions that also
// mention a spectroscopy or synthesis term still classify as extract, and
// spectroscopy beats the retro substrings.
func TestClassifyPrecedence(t *testing.T) {
	assert.Equal(t, CategoryExtract, Classify("extract the NMR peaks from this paper"))
	assert.Equal(t, CategoryExtract, Classify("which compounds can we synthesize"))
	assert.Equal(t, CategorySpectro, Classify("NMR spectrum along the synthesis route"))
}

func TestClassifyWordBoundaries(t *testing.T) {
	// "uv" and "ir" only count as standalone words.
	assert.Equal(t, CategoryUnknown, Classify("the universe is vast"))
	assert.Equal(t, CategoryUnknown, Classify("first and third items"))
}
