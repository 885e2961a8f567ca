package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecks_QuestionMark(t *testing.T) {
	checks := Checks{QuestionMarkCheck: true}

	tests := []struct {
		name     string
		speech   string
		ends     bool
		violates bool
	}{
		{"open session with question", "<speak> Do you want more? </speak>", false, false},
		{"ended session with question", "<speak> Do you want more? </speak>", true, true},
		{"ended session without question", "<speak> Okay, goodbye. </speak>", true, false},
		{"open session without question", "<speak> Okay. </speak>", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures := checks.evaluate(speechFacets(tt.speech, tt.ends))
			if tt.violates {
				require.Len(t, failures, 1)
			} else {
				assert.Empty(t, failures)
			}
		})
	}
}

func TestChecks_QuestionMarkVariants(t *testing.T) {
	checks := Checks{QuestionMarkCheck: true}

	// Armenian, Arabic, double question mark, fullwidth.
	for _, glyph := range []string{"՞", "؟", "⁇", "？"} {
		failures := checks.evaluate(speechFacets("<speak> more"+glyph+" </speak>", false))
		assert.Empty(t, failures, "glyph %q should count as a question mark", glyph)
	}
}

func TestChecks_SkippedWithoutSpeech(t *testing.T) {
	checks := Checks{QuestionMarkCheck: true}

	assert.Empty(t, checks.evaluate(Facets{EndsSession: false}))
	assert.Empty(t, checks.evaluate(Facets{EndsSession: true}))
}

func TestChecks_Toggle(t *testing.T) {
	checks := DefaultChecks()
	assert.False(t, checks.QuestionMarkCheck)

	require.NoError(t, checks.Set(FeatureQuestionMarkCheck, true))
	assert.Len(t, checks.evaluate(speechFacets("<speak> Okay. </speak>", false)), 1)

	require.NoError(t, checks.Set(FeatureQuestionMarkCheck, false))
	// Violating shape, but the rule is off again.
	assert.Empty(t, checks.evaluate(speechFacets("<speak> Okay. </speak>", false)))
}

func TestChecks_UnknownFeature(t *testing.T) {
	checks := DefaultChecks()
	assert.Error(t, checks.Set("noSuchCheck", true))
}
