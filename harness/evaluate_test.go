package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func speechFacets(ssml string, ends bool) Facets {
	return Facets{Speech: &ssml, EndsSession: ends}
}

func TestEvaluateStep_SaysMatch(t *testing.T) {
	step := Step{Says: String("Welcome")}

	failures := evaluateStep(step, speechFacets("<speak> Welcome </speak>", false))
	assert.Empty(t, failures)
}

func TestEvaluateStep_SaysMismatch(t *testing.T) {
	step := Step{Says: String("Welcome")}

	failures := evaluateStep(step, speechFacets("<speak> Goodbye </speak>", false))
	require.Len(t, failures, 1)
	assert.Equal(t, "<speak> Welcome </speak>", failures[0].Expected)
	assert.Equal(t, "<speak> Goodbye </speak>", failures[0].Actual)
	assert.Equal(t, "==", failures[0].Operator)
	assert.True(t, failures[0].Diff)
}

func TestEvaluateStep_SaysAbsent(t *testing.T) {
	step := Step{Says: String("Welcome")}

	failures := evaluateStep(step, Facets{})
	require.Len(t, failures, 1)
	assert.Equal(t, "<speak> Welcome </speak>", failures[0].Expected)
	assert.Equal(t, "(no speech)", failures[0].Actual)
}

func TestEvaluateStep_SaysEmptyString(t *testing.T) {
	// An expected empty string still gets the markup envelope.
	step := Step{Says: String("")}

	assert.Empty(t, evaluateStep(step, speechFacets("<speak>  </speak>", false)))
	assert.Len(t, evaluateStep(step, speechFacets("", false)), 1)
}

func TestEvaluateStep_SaysNothing(t *testing.T) {
	step := Step{SaysNothing: true}

	assert.Empty(t, evaluateStep(step, Facets{}))

	failures := evaluateStep(step, speechFacets("<speak> Hi </speak>", false))
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Message, "expected no speech")
}

func TestEvaluateStep_Reprompts(t *testing.T) {
	rp := "<speak> Anything else? </speak>"

	step := Step{Reprompts: String("Anything else?")}
	assert.Empty(t, evaluateStep(step, Facets{Reprompt: &rp}))

	failures := evaluateStep(step, Facets{})
	require.Len(t, failures, 1)
	assert.Equal(t, "(no reprompt)", failures[0].Actual)
}

func TestEvaluateStep_RepromptsNothing(t *testing.T) {
	rp := "<speak> Hello? </speak>"
	step := Step{RepromptsNothing: true}

	assert.Empty(t, evaluateStep(step, Facets{}))
	assert.Len(t, evaluateStep(step, Facets{Reprompt: &rp}), 1)
}

func TestEvaluateStep_ShouldEndSession(t *testing.T) {
	step := Step{ShouldEndSession: Bool(true)}

	assert.Empty(t, evaluateStep(step, Facets{EndsSession: true}))

	failures := evaluateStep(step, Facets{EndsSession: false})
	require.Len(t, failures, 1)
	assert.Equal(t, "the response ends the session", failures[0].Expected)
	assert.Equal(t, "the response did not end the session", failures[0].Actual)

	step = Step{ShouldEndSession: Bool(false)}
	failures = evaluateStep(step, Facets{EndsSession: true})
	require.Len(t, failures, 1)
	assert.Equal(t, "the response did not end the session", failures[0].Expected)
	assert.Equal(t, "the response ends the session", failures[0].Actual)
}

func TestEvaluateStep_Order(t *testing.T) {
	// All declared checks fail; the order of reported failures is fixed:
	// says, reprompts-nothing, session continuation.
	rp := "<speak> Again? </speak>"
	step := Step{
		Says:             String("Welcome"),
		RepromptsNothing: true,
		ShouldEndSession: Bool(true),
	}
	facets := Facets{Reprompt: &rp, EndsSession: false}

	failures := evaluateStep(step, facets)
	require.Len(t, failures, 3)
	assert.Contains(t, failures[0].Message, "speech did not match")
	assert.Contains(t, failures[1].Message, "expected no reprompt")
	assert.Contains(t, failures[2].Message, "session continuation")
}

func TestEvaluateStep_NoExpectations(t *testing.T) {
	assert.Empty(t, evaluateStep(Step{}, speechFacets("<speak> anything </speak>", true)))
}

func TestWrapSpeech(t *testing.T) {
	assert.Equal(t, "<speak> Welcome </speak>", WrapSpeech("Welcome"))
}
