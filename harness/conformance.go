package harness

import (
	"fmt"
	"strings"
)

// FeatureQuestionMarkCheck toggles the question-mark/session-end
// consistency rule.
const FeatureQuestionMarkCheck = "questionMarkCheck"

// Checks is the set of toggleable conformance rules a runner applies
// after a step's declared expectations pass. Each runner owns its own
// Checks value; there is no process-wide toggle state.
type Checks struct {
	// QuestionMarkCheck enforces that a response which keeps the session
	// open asks a question and a response which ends it does not.
	QuestionMarkCheck bool
}

// DefaultChecks returns the default toggle set. The question-mark rule
// is opt-in: not every skill phrases open-session responses as
// questions.
func DefaultChecks() Checks {
	return Checks{}
}

// Set toggles a rule by name. Unknown names are an error.
func (c *Checks) Set(name string, enabled bool) error {
	switch name {
	case FeatureQuestionMarkCheck:
		c.QuestionMarkCheck = enabled
	default:
		return fmt.Errorf("harness: unknown conformance check %q", name)
	}
	return nil
}

// Question-mark glyphs across the script variants we care about:
// Latin, Armenian, Arabic, Supplemental Punctuation, fullwidth.
const questionMarks = "?՞؟⁇？"

func containsQuestionMark(s string) bool {
	return strings.ContainsAny(s, questionMarks)
}

// evaluate applies the enabled conformance rules to the extracted
// facets. Rules that need speech are skipped entirely when speech is
// absent. Toggle state is read here, at evaluation time.
func (c Checks) evaluate(f Facets) []Failure {
	if !c.QuestionMarkCheck || f.Speech == nil {
		return nil
	}

	question := containsQuestionMark(*f.Speech)
	switch {
	case f.EndsSession && question:
		return []Failure{{
			Message: fmt.Sprintf("the response ends the session but says %q, which contains a question mark", *f.Speech),
		}}
	case !f.EndsSession && !question:
		return []Failure{{
			Message: fmt.Sprintf("the response keeps the session open but says %q, which contains no question mark", *f.Speech),
		}}
	}
	return nil
}
