package harness

import "fmt"

// Speech markup envelope wrapped around literal expected text for
// exact-match comparison.
const (
	speechOpen  = "<speak> "
	speechClose = " </speak>"
)

// WrapSpeech wraps literal text in the speech markup envelope, producing
// the value an exact-speech expectation is compared against.
func WrapSpeech(text string) string {
	return speechOpen + text + speechClose
}

// evaluateStep compares a step's declared expectations against the
// extracted facets and returns the violations in a fixed order so
// failure messages are deterministic: exact speech, no-speech, exact
// reprompt, no-reprompt, then session continuation. Custom callbacks are
// not evaluated here; the runner invokes them after the declared checks
// pass.
func evaluateStep(step Step, f Facets) []Failure {
	var failures []Failure

	if step.Says != nil {
		expected := WrapSpeech(*step.Says)
		if f.Speech == nil {
			failures = append(failures, Failure{
				Message:   "speech did not match expected value",
				Expected:  expected,
				Actual:    "(no speech)",
				Operator:  "==",
				HasValues: true,
				Diff:      true,
			})
		} else if *f.Speech != expected {
			failures = append(failures, Failure{
				Message:   "speech did not match expected value",
				Expected:  expected,
				Actual:    *f.Speech,
				Operator:  "==",
				HasValues: true,
				Diff:      true,
			})
		}
	}

	if step.SaysNothing && f.Speech != nil {
		failures = append(failures, Failure{
			Message: fmt.Sprintf("expected no speech, but the response says %q", *f.Speech),
		})
	}

	if step.Reprompts != nil {
		expected := WrapSpeech(*step.Reprompts)
		if f.Reprompt == nil {
			failures = append(failures, Failure{
				Message:   "reprompt did not match expected value",
				Expected:  expected,
				Actual:    "(no reprompt)",
				Operator:  "==",
				HasValues: true,
				Diff:      true,
			})
		} else if *f.Reprompt != expected {
			failures = append(failures, Failure{
				Message:   "reprompt did not match expected value",
				Expected:  expected,
				Actual:    *f.Reprompt,
				Operator:  "==",
				HasValues: true,
				Diff:      true,
			})
		}
	}

	if step.RepromptsNothing && f.Reprompt != nil {
		failures = append(failures, Failure{
			Message: fmt.Sprintf("expected no reprompt, but the response reprompts %q", *f.Reprompt),
		})
	}

	if step.ShouldEndSession != nil && f.EndsSession != *step.ShouldEndSession {
		failures = append(failures, Failure{
			Message:   "session continuation did not match expected value",
			Expected:  describeSessionEnd(*step.ShouldEndSession),
			Actual:    describeSessionEnd(f.EndsSession),
			Operator:  "==",
			HasValues: true,
		})
	}

	return failures
}

func describeSessionEnd(ends bool) string {
	if ends {
		return "the response ends the session"
	}
	return "the response did not end the session"
}
