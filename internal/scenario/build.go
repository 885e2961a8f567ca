package scenario

import (
	"fmt"

	"github.com/voxkit/skilltest/harness"
	"github.com/voxkit/skilltest/request"
)

// Build turns a loaded scenario into a runnable sequence. The returned
// builder is bound to the scenario's application, user, and locale.
func Build(s *Scenario) (harness.Sequence, *request.Builder, error) {
	var opts []request.Option
	if s.Locale != "" {
		opts = append(opts, request.WithLocale(s.Locale))
	}
	b, err := request.NewBuilder(s.ApplicationID, s.UserID, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}

	seq := make(harness.Sequence, 0, len(s.Steps))
	for _, step := range s.Steps {
		var env *request.Envelope
		switch {
		case step.Launch:
			env = b.Launch()
		case step.Intent != "":
			env = b.Intent(step.Intent, step.Slots)
		default:
			env = b.SessionEnd(step.SessionEnd)
		}

		seq = append(seq, harness.Step{
			Request:          env,
			Says:             step.Says,
			SaysNothing:      step.SaysNothing,
			Reprompts:        step.Reprompts,
			RepromptsNothing: step.RepromptsNothing,
			ShouldEndSession: step.ShouldEndSession,
		})
	}
	return seq, b, nil
}
