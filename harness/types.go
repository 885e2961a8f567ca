package harness

import (
	"context"
	"encoding/json"

	"github.com/voxkit/skilltest/request"
)

// Response is a skill response envelope as returned by a handler.
type Response struct {
	Body              ResponseBody   `json:"response"`
	SessionAttributes map[string]any `json:"sessionAttributes"`
}

// ResponseBody holds the observable facets of a response. OutputSpeech
// and Reprompt are optional; a nil pointer means the facet is absent,
// which is distinct from present-but-empty SSML.
type ResponseBody struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

// OutputSpeech carries rendered SSML.
type OutputSpeech struct {
	Type string `json:"type,omitempty"`
	SSML string `json:"ssml"`
}

// Reprompt wraps the reprompt speech.
type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}

// Handler is the skill entry point under test. It receives one request
// envelope and resolves to a response or an error. The runner calls it
// exactly once per step, inside an isolated invocation sandbox.
type Handler func(ctx context.Context, req *request.Envelope) (*Response, error)

// Sequence is an ordered conversation script. It must not be mutated
// once execution begins.
type Sequence []Step

// Step is one conversational turn: a request plus declared expectations.
//
// Expectation fields are all optional. Says/Reprompts use *string so an
// undeclared expectation is distinguishable from an expected empty
// string; declaring Says together with SaysNothing (or Reprompts with
// RepromptsNothing) is a configuration error rejected before execution.
type Step struct {
	// Request is the envelope to dispatch. Required. Its session
	// attributes and new-session flag are overwritten by the runner
	// with the carried conversation state.
	Request *request.Envelope

	// Says asserts the response speech equals this text wrapped in the
	// speech markup envelope ("<speak> text </speak>").
	Says *string

	// SaysNothing asserts the response carries no speech at all.
	SaysNothing bool

	// Reprompts asserts the reprompt speech equals this text wrapped in
	// the speech markup envelope.
	Reprompts *string

	// RepromptsNothing asserts the response carries no reprompt.
	RepromptsNothing bool

	// ShouldEndSession asserts the response's session-continuation flag.
	ShouldEndSession *bool

	// SaysCallback, if set, receives the raw extracted speech (nil when
	// absent) after the declared checks pass. It may raise via
	// StepContext.Fail.
	SaysCallback func(*StepContext, *string)

	// Callback, if set, receives the full response after the declared
	// checks pass. It may raise via StepContext.Fail.
	Callback func(*StepContext, *Response)
}

// Failure describes one violated expectation. Message is always set;
// Expected/Actual/Operator are present for value comparisons, and Diff
// hints that a textual diff of Expected vs Actual is worth rendering.
type Failure struct {
	Message   string `json:"message"`
	Expected  string `json:"expected,omitempty"`
	Actual    string `json:"actual,omitempty"`
	Operator  string `json:"operator,omitempty"`
	HasValues bool   `json:"-"`
	Diff      bool   `json:"-"`
}

// Result is the outcome of Runner.Run.
type Result struct {
	// Completed is true when every step executed and passed.
	Completed bool `json:"completed"`

	// Failure holds the first violated expectation, nil on success.
	Failure *Failure `json:"failure,omitempty"`
}

// Turn is one executed request/response pair, handed to a TurnRecorder
// after the handler resolves and before expectations are evaluated.
type Turn struct {
	Index       int
	Kind        string
	Locale      string
	Request     json.RawMessage
	Response    json.RawMessage
	Speech      *string
	EndsSession bool
}

// TurnRecorder persists executed turns for post-mortem inspection.
// Recording is best-effort: errors are logged, never failed on.
type TurnRecorder interface {
	Record(ctx context.Context, turn Turn) error
}

// String returns a pointer to s, for use in Step literals.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for use in Step literals.
func Bool(b bool) *bool { return &b }
