// Package harness replays scripted conversations against a skill handler
// and asserts on the observable shape of each response.
//
// A Sequence is an ordered list of Steps; each Step pairs a built request
// envelope with declared expectations on the response's speech, reprompt,
// and session-continuation behavior. The Runner dispatches one request at
// a time, threads the handler's sessionAttributes into the next request,
// and stops at the first violated expectation, reporting it with the
// 1-based step number and request kind.
//
// # Usage
//
// From a Go test:
//
//	b, _ := request.NewBuilder(appID, userID)
//	r := harness.New(myHandler)
//	r.Test(t, "stop ends the session", harness.Sequence{
//	    {Request: b.Launch(), Says: harness.String("Welcome"), ShouldEndSession: harness.Bool(false)},
//	    {Request: b.Intent("AMAZON.StopIntent", nil), SaysNothing: true, ShouldEndSession: harness.Bool(true)},
//	})
//
// Outside a test (the CLI does this), Run returns a Result instead of
// failing a testing.T:
//
//	res, err := r.Run(ctx, seq)
//
// # Conformance checks
//
// After a step's declared expectations pass, toggleable response-shape
// rules run. The built-in rule checks that responses which keep the
// session open ask a question and responses which end it do not. Toggle
// with SetFeature or WithChecks.
//
// # Determinism
//
// Steps execute strictly one at a time. Each handler call runs in a fresh
// single-invocation sandbox; the only state crossing step boundaries is
// the session-attributes value, which is replaced wholesale by each
// response.
package harness
