// Package request constructs well-formed skill request envelopes for
// conversation replay tests.
//
// A Builder is bound to an application and user identity and a default
// locale, and produces the three interaction kinds a skill handler can
// receive:
//
//	b, _ := request.NewBuilder("amzn1.ask.skill.test", "amzn1.ask.account.test")
//	launch := b.Launch()
//	stop := b.Intent("AMAZON.StopIntent", nil)
//	ended := b.SessionEnd(request.ReasonUserInitiated)
//
// Envelopes are pure data. The harness injects carried session attributes
// into the session block before each dispatch; builders always emit a
// fresh session with empty attributes.
//
// Identifier and timestamp generation are injectable (WithIDSource,
// WithClock) so tests can produce byte-stable envelopes.
package request
