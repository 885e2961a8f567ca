package harness

import "fmt"

// Localizer resolves locale-keyed strings. The i18n package provides the
// default implementation; tests may substitute their own.
type Localizer interface {
	// Translate resolves key for the given locale with {{param}}
	// interpolation. The second return is false when no string exists
	// for the key.
	Translate(locale, key string, params map[string]string) (string, bool)
}

// StepContext is the per-step view handed to custom expectation
// callbacks. It is created fresh for each step and must not be retained
// after the callback returns.
type StepContext struct {
	// Index is the 0-based position of the step in its sequence.
	Index int

	// Locale is the locale the step's request was built with.
	Locale string

	// RequestKind is the human-readable request label: the request type,
	// or the intent name for intent invocations.
	RequestKind string

	localizer Localizer
	reporter  Reporter
}

// T resolves key in the step's locale. When no localizer is configured
// or the key is missing, the key itself is returned.
func (c *StepContext) T(key string, params map[string]string) string {
	return c.TIn(c.Locale, key, params)
}

// TIn resolves key in an explicit locale, bypassing the step default.
func (c *StepContext) TIn(locale, key string, params map[string]string) string {
	if c.localizer == nil {
		return key
	}
	s, ok := c.localizer.Translate(locale, key, params)
	if !ok {
		return key
	}
	return s
}

// Fail raises a failure for the current step. The message is prefixed
// with the 1-based step number and request kind before being handed to
// the reporter, whose FailNow aborts the sequence. Fail never returns.
func (c *StepContext) Fail(f Failure) {
	f.Message = fmt.Sprintf("Request #%d (%s): %s", c.Index+1, c.RequestKind, f.Message)
	c.reporter.FailNow(f)
	panic("harness: reporter FailNow returned")
}
