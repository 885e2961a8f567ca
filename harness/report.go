package harness

import (
	"fmt"
	"runtime"
	"strings"
	"testing"
)

// Reporter receives the outcome of a sequence execution. Exactly one of
// FailNow or Done is called per execution.
//
// FailNow must abort the calling goroutine (testing.T.Fatal semantics);
// the runner treats reaching past it as a programming error.
type Reporter interface {
	FailNow(f Failure)
	Done()
}

// FormatFailure renders a failure for human consumption: the message,
// then expected/actual values when the failure carries them.
func FormatFailure(f Failure) string {
	var buf strings.Builder
	buf.WriteString(f.Message)

	if f.HasValues {
		fmt.Fprintf(&buf, "\n  Expected: %s", f.Expected)
		fmt.Fprintf(&buf, "\n  Actual:   %s", f.Actual)
		if f.Operator != "" {
			fmt.Fprintf(&buf, "\n  Operator: %s", f.Operator)
		}
	}
	return buf.String()
}

// TestReporter adapts a testing.T to the Reporter interface. FailNow
// fails the test immediately via t.Fatal.
type TestReporter struct {
	t *testing.T
}

// NewTestReporter wraps t.
func NewTestReporter(t *testing.T) *TestReporter {
	return &TestReporter{t: t}
}

// FailNow fails the test with the formatted failure and stops the
// calling goroutine.
func (r *TestReporter) FailNow(f Failure) {
	r.t.Helper()
	r.t.Fatal(FormatFailure(f))
}

// Done marks successful completion. The zero action: a passing test.
func (r *TestReporter) Done() {}

// collectReporter records the outcome instead of failing a test. Used by
// Runner.Run, which executes the sequence on a goroutine this reporter
// may terminate.
type collectReporter struct {
	failure   *Failure
	completed bool
}

func (r *collectReporter) FailNow(f Failure) {
	r.failure = &f
	runtime.Goexit()
}

func (r *collectReporter) Done() {
	r.completed = true
}
