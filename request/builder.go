package request

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// DefaultLocale is the locale used when a builder is created without an
// explicit one and no per-request override is given.
const DefaultLocale = "en-US"

const envelopeVersion = "1.0"

// Builder produces request envelopes for a fixed application and user.
//
// A Builder is safe to reuse across sequences. Locale changes via
// SetLocale affect subsequently built envelopes only.
type Builder struct {
	applicationID string
	userID        string
	locale        string

	now   func() time.Time
	newID func() string
}

// Option configures a Builder.
type Option func(*Builder)

// WithLocale sets the builder's default locale. The tag is validated in
// NewBuilder; prefer SetLocale when the tag comes from user input.
func WithLocale(tag string) Option {
	return func(b *Builder) { b.locale = tag }
}

// WithClock injects the timestamp source. Used by tests to produce
// deterministic envelopes.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithIDSource injects the unique-id source used for session and request
// identifiers. Used by tests to produce deterministic envelopes.
func WithIDSource(newID func() string) Option {
	return func(b *Builder) { b.newID = newID }
}

// NewBuilder creates a Builder bound to the given application and user
// identifiers. Both are required; the default locale (after options) must
// be a well-formed BCP 47 tag.
func NewBuilder(applicationID, userID string, opts ...Option) (*Builder, error) {
	if applicationID == "" {
		return nil, fmt.Errorf("request: application id is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("request: user id is required")
	}

	b := &Builder{
		applicationID: applicationID,
		userID:        userID,
		locale:        DefaultLocale,
		now:           time.Now,
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.SetLocale(b.locale); err != nil {
		return nil, err
	}
	return b, nil
}

// SetLocale changes the builder's default locale for subsequently built
// envelopes. Returns an error for empty or malformed tags.
func (b *Builder) SetLocale(tag string) error {
	if tag == "" {
		return fmt.Errorf("request: locale must not be empty")
	}
	if _, err := language.Parse(tag); err != nil {
		return fmt.Errorf("request: invalid locale %q: %w", tag, err)
	}
	b.locale = tag
	return nil
}

// Locale returns the builder's current default locale.
func (b *Builder) Locale() string {
	return b.locale
}

// Launch builds a LaunchRequest envelope. A locale argument overrides the
// builder default for this envelope only; at most one may be given.
func (b *Builder) Launch(locale ...string) *Envelope {
	return b.envelope(Body{Type: TypeLaunch}, locale)
}

// Intent builds an IntentRequest envelope for the named intent. Slot
// values are supplied as name -> value and normalized into {name, value}
// records keyed by slot name.
func (b *Builder) Intent(name string, slots map[string]string, locale ...string) *Envelope {
	intent := &Intent{Name: name, Slots: map[string]Slot{}}
	for slotName, value := range slots {
		intent.Slots[slotName] = Slot{Name: slotName, Value: value}
	}
	return b.envelope(Body{Type: TypeIntent, Intent: intent}, locale)
}

// SessionEnd builds a SessionEndedRequest envelope with the given reason.
func (b *Builder) SessionEnd(reason string, locale ...string) *Envelope {
	return b.envelope(Body{Type: TypeSessionEnded, Reason: reason}, locale)
}

// SessionEndWithError builds a SessionEndedRequest with reason ERROR and
// the platform error payload describing what went wrong.
func (b *Builder) SessionEndWithError(errType, message string, locale ...string) *Envelope {
	return b.envelope(Body{
		Type:   TypeSessionEnded,
		Reason: ReasonError,
		Error:  &EndedError{Type: errType, Message: message},
	}, locale)
}

func (b *Builder) envelope(body Body, locale []string) *Envelope {
	body.RequestID = "EchoApiRequestId." + b.newID()
	body.Timestamp = b.now().UTC().Format(time.RFC3339)
	body.Locale = b.locale
	if len(locale) > 0 && locale[0] != "" {
		body.Locale = locale[0]
	}

	return &Envelope{
		Version: envelopeVersion,
		Session: Session{
			New:        true,
			SessionID:  "SessionId." + b.newID(),
			Attributes: map[string]any{},
			Application: Application{
				ApplicationID: b.applicationID,
			},
			User: User{
				UserID: b.userID,
			},
		},
		Request: body,
	}
}
