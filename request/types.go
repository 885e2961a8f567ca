package request

// Request type tags carried in the envelope's request block.
const (
	TypeLaunch       = "LaunchRequest"
	TypeIntent       = "IntentRequest"
	TypeSessionEnded = "SessionEndedRequest"
)

// Session end reasons accepted by SessionEnd.
const (
	ReasonUserInitiated     = "USER_INITIATED"
	ReasonError             = "ERROR"
	ReasonExceededReprompts = "EXCEEDED_MAX_REPROMPTS"
)

// Envelope is a complete skill request as delivered to a handler.
type Envelope struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Request Body    `json:"request"`
}

// Session is the session-data block of an envelope.
//
// Builders emit New=true with empty attributes; the sequence runner
// overwrites both before dispatch (New is true only for the first step,
// Attributes carry the previous response's sessionAttributes).
type Session struct {
	New         bool           `json:"new"`
	SessionID   string         `json:"sessionId"`
	Application Application    `json:"application"`
	Attributes  map[string]any `json:"attributes"`
	User        User           `json:"user"`
}

// Application identifies the skill under test.
type Application struct {
	ApplicationID string `json:"applicationId"`
}

// User identifies the synthetic test user.
type User struct {
	UserID string `json:"userId"`
}

// Body is the request block of an envelope. Type selects which of the
// kind-specific fields are populated.
type Body struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId"`
	Timestamp string `json:"timestamp"`
	Locale    string `json:"locale"`

	// Intent is set for IntentRequest envelopes.
	Intent *Intent `json:"intent,omitempty"`

	// Reason and Error are set for SessionEndedRequest envelopes.
	Reason string      `json:"reason,omitempty"`
	Error  *EndedError `json:"error,omitempty"`
}

// Intent names the invoked intent and its resolved slot values.
type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots"`
}

// Slot is a single named slot value.
type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// EndedError describes why the platform ended the session, when the
// reason is ERROR.
type EndedError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
