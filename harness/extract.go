package harness

// Facets are the observable properties of a response that expectations
// and conformance checks evaluate against. Speech and Reprompt are nil
// when the corresponding output is absent from the response, which is a
// distinct state from an empty SSML string.
type Facets struct {
	Speech      *string
	Reprompt    *string
	EndsSession bool
}

// ExtractFacets pulls the observable facets out of a response. It never
// panics on well-formed responses with partially absent optional fields;
// a nil response yields zero-value facets.
func ExtractFacets(resp *Response) Facets {
	var f Facets
	if resp == nil {
		return f
	}

	f.EndsSession = resp.Body.ShouldEndSession
	if speech := resp.Body.OutputSpeech; speech != nil {
		ssml := speech.SSML
		f.Speech = &ssml
	}
	if rp := resp.Body.Reprompt; rp != nil {
		ssml := rp.OutputSpeech.SSML
		f.Reprompt = &ssml
	}
	return f
}
