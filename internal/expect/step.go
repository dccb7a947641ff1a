package expect

// Call describes one observed call being verified. The engine never looks
// inside a call; matching is delegated entirely to each step's Matcher.
// The description is used only for error reporting.
type Call interface {
	// Description renders the call for diagnostics, e.g.
	// `Cart.addItem("widget", 2)`.
	Description() string
}

// Response is the committed reaction of a fully matched expectation.
// Perform runs with the residual tree already committed as session state,
// so a response body may register further expectations before returning.
type Response interface {
	Perform(call Call) (any, error)
}

// ResponseFunc adapts a function to the Response interface.
type ResponseFunc func(call Call) (any, error)

// Perform implements Response.
func (f ResponseFunc) Perform(call Call) (any, error) {
	return f(call)
}

// MatchKind classifies the outcome of matching a call against a step.
type MatchKind int

const (
	// MatchNone means the call's method/shape does not correspond to the
	// step at all. The step is not a candidate for this call.
	MatchNone MatchKind = iota

	// MatchPartial means the shape corresponds but one or more argument
	// predicates failed. Distance counts the failed positions.
	MatchPartial

	// MatchFull means shape and all argument predicates passed and a
	// response is committed.
	MatchFull
)

// MatchOutcome reports the result of Matcher.Match for one call.
//
// Distance is meaningful only for MatchPartial (ranking diagnostics);
// Response only for MatchFull.
type MatchOutcome struct {
	Kind     MatchKind
	Distance int
	Response Response
}

// NoMatch returns the outcome for a step whose shape does not apply.
func NoMatch() MatchOutcome {
	return MatchOutcome{Kind: MatchNone}
}

// PartialMatch returns a failed outcome with the given mismatch distance.
func PartialMatch(distance int) MatchOutcome {
	return MatchOutcome{Kind: MatchPartial, Distance: distance}
}

// FullMatch returns a successful outcome committing the given response.
func FullMatch(resp Response) MatchOutcome {
	return MatchOutcome{Kind: MatchFull, Response: resp}
}

// Matcher is the opaque payload of a step: the matcher/responder pair
// provided by the collaborator that registered the expectation. The engine
// identifies steps only by tree position, never by payload equality.
type Matcher interface {
	// Describe renders the expectation for diagnostics, e.g.
	// `Cart.addItem("widget", _)`.
	Describe() string

	// Match tests the call against this step's predicates.
	Match(call Call) MatchOutcome
}

// Location records where an expectation was declared. Opaque to matching;
// used only in reports and for tie-breaking diagnostics.
type Location string

// Step is one registered expectation: where it was declared, how to render
// it, and the matcher/responder payload. Steps are created once at
// registration time and never mutated.
type Step struct {
	Location    Location
	Description string
	Matcher     Matcher
}
