package donation

// RouteOutcome classifies what a settlement webhook did to local state.
type RouteOutcome string

const (
	// OutcomeIgnored means the event type is not handled. Acknowledged with
	// success so the sender does not keep retrying.
	OutcomeIgnored RouteOutcome = "ignored"
	// OutcomeVoteRecorded means a voting payment row was written (or was
	// already present, see RouteResult.Duplicate).
	OutcomeVoteRecorded RouteOutcome = "vote_recorded"
	// OutcomePostPublished means a pending shoutout was published.
	OutcomePostPublished RouteOutcome = "post_published"
	// OutcomePostNotFound means no pending shoutout matched the invoice.
	OutcomePostNotFound RouteOutcome = "post_not_found"
)

// RouteResult is the normalized result of routing a webhook event.
type RouteResult struct {
	Outcome    RouteOutcome
	ShoutoutID uint
	Duplicate  bool
}
