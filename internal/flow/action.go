// Package flow implements the conversation machine that walks a user from
// registration through listing submission, confirmation and management. It is
// transport-agnostic: inputs arrive as plain text, photo references or typed
// actions, and every step answers with prompts for the transport layer to
// deliver.
package flow

// ActionKind enumerates every button action the conversation understands.
type ActionKind uint8

const (
	// ActContactEdit re-enters the registration steps with current data shown.
	ActContactEdit ActionKind = iota + 1
	// ActStartListing begins a new book draft.
	ActStartListing
	// ActViewListings shows the requester's published listings.
	ActViewListings
	// ActSearchISBN asks for an ISBN to look up.
	ActSearchISBN
	// ActConfirm publishes and persists the current draft.
	ActConfirm
	// ActCancel aborts the current step and returns home.
	ActCancel
	// ActDeleteSelect picks one of the requester's listings for deletion.
	ActDeleteSelect
	// ActDeleteConfirm removes the selected listing from channel and store.
	ActDeleteConfirm
)

// Action is a button press decoded by the transport layer. Code is set only
// for the delete actions, carrying the listing being targeted.
type Action struct {
	Kind ActionKind
	Code string
}
