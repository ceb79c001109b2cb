package bot

import (
	"github.com/bnlibri/libribot/core/telegram/keyboard"
	"github.com/bnlibri/libribot/internal/flow"
)

// Callback unique keys, one per action kind. The listing code travels in the
// callback payload for the delete actions.
const (
	cbContactEdit   = "contact_edit"
	cbStartListing  = "start_listing"
	cbViewListings  = "view_listings"
	cbSearchISBN    = "search_isbn"
	cbConfirm       = "confirm"
	cbCancel        = "cancel"
	cbDeleteSelect  = "delete_select"
	cbDeleteConfirm = "delete_confirm"
)

var actionKeys = map[flow.ActionKind]string{
	flow.ActContactEdit:   cbContactEdit,
	flow.ActStartListing:  cbStartListing,
	flow.ActViewListings:  cbViewListings,
	flow.ActSearchISBN:    cbSearchISBN,
	flow.ActConfirm:       cbConfirm,
	flow.ActCancel:        cbCancel,
	flow.ActDeleteSelect:  cbDeleteSelect,
	flow.ActDeleteConfirm: cbDeleteConfirm,
}

// encodeButton turns a conversation button into an inline keyboard button.
func encodeButton(b flow.Button) keyboard.InlineBtn {
	if b.URL != "" {
		return keyboard.InlineBtn{Text: b.Label, URL: b.URL}
	}
	return keyboard.InlineBtn{
		Text:   b.Label,
		Unique: actionKeys[b.Action.Kind],
		Data:   b.Action.Code,
	}
}
