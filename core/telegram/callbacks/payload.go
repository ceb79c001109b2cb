// Package callbacks parses telebot callback data into key and payload parts.
package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Parse decodes telebot's \f<unique>|<payload> callback encoding.
// The payload may be empty.
func Parse(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	raw := strings.TrimPrefix(cb.Data, "\f")
	parts := strings.SplitN(raw, "|", 2)
	key := strings.TrimSpace(parts[0])
	payload := ""
	if len(parts) == 2 {
		payload = parts[1]
	}
	return key, payload
}

// Key returns the callback unique key for the current update.
func Key(c tele.Context) string {
	k, _ := Parse(c.Callback())
	return k
}

// Payload returns the callback payload (after '|') for the current update.
func Payload(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	// Prefer Data since Unique may be empty in the generic OnCallback route.
	_, payload := Parse(cb)
	return payload
}
