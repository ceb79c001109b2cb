// Package commands declares the metadata attached to registered bot commands.
package commands

import tele "gopkg.in/telebot.v4"

// Command represents a bot command with its handler and metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	Hidden      bool
	Aliases     []string
}
