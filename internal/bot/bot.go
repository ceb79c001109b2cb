// Package bot wires the conversation machine to telebot: it decodes updates
// into machine inputs and renders the machine's prompts back as messages.
package bot

import (
	tele "gopkg.in/telebot.v4"

	tg "github.com/bnlibri/libribot/core/telegram"
	"github.com/bnlibri/libribot/core/telegram/callbacks"
	"github.com/bnlibri/libribot/core/telegram/commands"
	"github.com/bnlibri/libribot/core/telegram/helpers"
	"github.com/bnlibri/libribot/core/telegram/keyboard"
	"github.com/bnlibri/libribot/internal/flow"
)

// Bot adapts the conversation machine to the telebot handler surface. It
// implements the router's FSM interface for text and photo updates.
type Bot struct {
	machine *flow.Machine
}

// New returns the telebot adapter for the given machine.
func New(machine *flow.Machine) *Bot {
	return &Bot{machine: machine}
}

// Wire registers the command and callback handlers on the registry.
func (b *Bot) Wire(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     b.handleStart,
		Description: "Avvia il bot e mostra la home",
	})
	reg.RegisterCommand("/done", commands.Command{
		Handler:     b.handleDone,
		Description: "Termina la conversazione corrente",
	})
	for kind, key := range actionKeys {
		kind := kind
		_ = reg.RegisterCallback(key, func(c tele.Context) error {
			return b.handleAction(c, kind)
		})
	}
	reg.SetTextFallback(func(c tele.Context) error {
		return helpers.SendText(c, "Usa /start per iniziare.")
	})
}

// InProgress reports whether the sender has an active conversation step.
func (b *Bot) InProgress(userID int64) bool {
	return b.machine.InProgress(userID)
}

// HandleText feeds a free-text message into the machine.
func (b *Bot) HandleText(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	prompts, err := b.machine.Input(ctx, c.Sender().ID, c.Text())
	return b.deliver(c, prompts, false, err)
}

// HandlePhoto feeds a photo into the machine. telebot exposes the largest
// size of the photo directly.
func (b *Bot) HandlePhoto(c tele.Context) error {
	photo := c.Message().Photo
	if photo == nil {
		return nil
	}
	ctx := helpers.BuildContext(c)
	prompts, err := b.machine.Photo(ctx, c.Sender().ID, photo.FileID)
	return b.deliver(c, prompts, false, err)
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	return b.deliver(c, b.machine.Start(ctx, c.Sender().ID), false, nil)
}

func (b *Bot) handleDone(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	return b.deliver(c, b.machine.Done(ctx, c.Sender().ID), false, nil)
}

func (b *Bot) handleAction(c tele.Context, kind flow.ActionKind) error {
	ctx := helpers.BuildContext(c)
	action := flow.Action{Kind: kind, Code: callbacks.Payload(c)}
	prompts, err := b.machine.Act(ctx, c.Sender().ID, action)
	// Button presses edit the originating message where possible, so menus
	// collapse into their outcome instead of stacking up.
	return b.deliver(c, prompts, true, err)
}

// deliver sends every prompt, then reports the machine error if any. Prompts
// are sent even on error so the user always sees the failure message.
func (b *Bot) deliver(c tele.Context, prompts []flow.Prompt, editFirst bool, machineErr error) error {
	for i, p := range prompts {
		markup := promptMarkup(p)
		var err error
		if editFirst && i == 0 {
			err = helpers.EditOrSendMD(c, p.Text, markup)
		} else {
			err = helpers.SendMD(c, p.Text, markup)
		}
		if err != nil {
			return err
		}
	}
	return machineErr
}

func promptMarkup(p flow.Prompt) *tele.ReplyMarkup {
	switch {
	case len(p.Inline) > 0:
		rows := make([][]keyboard.InlineBtn, len(p.Inline))
		for i, row := range p.Inline {
			btns := make([]keyboard.InlineBtn, len(row))
			for j, btn := range row {
				btns[j] = encodeButton(btn)
			}
			rows[i] = btns
		}
		return keyboard.InlineButtonsRows(rows...)
	case len(p.ReplyRows) > 0:
		return keyboard.ReplyButtons(p.ReplyRows...)
	case p.RemoveReply:
		return keyboard.RemoveKeyboard()
	}
	return nil
}
