// Package publisher posts listing cards to the public channel and removes
// them again when a listing is deleted.
package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/bnlibri/libribot/core/logger"
)

// Publisher is the channel surface the listing service depends on. Publish
// returns the channel message ID so the message can be retracted later.
type Publisher interface {
	Publish(ctx context.Context, text string, photo *string) (int64, error)
	Retract(ctx context.Context, messageID int64) error
}

// Telegram publishes to a Telegram channel through the bot API.
type Telegram struct {
	bot  *tele.Bot
	chat *tele.Chat
}

// NewTelegram resolves the "@channel" username once and returns a publisher
// bound to it. Deletion requires the numeric chat ID, so resolution happens
// here rather than per call.
func NewTelegram(bot *tele.Bot, channelID string) (*Telegram, error) {
	chat, err := bot.ChatByUsername(channelID)
	if err != nil {
		return nil, fmt.Errorf("resolve channel %s: %w", channelID, err)
	}
	return &Telegram{bot: bot, chat: chat}, nil
}

// Publish sends the card to the channel. With a photo the card becomes the
// caption, otherwise it is sent as a plain Markdown message.
func (t *Telegram) Publish(ctx context.Context, text string, photo *string) (int64, error) {
	var (
		msg *tele.Message
		err error
	)
	if photo != nil && *photo != "" {
		p := &tele.Photo{File: tele.File{FileID: *photo}, Caption: text}
		msg, err = t.bot.Send(t.chat, p, tele.ModeMarkdown)
	} else {
		msg, err = t.bot.Send(t.chat, text, tele.ModeMarkdown)
	}
	if err != nil {
		logger.Error(ctx, "tg", "channel.publish",
			slog.String("channel", t.chat.Username),
			slog.String("err", err.Error()))
		return 0, fmt.Errorf("publish to %s: %w", t.chat.Username, err)
	}
	logger.Info(ctx, "tg", "channel.publish",
		slog.String("status", "ok"),
		slog.String("channel", t.chat.Username),
		slog.Int("message_id", msg.ID))
	return int64(msg.ID), nil
}

// Retract deletes a previously published channel message.
func (t *Telegram) Retract(ctx context.Context, messageID int64) error {
	stored := tele.StoredMessage{
		MessageID: strconv.FormatInt(messageID, 10),
		ChatID:    t.chat.ID,
	}
	if err := t.bot.Delete(stored); err != nil {
		logger.Error(ctx, "tg", "channel.retract",
			slog.String("channel", t.chat.Username),
			slog.Int64("message_id", messageID),
			slog.String("err", err.Error()))
		return fmt.Errorf("retract message %d from %s: %w", messageID, t.chat.Username, err)
	}
	logger.Info(ctx, "tg", "channel.retract",
		slog.String("status", "ok"),
		slog.String("channel", t.chat.Username),
		slog.Int64("message_id", messageID))
	return nil
}
