package middleware

import (
	"time"

	"github.com/bnlibri/libribot/core/logger"
	"github.com/bnlibri/libribot/core/telegram/callbacks"
	tghelpers "github.com/bnlibri/libribot/core/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// LoggerMiddleware logs a single receipt line per update and seeds the rid
// used by downstream handler and service logs.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		user := c.Sender()
		chat := c.Chat()

		chatID, userID := int64(0), int64(0)
		if chat != nil {
			chatID = chat.ID
		}
		if user != nil {
			userID = user.ID
		}
		rid := logger.BuildRID(upd.ID, chatID, userID)
		c.Set("rid", rid)
		c.Set("update_start", time.Now())

		ctx := logger.WithRID(logger.Background(), rid)
		ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
		ctx = logger.WithLogger(ctx, logger.Component("tg"))
		tghelpers.StoreContext(c, ctx)

		attrs := []slog.Attr{
			slog.String("status", "ok"),
			slog.String("rid", rid),
			slog.Int("update_id", upd.ID),
		}
		if userID != 0 {
			attrs = append(attrs, slog.Int64("user_id", userID))
			if user.Username != "" {
				attrs = append(attrs, slog.String("username", logger.SanitizeLimit(user.Username, 64)))
			}
		}
		switch {
		case upd.Callback != nil:
			key, payload := callbacks.Parse(upd.Callback)
			if key != "" {
				attrs = append(attrs, slog.String("cb_key", logger.SanitizeLimit(key, 128)))
			}
			if payload != "" {
				attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(payload, 256)))
			}
		case upd.Message != nil:
			if t := c.Text(); t != "" {
				attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(t, 256)))
			}
		}
		logger.LogEvent(ctx, logger.Component("tg"), slog.LevelDebug, "update.received", attrs...)

		return next(c)
	}
}
