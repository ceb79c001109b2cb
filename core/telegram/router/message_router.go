package router

import (
	"time"

	tg "github.com/bnlibri/libribot/core/telegram"
	"github.com/bnlibri/libribot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// FSM is the minimal interface the router needs from the conversation machine.
type FSM interface {
	InProgress(userID int64) bool
	HandleText(c tele.Context) error
	HandlePhoto(c tele.Context) error
}

// TextOptions controls fallback behaviour for text and photo updates.
type TextOptions struct {
	UnknownText  tele.HandlerFunc
	UnknownPhoto tele.HandlerFunc
}

// TextRoutes builds handlers for text and photo routing. Updates belonging to
// an in-progress conversation go to the machine; everything else falls back to
// command lookup and the registry's text fallback.
func TextRoutes(fsm FSM, reg *tg.Registry, opts TextOptions) []tg.Route {
	textHandler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if fsm != nil && fsm.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "fsm", start, func() error {
				return fsm.HandleText(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				return handleWithSummary(c, normalizeHandlerName(key), start, func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}
		logHandlerSummary(c, "unknown_text", start, nil)
		return nil
	}

	photoHandler := func(c tele.Context) error {
		start := time.Now()
		if fsm != nil && fsm.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "fsm_photo", start, func() error {
				return fsm.HandlePhoto(c)
			})
		}
		if opts.UnknownPhoto != nil {
			return handleWithSummary(c, "unexpected_photo", start, func() error {
				return opts.UnknownPhoto(c)
			})
		}
		logHandlerSummary(c, "unexpected_photo", start, nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(textHandler)),
		},
		{
			Endpoint: tele.OnPhoto,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(photoHandler)),
		},
	}
}
