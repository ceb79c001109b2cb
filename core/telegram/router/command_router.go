package router

import (
	"context"

	"github.com/bnlibri/libribot/core/logger"
	tg "github.com/bnlibri/libribot/core/telegram"
	"github.com/bnlibri/libribot/core/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CommandRoutes prepares command handlers wrapped with the shared middleware.
func CommandRoutes(reg *tg.Registry) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		var h tele.HandlerFunc = def.Handler
		h = middleware.RecoverMiddleware(middleware.LoggerMiddleware(h))
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  h,
		})
	}

	logger.Info(context.Background(), "tg.wire", "wire.complete",
		slog.Int("commands", len(reg.Commands())),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)

	return routes
}
