package router

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/m3rciful/quizbot/core/logger"
	tg "github.com/m3rciful/quizbot/core/telegram"
	"github.com/m3rciful/quizbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	AdminID       int64
	OnAdminReject tele.HandlerFunc
}

// CommandRoutes binds every registered command and its aliases. Admin-only
// commands sit behind the admin check. Routes come back sorted by endpoint.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}
	adminOnly := middleware.AdminOnlyMiddleware(middleware.AdminOptions{
		AdminID:  opts.AdminID,
		OnReject: opts.OnAdminReject,
	})

	var routes []tg.Route
	for name, cmd := range reg.Commands() {
		h := cmd.Handler
		if cmd.AdminOnly {
			h = adminOnly(h)
		}
		h = named("command."+normalizeHandlerName(name), h)
		for _, ep := range append([]string{name}, cmd.Aliases...) {
			if ep = strings.TrimSpace(ep); ep == "" {
				continue
			}
			if !strings.HasPrefix(ep, "/") {
				ep = "/" + ep
			}
			routes = append(routes, tg.Route{Endpoint: ep, Handler: h})
		}
	}
	slices.SortFunc(routes, func(a, b tg.Route) int {
		return strings.Compare(a.Endpoint.(string), b.Endpoint.(string))
	})

	logger.TWire.LogAttrs(context.Background(), slog.LevelInfo, "routes.commands",
		slog.Int("commands", len(reg.Commands())),
		slog.Int("count", len(routes)),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)
	return routes
}
