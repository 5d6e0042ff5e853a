// Package bot ties one authenticated driver client to its plugin
// connections: it fans native events out to every plugin and routes plugin
// API requests back into the driver.
package bot

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nextlevelbuilder/pbgate/internal/api"
	"github.com/nextlevelbuilder/pbgate/internal/driver"
	"github.com/nextlevelbuilder/pbgate/internal/event"
	"github.com/nextlevelbuilder/pbgate/internal/plugin"
	"github.com/nextlevelbuilder/pbgate/pkg/onebot"
)

// Bot is one logged-in account with its plugin connection set. The
// connection set is fixed at construction; plugin changes apply to bots
// created afterwards.
type Bot struct {
	client     driver.Client
	dispatcher *api.Dispatcher
	conns      map[string]*plugin.Connection

	stop     chan struct{}
	stopOnce sync.Once
	roles    *roleCache
	log      *slog.Logger
}

// New builds a bot for client with one connection per enabled plugin.
func New(client driver.Client, plugins []*plugin.Plugin, dispatcher *api.Dispatcher) *Bot {
	b := &Bot{
		client:     client,
		dispatcher: dispatcher,
		conns:      make(map[string]*plugin.Connection),
		stop:       make(chan struct{}),
		roles:      newRoleCache(),
		log:        slog.With("component", "bot", "uin", client.Uin()),
	}
	handler := func(ctx context.Context, frame *onebot.Frame) *onebot.Frame {
		return dispatcher.HandleFrame(ctx, b.client, frame)
	}
	for _, p := range plugins {
		if p.Disabled {
			continue
		}
		b.conns[p.Name] = plugin.NewConnection(client.Uin(), p, handler)
	}
	return b
}

// Client returns the underlying driver session.
func (b *Bot) Client() driver.Client { return b.client }

// Connections returns the plugin connections keyed by plugin name.
func (b *Bot) Connections() map[string]*plugin.Connection { return b.conns }

// StartPlugins launches one supervisor per plugin connection.
func (b *Bot) StartPlugins() {
	for _, c := range b.conns {
		go c.Run()
	}
}

// StartHandleEvent launches the event loop: translate each native event and
// deliver it to every plugin in order. Fan-out is sequential so all plugins
// observe the native stream in the same order.
func (b *Bot) StartHandleEvent(events <-chan driver.Event) {
	go func() {
		ctx := context.Background()
		for {
			select {
			case <-b.stop:
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				body := event.Translate(ctx, b.client, b, ev)
				if body == nil {
					continue
				}
				for _, c := range b.conns {
					c.HandleEvent(body)
				}
			}
		}
	}()
}

// Stop shuts down the event loop, every plugin connection and the driver
// session. Idempotent.
func (b *Bot) Stop() {
	b.stopOnce.Do(func() {
		close(b.stop)
		for _, c := range b.conns {
			c.Stop()
		}
		b.client.Stop()
		b.log.Info("bot stopped")
	})
}

// GroupRole implements event.RoleSource via the timed role cache. A miss
// fetches the group's whole admin list in one call; any failure resolves to
// member without propagating.
func (b *Bot) GroupRole(ctx context.Context, groupCode, uin int64) string {
	if role, ok := b.roles.get(groupCode, uin); ok {
		return role
	}
	b.roles.recordMiss()

	admins, err := b.client.GetGroupAdminList(ctx, groupCode)
	if err != nil {
		b.log.Warn("admin list fetch failed", "group", groupCode, "error", err)
		return "member"
	}
	role := "member"
	for adminUin, perm := range admins {
		b.roles.put(groupCode, adminUin, perm.Role())
		if adminUin == uin {
			role = perm.Role()
		}
	}
	// Cache the resolved role for non-admins too, so a chatty member does
	// not refetch the list on every message.
	if role == "member" {
		b.roles.put(groupCode, uin, role)
	}
	return role
}
