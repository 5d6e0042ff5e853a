package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/nextlevelbuilder/pbgate/internal/api"
	"github.com/nextlevelbuilder/pbgate/internal/driver"
	"github.com/nextlevelbuilder/pbgate/internal/errs"
	"github.com/nextlevelbuilder/pbgate/internal/plugin"
)

const (
	reconnectInterval = 10 * time.Second
	reconnectAttempts = 10
)

// Info is the admin projection of a bot.
type Info struct {
	Uin    int64  `json:"uin"`
	Nick   string `json:"nick"`
	Status int32  `json:"status"`
}

// Registry holds the running bots, at most one per uin. A uin removed with
// Delete can be logged in again later.
type Registry struct {
	store      *plugin.Store
	dispatcher *api.Dispatcher

	mu   sync.Mutex
	bots map[int64]*Bot
	log  *slog.Logger
}

// NewRegistry returns an empty registry loading plugin configs from store.
func NewRegistry(store *plugin.Store, dispatcher *api.Dispatcher) *Registry {
	return &Registry{
		store:      store,
		dispatcher: dispatcher,
		bots:       make(map[int64]*Bot),
		log:        slog.With("component", "registry"),
	}
}

// OnLogin promotes a freshly authenticated client to a running bot: run the
// driver's post-login effects, load plugins, install the bot (stopping any
// prior bot for the uin), start its loops, and watch the session for drops.
func (r *Registry) OnLogin(ctx context.Context, client driver.Client, cred driver.Credential) error {
	if err := client.AfterLogin(ctx); err != nil {
		return fmt.Errorf("after login: %w", err)
	}
	plugins, err := r.store.Load()
	if err != nil {
		return fmt.Errorf("load plugins: %w", err)
	}

	b := New(client, plugins, r.dispatcher)

	r.mu.Lock()
	prior := r.bots[client.Uin()]
	r.bots[client.Uin()] = b
	r.mu.Unlock()
	if prior != nil {
		r.log.Info("replacing bot", "uin", client.Uin())
		prior.Stop()
	}

	b.StartPlugins()
	b.StartHandleEvent(client.Events())
	go r.watchSession(b, cred)

	r.log.Info("bot online", "uin", client.Uin(), "nick", client.Nickname(), "plugins", len(b.conns))
	return nil
}

// watchSession waits for the network loop to end and tries to re-establish
// the session unless the bot was stopped on purpose.
func (r *Registry) watchSession(b *Bot, cred driver.Credential) {
	<-b.client.Done()
	select {
	case <-b.stop:
		return
	default:
	}
	r.log.Warn("session dropped, reconnecting", "uin", b.client.Uin())
	if err := b.client.AutoReconnect(context.Background(), cred, reconnectInterval, reconnectAttempts); err != nil {
		r.log.Error("reconnect failed, removing bot", "uin", b.client.Uin(), "error", err)
		r.Delete(b.client.Uin())
	}
}

// Get returns the bot for uin.
func (r *Registry) Get(uin int64) (*Bot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bots[uin]
	return b, ok
}

// Delete removes and stops the bot for uin.
func (r *Registry) Delete(uin int64) error {
	r.mu.Lock()
	b, ok := r.bots[uin]
	delete(r.bots, uin)
	r.mu.Unlock()
	if !ok {
		return errs.ErrBotNotFound
	}
	b.Stop()
	return nil
}

// List snapshots the registry, ordered by uin.
func (r *Registry) List() []Info {
	r.mu.Lock()
	bots := make([]*Bot, 0, len(r.bots))
	for _, b := range r.bots {
		bots = append(bots, b)
	}
	r.mu.Unlock()

	infos := make([]Info, 0, len(bots))
	for _, b := range bots {
		infos = append(infos, Info{
			Uin:    b.client.Uin(),
			Nick:   b.client.Nickname(),
			Status: int32(b.client.Status()),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Uin < infos[j].Uin })
	return infos
}

// StopAll stops every bot, for process shutdown.
func (r *Registry) StopAll() {
	r.mu.Lock()
	bots := make([]*Bot, 0, len(r.bots))
	for _, b := range r.bots {
		bots = append(bots, b)
	}
	r.bots = make(map[int64]*Bot)
	r.mu.Unlock()
	for _, b := range bots {
		b.Stop()
	}
}
