// Package session drives the login state machines. Authenticating clients
// live here until a login step answers Success, at which point they are
// promoted into the bot registry and leave the session tables.
package session

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/nextlevelbuilder/pbgate/internal/driver"
)

// Promoter receives fully authenticated clients. *bot.Registry implements it.
type Promoter interface {
	OnLogin(ctx context.Context, client driver.Client, cred driver.Credential) error
}

// OpenFunc opens a fresh driver client; it exists so tests can substitute a
// fake backend.
type OpenFunc func(uin int64, protocol driver.Protocol, device *driver.Device) (driver.Client, error)

// Result is the admin-facing outcome of a login step.
type Result struct {
	State      string `json:"state"`
	CaptchaURL string `json:"captcha_url,omitempty"`
	VerifyURL  string `json:"verify_url,omitempty"`
	SMSPhone   string `json:"sms_phone,omitempty"`
	Message    string `json:"message,omitempty"`
}

func resultOf(resp driver.LoginResponse) *Result {
	r := &Result{State: resp.State()}
	switch resp := resp.(type) {
	case driver.LoginNeedCaptcha:
		r.CaptchaURL = resp.VerifyURL
	case driver.LoginDeviceLocked:
		r.VerifyURL = resp.VerifyURL
		r.SMSPhone = resp.SMSPhone
		r.Message = resp.Message
	case driver.LoginUnknown:
		r.Message = resp.Message
	}
	return r
}

type pendingKey struct {
	uin      int64
	protocol driver.Protocol
}

type pendingLogin struct {
	client   driver.Client
	cred     driver.Credential
	lastResp driver.LoginResponse
}

type qrSession struct {
	client driver.Client
	image  []byte
}

// Manager owns both login tables. All operations are safe for concurrent
// use; a missing key answers ErrClientNotFound.
type Manager struct {
	open     OpenFunc
	promoter Promoter

	// QRDeviceSeed, when non-zero, fixes the device identity for QR logins
	// that do not supply a seed of their own. Set it before serving.
	QRDeviceSeed int64

	mu      sync.Mutex
	qr      map[string]*qrSession
	pending map[pendingKey]*pendingLogin
	log     *slog.Logger
}

// NewManager returns a manager opening clients through open and promoting
// successes into promoter.
func NewManager(open OpenFunc, promoter Promoter) *Manager {
	return &Manager{
		open:     open,
		promoter: promoter,
		qr:       make(map[string]*qrSession),
		pending:  make(map[pendingKey]*pendingLogin),
		log:      slog.With("component", "session"),
	}
}

// deviceFor derives the device identity. seed 0 falls back to the given
// default, and a zero default means a random identity.
func deviceFor(seed, fallback int64) *driver.Device {
	if seed == 0 {
		seed = fallback
	}
	if seed == 0 {
		seed = rand.Int63()
	}
	return driver.NewDevice(seed)
}

// chainDeviceLock applies the protocol rule that a DeviceLockLogin answer is
// immediately retried through the device-lock path.
func chainDeviceLock(ctx context.Context, client driver.Client, resp driver.LoginResponse) (driver.LoginResponse, error) {
	if _, ok := resp.(driver.LoginDeviceLockLogin); !ok {
		return resp, nil
	}
	return client.DeviceLockLogin(ctx)
}

// promote hands a successful login to the registry.
func (m *Manager) promote(ctx context.Context, client driver.Client, cred driver.Credential) error {
	return m.promoter.OnLogin(ctx, client, cred)
}

// StopAll stops every in-flight login session, for process shutdown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	var clients []driver.Client
	for _, s := range m.qr {
		clients = append(clients, s.client)
	}
	for _, p := range m.pending {
		clients = append(clients, p.client)
	}
	m.qr = make(map[string]*qrSession)
	m.pending = make(map[pendingKey]*pendingLogin)
	m.mu.Unlock()
	for _, c := range clients {
		c.Stop()
	}
}
