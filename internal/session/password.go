package session

import (
	"context"
	"fmt"

	"github.com/nextlevelbuilder/pbgate/internal/driver"
	"github.com/nextlevelbuilder/pbgate/internal/errs"
)

// PendingInfo is one pending password login in a listing.
type PendingInfo struct {
	Uin      int64  `json:"uin"`
	Protocol int32  `json:"protocol"`
	State    string `json:"state"`
}

// PasswordLogin starts a password login for (uin, protocol). A Success
// promotes immediately; a challenge parks the session in the pending table,
// replacing and stopping any prior attempt for the same key.
func (m *Manager) PasswordLogin(ctx context.Context, uin int64, protocolNum int32, password string, deviceSeed int64) (*Result, error) {
	protocol, err := driver.ProtocolFromInt(protocolNum)
	if err != nil {
		return nil, err
	}
	client, err := m.open(uin, protocol, deviceFor(deviceSeed, uin))
	if err != nil {
		return nil, fmt.Errorf("open client: %w", err)
	}
	if err := client.Start(ctx); err != nil {
		client.Stop()
		return nil, fmt.Errorf("start network: %w", err)
	}

	resp, err := client.PasswordLogin(ctx, uin, password)
	if err != nil {
		client.Stop()
		return nil, fmt.Errorf("password login: %w", err)
	}
	resp, err = chainDeviceLock(ctx, client, resp)
	if err != nil {
		client.Stop()
		return nil, err
	}

	cred := driver.PasswordCredential{Uin: uin, Password: password}
	if _, ok := resp.(driver.LoginSuccess); ok {
		if err := m.promote(ctx, client, cred); err != nil {
			client.Stop()
			return nil, err
		}
		return resultOf(resp), nil
	}

	key := pendingKey{uin: uin, protocol: protocol}
	m.mu.Lock()
	prior := m.pending[key]
	m.pending[key] = &pendingLogin{client: client, cred: cred, lastResp: resp}
	m.mu.Unlock()
	if prior != nil {
		m.log.Info("replacing pending login", "uin", uin, "protocol", protocol.String())
		prior.client.Stop()
	}
	return resultOf(resp), nil
}

// SubmitTicket answers a captcha challenge with the slider ticket.
func (m *Manager) SubmitTicket(ctx context.Context, uin int64, protocolNum int32, ticket string) (*Result, error) {
	return m.pendingStep(ctx, uin, protocolNum, func(ctx context.Context, client driver.Client) (driver.LoginResponse, error) {
		return client.SubmitTicket(ctx, ticket)
	})
}

// RequestSMS asks the service to send a device-verification SMS.
func (m *Manager) RequestSMS(ctx context.Context, uin int64, protocolNum int32) (*Result, error) {
	return m.pendingStep(ctx, uin, protocolNum, func(ctx context.Context, client driver.Client) (driver.LoginResponse, error) {
		return client.RequestSMS(ctx)
	})
}

// SubmitSMS answers a device-verification challenge with the SMS code.
func (m *Manager) SubmitSMS(ctx context.Context, uin int64, protocolNum int32, code string) (*Result, error) {
	return m.pendingStep(ctx, uin, protocolNum, func(ctx context.Context, client driver.Client) (driver.LoginResponse, error) {
		return client.SubmitSMSCode(ctx, code)
	})
}

// pendingStep runs one login continuation against a parked session. Success
// moves the entry to the registry; anything else overwrites the stored state.
func (m *Manager) pendingStep(ctx context.Context, uin int64, protocolNum int32, step func(context.Context, driver.Client) (driver.LoginResponse, error)) (*Result, error) {
	protocol, err := driver.ProtocolFromInt(protocolNum)
	if err != nil {
		return nil, err
	}
	key := pendingKey{uin: uin, protocol: protocol}

	m.mu.Lock()
	p, ok := m.pending[key]
	m.mu.Unlock()
	if !ok {
		return nil, errs.ErrClientNotFound
	}

	resp, err := step(ctx, p.client)
	if err != nil {
		return nil, err
	}
	resp, err = chainDeviceLock(ctx, p.client, resp)
	if err != nil {
		return nil, err
	}

	if _, success := resp.(driver.LoginSuccess); !success {
		m.mu.Lock()
		if cur, ok := m.pending[key]; ok && cur == p {
			cur.lastResp = resp
		}
		m.mu.Unlock()
		return resultOf(resp), nil
	}

	// Remove-then-promote; a concurrent observer of the removed entry
	// sees ErrClientNotFound.
	m.mu.Lock()
	delete(m.pending, key)
	m.mu.Unlock()
	if err := m.promote(ctx, p.client, p.cred); err != nil {
		p.client.Stop()
		return nil, err
	}
	return resultOf(resp), nil
}

// ListPending snapshots the pending password logins.
func (m *Manager) ListPending() []PendingInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PendingInfo, 0, len(m.pending))
	for key, p := range m.pending {
		out = append(out, PendingInfo{
			Uin:      key.uin,
			Protocol: int32(key.protocol),
			State:    p.lastResp.State(),
		})
	}
	return out
}

// DeletePending abandons a pending password login.
func (m *Manager) DeletePending(uin int64, protocolNum int32) error {
	protocol, err := driver.ProtocolFromInt(protocolNum)
	if err != nil {
		return err
	}
	key := pendingKey{uin: uin, protocol: protocol}
	m.mu.Lock()
	p, ok := m.pending[key]
	delete(m.pending, key)
	m.mu.Unlock()
	if !ok {
		return errs.ErrClientNotFound
	}
	p.client.Stop()
	return nil
}
