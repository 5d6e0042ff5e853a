package session

import (
	"context"
	"fmt"

	"github.com/nextlevelbuilder/pbgate/internal/driver"
	"github.com/nextlevelbuilder/pbgate/internal/errs"
)

// QRCreateResult carries the fresh code back to the admin caller.
type QRCreateResult struct {
	Sig   []byte
	Image []byte
}

// QRInfo is one pending QR session in a listing.
type QRInfo struct {
	Sig   []byte
	Image []byte
}

// CreateQRCode opens a client, fetches a login QR code and parks the session
// until the code is scanned. QR login always uses the watch profile; the
// device identity comes from deviceSeed, or is random when 0.
func (m *Manager) CreateQRCode(ctx context.Context, deviceSeed int64) (*QRCreateResult, error) {
	client, err := m.open(0, driver.ProtocolAndroidWatch, deviceFor(deviceSeed, m.QRDeviceSeed))
	if err != nil {
		return nil, fmt.Errorf("open client: %w", err)
	}
	if err := client.Start(ctx); err != nil {
		client.Stop()
		return nil, fmt.Errorf("start network: %w", err)
	}
	state, err := client.FetchQRCode(ctx)
	if err != nil {
		client.Stop()
		return nil, fmt.Errorf("fetch qrcode: %w", err)
	}

	m.mu.Lock()
	m.qr[string(state.Sig)] = &qrSession{client: client, image: state.Image}
	m.mu.Unlock()

	m.log.Info("qrcode created", "sig_len", len(state.Sig))
	return &QRCreateResult{Sig: state.Sig, Image: state.Image}, nil
}

// QueryQRCode polls the scan state. A confirmed code completes the login and
// promotes the session; the entry is removed whether the final login step
// succeeds or not.
func (m *Manager) QueryQRCode(ctx context.Context, sig []byte) (*Result, error) {
	m.mu.Lock()
	s, ok := m.qr[string(sig)]
	m.mu.Unlock()
	if !ok {
		return nil, errs.ErrClientNotFound
	}

	state, err := s.client.QueryQRCodeResult(ctx, sig)
	if err != nil {
		return nil, fmt.Errorf("query qrcode: %w", err)
	}
	if state.Status != driver.QRConfirmed {
		return &Result{State: state.Status.String()}, nil
	}

	m.mu.Lock()
	delete(m.qr, string(sig))
	m.mu.Unlock()

	resp, err := s.client.QRCodeLogin(ctx, sig)
	if err != nil {
		s.client.Stop()
		return nil, fmt.Errorf("qrcode login: %w", err)
	}
	resp, err = chainDeviceLock(ctx, s.client, resp)
	if err != nil {
		s.client.Stop()
		return nil, err
	}
	if _, ok := resp.(driver.LoginSuccess); !ok {
		s.client.Stop()
		return resultOf(resp), nil
	}

	token, err := s.client.GenToken(ctx)
	if err != nil {
		s.client.Stop()
		return nil, fmt.Errorf("gen token: %w", err)
	}
	if err := m.promote(ctx, s.client, driver.TokenCredential{Token: token}); err != nil {
		s.client.Stop()
		return nil, err
	}
	return &Result{State: driver.QRConfirmed.String()}, nil
}

// ListQRCodes snapshots the pending QR sessions.
func (m *Manager) ListQRCodes() []QRInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]QRInfo, 0, len(m.qr))
	for sig, s := range m.qr {
		out = append(out, QRInfo{Sig: []byte(sig), Image: s.image})
	}
	return out
}

// DeleteQRCode abandons a pending QR session.
func (m *Manager) DeleteQRCode(sig []byte) error {
	m.mu.Lock()
	s, ok := m.qr[string(sig)]
	delete(m.qr, string(sig))
	m.mu.Unlock()
	if !ok {
		return errs.ErrClientNotFound
	}
	s.client.Stop()
	return nil
}
