// Package driver defines the contract between the gateway core and the
// library speaking the native IM protocol. The core never imports a concrete
// implementation; backends register themselves by name and are opened through
// the factory registry, mirroring database/sql.
package driver

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Client is one authenticated (or authenticating) native IM session.
// Implementations must be safe for concurrent use; every blocking operation
// takes a context and honors its cancellation.
type Client interface {
	// Uin returns the account id, 0 before login completes.
	Uin() int64
	// Nickname returns the account nickname, empty before login completes.
	Nickname() string
	// Status reports the current network state.
	Status() NetworkStatus

	// FetchQRCode requests a fresh login QR code. The returned state is
	// QRImageFetch carrying the signature and PNG bytes.
	FetchQRCode(ctx context.Context) (*QRCodeState, error)
	// QueryQRCodeResult polls the scan state for a previously fetched code.
	QueryQRCodeResult(ctx context.Context, sig []byte) (*QRCodeState, error)
	// QRCodeLogin exchanges a confirmed QR signature for a session.
	QRCodeLogin(ctx context.Context, sig []byte) (LoginResponse, error)

	PasswordLogin(ctx context.Context, uin int64, password string) (LoginResponse, error)
	// DeviceLockLogin continues a login that answered DeviceLockLogin.
	DeviceLockLogin(ctx context.Context) (LoginResponse, error)
	SubmitTicket(ctx context.Context, ticket string) (LoginResponse, error)
	RequestSMS(ctx context.Context) (LoginResponse, error)
	SubmitSMSCode(ctx context.Context, code string) (LoginResponse, error)

	// GenToken captures the session token for later reconnects.
	GenToken(ctx context.Context) ([]byte, error)
	// AfterLogin runs the protocol's post-login side effects (register
	// client, sync friend and group lists).
	AfterLogin(ctx context.Context) error

	GetSummaryInfo(ctx context.Context, uin int64) (*UserInfo, error)
	GetFriendList(ctx context.Context) ([]*Friend, error)
	GetGroupInfo(ctx context.Context, groupCode int64) (*Group, error)
	GetGroupList(ctx context.Context) ([]*Group, error)
	GetGroupMemberInfo(ctx context.Context, groupCode, uin int64) (*GroupMember, error)
	GetGroupMemberList(ctx context.Context, groupCode int64) ([]*GroupMember, error)
	// GetGroupAdminList returns owner and admins keyed by uin.
	GetGroupAdminList(ctx context.Context, groupCode int64) (map[int64]Permission, error)

	SendFriendMessage(ctx context.Context, uin int64, elems []Element) (*Receipt, error)
	SendGroupMessage(ctx context.Context, groupCode int64, elems []Element) (*Receipt, error)
	RecallFriendMessage(ctx context.Context, uin, msgTime int64, seqs, rands []int32) error
	RecallGroupMessage(ctx context.Context, groupCode int64, seqs, rands []int32) error

	SendLike(ctx context.Context, uin int64, count int32) error
	GroupKick(ctx context.Context, groupCode, uin int64, rejectAddRequest bool) error
	GroupMute(ctx context.Context, groupCode, uin int64, d time.Duration) error
	GroupMuteAll(ctx context.Context, groupCode int64, mute bool) error
	GroupSetAdmin(ctx context.Context, groupCode, uin int64, admin bool) error
	EditGroupMemberCard(ctx context.Context, groupCode, uin int64, card string) error
	UpdateGroupName(ctx context.Context, groupCode int64, name string) error
	GroupQuit(ctx context.Context, groupCode int64) error
	GroupEditSpecialTitle(ctx context.Context, groupCode, uin int64, title string) error

	UploadGroupImage(ctx context.Context, groupCode int64, data []byte) (Element, error)
	UploadFriendImage(ctx context.Context, uin int64, data []byte) (Element, error)
	UploadGroupShortVideo(ctx context.Context, groupCode int64, video, cover []byte) (Element, error)

	// Events returns the native event stream. The channel is owned by the
	// client and closed on Stop.
	Events() <-chan Event
	// Start opens the network connection and runs the read loop in the
	// background. It returns once the transport is up.
	Start(ctx context.Context) error
	// Done is closed when the network loop exits, for any reason.
	Done() <-chan struct{}
	// Stop disconnects and releases the session. Idempotent.
	Stop()
	// AutoReconnect re-establishes the session with the given credential,
	// retrying every interval up to maxAttempts times.
	AutoReconnect(ctx context.Context, cred Credential, interval time.Duration, maxAttempts int) error
}

// Factory opens a fresh, not yet logged in client. uin is 0 for QR logins.
type Factory func(uin int64, protocol Protocol, device *Device) (Client, error)

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Factory)
)

// Register makes a driver available under the given name. It panics on a
// duplicate name, like database/sql.Register.
func Register(name string, factory Factory) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if factory == nil {
		panic("driver: Register factory is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("driver: Register called twice for driver " + name)
	}
	drivers[name] = factory
}

// Drivers returns the sorted names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open creates a client from the named registered driver.
func Open(name string, uin int64, protocol Protocol, device *Device) (Client, error) {
	driversMu.RLock()
	factory, ok := drivers[name]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("driver: unknown driver %q (forgotten import?)", name)
	}
	return factory(uin, protocol, device)
}
