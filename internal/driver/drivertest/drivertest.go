// Package drivertest provides a scriptable in-memory driver.Client for
// tests. Every operation is recorded; login steps are answered from a
// scripted queue; data lookups serve canned fixtures.
package drivertest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nextlevelbuilder/pbgate/internal/driver"
)

// Call is one recorded driver invocation.
type Call struct {
	Method string
	Args   []any
}

// Client implements driver.Client for tests. Configure the exported fields
// before use; they are not safe to mutate once the client is handed to the
// code under test.
type Client struct {
	UinValue  int64
	NickValue string

	// Script is consumed front to back by login operations. An exhausted
	// script answers LoginSuccess.
	Script []driver.LoginResponse
	// QRScript is consumed by FetchQRCode and QueryQRCodeResult.
	QRScript []*driver.QRCodeState

	ReceiptValue *driver.Receipt
	Token        []byte
	Summary      *driver.UserInfo
	Friends      []*driver.Friend
	Groups       []*driver.Group
	Members      []*driver.GroupMember
	Admins       map[int64]driver.Permission
	UploadElem   driver.Element

	// Err, when set, is returned by every data and action operation.
	Err error

	mu       sync.Mutex
	calls    []Call
	status   driver.NetworkStatus
	events   chan driver.Event
	done     chan struct{}
	stopOnce sync.Once
}

var _ driver.Client = (*Client)(nil)

// New returns a fake client reporting the given uin.
func New(uin int64) *Client {
	return &Client{
		UinValue:  uin,
		NickValue: fmt.Sprintf("bot-%d", uin),
		events:    make(chan driver.Event, 32),
		done:      make(chan struct{}),
		status:    driver.StatusConnected,
	}
}

// Factory adapts New to the driver registry signature, handing out the
// clients it creates through opened.
func Factory(opened chan<- *Client) driver.Factory {
	return func(uin int64, protocol driver.Protocol, device *driver.Device) (driver.Client, error) {
		c := New(uin)
		if opened != nil {
			opened <- c
		}
		return c, nil
	}
}

func (c *Client) record(method string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Method: method, Args: args})
}

// Calls returns a snapshot of every recorded invocation.
func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// CallsOf returns the recorded invocations of one method.
func (c *Client) CallsOf(method string) []Call {
	var out []Call
	for _, call := range c.Calls() {
		if call.Method == method {
			out = append(out, call)
		}
	}
	return out
}

// Emit pushes a native event to the stream.
func (c *Client) Emit(ev driver.Event) {
	c.events <- ev
}

// Stopped reports whether Stop has been called.
func (c *Client) Stopped() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Client) nextLogin() driver.LoginResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Script) == 0 {
		return driver.LoginSuccess{}
	}
	resp := c.Script[0]
	c.Script = c.Script[1:]
	return resp
}

func (c *Client) nextQR() *driver.QRCodeState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.QRScript) == 0 {
		return &driver.QRCodeState{Status: driver.QRTimeout}
	}
	st := c.QRScript[0]
	c.QRScript = c.QRScript[1:]
	return st
}

func (c *Client) Uin() int64 { return c.UinValue }

func (c *Client) Nickname() string { return c.NickValue }

func (c *Client) Status() driver.NetworkStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Client) FetchQRCode(ctx context.Context) (*driver.QRCodeState, error) {
	c.record("FetchQRCode")
	if c.Err != nil {
		return nil, c.Err
	}
	return c.nextQR(), nil
}

func (c *Client) QueryQRCodeResult(ctx context.Context, sig []byte) (*driver.QRCodeState, error) {
	c.record("QueryQRCodeResult", sig)
	if c.Err != nil {
		return nil, c.Err
	}
	return c.nextQR(), nil
}

func (c *Client) QRCodeLogin(ctx context.Context, sig []byte) (driver.LoginResponse, error) {
	c.record("QRCodeLogin", sig)
	return c.nextLogin(), nil
}

func (c *Client) PasswordLogin(ctx context.Context, uin int64, password string) (driver.LoginResponse, error) {
	c.record("PasswordLogin", uin, password)
	return c.nextLogin(), nil
}

func (c *Client) DeviceLockLogin(ctx context.Context) (driver.LoginResponse, error) {
	c.record("DeviceLockLogin")
	return c.nextLogin(), nil
}

func (c *Client) SubmitTicket(ctx context.Context, ticket string) (driver.LoginResponse, error) {
	c.record("SubmitTicket", ticket)
	return c.nextLogin(), nil
}

func (c *Client) RequestSMS(ctx context.Context) (driver.LoginResponse, error) {
	c.record("RequestSMS")
	return c.nextLogin(), nil
}

func (c *Client) SubmitSMSCode(ctx context.Context, code string) (driver.LoginResponse, error) {
	c.record("SubmitSMSCode", code)
	return c.nextLogin(), nil
}

func (c *Client) GenToken(ctx context.Context) ([]byte, error) {
	c.record("GenToken")
	if c.Token != nil {
		return c.Token, nil
	}
	return []byte("token"), nil
}

func (c *Client) AfterLogin(ctx context.Context) error {
	c.record("AfterLogin")
	return nil
}

func (c *Client) GetSummaryInfo(ctx context.Context, uin int64) (*driver.UserInfo, error) {
	c.record("GetSummaryInfo", uin)
	if c.Err != nil {
		return nil, c.Err
	}
	if c.Summary != nil {
		return c.Summary, nil
	}
	return &driver.UserInfo{Uin: uin}, nil
}

func (c *Client) GetFriendList(ctx context.Context) ([]*driver.Friend, error) {
	c.record("GetFriendList")
	return c.Friends, c.Err
}

func (c *Client) GetGroupInfo(ctx context.Context, groupCode int64) (*driver.Group, error) {
	c.record("GetGroupInfo", groupCode)
	if c.Err != nil {
		return nil, c.Err
	}
	for _, g := range c.Groups {
		if g.Code == groupCode {
			return g, nil
		}
	}
	return &driver.Group{Code: groupCode}, nil
}

func (c *Client) GetGroupList(ctx context.Context) ([]*driver.Group, error) {
	c.record("GetGroupList")
	return c.Groups, c.Err
}

func (c *Client) GetGroupMemberInfo(ctx context.Context, groupCode, uin int64) (*driver.GroupMember, error) {
	c.record("GetGroupMemberInfo", groupCode, uin)
	if c.Err != nil {
		return nil, c.Err
	}
	for _, m := range c.Members {
		if m.GroupCode == groupCode && m.Uin == uin {
			return m, nil
		}
	}
	return &driver.GroupMember{GroupCode: groupCode, Uin: uin}, nil
}

func (c *Client) GetGroupMemberList(ctx context.Context, groupCode int64) ([]*driver.GroupMember, error) {
	c.record("GetGroupMemberList", groupCode)
	return c.Members, c.Err
}

func (c *Client) GetGroupAdminList(ctx context.Context, groupCode int64) (map[int64]driver.Permission, error) {
	c.record("GetGroupAdminList", groupCode)
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Admins, nil
}

func (c *Client) receipt() *driver.Receipt {
	if c.ReceiptValue != nil {
		return c.ReceiptValue
	}
	return &driver.Receipt{Time: time.Now().Unix(), Seqs: []int32{1}, Rands: []int32{1}}
}

func (c *Client) SendFriendMessage(ctx context.Context, uin int64, elems []driver.Element) (*driver.Receipt, error) {
	c.record("SendFriendMessage", uin, elems)
	if c.Err != nil {
		return nil, c.Err
	}
	return c.receipt(), nil
}

func (c *Client) SendGroupMessage(ctx context.Context, groupCode int64, elems []driver.Element) (*driver.Receipt, error) {
	c.record("SendGroupMessage", groupCode, elems)
	if c.Err != nil {
		return nil, c.Err
	}
	return c.receipt(), nil
}

func (c *Client) RecallFriendMessage(ctx context.Context, uin, msgTime int64, seqs, rands []int32) error {
	c.record("RecallFriendMessage", uin, msgTime, seqs, rands)
	return c.Err
}

func (c *Client) RecallGroupMessage(ctx context.Context, groupCode int64, seqs, rands []int32) error {
	c.record("RecallGroupMessage", groupCode, seqs, rands)
	return c.Err
}

func (c *Client) SendLike(ctx context.Context, uin int64, count int32) error {
	c.record("SendLike", uin, count)
	return c.Err
}

func (c *Client) GroupKick(ctx context.Context, groupCode, uin int64, rejectAddRequest bool) error {
	c.record("GroupKick", groupCode, uin, rejectAddRequest)
	return c.Err
}

func (c *Client) GroupMute(ctx context.Context, groupCode, uin int64, d time.Duration) error {
	c.record("GroupMute", groupCode, uin, d)
	return c.Err
}

func (c *Client) GroupMuteAll(ctx context.Context, groupCode int64, mute bool) error {
	c.record("GroupMuteAll", groupCode, mute)
	return c.Err
}

func (c *Client) GroupSetAdmin(ctx context.Context, groupCode, uin int64, admin bool) error {
	c.record("GroupSetAdmin", groupCode, uin, admin)
	return c.Err
}

func (c *Client) EditGroupMemberCard(ctx context.Context, groupCode, uin int64, card string) error {
	c.record("EditGroupMemberCard", groupCode, uin, card)
	return c.Err
}

func (c *Client) UpdateGroupName(ctx context.Context, groupCode int64, name string) error {
	c.record("UpdateGroupName", groupCode, name)
	return c.Err
}

func (c *Client) GroupQuit(ctx context.Context, groupCode int64) error {
	c.record("GroupQuit", groupCode)
	return c.Err
}

func (c *Client) GroupEditSpecialTitle(ctx context.Context, groupCode, uin int64, title string) error {
	c.record("GroupEditSpecialTitle", groupCode, uin, title)
	return c.Err
}

func (c *Client) uploadElem() driver.Element {
	if c.UploadElem != nil {
		return c.UploadElem
	}
	return driver.GroupImage{ImageID: "fake.png"}
}

func (c *Client) UploadGroupImage(ctx context.Context, groupCode int64, data []byte) (driver.Element, error) {
	c.record("UploadGroupImage", groupCode, data)
	if c.Err != nil {
		return nil, c.Err
	}
	return c.uploadElem(), nil
}

func (c *Client) UploadFriendImage(ctx context.Context, uin int64, data []byte) (driver.Element, error) {
	c.record("UploadFriendImage", uin, data)
	if c.Err != nil {
		return nil, c.Err
	}
	return c.uploadElem(), nil
}

func (c *Client) UploadGroupShortVideo(ctx context.Context, groupCode int64, video, cover []byte) (driver.Element, error) {
	c.record("UploadGroupShortVideo", groupCode, video, cover)
	if c.Err != nil {
		return nil, c.Err
	}
	return driver.ShortVideo{Name: "fake.mp4"}, nil
}

func (c *Client) Events() <-chan driver.Event { return c.events }

func (c *Client) Start(ctx context.Context) error {
	c.record("Start")
	c.mu.Lock()
	c.status = driver.StatusConnected
	c.mu.Unlock()
	return nil
}

func (c *Client) Done() <-chan struct{} { return c.done }

func (c *Client) Stop() {
	c.record("Stop")
	c.stopOnce.Do(func() {
		c.mu.Lock()
		c.status = driver.StatusShutdown
		c.mu.Unlock()
		close(c.done)
		close(c.events)
	})
}

func (c *Client) AutoReconnect(ctx context.Context, cred driver.Credential, interval time.Duration, maxAttempts int) error {
	c.record("AutoReconnect", cred, interval, maxAttempts)
	return c.Err
}
