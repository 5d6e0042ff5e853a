package driver

import (
	"fmt"

	"github.com/nextlevelbuilder/pbgate/internal/errs"
)

// Protocol selects the device profile presented to the IM service during
// login. The integers are part of the admin API.
type Protocol int32

const (
	ProtocolAndroidPhone Protocol = 1
	ProtocolAndroidWatch Protocol = 2
	ProtocolMacOS        Protocol = 3
	ProtocolQiDian       Protocol = 4
	ProtocolIPad         Protocol = 5
)

// ProtocolFromInt validates an admin-supplied protocol number.
func ProtocolFromInt(n int32) (Protocol, error) {
	p := Protocol(n)
	switch p {
	case ProtocolAndroidPhone, ProtocolAndroidWatch, ProtocolMacOS, ProtocolQiDian, ProtocolIPad:
		return p, nil
	}
	return 0, fmt.Errorf("%w: %d", errs.ErrProtocolNotSupported, n)
}

func (p Protocol) String() string {
	switch p {
	case ProtocolAndroidPhone:
		return "android_phone"
	case ProtocolAndroidWatch:
		return "android_watch"
	case ProtocolMacOS:
		return "macos"
	case ProtocolQiDian:
		return "qidian"
	case ProtocolIPad:
		return "ipad"
	}
	return fmt.Sprintf("protocol(%d)", int32(p))
}

// NetworkStatus is the client's connection state as exposed to the admin API.
type NetworkStatus int32

const (
	StatusUnknown       NetworkStatus = 0
	StatusShutdown      NetworkStatus = 1
	StatusDropped       NetworkStatus = 2
	StatusConnecting    NetworkStatus = 3
	StatusConnected     NetworkStatus = 4
	StatusOffline       NetworkStatus = 5
	StatusKickedOffline NetworkStatus = 6
)

// QRCodeStatus is the scan state of a login QR code.
type QRCodeStatus int

const (
	QRImageFetch QRCodeStatus = iota
	QRWaitingForScan
	QRWaitingForConfirm
	QRTimeout
	QRConfirmed
	QRCanceled
)

func (s QRCodeStatus) String() string {
	switch s {
	case QRImageFetch:
		return "image_fetch"
	case QRWaitingForScan:
		return "waiting_for_scan"
	case QRWaitingForConfirm:
		return "waiting_for_confirm"
	case QRTimeout:
		return "timeout"
	case QRConfirmed:
		return "confirmed"
	case QRCanceled:
		return "canceled"
	}
	return fmt.Sprintf("qrcode_status(%d)", int(s))
}

// QRCodeState is the result of fetching or polling a QR code. Sig is always
// set; Image only for QRImageFetch.
type QRCodeState struct {
	Status QRCodeStatus
	Sig    []byte
	Image  []byte
}

// LoginResponse is the outcome of a login step. Exactly one concrete type
// applies per response; callers type-switch.
type LoginResponse interface {
	loginResponse()
	// State is the admin-facing name of the variant.
	State() string
}

// LoginSuccess means the session is authenticated and ready for AfterLogin.
type LoginSuccess struct{}

// LoginNeedCaptcha asks the user to solve a slider captcha at VerifyURL and
// submit the resulting ticket.
type LoginNeedCaptcha struct {
	VerifyURL string
}

// LoginAccountFrozen is terminal; the account cannot log in.
type LoginAccountFrozen struct{}

// LoginDeviceLocked asks for device verification, either via VerifyURL or an
// SMS code sent to SMSPhone.
type LoginDeviceLocked struct {
	VerifyURL string
	Message   string
	SMSPhone  string
}

// LoginTooManySMSRequest means SMS verification is rate limited upstream.
type LoginTooManySMSRequest struct{}

// LoginDeviceLockLogin asks the caller to immediately retry through
// DeviceLockLogin.
type LoginDeviceLockLogin struct{}

// LoginUnknown carries an unmapped upstream status code.
type LoginUnknown struct {
	Status  int32
	Message string
}

func (LoginSuccess) loginResponse()           {}
func (LoginNeedCaptcha) loginResponse()       {}
func (LoginAccountFrozen) loginResponse()     {}
func (LoginDeviceLocked) loginResponse()      {}
func (LoginTooManySMSRequest) loginResponse() {}
func (LoginDeviceLockLogin) loginResponse()   {}
func (LoginUnknown) loginResponse()           {}

func (LoginSuccess) State() string           { return "success" }
func (LoginNeedCaptcha) State() string       { return "need_captcha" }
func (LoginAccountFrozen) State() string     { return "account_frozen" }
func (LoginDeviceLocked) State() string      { return "device_locked" }
func (LoginTooManySMSRequest) State() string { return "too_many_sms_request" }
func (LoginDeviceLockLogin) State() string   { return "device_lock_login" }
func (LoginUnknown) State() string           { return "unknown" }

// Credential is what AutoReconnect uses to re-authenticate after a drop.
type Credential interface{ credential() }

// PasswordCredential re-authenticates with the account password.
type PasswordCredential struct {
	Uin      int64
	Password string
}

// TokenCredential re-authenticates with a captured session token.
type TokenCredential struct {
	Token []byte
}

func (PasswordCredential) credential() {}
func (TokenCredential) credential()    {}

// Permission is a member's rank within a group.
type Permission int

const (
	PermissionMember Permission = iota
	PermissionAdmin
	PermissionOwner
)

// Role is the wire-facing name of the permission.
func (p Permission) Role() string {
	switch p {
	case PermissionOwner:
		return "owner"
	case PermissionAdmin:
		return "admin"
	}
	return "member"
}

// Receipt identifies a message the server accepted.
type Receipt struct {
	Time  int64
	Seqs  []int32
	Rands []int32
}

// UserInfo is an account summary for arbitrary uins.
type UserInfo struct {
	Uin       int64
	Nickname  string
	Gender    string
	Age       int32
	Level     int32
	LoginDays int64
}

// Friend is one entry of the friend list.
type Friend struct {
	Uin    int64
	Nick   string
	Remark string
}

// Group is one group the account belongs to.
type Group struct {
	Code           int64
	Name           string
	Memo           string
	OwnerUin       int64
	CreateTime     int64
	MemberCount    int32
	MaxMemberCount int32
}

// GroupMember is one member of a group.
type GroupMember struct {
	GroupCode              int64
	Uin                    int64
	Gender                 string
	Nickname               string
	Card                   string
	Level                  int32
	JoinTime               int64
	LastSpeakTime          int64
	SpecialTitle           string
	SpecialTitleExpireTime int64
	ShutUpTimestamp        int64
	Permission             Permission
}
