package driver

// Event is one item of the native event stream. The translator type-switches
// over the concrete types; events it does not know are dropped.
type Event interface{ event() }

// FriendMessageEvent is an inbound private message.
type FriendMessageEvent struct {
	FromUin  int64
	FromNick string
	Time     int64
	Seqs     []int32
	Rands    []int32
	Elements []Element
}

// GroupMessageEvent is an inbound group message.
type GroupMessageEvent struct {
	GroupCode int64
	GroupName string
	FromUin   int64
	FromCard  string
	Time      int64
	Seqs      []int32
	Rands     []int32
	Elements  []Element
}

// GroupLeaveEvent fires when a member leaves or is kicked. OperatorUin is 0
// for a voluntary leave.
type GroupLeaveEvent struct {
	GroupCode   int64
	MemberUin   int64
	OperatorUin int64
}

// NewMemberEvent fires when a member joins a group.
type NewMemberEvent struct {
	GroupCode int64
	MemberUin int64
}

// GroupMuteEvent fires when a member is muted or unmuted. TargetUin 0 means
// the whole group; Duration 0 lifts the mute.
type GroupMuteEvent struct {
	GroupCode   int64
	OperatorUin int64
	TargetUin   int64
	Duration    int64
}

// MemberPermissionChangeEvent fires when a member gains or loses admin.
type MemberPermissionChangeEvent struct {
	GroupCode  int64
	MemberUin  int64
	Permission Permission
}

// NewFriendEvent fires when a friend request completes.
type NewFriendEvent struct {
	FriendUin int64
	Nick      string
}

// GroupMessageRecallEvent fires when a group message is recalled.
type GroupMessageRecallEvent struct {
	GroupCode   int64
	AuthorUin   int64
	OperatorUin int64
	MsgSeq      int32
	Time        int64
}

// FriendMessageRecallEvent fires when a friend recalls a private message.
type FriendMessageRecallEvent struct {
	FriendUin int64
	MsgSeq    int32
	Time      int64
}

// FriendRequestEvent is an inbound friend request.
type FriendRequestEvent struct {
	ReqUin  int64
	ReqNick string
	Message string
	MsgSeq  int64
}

// JoinGroupRequestEvent is a request by someone to join a group the account
// administers. InvitorUin is non-zero when a member invited them.
type JoinGroupRequestEvent struct {
	GroupCode  int64
	ReqUin     int64
	ReqNick    string
	Message    string
	MsgSeq     int64
	InvitorUin int64
	Suspicious bool
}

// SelfInvitedEvent fires when the account itself is invited into a group.
type SelfInvitedEvent struct {
	GroupCode  int64
	InvitorUin int64
	MsgSeq     int64
}

func (FriendMessageEvent) event()          {}
func (GroupMessageEvent) event()           {}
func (GroupLeaveEvent) event()             {}
func (NewMemberEvent) event()              {}
func (GroupMuteEvent) event()              {}
func (MemberPermissionChangeEvent) event() {}
func (NewFriendEvent) event()              {}
func (GroupMessageRecallEvent) event()     {}
func (FriendMessageRecallEvent) event()    {}
func (FriendRequestEvent) event()          {}
func (JoinGroupRequestEvent) event()       {}
func (SelfInvitedEvent) event()            {}
