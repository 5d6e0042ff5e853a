package onebot

// API request and response bodies. Responses with no payload still exist as
// distinct variants so a plugin can tell a handled request from a dropped one
// by data presence.

type SendPrivateMsgReq struct {
	UserID     int64
	Message    []*Message
	AutoEscape bool
}

func (*SendPrivateMsgReq) FrameType() FrameType { return FrameTypeSendPrivateMsgReq }

func (m *SendPrivateMsgReq) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.UserID)
	b = appendMessages(b, 2, m.Message)
	b = appendBool(b, 3, m.AutoEscape)
	return b
}

func (m *SendPrivateMsgReq) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		var err error
		switch f.num {
		case 1:
			m.UserID = f.int64()
		case 2:
			m.Message, err = consumeMessage(f, m.Message)
		case 3:
			m.AutoEscape = f.bool()
		}
		return err
	})
}

type SendPrivateMsgResp struct {
	MessageID []byte
}

func (*SendPrivateMsgResp) FrameType() FrameType { return FrameTypeSendPrivateMsgResp }

func (m *SendPrivateMsgResp) marshal(b []byte) []byte {
	return appendBytes(b, 1, m.MessageID)
}

func (m *SendPrivateMsgResp) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		if f.num == 1 {
			m.MessageID = f.bytes()
		}
		return nil
	})
}

type SendGroupMsgReq struct {
	GroupID    int64
	Message    []*Message
	AutoEscape bool
}

func (*SendGroupMsgReq) FrameType() FrameType { return FrameTypeSendGroupMsgReq }

func (m *SendGroupMsgReq) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.GroupID)
	b = appendMessages(b, 2, m.Message)
	b = appendBool(b, 3, m.AutoEscape)
	return b
}

func (m *SendGroupMsgReq) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		var err error
		switch f.num {
		case 1:
			m.GroupID = f.int64()
		case 2:
			m.Message, err = consumeMessage(f, m.Message)
		case 3:
			m.AutoEscape = f.bool()
		}
		return err
	})
}

type SendGroupMsgResp struct {
	MessageID []byte
}

func (*SendGroupMsgResp) FrameType() FrameType { return FrameTypeSendGroupMsgResp }

func (m *SendGroupMsgResp) marshal(b []byte) []byte {
	return appendBytes(b, 1, m.MessageID)
}

func (m *SendGroupMsgResp) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		if f.num == 1 {
			m.MessageID = f.bytes()
		}
		return nil
	})
}

type DeleteMsgReq struct {
	MessageID []byte
}

func (*DeleteMsgReq) FrameType() FrameType { return FrameTypeDeleteMsgReq }

func (m *DeleteMsgReq) marshal(b []byte) []byte {
	return appendBytes(b, 1, m.MessageID)
}

func (m *DeleteMsgReq) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		if f.num == 1 {
			m.MessageID = f.bytes()
		}
		return nil
	})
}

type DeleteMsgResp struct{}

func (*DeleteMsgResp) FrameType() FrameType    { return FrameTypeDeleteMsgResp }
func (*DeleteMsgResp) marshal(b []byte) []byte { return b }
func (*DeleteMsgResp) unmarshal([]byte) error  { return nil }

type SendLikeReq struct {
	UserID int64
	Times  int32
}

func (*SendLikeReq) FrameType() FrameType { return FrameTypeSendLikeReq }

func (m *SendLikeReq) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.UserID)
	b = appendInt32(b, 2, m.Times)
	return b
}

func (m *SendLikeReq) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.UserID = f.int64()
		case 2:
			m.Times = f.int32()
		}
		return nil
	})
}

type SendLikeResp struct{}

func (*SendLikeResp) FrameType() FrameType    { return FrameTypeSendLikeResp }
func (*SendLikeResp) marshal(b []byte) []byte { return b }
func (*SendLikeResp) unmarshal([]byte) error  { return nil }

type SetGroupKickReq struct {
	GroupID          int64
	UserID           int64
	RejectAddRequest bool
}

func (*SetGroupKickReq) FrameType() FrameType { return FrameTypeSetGroupKickReq }

func (m *SetGroupKickReq) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.GroupID)
	b = appendInt64(b, 2, m.UserID)
	b = appendBool(b, 3, m.RejectAddRequest)
	return b
}

func (m *SetGroupKickReq) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.GroupID = f.int64()
		case 2:
			m.UserID = f.int64()
		case 3:
			m.RejectAddRequest = f.bool()
		}
		return nil
	})
}

type SetGroupKickResp struct{}

func (*SetGroupKickResp) FrameType() FrameType    { return FrameTypeSetGroupKickResp }
func (*SetGroupKickResp) marshal(b []byte) []byte { return b }
func (*SetGroupKickResp) unmarshal([]byte) error  { return nil }

type SetGroupBanReq struct {
	GroupID  int64
	UserID   int64
	Duration int32 // seconds, 0 = unmute
}

func (*SetGroupBanReq) FrameType() FrameType { return FrameTypeSetGroupBanReq }

func (m *SetGroupBanReq) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.GroupID)
	b = appendInt64(b, 2, m.UserID)
	b = appendInt32(b, 3, m.Duration)
	return b
}

func (m *SetGroupBanReq) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.GroupID = f.int64()
		case 2:
			m.UserID = f.int64()
		case 3:
			m.Duration = f.int32()
		}
		return nil
	})
}

type SetGroupBanResp struct{}

func (*SetGroupBanResp) FrameType() FrameType    { return FrameTypeSetGroupBanResp }
func (*SetGroupBanResp) marshal(b []byte) []byte { return b }
func (*SetGroupBanResp) unmarshal([]byte) error  { return nil }

type SetGroupWholeBanReq struct {
	GroupID int64
	Enable  bool
}

func (*SetGroupWholeBanReq) FrameType() FrameType { return FrameTypeSetGroupWholeBanReq }

func (m *SetGroupWholeBanReq) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.GroupID)
	b = appendBool(b, 2, m.Enable)
	return b
}

func (m *SetGroupWholeBanReq) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.GroupID = f.int64()
		case 2:
			m.Enable = f.bool()
		}
		return nil
	})
}

type SetGroupWholeBanResp struct{}

func (*SetGroupWholeBanResp) FrameType() FrameType    { return FrameTypeSetGroupWholeBanResp }
func (*SetGroupWholeBanResp) marshal(b []byte) []byte { return b }
func (*SetGroupWholeBanResp) unmarshal([]byte) error  { return nil }

type SetGroupAdminReq struct {
	GroupID int64
	UserID  int64
	Enable  bool
}

func (*SetGroupAdminReq) FrameType() FrameType { return FrameTypeSetGroupAdminReq }

func (m *SetGroupAdminReq) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.GroupID)
	b = appendInt64(b, 2, m.UserID)
	b = appendBool(b, 3, m.Enable)
	return b
}

func (m *SetGroupAdminReq) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.GroupID = f.int64()
		case 2:
			m.UserID = f.int64()
		case 3:
			m.Enable = f.bool()
		}
		return nil
	})
}

type SetGroupAdminResp struct{}

func (*SetGroupAdminResp) FrameType() FrameType    { return FrameTypeSetGroupAdminResp }
func (*SetGroupAdminResp) marshal(b []byte) []byte { return b }
func (*SetGroupAdminResp) unmarshal([]byte) error  { return nil }

type SetGroupCardReq struct {
	GroupID int64
	UserID  int64
	Card    string
}

func (*SetGroupCardReq) FrameType() FrameType { return FrameTypeSetGroupCardReq }

func (m *SetGroupCardReq) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.GroupID)
	b = appendInt64(b, 2, m.UserID)
	b = appendString(b, 3, m.Card)
	return b
}

func (m *SetGroupCardReq) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.GroupID = f.int64()
		case 2:
			m.UserID = f.int64()
		case 3:
			m.Card = f.str()
		}
		return nil
	})
}

type SetGroupCardResp struct{}

func (*SetGroupCardResp) FrameType() FrameType    { return FrameTypeSetGroupCardResp }
func (*SetGroupCardResp) marshal(b []byte) []byte { return b }
func (*SetGroupCardResp) unmarshal([]byte) error  { return nil }

type SetGroupNameReq struct {
	GroupID   int64
	GroupName string
}

func (*SetGroupNameReq) FrameType() FrameType { return FrameTypeSetGroupNameReq }

func (m *SetGroupNameReq) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.GroupID)
	b = appendString(b, 2, m.GroupName)
	return b
}

func (m *SetGroupNameReq) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.GroupID = f.int64()
		case 2:
			m.GroupName = f.str()
		}
		return nil
	})
}

type SetGroupNameResp struct{}

func (*SetGroupNameResp) FrameType() FrameType    { return FrameTypeSetGroupNameResp }
func (*SetGroupNameResp) marshal(b []byte) []byte { return b }
func (*SetGroupNameResp) unmarshal([]byte) error  { return nil }

type SetGroupLeaveReq struct {
	GroupID   int64
	IsDismiss bool
}

func (*SetGroupLeaveReq) FrameType() FrameType { return FrameTypeSetGroupLeaveReq }

func (m *SetGroupLeaveReq) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.GroupID)
	b = appendBool(b, 2, m.IsDismiss)
	return b
}

func (m *SetGroupLeaveReq) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.GroupID = f.int64()
		case 2:
			m.IsDismiss = f.bool()
		}
		return nil
	})
}

type SetGroupLeaveResp struct{}

func (*SetGroupLeaveResp) FrameType() FrameType    { return FrameTypeSetGroupLeaveResp }
func (*SetGroupLeaveResp) marshal(b []byte) []byte { return b }
func (*SetGroupLeaveResp) unmarshal([]byte) error  { return nil }

type SetGroupSpecialTitleReq struct {
	GroupID      int64
	UserID       int64
	SpecialTitle string
	Duration     int64
}

func (*SetGroupSpecialTitleReq) FrameType() FrameType { return FrameTypeSetGroupSpecialTitleReq }

func (m *SetGroupSpecialTitleReq) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.GroupID)
	b = appendInt64(b, 2, m.UserID)
	b = appendString(b, 3, m.SpecialTitle)
	b = appendInt64(b, 4, m.Duration)
	return b
}

func (m *SetGroupSpecialTitleReq) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.GroupID = f.int64()
		case 2:
			m.UserID = f.int64()
		case 3:
			m.SpecialTitle = f.str()
		case 4:
			m.Duration = f.int64()
		}
		return nil
	})
}

type SetGroupSpecialTitleResp struct{}

func (*SetGroupSpecialTitleResp) FrameType() FrameType    { return FrameTypeSetGroupSpecialTitleResp }
func (*SetGroupSpecialTitleResp) marshal(b []byte) []byte { return b }
func (*SetGroupSpecialTitleResp) unmarshal([]byte) error  { return nil }

type GetLoginInfoReq struct{}

func (*GetLoginInfoReq) FrameType() FrameType    { return FrameTypeGetLoginInfoReq }
func (*GetLoginInfoReq) marshal(b []byte) []byte { return b }
func (*GetLoginInfoReq) unmarshal([]byte) error  { return nil }

type GetLoginInfoResp struct {
	UserID   int64
	Nickname string
}

func (*GetLoginInfoResp) FrameType() FrameType { return FrameTypeGetLoginInfoResp }

func (m *GetLoginInfoResp) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.UserID)
	b = appendString(b, 2, m.Nickname)
	return b
}

func (m *GetLoginInfoResp) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.UserID = f.int64()
		case 2:
			m.Nickname = f.str()
		}
		return nil
	})
}

type GetStrangerInfoReq struct {
	UserID  int64
	NoCache bool
}

func (*GetStrangerInfoReq) FrameType() FrameType { return FrameTypeGetStrangerInfoReq }

func (m *GetStrangerInfoReq) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.UserID)
	b = appendBool(b, 2, m.NoCache)
	return b
}

func (m *GetStrangerInfoReq) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.UserID = f.int64()
		case 2:
			m.NoCache = f.bool()
		}
		return nil
	})
}

type GetStrangerInfoResp struct {
	UserID    int64
	Nickname  string
	Sex       string
	Age       int32
	Level     int32
	LoginDays int64
}

func (*GetStrangerInfoResp) FrameType() FrameType { return FrameTypeGetStrangerInfoResp }

func (m *GetStrangerInfoResp) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.UserID)
	b = appendString(b, 2, m.Nickname)
	b = appendString(b, 3, m.Sex)
	b = appendInt32(b, 4, m.Age)
	b = appendInt32(b, 5, m.Level)
	b = appendInt64(b, 6, m.LoginDays)
	return b
}

func (m *GetStrangerInfoResp) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.UserID = f.int64()
		case 2:
			m.Nickname = f.str()
		case 3:
			m.Sex = f.str()
		case 4:
			m.Age = f.int32()
		case 5:
			m.Level = f.int32()
		case 6:
			m.LoginDays = f.int64()
		}
		return nil
	})
}

type GetFriendListReq struct{}

func (*GetFriendListReq) FrameType() FrameType    { return FrameTypeGetFriendListReq }
func (*GetFriendListReq) marshal(b []byte) []byte { return b }
func (*GetFriendListReq) unmarshal([]byte) error  { return nil }

type Friend struct {
	UserID   int64
	Nickname string
	Remark   string
}

func (m *Friend) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.UserID)
	b = appendString(b, 2, m.Nickname)
	b = appendString(b, 3, m.Remark)
	return b
}

func (m *Friend) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.UserID = f.int64()
		case 2:
			m.Nickname = f.str()
		case 3:
			m.Remark = f.str()
		}
		return nil
	})
}

type GetFriendListResp struct {
	Friend []*Friend
}

func (*GetFriendListResp) FrameType() FrameType { return FrameTypeGetFriendListResp }

func (m *GetFriendListResp) marshal(b []byte) []byte {
	for _, fr := range m.Friend {
		b = appendEmbedded(b, 1, fr)
	}
	return b
}

func (m *GetFriendListResp) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		if f.num == 1 {
			fr := &Friend{}
			if err := fr.unmarshal(f.b); err != nil {
				return err
			}
			m.Friend = append(m.Friend, fr)
		}
		return nil
	})
}

type GetGroupInfoReq struct {
	GroupID int64
	NoCache bool
}

func (*GetGroupInfoReq) FrameType() FrameType { return FrameTypeGetGroupInfoReq }

func (m *GetGroupInfoReq) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.GroupID)
	b = appendBool(b, 2, m.NoCache)
	return b
}

func (m *GetGroupInfoReq) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.GroupID = f.int64()
		case 2:
			m.NoCache = f.bool()
		}
		return nil
	})
}

type GetGroupInfoResp struct {
	GroupID        int64
	GroupName      string
	MemberCount    int32
	MaxMemberCount int32
}

func (*GetGroupInfoResp) FrameType() FrameType { return FrameTypeGetGroupInfoResp }

func (m *GetGroupInfoResp) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.GroupID)
	b = appendString(b, 2, m.GroupName)
	b = appendInt32(b, 3, m.MemberCount)
	b = appendInt32(b, 4, m.MaxMemberCount)
	return b
}

func (m *GetGroupInfoResp) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.GroupID = f.int64()
		case 2:
			m.GroupName = f.str()
		case 3:
			m.MemberCount = f.int32()
		case 4:
			m.MaxMemberCount = f.int32()
		}
		return nil
	})
}

type GetGroupListReq struct{}

func (*GetGroupListReq) FrameType() FrameType    { return FrameTypeGetGroupListReq }
func (*GetGroupListReq) marshal(b []byte) []byte { return b }
func (*GetGroupListReq) unmarshal([]byte) error  { return nil }

type Group struct {
	GroupID        int64
	GroupName      string
	MemberCount    int32
	MaxMemberCount int32
}

func (m *Group) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.GroupID)
	b = appendString(b, 2, m.GroupName)
	b = appendInt32(b, 3, m.MemberCount)
	b = appendInt32(b, 4, m.MaxMemberCount)
	return b
}

func (m *Group) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.GroupID = f.int64()
		case 2:
			m.GroupName = f.str()
		case 3:
			m.MemberCount = f.int32()
		case 4:
			m.MaxMemberCount = f.int32()
		}
		return nil
	})
}

type GetGroupListResp struct {
	Group []*Group
}

func (*GetGroupListResp) FrameType() FrameType { return FrameTypeGetGroupListResp }

func (m *GetGroupListResp) marshal(b []byte) []byte {
	for _, g := range m.Group {
		b = appendEmbedded(b, 1, g)
	}
	return b
}

func (m *GetGroupListResp) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		if f.num == 1 {
			g := &Group{}
			if err := g.unmarshal(f.b); err != nil {
				return err
			}
			m.Group = append(m.Group, g)
		}
		return nil
	})
}

type GetGroupMemberInfoReq struct {
	GroupID int64
	UserID  int64
	NoCache bool
}

func (*GetGroupMemberInfoReq) FrameType() FrameType { return FrameTypeGetGroupMemberInfoReq }

func (m *GetGroupMemberInfoReq) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.GroupID)
	b = appendInt64(b, 2, m.UserID)
	b = appendBool(b, 3, m.NoCache)
	return b
}

func (m *GetGroupMemberInfoReq) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.GroupID = f.int64()
		case 2:
			m.UserID = f.int64()
		case 3:
			m.NoCache = f.bool()
		}
		return nil
	})
}

// GroupMember carries the per-member fields shared by the member-info
// response and the member-list response.
type GroupMember struct {
	GroupID         int64
	UserID          int64
	Nickname        string
	Card            string
	Sex             string
	Age             int32
	Area            string
	JoinTime        int64
	LastSentTime    int64
	Level           string
	Role            string // owner | admin | member
	Unfriendly      bool
	Title           string
	TitleExpireTime int64
	CardChangeable  bool
}

func (m *GroupMember) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.GroupID)
	b = appendInt64(b, 2, m.UserID)
	b = appendString(b, 3, m.Nickname)
	b = appendString(b, 4, m.Card)
	b = appendString(b, 5, m.Sex)
	b = appendInt32(b, 6, m.Age)
	b = appendString(b, 7, m.Area)
	b = appendInt64(b, 8, m.JoinTime)
	b = appendInt64(b, 9, m.LastSentTime)
	b = appendString(b, 10, m.Level)
	b = appendString(b, 11, m.Role)
	b = appendBool(b, 12, m.Unfriendly)
	b = appendString(b, 13, m.Title)
	b = appendInt64(b, 14, m.TitleExpireTime)
	b = appendBool(b, 15, m.CardChangeable)
	return b
}

func (m *GroupMember) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.GroupID = f.int64()
		case 2:
			m.UserID = f.int64()
		case 3:
			m.Nickname = f.str()
		case 4:
			m.Card = f.str()
		case 5:
			m.Sex = f.str()
		case 6:
			m.Age = f.int32()
		case 7:
			m.Area = f.str()
		case 8:
			m.JoinTime = f.int64()
		case 9:
			m.LastSentTime = f.int64()
		case 10:
			m.Level = f.str()
		case 11:
			m.Role = f.str()
		case 12:
			m.Unfriendly = f.bool()
		case 13:
			m.Title = f.str()
		case 14:
			m.TitleExpireTime = f.int64()
		case 15:
			m.CardChangeable = f.bool()
		}
		return nil
	})
}

type GetGroupMemberInfoResp struct {
	GroupMember
}

func (*GetGroupMemberInfoResp) FrameType() FrameType { return FrameTypeGetGroupMemberInfoResp }

type GetGroupMemberListReq struct {
	GroupID int64
}

func (*GetGroupMemberListReq) FrameType() FrameType { return FrameTypeGetGroupMemberListReq }

func (m *GetGroupMemberListReq) marshal(b []byte) []byte {
	return appendInt64(b, 1, m.GroupID)
}

func (m *GetGroupMemberListReq) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		if f.num == 1 {
			m.GroupID = f.int64()
		}
		return nil
	})
}

type GetGroupMemberListResp struct {
	GroupMember []*GroupMember
}

func (*GetGroupMemberListResp) FrameType() FrameType { return FrameTypeGetGroupMemberListResp }

func (m *GetGroupMemberListResp) marshal(b []byte) []byte {
	for _, gm := range m.GroupMember {
		b = appendEmbedded(b, 1, gm)
	}
	return b
}

func (m *GetGroupMemberListResp) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		if f.num == 1 {
			gm := &GroupMember{}
			if err := gm.unmarshal(f.b); err != nil {
				return err
			}
			m.GroupMember = append(m.GroupMember, gm)
		}
		return nil
	})
}
