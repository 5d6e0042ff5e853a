package onebot

// Event bodies fanned out to plugins. Envelope fields (time, self_id,
// post_type) are repeated per message rather than factored into a shared
// header so each variant stays a flat protobuf message.

type PrivateMessageSender struct {
	UserID   int64
	Nickname string
	Sex      string
	Age      int32
}

func (m *PrivateMessageSender) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.UserID)
	b = appendString(b, 2, m.Nickname)
	b = appendString(b, 3, m.Sex)
	b = appendInt32(b, 4, m.Age)
	return b
}

func (m *PrivateMessageSender) unmarshal(buf []byte) error {
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
		}
		return nil
	})
}

type PrivateMessageEvent struct {
	Time        int64
	SelfID      int64
	PostType    string // "message"
	MessageType string // "private"
	SubType     string
	MessageID   []byte // serialized MessageReceipt
	UserID      int64
	Message     []*Message
	RawMessage  string
	Font        int32
	Sender      *PrivateMessageSender
	Extra       map[string]string
}

func (*PrivateMessageEvent) FrameType() FrameType { return FrameTypePrivateMessageEvent }

func (m *PrivateMessageEvent) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.Time)
	b = appendInt64(b, 2, m.SelfID)
	b = appendString(b, 3, m.PostType)
	b = appendString(b, 4, m.MessageType)
	b = appendString(b, 5, m.SubType)
	b = appendBytes(b, 6, m.MessageID)
	b = appendInt64(b, 7, m.UserID)
	b = appendMessages(b, 8, m.Message)
	b = appendString(b, 9, m.RawMessage)
	b = appendInt32(b, 10, m.Font)
	if m.Sender != nil {
		b = appendEmbedded(b, 11, m.Sender)
	}
	b = appendStringMap(b, 12, m.Extra)
	return b
}

func (m *PrivateMessageEvent) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		var err error
		switch f.num {
		case 1:
			m.Time = f.int64()
		case 2:
			m.SelfID = f.int64()
		case 3:
			m.PostType = f.str()
		case 4:
			m.MessageType = f.str()
		case 5:
			m.SubType = f.str()
		case 6:
			m.MessageID = f.bytes()
		case 7:
			m.UserID = f.int64()
		case 8:
			m.Message, err = consumeMessage(f, m.Message)
		case 9:
			m.RawMessage = f.str()
		case 10:
			m.Font = f.int32()
		case 11:
			m.Sender = &PrivateMessageSender{}
			err = m.Sender.unmarshal(f.b)
		case 12:
			var k, v string
			k, v, err = f.mapEntry()
			if err == nil {
				if m.Extra == nil {
					m.Extra = make(map[string]string)
				}
				m.Extra[k] = v
			}
		}
		return err
	})
}

type Anonymous struct {
	ID   int64
	Name string
	Flag string
}

func (m *Anonymous) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.ID)
	b = appendString(b, 2, m.Name)
	b = appendString(b, 3, m.Flag)
	return b
}

func (m *Anonymous) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.ID = f.int64()
		case 2:
			m.Name = f.str()
		case 3:
			m.Flag = f.str()
		}
		return nil
	})
}

type GroupMessageSender struct {
	UserID   int64
	Nickname string
	Card     string
	Sex      string
	Age      int32
	Area     string
	Level    string
	Role     string // owner | admin | member
	Title    string
}

func (m *GroupMessageSender) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.UserID)
	b = appendString(b, 2, m.Nickname)
	b = appendString(b, 3, m.Card)
	b = appendString(b, 4, m.Sex)
	b = appendInt32(b, 5, m.Age)
	b = appendString(b, 6, m.Area)
	b = appendString(b, 7, m.Level)
	b = appendString(b, 8, m.Role)
	b = appendString(b, 9, m.Title)
	return b
}

func (m *GroupMessageSender) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.UserID = f.int64()
		case 2:
			m.Nickname = f.str()
		case 3:
			m.Card = f.str()
		case 4:
			m.Sex = f.str()
		case 5:
			m.Age = f.int32()
		case 6:
			m.Area = f.str()
		case 7:
			m.Level = f.str()
		case 8:
			m.Role = f.str()
		case 9:
			m.Title = f.str()
		}
		return nil
	})
}

type GroupMessageEvent struct {
	Time        int64
	SelfID      int64
	PostType    string // "message"
	MessageType string // "group"
	SubType     string
	MessageID   []byte // serialized MessageReceipt
	GroupID     int64
	UserID      int64
	Anonymous   *Anonymous
	Message     []*Message
	RawMessage  string
	Font        int32
	Sender      *GroupMessageSender
	Extra       map[string]string
}

func (*GroupMessageEvent) FrameType() FrameType { return FrameTypeGroupMessageEvent }

func (m *GroupMessageEvent) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.Time)
	b = appendInt64(b, 2, m.SelfID)
	b = appendString(b, 3, m.PostType)
	b = appendString(b, 4, m.MessageType)
	b = appendString(b, 5, m.SubType)
	b = appendBytes(b, 6, m.MessageID)
	b = appendInt64(b, 7, m.GroupID)
	b = appendInt64(b, 8, m.UserID)
	if m.Anonymous != nil {
		b = appendEmbedded(b, 9, m.Anonymous)
	}
	b = appendMessages(b, 10, m.Message)
	b = appendString(b, 11, m.RawMessage)
	b = appendInt32(b, 12, m.Font)
	if m.Sender != nil {
		b = appendEmbedded(b, 13, m.Sender)
	}
	b = appendStringMap(b, 14, m.Extra)
	return b
}

func (m *GroupMessageEvent) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		var err error
		switch f.num {
		case 1:
			m.Time = f.int64()
		case 2:
			m.SelfID = f.int64()
		case 3:
			m.PostType = f.str()
		case 4:
			m.MessageType = f.str()
		case 5:
			m.SubType = f.str()
		case 6:
			m.MessageID = f.bytes()
		case 7:
			m.GroupID = f.int64()
		case 8:
			m.UserID = f.int64()
		case 9:
			m.Anonymous = &Anonymous{}
			err = m.Anonymous.unmarshal(f.b)
		case 10:
			m.Message, err = consumeMessage(f, m.Message)
		case 11:
			m.RawMessage = f.str()
		case 12:
			m.Font = f.int32()
		case 13:
			m.Sender = &GroupMessageSender{}
			err = m.Sender.unmarshal(f.b)
		case 14:
			var k, v string
			k, v, err = f.mapEntry()
			if err == nil {
				if m.Extra == nil {
					m.Extra = make(map[string]string)
				}
				m.Extra[k] = v
			}
		}
		return err
	})
}

type GroupUploadFile struct {
	ID    string
	Name  string
	Size  int64
	Busid int64
}

func (m *GroupUploadFile) marshal(b []byte) []byte {
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.Name)
	b = appendInt64(b, 3, m.Size)
	b = appendInt64(b, 4, m.Busid)
	return b
}

func (m *GroupUploadFile) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		switch f.num {
		case 1:
			m.ID = f.str()
		case 2:
			m.Name = f.str()
		case 3:
			m.Size = f.int64()
		case 4:
			m.Busid = f.int64()
		}
		return nil
	})
}

type GroupUploadNoticeEvent struct {
	Time       int64
	SelfID     int64
	PostType   string // "notice"
	NoticeType string // "group_upload"
	GroupID    int64
	UserID     int64
	File       *GroupUploadFile
	Extra      map[string]string
}

func (*GroupUploadNoticeEvent) FrameType() FrameType { return FrameTypeGroupUploadNoticeEvent }

func (m *GroupUploadNoticeEvent) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.Time)
	b = appendInt64(b, 2, m.SelfID)
	b = appendString(b, 3, m.PostType)
	b = appendString(b, 4, m.NoticeType)
	b = appendInt64(b, 5, m.GroupID)
	b = appendInt64(b, 6, m.UserID)
	if m.File != nil {
		b = appendEmbedded(b, 7, m.File)
	}
	b = appendStringMap(b, 8, m.Extra)
	return b
}

func (m *GroupUploadNoticeEvent) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		var err error
		switch f.num {
		case 1:
			m.Time = f.int64()
		case 2:
			m.SelfID = f.int64()
		case 3:
			m.PostType = f.str()
		case 4:
			m.NoticeType = f.str()
		case 5:
			m.GroupID = f.int64()
		case 6:
			m.UserID = f.int64()
		case 7:
			m.File = &GroupUploadFile{}
			err = m.File.unmarshal(f.b)
		case 8:
			var k, v string
			k, v, err = f.mapEntry()
			if err == nil {
				if m.Extra == nil {
					m.Extra = make(map[string]string)
				}
				m.Extra[k] = v
			}
		}
		return err
	})
}

type GroupAdminNoticeEvent struct {
	Time       int64
	SelfID     int64
	PostType   string // "notice"
	NoticeType string // "group_admin"
	SubType    string // "set" | "unset"
	GroupID    int64
	UserID     int64
	Extra      map[string]string
}

func (*GroupAdminNoticeEvent) FrameType() FrameType { return FrameTypeGroupAdminNoticeEvent }

func (m *GroupAdminNoticeEvent) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.Time)
	b = appendInt64(b, 2, m.SelfID)
	b = appendString(b, 3, m.PostType)
	b = appendString(b, 4, m.NoticeType)
	b = appendString(b, 5, m.SubType)
	b = appendInt64(b, 6, m.GroupID)
	b = appendInt64(b, 7, m.UserID)
	b = appendStringMap(b, 8, m.Extra)
	return b
}

func (m *GroupAdminNoticeEvent) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		var err error
		switch f.num {
		case 1:
			m.Time = f.int64()
		case 2:
			m.SelfID = f.int64()
		case 3:
			m.PostType = f.str()
		case 4:
			m.NoticeType = f.str()
		case 5:
			m.SubType = f.str()
		case 6:
			m.GroupID = f.int64()
		case 7:
			m.UserID = f.int64()
		case 8:
			var k, v string
			k, v, err = f.mapEntry()
			if err == nil {
				if m.Extra == nil {
					m.Extra = make(map[string]string)
				}
				m.Extra[k] = v
			}
		}
		return err
	})
}

type GroupDecreaseNoticeEvent struct {
	Time       int64
	SelfID     int64
	PostType   string // "notice"
	NoticeType string // "group_decrease"
	SubType    string // "leave" | "kick"
	GroupID    int64
	OperatorID int64
	UserID     int64
	Extra      map[string]string
}

func (*GroupDecreaseNoticeEvent) FrameType() FrameType { return FrameTypeGroupDecreaseNoticeEvent }

func (m *GroupDecreaseNoticeEvent) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.Time)
	b = appendInt64(b, 2, m.SelfID)
	b = appendString(b, 3, m.PostType)
	b = appendString(b, 4, m.NoticeType)
	b = appendString(b, 5, m.SubType)
	b = appendInt64(b, 6, m.GroupID)
	b = appendInt64(b, 7, m.OperatorID)
	b = appendInt64(b, 8, m.UserID)
	b = appendStringMap(b, 9, m.Extra)
	return b
}

func (m *GroupDecreaseNoticeEvent) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		var err error
		switch f.num {
		case 1:
			m.Time = f.int64()
		case 2:
			m.SelfID = f.int64()
		case 3:
			m.PostType = f.str()
		case 4:
			m.NoticeType = f.str()
		case 5:
			m.SubType = f.str()
		case 6:
			m.GroupID = f.int64()
		case 7:
			m.OperatorID = f.int64()
		case 8:
			m.UserID = f.int64()
		case 9:
			var k, v string
			k, v, err = f.mapEntry()
			if err == nil {
				if m.Extra == nil {
					m.Extra = make(map[string]string)
				}
				m.Extra[k] = v
			}
		}
		return err
	})
}

type GroupIncreaseNoticeEvent struct {
	Time       int64
	SelfID     int64
	PostType   string // "notice"
	NoticeType string // "group_increase"
	SubType    string
	GroupID    int64
	OperatorID int64
	UserID     int64
	Extra      map[string]string
}

func (*GroupIncreaseNoticeEvent) FrameType() FrameType { return FrameTypeGroupIncreaseNoticeEvent }

func (m *GroupIncreaseNoticeEvent) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.Time)
	b = appendInt64(b, 2, m.SelfID)
	b = appendString(b, 3, m.PostType)
	b = appendString(b, 4, m.NoticeType)
	b = appendString(b, 5, m.SubType)
	b = appendInt64(b, 6, m.GroupID)
	b = appendInt64(b, 7, m.OperatorID)
	b = appendInt64(b, 8, m.UserID)
	b = appendStringMap(b, 9, m.Extra)
	return b
}

func (m *GroupIncreaseNoticeEvent) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		var err error
		switch f.num {
		case 1:
			m.Time = f.int64()
		case 2:
			m.SelfID = f.int64()
		case 3:
			m.PostType = f.str()
		case 4:
			m.NoticeType = f.str()
		case 5:
			m.SubType = f.str()
		case 6:
			m.GroupID = f.int64()
		case 7:
			m.OperatorID = f.int64()
		case 8:
			m.UserID = f.int64()
		case 9:
			var k, v string
			k, v, err = f.mapEntry()
			if err == nil {
				if m.Extra == nil {
					m.Extra = make(map[string]string)
				}
				m.Extra[k] = v
			}
		}
		return err
	})
}

type GroupBanNoticeEvent struct {
	Time       int64
	SelfID     int64
	PostType   string // "notice"
	NoticeType string // "group_ban"
	SubType    string
	GroupID    int64
	OperatorID int64
	UserID     int64
	Duration   int64
	Extra      map[string]string
}

func (*GroupBanNoticeEvent) FrameType() FrameType { return FrameTypeGroupBanNoticeEvent }

func (m *GroupBanNoticeEvent) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.Time)
	b = appendInt64(b, 2, m.SelfID)
	b = appendString(b, 3, m.PostType)
	b = appendString(b, 4, m.NoticeType)
	b = appendString(b, 5, m.SubType)
	b = appendInt64(b, 6, m.GroupID)
	b = appendInt64(b, 7, m.OperatorID)
	b = appendInt64(b, 8, m.UserID)
	b = appendInt64(b, 9, m.Duration)
	b = appendStringMap(b, 10, m.Extra)
	return b
}

func (m *GroupBanNoticeEvent) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		var err error
		switch f.num {
		case 1:
			m.Time = f.int64()
		case 2:
			m.SelfID = f.int64()
		case 3:
			m.PostType = f.str()
		case 4:
			m.NoticeType = f.str()
		case 5:
			m.SubType = f.str()
		case 6:
			m.GroupID = f.int64()
		case 7:
			m.OperatorID = f.int64()
		case 8:
			m.UserID = f.int64()
		case 9:
			m.Duration = f.int64()
		case 10:
			var k, v string
			k, v, err = f.mapEntry()
			if err == nil {
				if m.Extra == nil {
					m.Extra = make(map[string]string)
				}
				m.Extra[k] = v
			}
		}
		return err
	})
}

type FriendAddNoticeEvent struct {
	Time       int64
	SelfID     int64
	PostType   string // "notice"
	NoticeType string // "friend_add"
	UserID     int64
	Extra      map[string]string
}

func (*FriendAddNoticeEvent) FrameType() FrameType { return FrameTypeFriendAddNoticeEvent }

func (m *FriendAddNoticeEvent) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.Time)
	b = appendInt64(b, 2, m.SelfID)
	b = appendString(b, 3, m.PostType)
	b = appendString(b, 4, m.NoticeType)
	b = appendInt64(b, 5, m.UserID)
	b = appendStringMap(b, 6, m.Extra)
	return b
}

func (m *FriendAddNoticeEvent) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		var err error
		switch f.num {
		case 1:
			m.Time = f.int64()
		case 2:
			m.SelfID = f.int64()
		case 3:
			m.PostType = f.str()
		case 4:
			m.NoticeType = f.str()
		case 5:
			m.UserID = f.int64()
		case 6:
			var k, v string
			k, v, err = f.mapEntry()
			if err == nil {
				if m.Extra == nil {
					m.Extra = make(map[string]string)
				}
				m.Extra[k] = v
			}
		}
		return err
	})
}

type GroupRecallNoticeEvent struct {
	Time       int64
	SelfID     int64
	PostType   string // "notice"
	NoticeType string // "group_recall"
	GroupID    int64
	UserID     int64
	OperatorID int64
	MessageID  int32 // native message seq
	Extra      map[string]string
}

func (*GroupRecallNoticeEvent) FrameType() FrameType { return FrameTypeGroupRecallNoticeEvent }

func (m *GroupRecallNoticeEvent) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.Time)
	b = appendInt64(b, 2, m.SelfID)
	b = appendString(b, 3, m.PostType)
	b = appendString(b, 4, m.NoticeType)
	b = appendInt64(b, 5, m.GroupID)
	b = appendInt64(b, 6, m.UserID)
	b = appendInt64(b, 7, m.OperatorID)
	b = appendInt32(b, 8, m.MessageID)
	b = appendStringMap(b, 9, m.Extra)
	return b
}

func (m *GroupRecallNoticeEvent) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		var err error
		switch f.num {
		case 1:
			m.Time = f.int64()
		case 2:
			m.SelfID = f.int64()
		case 3:
			m.PostType = f.str()
		case 4:
			m.NoticeType = f.str()
		case 5:
			m.GroupID = f.int64()
		case 6:
			m.UserID = f.int64()
		case 7:
			m.OperatorID = f.int64()
		case 8:
			m.MessageID = f.int32()
		case 9:
			var k, v string
			k, v, err = f.mapEntry()
			if err == nil {
				if m.Extra == nil {
					m.Extra = make(map[string]string)
				}
				m.Extra[k] = v
			}
		}
		return err
	})
}

type FriendRecallNoticeEvent struct {
	Time       int64
	SelfID     int64
	PostType   string // "notice"
	NoticeType string // "friend_recall"
	UserID     int64
	MessageID  int32 // native message seq
	Extra      map[string]string
}

func (*FriendRecallNoticeEvent) FrameType() FrameType { return FrameTypeFriendRecallNoticeEvent }

func (m *FriendRecallNoticeEvent) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.Time)
	b = appendInt64(b, 2, m.SelfID)
	b = appendString(b, 3, m.PostType)
	b = appendString(b, 4, m.NoticeType)
	b = appendInt64(b, 5, m.UserID)
	b = appendInt32(b, 6, m.MessageID)
	b = appendStringMap(b, 7, m.Extra)
	return b
}

func (m *FriendRecallNoticeEvent) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		var err error
		switch f.num {
		case 1:
			m.Time = f.int64()
		case 2:
			m.SelfID = f.int64()
		case 3:
			m.PostType = f.str()
		case 4:
			m.NoticeType = f.str()
		case 5:
			m.UserID = f.int64()
		case 6:
			m.MessageID = f.int32()
		case 7:
			var k, v string
			k, v, err = f.mapEntry()
			if err == nil {
				if m.Extra == nil {
					m.Extra = make(map[string]string)
				}
				m.Extra[k] = v
			}
		}
		return err
	})
}

type FriendRequestEvent struct {
	Time        int64
	SelfID      int64
	PostType    string // "request"
	RequestType string // "friend"
	UserID      int64
	Comment     string
	Flag        string // "<req_uin>:<msg_seq>"
	Extra       map[string]string
}

func (*FriendRequestEvent) FrameType() FrameType { return FrameTypeFriendRequestEvent }

func (m *FriendRequestEvent) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.Time)
	b = appendInt64(b, 2, m.SelfID)
	b = appendString(b, 3, m.PostType)
	b = appendString(b, 4, m.RequestType)
	b = appendInt64(b, 5, m.UserID)
	b = appendString(b, 6, m.Comment)
	b = appendString(b, 7, m.Flag)
	b = appendStringMap(b, 8, m.Extra)
	return b
}

func (m *FriendRequestEvent) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		var err error
		switch f.num {
		case 1:
			m.Time = f.int64()
		case 2:
			m.SelfID = f.int64()
		case 3:
			m.PostType = f.str()
		case 4:
			m.RequestType = f.str()
		case 5:
			m.UserID = f.int64()
		case 6:
			m.Comment = f.str()
		case 7:
			m.Flag = f.str()
		case 8:
			var k, v string
			k, v, err = f.mapEntry()
			if err == nil {
				if m.Extra == nil {
					m.Extra = make(map[string]string)
				}
				m.Extra[k] = v
			}
		}
		return err
	})
}

type GroupRequestEvent struct {
	Time        int64
	SelfID      int64
	PostType    string // "request"
	RequestType string // "group"
	SubType     string // "is_invite," and/or "suspicious,"
	GroupID     int64
	UserID      int64
	Comment     string
	Flag        string // "<group_code>:<req_uin>:<msg_seq>"
	Extra       map[string]string
}

func (*GroupRequestEvent) FrameType() FrameType { return FrameTypeGroupRequestEvent }

func (m *GroupRequestEvent) marshal(b []byte) []byte {
	b = appendInt64(b, 1, m.Time)
	b = appendInt64(b, 2, m.SelfID)
	b = appendString(b, 3, m.PostType)
	b = appendString(b, 4, m.RequestType)
	b = appendString(b, 5, m.SubType)
	b = appendInt64(b, 6, m.GroupID)
	b = appendInt64(b, 7, m.UserID)
	b = appendString(b, 8, m.Comment)
	b = appendString(b, 9, m.Flag)
	b = appendStringMap(b, 10, m.Extra)
	return b
}

func (m *GroupRequestEvent) unmarshal(buf []byte) error {
	return walkFields(buf, func(f field) error {
		var err error
		switch f.num {
		case 1:
			m.Time = f.int64()
		case 2:
			m.SelfID = f.int64()
		case 3:
			m.PostType = f.str()
		case 4:
			m.RequestType = f.str()
		case 5:
			m.SubType = f.str()
		case 6:
			m.GroupID = f.int64()
		case 7:
			m.UserID = f.int64()
		case 8:
			m.Comment = f.str()
		case 9:
			m.Flag = f.str()
		case 10:
			var k, v string
			k, v, err = f.mapEntry()
			if err == nil {
				if m.Extra == nil {
					m.Extra = make(map[string]string)
				}
				m.Extra[k] = v
			}
		}
		return err
	})
}
