// Package onebot implements the protobuf wire schema exchanged with plugin
// processes over WebSocket. See onebot.proto for field numbers.
package onebot

import (
	"fmt"
	"log/slog"

	"google.golang.org/protobuf/encoding/protowire"
)

// FrameType identifies the Frame data variant. Values match the oneof field
// numbers in onebot.proto: API requests are below 100, a response is its
// request + 100, events start at 301.
type FrameType int32

const (
	FrameTypeUnknown FrameType = 0

	FrameTypeSendPrivateMsgReq       FrameType = 11
	FrameTypeSendGroupMsgReq         FrameType = 12
	FrameTypeDeleteMsgReq            FrameType = 13
	FrameTypeSendLikeReq             FrameType = 14
	FrameTypeSetGroupKickReq         FrameType = 15
	FrameTypeSetGroupBanReq          FrameType = 16
	FrameTypeSetGroupWholeBanReq     FrameType = 17
	FrameTypeSetGroupAdminReq        FrameType = 18
	FrameTypeSetGroupCardReq         FrameType = 19
	FrameTypeSetGroupNameReq         FrameType = 20
	FrameTypeSetGroupLeaveReq        FrameType = 21
	FrameTypeSetGroupSpecialTitleReq FrameType = 22
	FrameTypeGetLoginInfoReq         FrameType = 23
	FrameTypeGetStrangerInfoReq      FrameType = 24
	FrameTypeGetFriendListReq        FrameType = 25
	FrameTypeGetGroupInfoReq         FrameType = 26
	FrameTypeGetGroupListReq         FrameType = 27
	FrameTypeGetGroupMemberInfoReq   FrameType = 28
	FrameTypeGetGroupMemberListReq   FrameType = 29

	FrameTypeSendPrivateMsgResp       FrameType = 111
	FrameTypeSendGroupMsgResp         FrameType = 112
	FrameTypeDeleteMsgResp            FrameType = 113
	FrameTypeSendLikeResp             FrameType = 114
	FrameTypeSetGroupKickResp         FrameType = 115
	FrameTypeSetGroupBanResp          FrameType = 116
	FrameTypeSetGroupWholeBanResp     FrameType = 117
	FrameTypeSetGroupAdminResp        FrameType = 118
	FrameTypeSetGroupCardResp         FrameType = 119
	FrameTypeSetGroupNameResp         FrameType = 120
	FrameTypeSetGroupLeaveResp        FrameType = 121
	FrameTypeSetGroupSpecialTitleResp FrameType = 122
	FrameTypeGetLoginInfoResp         FrameType = 123
	FrameTypeGetStrangerInfoResp      FrameType = 124
	FrameTypeGetFriendListResp        FrameType = 125
	FrameTypeGetGroupInfoResp         FrameType = 126
	FrameTypeGetGroupListResp         FrameType = 127
	FrameTypeGetGroupMemberInfoResp   FrameType = 128
	FrameTypeGetGroupMemberListResp   FrameType = 129

	FrameTypePrivateMessageEvent      FrameType = 301
	FrameTypeGroupMessageEvent        FrameType = 302
	FrameTypeGroupUploadNoticeEvent   FrameType = 303
	FrameTypeGroupAdminNoticeEvent    FrameType = 304
	FrameTypeGroupDecreaseNoticeEvent FrameType = 305
	FrameTypeGroupIncreaseNoticeEvent FrameType = 306
	FrameTypeGroupBanNoticeEvent      FrameType = 307
	FrameTypeFriendAddNoticeEvent     FrameType = 308
	FrameTypeGroupRecallNoticeEvent   FrameType = 309
	FrameTypeFriendRecallNoticeEvent  FrameType = 310
	FrameTypeFriendRequestEvent       FrameType = 311
	FrameTypeGroupRequestEvent        FrameType = 312
)

// ResponseOffset is added to a request frame type to form its response type.
const ResponseOffset = 100

// Body is one variant of the Frame data union. The set of implementations is
// sealed to this package; decoding an unlisted variant drops it with a
// warning and leaves Frame.Data nil.
type Body interface {
	// FrameType returns the frame type matching this variant.
	FrameType() FrameType
	marshal(b []byte) []byte
	unmarshal(b []byte) error
}

// Frame is the envelope carried in every WebSocket binary message.
type Frame struct {
	BotID     int64
	FrameType FrameType
	Echo      string
	Ok        bool
	Data      Body
	Extra     map[string]string
}

const (
	frameFieldBotID = 1
	frameFieldType  = 2
	frameFieldEcho  = 3
	frameFieldOk    = 4
	frameFieldExtra = 5
)

// Marshal encodes the frame to protobuf bytes.
func (f *Frame) Marshal() []byte {
	b := appendInt64(nil, frameFieldBotID, f.BotID)
	b = appendInt32(b, frameFieldType, int32(f.FrameType))
	b = appendString(b, frameFieldEcho, f.Echo)
	b = appendBool(b, frameFieldOk, f.Ok)
	b = appendStringMap(b, frameFieldExtra, f.Extra)
	if f.Data != nil {
		b = appendEmbedded(b, protowire.Number(f.Data.FrameType()), f.Data)
	}
	return b
}

// UnmarshalFrame decodes a frame from protobuf bytes. A data variant not
// present in the schema is dropped with a warning; the rest of the envelope
// is still returned.
func UnmarshalFrame(buf []byte) (*Frame, error) {
	f := &Frame{}
	err := walkFields(buf, func(fd field) error {
		switch fd.num {
		case frameFieldBotID:
			f.BotID = fd.int64()
		case frameFieldType:
			f.FrameType = FrameType(fd.int32())
		case frameFieldEcho:
			f.Echo = fd.str()
		case frameFieldOk:
			f.Ok = fd.bool()
		case frameFieldExtra:
			k, v, err := fd.mapEntry()
			if err != nil {
				return err
			}
			if f.Extra == nil {
				f.Extra = make(map[string]string)
			}
			f.Extra[k] = v
		default:
			body := newBody(FrameType(fd.num))
			if body == nil {
				slog.Warn("onebot: unknown frame data variant dropped", "field", int(fd.num))
				return nil
			}
			if err := body.unmarshal(fd.b); err != nil {
				return fmt.Errorf("onebot: decode %T: %w", body, err)
			}
			f.Data = body
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// newBody returns a zero value of the variant carried at the given oneof
// field number, or nil if the schema has no such variant.
func newBody(t FrameType) Body {
	switch t {
	case FrameTypeSendPrivateMsgReq:
		return &SendPrivateMsgReq{}
	case FrameTypeSendGroupMsgReq:
		return &SendGroupMsgReq{}
	case FrameTypeDeleteMsgReq:
		return &DeleteMsgReq{}
	case FrameTypeSendLikeReq:
		return &SendLikeReq{}
	case FrameTypeSetGroupKickReq:
		return &SetGroupKickReq{}
	case FrameTypeSetGroupBanReq:
		return &SetGroupBanReq{}
	case FrameTypeSetGroupWholeBanReq:
		return &SetGroupWholeBanReq{}
	case FrameTypeSetGroupAdminReq:
		return &SetGroupAdminReq{}
	case FrameTypeSetGroupCardReq:
		return &SetGroupCardReq{}
	case FrameTypeSetGroupNameReq:
		return &SetGroupNameReq{}
	case FrameTypeSetGroupLeaveReq:
		return &SetGroupLeaveReq{}
	case FrameTypeSetGroupSpecialTitleReq:
		return &SetGroupSpecialTitleReq{}
	case FrameTypeGetLoginInfoReq:
		return &GetLoginInfoReq{}
	case FrameTypeGetStrangerInfoReq:
		return &GetStrangerInfoReq{}
	case FrameTypeGetFriendListReq:
		return &GetFriendListReq{}
	case FrameTypeGetGroupInfoReq:
		return &GetGroupInfoReq{}
	case FrameTypeGetGroupListReq:
		return &GetGroupListReq{}
	case FrameTypeGetGroupMemberInfoReq:
		return &GetGroupMemberInfoReq{}
	case FrameTypeGetGroupMemberListReq:
		return &GetGroupMemberListReq{}
	case FrameTypeSendPrivateMsgResp:
		return &SendPrivateMsgResp{}
	case FrameTypeSendGroupMsgResp:
		return &SendGroupMsgResp{}
	case FrameTypeDeleteMsgResp:
		return &DeleteMsgResp{}
	case FrameTypeSendLikeResp:
		return &SendLikeResp{}
	case FrameTypeSetGroupKickResp:
		return &SetGroupKickResp{}
	case FrameTypeSetGroupBanResp:
		return &SetGroupBanResp{}
	case FrameTypeSetGroupWholeBanResp:
		return &SetGroupWholeBanResp{}
	case FrameTypeSetGroupAdminResp:
		return &SetGroupAdminResp{}
	case FrameTypeSetGroupCardResp:
		return &SetGroupCardResp{}
	case FrameTypeSetGroupNameResp:
		return &SetGroupNameResp{}
	case FrameTypeSetGroupLeaveResp:
		return &SetGroupLeaveResp{}
	case FrameTypeSetGroupSpecialTitleResp:
		return &SetGroupSpecialTitleResp{}
	case FrameTypeGetLoginInfoResp:
		return &GetLoginInfoResp{}
	case FrameTypeGetStrangerInfoResp:
		return &GetStrangerInfoResp{}
	case FrameTypeGetFriendListResp:
		return &GetFriendListResp{}
	case FrameTypeGetGroupInfoResp:
		return &GetGroupInfoResp{}
	case FrameTypeGetGroupListResp:
		return &GetGroupListResp{}
	case FrameTypeGetGroupMemberInfoResp:
		return &GetGroupMemberInfoResp{}
	case FrameTypeGetGroupMemberListResp:
		return &GetGroupMemberListResp{}
	case FrameTypePrivateMessageEvent:
		return &PrivateMessageEvent{}
	case FrameTypeGroupMessageEvent:
		return &GroupMessageEvent{}
	case FrameTypeGroupUploadNoticeEvent:
		return &GroupUploadNoticeEvent{}
	case FrameTypeGroupAdminNoticeEvent:
		return &GroupAdminNoticeEvent{}
	case FrameTypeGroupDecreaseNoticeEvent:
		return &GroupDecreaseNoticeEvent{}
	case FrameTypeGroupIncreaseNoticeEvent:
		return &GroupIncreaseNoticeEvent{}
	case FrameTypeGroupBanNoticeEvent:
		return &GroupBanNoticeEvent{}
	case FrameTypeFriendAddNoticeEvent:
		return &FriendAddNoticeEvent{}
	case FrameTypeGroupRecallNoticeEvent:
		return &GroupRecallNoticeEvent{}
	case FrameTypeFriendRecallNoticeEvent:
		return &FriendRecallNoticeEvent{}
	case FrameTypeFriendRequestEvent:
		return &FriendRequestEvent{}
	case FrameTypeGroupRequestEvent:
		return &GroupRequestEvent{}
	}
	return nil
}
