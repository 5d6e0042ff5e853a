package onebot

import (
	"bytes"
	"reflect"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestFrameRoundTrip(t *testing.T) {
	receipt := &MessageReceipt{SenderID: 10001, Time: 1700000000, Seqs: []int32{42}, Rands: []int32{-7}, GroupID: 99}

	cases := []struct {
		name  string
		frame *Frame
	}{
		{
			name: "send group msg request",
			frame: &Frame{
				BotID:     10001,
				FrameType: FrameTypeSendGroupMsgReq,
				Echo:      "e-1",
				Data: &SendGroupMsgReq{
					GroupID: 99,
					Message: []*Message{
						{Type: "text", Data: map[string]string{"text": "hello"}},
						{Type: "at", Data: map[string]string{"qq": "10002"}},
					},
				},
			},
		},
		{
			name: "send group msg response",
			frame: &Frame{
				BotID:     10001,
				FrameType: FrameTypeSendGroupMsgResp,
				Echo:      "e-1",
				Ok:        true,
				Data:      &SendGroupMsgResp{MessageID: receipt.Encode()},
			},
		},
		{
			name: "group message event",
			frame: &Frame{
				BotID:     10001,
				FrameType: FrameTypeGroupMessageEvent,
				Echo:      "7",
				Ok:        true,
				Extra:     map[string]string{"trace": "abc"},
				Data: &GroupMessageEvent{
					Time:        1700000000,
					SelfID:      10001,
					PostType:    "message",
					MessageType: "group",
					SubType:     "normal",
					MessageID:   receipt.Encode(),
					GroupID:     99,
					UserID:      10002,
					Message:     []*Message{{Type: "text", Data: map[string]string{"text": "hi"}}},
					RawMessage:  "hi",
					Sender: &GroupMessageSender{
						UserID:   10002,
						Nickname: "ada",
						Card:     "Ada",
						Role:     "admin",
					},
				},
			},
		},
		{
			name: "friend request event",
			frame: &Frame{
				BotID:     10001,
				FrameType: FrameTypeFriendRequestEvent,
				Data: &FriendRequestEvent{
					Time:        1700000001,
					SelfID:      10001,
					PostType:    "request",
					RequestType: "friend",
					UserID:      10003,
					Comment:     "hello",
					Flag:        "10003:123",
				},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := tc.frame.Marshal()
			got, err := UnmarshalFrame(buf)
			if err != nil {
				t.Fatalf("UnmarshalFrame: %v", err)
			}
			if !reflect.DeepEqual(got, tc.frame) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, tc.frame)
			}
		})
	}
}

func TestResponseTypeIsRequestPlusOffset(t *testing.T) {
	pairs := []struct {
		req, resp Body
	}{
		{&SendPrivateMsgReq{}, &SendPrivateMsgResp{}},
		{&SendGroupMsgReq{}, &SendGroupMsgResp{}},
		{&DeleteMsgReq{}, &DeleteMsgResp{}},
		{&SendLikeReq{}, &SendLikeResp{}},
		{&SetGroupKickReq{}, &SetGroupKickResp{}},
		{&SetGroupBanReq{}, &SetGroupBanResp{}},
		{&SetGroupWholeBanReq{}, &SetGroupWholeBanResp{}},
		{&SetGroupAdminReq{}, &SetGroupAdminResp{}},
		{&SetGroupCardReq{}, &SetGroupCardResp{}},
		{&SetGroupNameReq{}, &SetGroupNameResp{}},
		{&SetGroupLeaveReq{}, &SetGroupLeaveResp{}},
		{&SetGroupSpecialTitleReq{}, &SetGroupSpecialTitleResp{}},
		{&GetLoginInfoReq{}, &GetLoginInfoResp{}},
		{&GetStrangerInfoReq{}, &GetStrangerInfoResp{}},
		{&GetFriendListReq{}, &GetFriendListResp{}},
		{&GetGroupInfoReq{}, &GetGroupInfoResp{}},
		{&GetGroupListReq{}, &GetGroupListResp{}},
		{&GetGroupMemberInfoReq{}, &GetGroupMemberInfoResp{}},
		{&GetGroupMemberListReq{}, &GetGroupMemberListResp{}},
	}
	for _, p := range pairs {
		if got, want := p.resp.FrameType(), p.req.FrameType()+ResponseOffset; got != want {
			t.Errorf("%T: frame type %d, want %d", p.resp, got, want)
		}
	}
}

func TestUnmarshalFrameDropsUnknownVariant(t *testing.T) {
	f := &Frame{BotID: 5, FrameType: 999, Echo: "x", Ok: true}
	buf := f.Marshal()
	// Append a length-delimited field at an unassigned oneof number.
	buf = protowire.AppendTag(buf, 999, protowire.BytesType)
	buf = protowire.AppendBytes(buf, []byte{0x08, 0x01})

	got, err := UnmarshalFrame(buf)
	if err != nil {
		t.Fatalf("UnmarshalFrame: %v", err)
	}
	if got.Data != nil {
		t.Errorf("Data = %T, want nil", got.Data)
	}
	if got.BotID != 5 || got.Echo != "x" || !got.Ok {
		t.Errorf("envelope not preserved: %+v", got)
	}
}

func TestReceiptRoundTrip(t *testing.T) {
	r := &MessageReceipt{SenderID: 10002, Time: 1699999999, Seqs: []int32{1, 2, 3}, Rands: []int32{-1, 0x7fffffff}, GroupID: 0}
	got, err := DecodeReceipt(r.Encode())
	if err != nil {
		t.Fatalf("DecodeReceipt: %v", err)
	}
	if !reflect.DeepEqual(got, r) {
		t.Errorf("got %+v, want %+v", got, r)
	}
}

func TestMarshalOmitsZeroValues(t *testing.T) {
	f := &Frame{}
	if buf := f.Marshal(); len(buf) != 0 {
		t.Errorf("zero frame encodes to %d bytes, want 0", len(buf))
	}
}

func TestStringMapDeterministic(t *testing.T) {
	m := map[string]string{"b": "2", "a": "1", "c": "3"}
	first := appendStringMap(nil, 5, m)
	for i := 0; i < 16; i++ {
		if next := appendStringMap(nil, 5, m); !bytes.Equal(first, next) {
			t.Fatal("map encoding not deterministic")
		}
	}
}
