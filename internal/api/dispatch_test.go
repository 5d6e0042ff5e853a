package api

import (
	"context"
	"reflect"
	"testing"

	"github.com/nextlevelbuilder/pbgate/internal/driver"
	"github.com/nextlevelbuilder/pbgate/internal/driver/drivertest"
	"github.com/nextlevelbuilder/pbgate/internal/msgconv"
	"github.com/nextlevelbuilder/pbgate/internal/uri"
	"github.com/nextlevelbuilder/pbgate/pkg/onebot"
)

func newDispatcher() *Dispatcher {
	return NewDispatcher(msgconv.NewConverter(uri.NewFetcher(), ""))
}

func TestHandleFrameUnknownVariant(t *testing.T) {
	d := newDispatcher()
	client := drivertest.New(42)

	// A frame whose data variant the schema does not know arrives with
	// Data nil after decoding; the gateway still acknowledges it.
	resp := d.HandleFrame(context.Background(), client, &onebot.Frame{
		BotID:     42,
		FrameType: 99999,
		Echo:      "x",
	})
	if resp.BotID != 42 || resp.Echo != "x" {
		t.Errorf("envelope not copied: %+v", resp)
	}
	if resp.FrameType != 99999+onebot.ResponseOffset {
		t.Errorf("frame_type = %d, want %d", resp.FrameType, 99999+onebot.ResponseOffset)
	}
	if !resp.Ok {
		t.Error("ok = false, want true")
	}
	if resp.Data != nil {
		t.Errorf("data = %T, want absent", resp.Data)
	}
}

func TestHandleFrameSendPrivateMsg(t *testing.T) {
	d := newDispatcher()
	client := drivertest.New(10001)
	client.ReceiptValue = &driver.Receipt{Time: 1700, Seqs: []int32{7}, Rands: []int32{9}}

	resp := d.HandleFrame(context.Background(), client, &onebot.Frame{
		BotID:     10001,
		FrameType: onebot.FrameTypeSendPrivateMsgReq,
		Echo:      "e",
		Data: &onebot.SendPrivateMsgReq{
			UserID:     100,
			Message:    []*onebot.Message{{Type: "text", Data: map[string]string{"text": "hello"}}},
			AutoEscape: true,
		},
	})
	if resp.FrameType != onebot.FrameTypeSendPrivateMsgResp || !resp.Ok {
		t.Fatalf("response envelope: %+v", resp)
	}
	body, ok := resp.Data.(*onebot.SendPrivateMsgResp)
	if !ok {
		t.Fatalf("data = %T", resp.Data)
	}
	receipt, err := onebot.DecodeReceipt(body.MessageID)
	if err != nil {
		t.Fatalf("DecodeReceipt: %v", err)
	}
	want := &onebot.MessageReceipt{SenderID: 10001, Time: 1700, Seqs: []int32{7}, Rands: []int32{9}}
	if !reflect.DeepEqual(receipt, want) {
		t.Errorf("receipt = %+v, want %+v", receipt, want)
	}

	calls := client.CallsOf("SendFriendMessage")
	if len(calls) != 1 {
		t.Fatalf("SendFriendMessage calls = %d", len(calls))
	}
	if calls[0].Args[0].(int64) != 100 {
		t.Errorf("sent to %v, want 100", calls[0].Args[0])
	}
}

func TestHandleFrameDeleteMsg(t *testing.T) {
	d := newDispatcher()
	client := drivertest.New(10001)

	id := &onebot.MessageReceipt{SenderID: 555, Time: 1700, Seqs: []int32{7}, Rands: []int32{9}}
	resp := d.HandleFrame(context.Background(), client, &onebot.Frame{
		BotID:     10001,
		FrameType: onebot.FrameTypeDeleteMsgReq,
		Echo:      "e",
		Data:      &onebot.DeleteMsgReq{MessageID: id.Encode()},
	})
	if _, ok := resp.Data.(*onebot.DeleteMsgResp); !ok {
		t.Fatalf("data = %T", resp.Data)
	}

	calls := client.CallsOf("RecallFriendMessage")
	if len(calls) != 1 {
		t.Fatalf("RecallFriendMessage calls = %d", len(calls))
	}
	want := []any{int64(555), int64(1700), []int32{7}, []int32{9}}
	if !reflect.DeepEqual(calls[0].Args, want) {
		t.Errorf("args = %v, want %v", calls[0].Args, want)
	}

	groupID := &onebot.MessageReceipt{SenderID: 555, Time: 1700, Seqs: []int32{7}, Rands: []int32{9}, GroupID: 42}
	d.HandleFrame(context.Background(), client, &onebot.Frame{
		FrameType: onebot.FrameTypeDeleteMsgReq,
		Data:      &onebot.DeleteMsgReq{MessageID: groupID.Encode()},
	})
	if len(client.CallsOf("RecallGroupMessage")) != 1 {
		t.Error("group receipt did not route to RecallGroupMessage")
	}
}

func TestHandleFrameErrorYieldsEmptyData(t *testing.T) {
	d := newDispatcher()
	client := drivertest.New(10001)
	client.Err = context.DeadlineExceeded

	resp := d.HandleFrame(context.Background(), client, &onebot.Frame{
		BotID:     10001,
		FrameType: onebot.FrameTypeSetGroupKickReq,
		Echo:      "k",
		Data:      &onebot.SetGroupKickReq{GroupID: 7, UserID: 9},
	})
	if !resp.Ok {
		t.Error("ok = false, want true even on handler error")
	}
	if resp.Data != nil {
		t.Errorf("data = %T, want absent on error", resp.Data)
	}
	if resp.Echo != "k" || resp.FrameType != onebot.FrameTypeSetGroupKickResp {
		t.Errorf("envelope: %+v", resp)
	}
}

func TestHandleFrameSpecialTitlePassesUserID(t *testing.T) {
	d := newDispatcher()
	client := drivertest.New(10001)

	d.HandleFrame(context.Background(), client, &onebot.Frame{
		FrameType: onebot.FrameTypeSetGroupSpecialTitleReq,
		Data:      &onebot.SetGroupSpecialTitleReq{GroupID: 7, UserID: 9, SpecialTitle: "mvp"},
	})
	calls := client.CallsOf("GroupEditSpecialTitle")
	if len(calls) != 1 {
		t.Fatalf("GroupEditSpecialTitle calls = %d", len(calls))
	}
	if got := calls[0].Args[1].(int64); got != 9 {
		t.Errorf("user id = %d, want 9", got)
	}
}

func TestHandleFrameGetGroupMemberList(t *testing.T) {
	d := newDispatcher()
	client := drivertest.New(10001)
	client.Members = []*driver.GroupMember{
		{GroupCode: 7, Uin: 1, Permission: driver.PermissionOwner, Card: "boss"},
		{GroupCode: 7, Uin: 2, Permission: driver.PermissionMember},
	}

	resp := d.HandleFrame(context.Background(), client, &onebot.Frame{
		FrameType: onebot.FrameTypeGetGroupMemberListReq,
		Data:      &onebot.GetGroupMemberListReq{GroupID: 7},
	})
	body, ok := resp.Data.(*onebot.GetGroupMemberListResp)
	if !ok {
		t.Fatalf("data = %T", resp.Data)
	}
	if len(body.GroupMember) != 2 {
		t.Fatalf("members = %d", len(body.GroupMember))
	}
	if body.GroupMember[0].Role != "owner" || body.GroupMember[1].Role != "member" {
		t.Errorf("roles: %q, %q", body.GroupMember[0].Role, body.GroupMember[1].Role)
	}
}
