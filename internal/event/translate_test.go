package event

import (
	"context"
	"testing"

	"github.com/nextlevelbuilder/pbgate/internal/driver"
	"github.com/nextlevelbuilder/pbgate/internal/driver/drivertest"
	"github.com/nextlevelbuilder/pbgate/pkg/onebot"
)

type fixedRoles struct{ role string }

func (r fixedRoles) GroupRole(ctx context.Context, groupCode, uin int64) string { return r.role }

func TestTranslateGroupMessage(t *testing.T) {
	client := drivertest.New(10001)
	body := Translate(context.Background(), client, fixedRoles{"admin"}, driver.GroupMessageEvent{
		GroupCode: 7,
		FromUin:   9,
		FromCard:  "ada",
		Time:      1700,
		Seqs:      []int32{5},
		Rands:     []int32{6},
		Elements:  []driver.Element{driver.Text{Content: "hi"}},
	})
	ev, ok := body.(*onebot.GroupMessageEvent)
	if !ok {
		t.Fatalf("got %T, want *onebot.GroupMessageEvent", body)
	}
	if ev.SelfID != 10001 || ev.GroupID != 7 || ev.UserID != 9 || ev.Time != 1700 {
		t.Errorf("envelope: %+v", ev)
	}
	if ev.PostType != "message" || ev.MessageType != "group" {
		t.Errorf("typing: post=%q message=%q", ev.PostType, ev.MessageType)
	}
	if ev.RawMessage != "hi" {
		t.Errorf("raw_message = %q, want %q", ev.RawMessage, "hi")
	}
	if ev.Sender.Role != "admin" || ev.Sender.Card != "ada" {
		t.Errorf("sender: %+v", ev.Sender)
	}
	receipt, err := onebot.DecodeReceipt(ev.MessageID)
	if err != nil {
		t.Fatalf("DecodeReceipt: %v", err)
	}
	if receipt.SenderID != 9 || receipt.GroupID != 7 || receipt.Time != 1700 {
		t.Errorf("receipt: %+v", receipt)
	}
}

func TestTranslatePrivateMessage(t *testing.T) {
	client := drivertest.New(10001)
	body := Translate(context.Background(), client, fixedRoles{"member"}, driver.FriendMessageEvent{
		FromUin:  100,
		FromNick: "bob",
		Time:     1701,
		Seqs:     []int32{1},
		Rands:    []int32{2},
		Elements: []driver.Element{driver.Text{Content: "yo"}},
	})
	ev, ok := body.(*onebot.PrivateMessageEvent)
	if !ok {
		t.Fatalf("got %T, want *onebot.PrivateMessageEvent", body)
	}
	if ev.SelfID != 10001 || ev.UserID != 100 || ev.Sender.Nickname != "bob" {
		t.Errorf("envelope: %+v", ev)
	}
	receipt, err := onebot.DecodeReceipt(ev.MessageID)
	if err != nil {
		t.Fatalf("DecodeReceipt: %v", err)
	}
	if receipt.GroupID != 0 {
		t.Errorf("receipt group_id = %d, want 0 for private", receipt.GroupID)
	}
}

func TestTranslateRequests(t *testing.T) {
	client := drivertest.New(10001)

	body := Translate(context.Background(), client, fixedRoles{"member"}, driver.FriendRequestEvent{
		ReqUin: 200, Message: "add me", MsgSeq: 31,
	})
	fr, ok := body.(*onebot.FriendRequestEvent)
	if !ok {
		t.Fatalf("got %T", body)
	}
	if fr.Flag != "200:31" {
		t.Errorf("friend flag = %q", fr.Flag)
	}

	body = Translate(context.Background(), client, fixedRoles{"member"}, driver.JoinGroupRequestEvent{
		GroupCode: 7, ReqUin: 200, MsgSeq: 32, InvitorUin: 9, Suspicious: true,
	})
	gr, ok := body.(*onebot.GroupRequestEvent)
	if !ok {
		t.Fatalf("got %T", body)
	}
	if gr.Flag != "7:200:32" {
		t.Errorf("group flag = %q", gr.Flag)
	}
	if gr.SubType != "is_invite,suspicious," {
		t.Errorf("sub_type = %q", gr.SubType)
	}
	if gr.Extra["invitor_uin"] != "9" {
		t.Errorf("extra = %+v", gr.Extra)
	}
}

func TestTranslateNotices(t *testing.T) {
	client := drivertest.New(10001)

	body := Translate(context.Background(), client, fixedRoles{"member"}, driver.GroupLeaveEvent{
		GroupCode: 7, MemberUin: 9, OperatorUin: 3,
	})
	dec := body.(*onebot.GroupDecreaseNoticeEvent)
	if dec.SubType != "kick" || dec.OperatorID != 3 || dec.UserID != 9 {
		t.Errorf("kick: %+v", dec)
	}

	body = Translate(context.Background(), client, fixedRoles{"member"}, driver.GroupMuteEvent{
		GroupCode: 7, OperatorUin: 3, TargetUin: 9, Duration: 0,
	})
	ban := body.(*onebot.GroupBanNoticeEvent)
	if ban.SubType != "lift_ban" {
		t.Errorf("sub_type = %q", ban.SubType)
	}

	body = Translate(context.Background(), client, fixedRoles{"member"}, driver.MemberPermissionChangeEvent{
		GroupCode: 7, MemberUin: 9, Permission: driver.PermissionAdmin,
	})
	adm := body.(*onebot.GroupAdminNoticeEvent)
	if adm.SubType != "set" {
		t.Errorf("sub_type = %q", adm.SubType)
	}
}

func TestTranslateUnknownEventDropped(t *testing.T) {
	client := drivertest.New(10001)
	if body := Translate(context.Background(), client, fixedRoles{"member"}, unknownEvent{}); body != nil {
		t.Errorf("got %T, want nil", body)
	}
}

type unknownEvent struct{ driver.Event }
