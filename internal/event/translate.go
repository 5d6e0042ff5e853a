// Package event translates native driver events into wire event bodies for
// plugin fan-out.
package event

import (
	"context"
	"fmt"
	"time"

	"github.com/nextlevelbuilder/pbgate/internal/driver"
	"github.com/nextlevelbuilder/pbgate/internal/msgconv"
	"github.com/nextlevelbuilder/pbgate/pkg/onebot"
)

// RoleSource answers group role lookups for message senders. Lookups are
// best effort; implementations return "member" when unsure.
type RoleSource interface {
	GroupRole(ctx context.Context, groupCode, uin int64) string
}

// Translate maps one native event to its wire body. It returns nil for
// events with no wire representation; those are dropped from fan-out.
func Translate(ctx context.Context, client driver.Client, roles RoleSource, ev driver.Event) onebot.Body {
	selfID := client.Uin()
	now := time.Now().Unix()

	switch ev := ev.(type) {
	case driver.FriendMessageEvent:
		msgs := msgconv.ToWire(ev.Elements)
		receipt := &onebot.MessageReceipt{
			SenderID: ev.FromUin,
			Time:     ev.Time,
			Seqs:     ev.Seqs,
			Rands:    ev.Rands,
		}
		return &onebot.PrivateMessageEvent{
			Time:        eventTime(ev.Time, now),
			SelfID:      selfID,
			PostType:    "message",
			MessageType: "private",
			SubType:     "friend",
			MessageID:   receipt.Encode(),
			UserID:      ev.FromUin,
			Message:     msgs,
			RawMessage:  msgconv.ToXML(msgs),
			Sender: &onebot.PrivateMessageSender{
				UserID:   ev.FromUin,
				Nickname: ev.FromNick,
			},
		}

	case driver.GroupMessageEvent:
		msgs := msgconv.ToWire(ev.Elements)
		receipt := &onebot.MessageReceipt{
			SenderID: ev.FromUin,
			Time:     ev.Time,
			Seqs:     ev.Seqs,
			Rands:    ev.Rands,
			GroupID:  ev.GroupCode,
		}
		return &onebot.GroupMessageEvent{
			Time:        eventTime(ev.Time, now),
			SelfID:      selfID,
			PostType:    "message",
			MessageType: "group",
			SubType:     "normal",
			MessageID:   receipt.Encode(),
			GroupID:     ev.GroupCode,
			UserID:      ev.FromUin,
			Message:     msgs,
			RawMessage:  msgconv.ToXML(msgs),
			Sender: &onebot.GroupMessageSender{
				UserID: ev.FromUin,
				Card:   ev.FromCard,
				Role:   roles.GroupRole(ctx, ev.GroupCode, ev.FromUin),
			},
		}

	case driver.GroupLeaveEvent:
		subType := "leave"
		operator := ev.MemberUin
		if ev.OperatorUin != 0 {
			subType = "kick"
			operator = ev.OperatorUin
		}
		return &onebot.GroupDecreaseNoticeEvent{
			Time:       now,
			SelfID:     selfID,
			PostType:   "notice",
			NoticeType: "group_decrease",
			SubType:    subType,
			GroupID:    ev.GroupCode,
			OperatorID: operator,
			UserID:     ev.MemberUin,
		}

	case driver.NewMemberEvent:
		return &onebot.GroupIncreaseNoticeEvent{
			Time:       now,
			SelfID:     selfID,
			PostType:   "notice",
			NoticeType: "group_increase",
			SubType:    "approve",
			GroupID:    ev.GroupCode,
			OperatorID: ev.MemberUin,
			UserID:     ev.MemberUin,
		}

	case driver.GroupMuteEvent:
		subType := "ban"
		if ev.Duration == 0 {
			subType = "lift_ban"
		}
		return &onebot.GroupBanNoticeEvent{
			Time:       now,
			SelfID:     selfID,
			PostType:   "notice",
			NoticeType: "group_ban",
			SubType:    subType,
			GroupID:    ev.GroupCode,
			OperatorID: ev.OperatorUin,
			UserID:     ev.TargetUin,
			Duration:   ev.Duration,
		}

	case driver.MemberPermissionChangeEvent:
		subType := "unset"
		if ev.Permission == driver.PermissionAdmin {
			subType = "set"
		}
		return &onebot.GroupAdminNoticeEvent{
			Time:       now,
			SelfID:     selfID,
			PostType:   "notice",
			NoticeType: "group_admin",
			SubType:    subType,
			GroupID:    ev.GroupCode,
			UserID:     ev.MemberUin,
		}

	case driver.NewFriendEvent:
		return &onebot.FriendAddNoticeEvent{
			Time:       now,
			SelfID:     selfID,
			PostType:   "notice",
			NoticeType: "friend_add",
			UserID:     ev.FriendUin,
		}

	case driver.GroupMessageRecallEvent:
		return &onebot.GroupRecallNoticeEvent{
			Time:       eventTime(ev.Time, now),
			SelfID:     selfID,
			PostType:   "notice",
			NoticeType: "group_recall",
			GroupID:    ev.GroupCode,
			UserID:     ev.AuthorUin,
			OperatorID: ev.OperatorUin,
			MessageID:  ev.MsgSeq,
		}

	case driver.FriendMessageRecallEvent:
		return &onebot.FriendRecallNoticeEvent{
			Time:       eventTime(ev.Time, now),
			SelfID:     selfID,
			PostType:   "notice",
			NoticeType: "friend_recall",
			UserID:     ev.FriendUin,
			MessageID:  ev.MsgSeq,
		}

	case driver.FriendRequestEvent:
		return &onebot.FriendRequestEvent{
			Time:        now,
			SelfID:      selfID,
			PostType:    "request",
			RequestType: "friend",
			UserID:      ev.ReqUin,
			Comment:     ev.Message,
			Flag:        fmt.Sprintf("%d:%d", ev.ReqUin, ev.MsgSeq),
		}

	case driver.JoinGroupRequestEvent:
		var subType string
		if ev.InvitorUin != 0 {
			subType += "is_invite,"
		}
		if ev.Suspicious {
			subType += "suspicious,"
		}
		out := &onebot.GroupRequestEvent{
			Time:        now,
			SelfID:      selfID,
			PostType:    "request",
			RequestType: "group",
			SubType:     subType,
			GroupID:     ev.GroupCode,
			UserID:      ev.ReqUin,
			Comment:     ev.Message,
			Flag:        fmt.Sprintf("%d:%d:%d", ev.GroupCode, ev.ReqUin, ev.MsgSeq),
		}
		if ev.InvitorUin != 0 {
			out.Extra = map[string]string{"invitor_uin": fmt.Sprintf("%d", ev.InvitorUin)}
		}
		return out

	case driver.SelfInvitedEvent:
		return &onebot.GroupRequestEvent{
			Time:        now,
			SelfID:      selfID,
			PostType:    "request",
			RequestType: "group",
			SubType:     "is_invite,",
			GroupID:     ev.GroupCode,
			UserID:      ev.InvitorUin,
			Flag:        fmt.Sprintf("%d:%d:%d", ev.GroupCode, ev.InvitorUin, ev.MsgSeq),
			Extra:       map[string]string{"invitor_uin": fmt.Sprintf("%d", ev.InvitorUin)},
		}
	}
	return nil
}

func eventTime(t, fallback int64) int64 {
	if t != 0 {
		return t
	}
	return fallback
}
