// Package api routes inbound plugin request frames to driver operations and
// builds the response frames.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nextlevelbuilder/pbgate/internal/driver"
	"github.com/nextlevelbuilder/pbgate/internal/errs"
	"github.com/nextlevelbuilder/pbgate/internal/msgconv"
	"github.com/nextlevelbuilder/pbgate/pkg/onebot"
)

// Dispatcher executes API request frames against a driver client.
type Dispatcher struct {
	conv   *msgconv.Converter
	log    *slog.Logger
	tracer trace.Tracer
}

// NewDispatcher returns a dispatcher using conv for outbound message chains.
func NewDispatcher(conv *msgconv.Converter) *Dispatcher {
	return &Dispatcher{
		conv:   conv,
		log:    slog.With("component", "api"),
		tracer: otel.Tracer("pbgate/api"),
	}
}

// HandleFrame executes one request frame and returns its response frame. The
// response always copies bot_id and echo, sets frame_type to the request's
// plus the response offset, and reports ok=true; a handler failure yields an
// empty data section, which is how plugins detect errors.
func (d *Dispatcher) HandleFrame(ctx context.Context, client driver.Client, req *onebot.Frame) *onebot.Frame {
	ctx, span := d.tracer.Start(ctx, "api.HandleFrame",
		trace.WithAttributes(
			attribute.Int64("bot.uin", req.BotID),
			attribute.Int("frame.type", int(req.FrameType)),
		))
	defer span.End()

	resp := &onebot.Frame{
		BotID:     req.BotID,
		FrameType: req.FrameType + onebot.ResponseOffset,
		Echo:      req.Echo,
		Ok:        true,
	}
	if req.Data == nil {
		// Malformed or unknown variant. Acknowledge without a body.
		resp.Ok = req.FrameType != 0
		return resp
	}

	body, err := d.dispatch(ctx, client, req.Data)
	if err != nil {
		d.log.Warn("api handler failed",
			"bot", req.BotID, "frame_type", int(req.FrameType), "error", err)
		return resp
	}
	resp.Data = body
	return resp
}

func (d *Dispatcher) dispatch(ctx context.Context, client driver.Client, data onebot.Body) (onebot.Body, error) {
	switch req := data.(type) {
	case *onebot.SendPrivateMsgReq:
		return d.sendPrivateMsg(ctx, client, req)
	case *onebot.SendGroupMsgReq:
		return d.sendGroupMsg(ctx, client, req)
	case *onebot.DeleteMsgReq:
		return d.deleteMsg(ctx, client, req)
	case *onebot.SendLikeReq:
		times := req.Times
		if times <= 0 {
			times = 1
		}
		if err := client.SendLike(ctx, req.UserID, times); err != nil {
			return nil, err
		}
		return &onebot.SendLikeResp{}, nil
	case *onebot.SetGroupKickReq:
		if err := client.GroupKick(ctx, req.GroupID, req.UserID, req.RejectAddRequest); err != nil {
			return nil, err
		}
		return &onebot.SetGroupKickResp{}, nil
	case *onebot.SetGroupBanReq:
		if err := client.GroupMute(ctx, req.GroupID, req.UserID, time.Duration(req.Duration)*time.Second); err != nil {
			return nil, err
		}
		return &onebot.SetGroupBanResp{}, nil
	case *onebot.SetGroupWholeBanReq:
		if err := client.GroupMuteAll(ctx, req.GroupID, req.Enable); err != nil {
			return nil, err
		}
		return &onebot.SetGroupWholeBanResp{}, nil
	case *onebot.SetGroupAdminReq:
		if err := client.GroupSetAdmin(ctx, req.GroupID, req.UserID, req.Enable); err != nil {
			return nil, err
		}
		return &onebot.SetGroupAdminResp{}, nil
	case *onebot.SetGroupCardReq:
		if err := client.EditGroupMemberCard(ctx, req.GroupID, req.UserID, req.Card); err != nil {
			return nil, err
		}
		return &onebot.SetGroupCardResp{}, nil
	case *onebot.SetGroupNameReq:
		if err := client.UpdateGroupName(ctx, req.GroupID, req.GroupName); err != nil {
			return nil, err
		}
		return &onebot.SetGroupNameResp{}, nil
	case *onebot.SetGroupLeaveReq:
		if err := client.GroupQuit(ctx, req.GroupID); err != nil {
			return nil, err
		}
		return &onebot.SetGroupLeaveResp{}, nil
	case *onebot.SetGroupSpecialTitleReq:
		if err := client.GroupEditSpecialTitle(ctx, req.GroupID, req.UserID, req.SpecialTitle); err != nil {
			return nil, err
		}
		return &onebot.SetGroupSpecialTitleResp{}, nil
	case *onebot.GetLoginInfoReq:
		return &onebot.GetLoginInfoResp{UserID: client.Uin(), Nickname: client.Nickname()}, nil
	case *onebot.GetStrangerInfoReq:
		info, err := client.GetSummaryInfo(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		return &onebot.GetStrangerInfoResp{
			UserID:    info.Uin,
			Nickname:  info.Nickname,
			Sex:       info.Gender,
			Age:       info.Age,
			Level:     info.Level,
			LoginDays: info.LoginDays,
		}, nil
	case *onebot.GetFriendListReq:
		friends, err := client.GetFriendList(ctx)
		if err != nil {
			return nil, err
		}
		resp := &onebot.GetFriendListResp{}
		for _, f := range friends {
			resp.Friend = append(resp.Friend, &onebot.Friend{
				UserID:   f.Uin,
				Nickname: f.Nick,
				Remark:   f.Remark,
			})
		}
		return resp, nil
	case *onebot.GetGroupInfoReq:
		g, err := client.GetGroupInfo(ctx, req.GroupID)
		if err != nil {
			return nil, err
		}
		return &onebot.GetGroupInfoResp{
			GroupID:        g.Code,
			GroupName:      g.Name,
			MemberCount:    g.MemberCount,
			MaxMemberCount: g.MaxMemberCount,
		}, nil
	case *onebot.GetGroupListReq:
		groups, err := client.GetGroupList(ctx)
		if err != nil {
			return nil, err
		}
		resp := &onebot.GetGroupListResp{}
		for _, g := range groups {
			resp.Group = append(resp.Group, &onebot.Group{
				GroupID:        g.Code,
				GroupName:      g.Name,
				MemberCount:    g.MemberCount,
				MaxMemberCount: g.MaxMemberCount,
			})
		}
		return resp, nil
	case *onebot.GetGroupMemberInfoReq:
		m, err := client.GetGroupMemberInfo(ctx, req.GroupID, req.UserID)
		if err != nil {
			return nil, err
		}
		return &onebot.GetGroupMemberInfoResp{GroupMember: *wireMember(m)}, nil
	case *onebot.GetGroupMemberListReq:
		members, err := client.GetGroupMemberList(ctx, req.GroupID)
		if err != nil {
			return nil, err
		}
		resp := &onebot.GetGroupMemberListResp{}
		for _, m := range members {
			resp.GroupMember = append(resp.GroupMember, wireMember(m))
		}
		return resp, nil
	}
	return nil, fmt.Errorf("no handler for %T", data)
}

func (d *Dispatcher) sendPrivateMsg(ctx context.Context, client driver.Client, req *onebot.SendPrivateMsgReq) (onebot.Body, error) {
	elems := d.conv.ToNative(ctx, client, msgconv.Target{Uin: req.UserID}, req.Message, req.AutoEscape)
	if len(elems) == 0 {
		return nil, errs.ErrEmptyMessage
	}
	receipt, err := client.SendFriendMessage(ctx, req.UserID, elems)
	if err != nil {
		return nil, err
	}
	id := &onebot.MessageReceipt{
		SenderID: client.Uin(),
		Time:     receipt.Time,
		Seqs:     receipt.Seqs,
		Rands:    receipt.Rands,
	}
	return &onebot.SendPrivateMsgResp{MessageID: id.Encode()}, nil
}

func (d *Dispatcher) sendGroupMsg(ctx context.Context, client driver.Client, req *onebot.SendGroupMsgReq) (onebot.Body, error) {
	elems := d.conv.ToNative(ctx, client, msgconv.Target{GroupCode: req.GroupID}, req.Message, req.AutoEscape)
	if len(elems) == 0 {
		return nil, errs.ErrEmptyMessage
	}
	receipt, err := client.SendGroupMessage(ctx, req.GroupID, elems)
	if err != nil {
		return nil, err
	}
	id := &onebot.MessageReceipt{
		SenderID: client.Uin(),
		Time:     receipt.Time,
		Seqs:     receipt.Seqs,
		Rands:    receipt.Rands,
		GroupID:  req.GroupID,
	}
	return &onebot.SendGroupMsgResp{MessageID: id.Encode()}, nil
}

func (d *Dispatcher) deleteMsg(ctx context.Context, client driver.Client, req *onebot.DeleteMsgReq) (onebot.Body, error) {
	receipt, err := onebot.DecodeReceipt(req.MessageID)
	if err != nil {
		return nil, fmt.Errorf("decode message_id: %w", err)
	}
	if receipt.GroupID == 0 {
		err = client.RecallFriendMessage(ctx, receipt.SenderID, receipt.Time, receipt.Seqs, receipt.Rands)
	} else {
		err = client.RecallGroupMessage(ctx, receipt.GroupID, receipt.Seqs, receipt.Rands)
	}
	if err != nil {
		return nil, err
	}
	return &onebot.DeleteMsgResp{}, nil
}

func wireMember(m *driver.GroupMember) *onebot.GroupMember {
	return &onebot.GroupMember{
		GroupID:         m.GroupCode,
		UserID:          m.Uin,
		Nickname:        m.Nickname,
		Card:            m.Card,
		Sex:             m.Gender,
		JoinTime:        m.JoinTime,
		LastSentTime:    m.LastSpeakTime,
		Level:           strconv.FormatInt(int64(m.Level), 10),
		Role:            m.Permission.Role(),
		Title:           m.SpecialTitle,
		TitleExpireTime: m.SpecialTitleExpireTime,
		CardChangeable:  true,
	}
}
