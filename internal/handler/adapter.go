package handler

import (
	"github.com/mymmrac/telego"

	"tg-groupguard/internal/event"
)

// Classify converts a raw platform update into one of the core's tagged
// events. Updates that carry no event for this system (or lack required
// identifiers) are dropped here, so the core never sees a malformed or
// irrelevant payload.
func Classify(update telego.Update) (event.Event, bool) {
	if update.ChatJoinRequest != nil {
		req := update.ChatJoinRequest
		if req.Chat.ID == 0 || req.From.ID == 0 {
			return nil, false
		}
		return event.JoinRequest{GroupID: req.Chat.ID, UserID: req.From.ID}, true
	}

	if update.ChatMember != nil {
		return classifyMemberUpdate(update.ChatMember)
	}

	if update.Message != nil {
		return parseCommand(*update.Message)
	}

	return nil, false
}

// classifyMemberUpdate recognizes voluntary departures: the member's new
// status is "left" and the update was initiated by the member themselves.
// Kicks and bans arrive with a different initiator or status and are not
// departures.
func classifyMemberUpdate(change *telego.ChatMemberUpdated) (event.Event, bool) {
	newMember := change.NewChatMember
	if newMember == nil || newMember.MemberStatus() != telego.MemberStatusLeft {
		return nil, false
	}

	user := newMember.MemberUser()
	if user.IsBot {
		return nil, false
	}
	if change.From.ID != user.ID {
		return nil, false
	}
	if change.Chat.ID == 0 || user.ID == 0 {
		return nil, false
	}

	return event.MemberLeft{GroupID: change.Chat.ID, UserID: user.ID}, true
}
