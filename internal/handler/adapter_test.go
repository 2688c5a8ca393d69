package handler

import (
	"testing"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/require"

	"tg-groupguard/internal/event"
)

func groupMessage(text string, actorID int64) telego.Message {
	return telego.Message{
		Text: text,
		Chat: telego.Chat{ID: -100, Type: telego.ChatTypeSupergroup},
		From: &telego.User{ID: actorID},
	}
}

func TestClassifyJoinRequest(t *testing.T) {
	ev, ok := Classify(telego.Update{
		ChatJoinRequest: &telego.ChatJoinRequest{
			Chat: telego.Chat{ID: -100},
			From: telego.User{ID: 200},
		},
	})
	require.True(t, ok)
	require.Equal(t, event.JoinRequest{GroupID: -100, UserID: 200}, ev)
}

func TestClassifyJoinRequestMissingIDsDropped(t *testing.T) {
	_, ok := Classify(telego.Update{
		ChatJoinRequest: &telego.ChatJoinRequest{Chat: telego.Chat{ID: -100}},
	})
	require.False(t, ok)
}

func TestClassifyVoluntaryLeave(t *testing.T) {
	ev, ok := Classify(telego.Update{
		ChatMember: &telego.ChatMemberUpdated{
			Chat:          telego.Chat{ID: -100},
			From:          telego.User{ID: 200},
			NewChatMember: &telego.ChatMemberLeft{User: telego.User{ID: 200}},
		},
	})
	require.True(t, ok)
	require.Equal(t, event.MemberLeft{GroupID: -100, UserID: 200}, ev)
}

func TestClassifyKickIsNotADeparture(t *testing.T) {
	// The initiator differs from the member, so this was a removal
	_, ok := Classify(telego.Update{
		ChatMember: &telego.ChatMemberUpdated{
			Chat:          telego.Chat{ID: -100},
			From:          telego.User{ID: 1},
			NewChatMember: &telego.ChatMemberLeft{User: telego.User{ID: 200}},
		},
	})
	require.False(t, ok)
}

func TestClassifyBotLeaveDropped(t *testing.T) {
	_, ok := Classify(telego.Update{
		ChatMember: &telego.ChatMemberUpdated{
			Chat:          telego.Chat{ID: -100},
			From:          telego.User{ID: 200},
			NewChatMember: &telego.ChatMemberLeft{User: telego.User{ID: 200, IsBot: true}},
		},
	})
	require.False(t, ok)
}

func TestClassifyWarnWithNumericTargets(t *testing.T) {
	ev, ok := Classify(telego.Update{Message: ptr(groupMessage("/warn 200 @201 200", 1))})
	require.True(t, ok)
	require.Equal(t, event.Warn{GroupID: -100, ActorID: 1, Targets: []int64{200, 201}}, ev)
}

func TestClassifyWarnWithReplyTarget(t *testing.T) {
	msg := groupMessage("/warn", 1)
	msg.ReplyToMessage = &telego.Message{From: &telego.User{ID: 200}}

	ev, ok := Classify(telego.Update{Message: &msg})
	require.True(t, ok)
	require.Equal(t, event.Warn{GroupID: -100, ActorID: 1, Targets: []int64{200}}, ev)
}

func TestClassifyBanWithTextMention(t *testing.T) {
	msg := groupMessage("/ban someone", 1)
	msg.Entities = []telego.MessageEntity{
		{Type: telego.EntityTypeTextMention, User: &telego.User{ID: 200}},
	}

	ev, ok := Classify(telego.Update{Message: &msg})
	require.True(t, ok)
	require.Equal(t, event.Ban{GroupID: -100, ActorID: 1, Targets: []int64{200}}, ev)
}

func TestClassifyCommandWithBotSuffix(t *testing.T) {
	ev, ok := Classify(telego.Update{Message: ptr(groupMessage("/ban@guardbot 200", 1))})
	require.True(t, ok)
	require.Equal(t, event.Ban{GroupID: -100, ActorID: 1, Targets: []int64{200}}, ev)
}

func TestClassifyDenylistSubcommands(t *testing.T) {
	ev, ok := Classify(telego.Update{Message: ptr(groupMessage("/denylist list", 1))})
	require.True(t, ok)
	require.Equal(t, event.ListDenylist{GroupID: -100}, ev)

	ev, ok = Classify(telego.Update{Message: ptr(groupMessage("/denylist add --no-kick 200", 1))})
	require.True(t, ok)
	require.Equal(t, event.ManualAdd{GroupID: -100, ActorID: 1, Targets: []int64{200}, SuppressRemoval: true}, ev)

	ev, ok = Classify(telego.Update{Message: ptr(groupMessage("/denylist del 200", 1))})
	require.True(t, ok)
	require.Equal(t, event.ManualRemove{GroupID: -100, ActorID: 1, Targets: []int64{200}}, ev)
}

func TestClassifyBareDenylistDropped(t *testing.T) {
	// The usage reply is produced by the unmatched-command path instead
	_, ok := Classify(telego.Update{Message: ptr(groupMessage("/denylist", 1))})
	require.False(t, ok)
}

func TestClassifyIgnoresNonCommands(t *testing.T) {
	for _, text := range []string{"hello", "/unknown 200", "/help"} {
		_, ok := Classify(telego.Update{Message: ptr(groupMessage(text, 1))})
		require.False(t, ok, "text %q", text)
	}
}

func TestClassifyIgnoresBotMessages(t *testing.T) {
	msg := groupMessage("/warn 200", 1)
	msg.From.IsBot = true

	_, ok := Classify(telego.Update{Message: &msg})
	require.False(t, ok)
}

func TestClassifyAnonymousAdminCommand(t *testing.T) {
	// Anonymous group admins post through the service bot with SenderChat set
	msg := groupMessage("/warn 200", 1)
	msg.From.IsBot = true
	msg.SenderChat = &telego.Chat{ID: -100}

	ev, ok := Classify(telego.Update{Message: &msg})
	require.True(t, ok)
	require.IsType(t, event.Warn{}, ev)
}

func ptr(msg telego.Message) *telego.Message {
	return &msg
}
