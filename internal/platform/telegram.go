package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/mymmrac/telego"

	"tg-groupguard/internal/logger"
)

// TelegramClient implements Client against the Telegram Bot API
type TelegramClient struct {
	bot     *telego.Bot
	timeout time.Duration
}

// NewTelegramClient creates a Telegram-backed collaborator client. Every
// API call is bounded by the given timeout.
func NewTelegramClient(bot *telego.Bot, timeout time.Duration) *TelegramClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &TelegramClient{bot: bot, timeout: timeout}
}

func (c *TelegramClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// GetRole returns the user's role in the group
func (c *TelegramClient) GetRole(ctx context.Context, groupID, userID int64) (string, error) {
	callCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	member, err := c.bot.GetChatMember(callCtx, &telego.GetChatMemberParams{
		ChatID: telego.ChatID{ID: groupID},
		UserID: userID,
	})
	if err != nil {
		return "", fmt.Errorf("get chat member: %w", err)
	}

	switch member.MemberStatus() {
	case telego.MemberStatusCreator:
		return RoleOwner, nil
	case telego.MemberStatusAdministrator:
		return RoleAdmin, nil
	default:
		return RoleMember, nil
	}
}

// IsMember reports whether the user is currently in the group
func (c *TelegramClient) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	callCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	member, err := c.bot.GetChatMember(callCtx, &telego.GetChatMemberParams{
		ChatID: telego.ChatID{ID: groupID},
		UserID: userID,
	})
	if err != nil {
		return false, fmt.Errorf("get chat member: %w", err)
	}

	switch member.MemberStatus() {
	case telego.MemberStatusLeft, telego.MemberStatusBanned:
		return false, nil
	default:
		return true, nil
	}
}

// RemoveMember kicks the user: a ban followed by an immediate unban, so
// the user may request to join again (admission is gated by the local
// denylist, not a platform ban)
func (c *TelegramClient) RemoveMember(ctx context.Context, groupID, userID int64) error {
	callCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	err := c.bot.BanChatMember(callCtx, &telego.BanChatMemberParams{
		ChatID: telego.ChatID{ID: groupID},
		UserID: userID,
	})
	if err != nil {
		return fmt.Errorf("ban chat member: %w", err)
	}

	unbanCtx, unbanCancel := c.withTimeout(ctx)
	defer unbanCancel()

	err = c.bot.UnbanChatMember(unbanCtx, &telego.UnbanChatMemberParams{
		ChatID:       telego.ChatID{ID: groupID},
		UserID:       userID,
		OnlyIfBanned: true,
	})
	if err != nil {
		// The user is already out; a failed unban only leaves the
		// platform-level ban in place
		logger.Warningf("Error lifting platform ban for user %d in chat %d: %v", userID, groupID, err)
	}

	return nil
}

// ResolveJoinRequest approves or declines a pending join request
func (c *TelegramClient) ResolveJoinRequest(ctx context.Context, groupID, userID int64, approve bool, reason string) error {
	callCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	var err error
	if approve {
		err = c.bot.ApproveChatJoinRequest(callCtx, &telego.ApproveChatJoinRequestParams{
			ChatID: telego.ChatID{ID: groupID},
			UserID: userID,
		})
	} else {
		err = c.bot.DeclineChatJoinRequest(callCtx, &telego.DeclineChatJoinRequestParams{
			ChatID: telego.ChatID{ID: groupID},
			UserID: userID,
		})
	}
	if err != nil {
		return fmt.Errorf("resolve join request: %w", err)
	}

	logger.Infof("Resolved join request for user %d in chat %d: approve=%v reason=%q", userID, groupID, approve, reason)
	return nil
}
