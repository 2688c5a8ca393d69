package handler

import (
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg-groupguard/internal/config"
	"tg-groupguard/internal/crash"
	"tg-groupguard/internal/event"
	"tg-groupguard/internal/logger"
	"tg-groupguard/internal/models"
	"tg-groupguard/internal/service"
)

var globalConfig *config.Config

// Initialize initializes the handler with configuration
func Initialize(cfg *config.Config) {
	globalConfig = cfg
}

// SetupHandlers registers the single update handler. Every update is
// classified into a typed event at the boundary; the core never inspects
// raw payloads.
func SetupHandlers(bh *th.BotHandler, bot *telego.Bot, svcs *service.Services) {
	bh.Handle(func(ctx *th.Context, update telego.Update) error {
		defer crash.RecoverWithStack("update-dispatch")
		return handleUpdate(ctx, bot, svcs, update)
	})
}

func handleUpdate(ctx *th.Context, bot *telego.Bot, svcs *service.Services, update telego.Update) error {
	ev, ok := Classify(update)
	if !ok {
		if update.Message != nil {
			return handleUnmatchedCommand(ctx, bot, *update.Message)
		}
		return nil
	}

	switch e := ev.(type) {
	case event.Warn:
		return handleWarn(ctx, bot, svcs, *update.Message, e)
	case event.Ban:
		return handleBan(ctx, bot, svcs, *update.Message, e)
	case event.ManualAdd:
		return handleManualAdd(ctx, bot, svcs, *update.Message, e)
	case event.ManualRemove:
		return handleManualRemove(ctx, bot, svcs, *update.Message, e)
	case event.ListDenylist:
		return handleListDenylist(ctx, bot, svcs, *update.Message, e)
	case event.JoinRequest:
		return handleJoinRequest(ctx, bot, svcs, e)
	case event.MemberLeft:
		return handleMemberLeft(ctx, bot, svcs, e)
	default:
		return nil
	}
}

func handleWarn(ctx *th.Context, bot *telego.Bot, svcs *service.Services, msg telego.Message, e event.Warn) error {
	language := lang()
	if !isGroupChat(msg) {
		return reply(ctx, bot, msg.Chat.ID, tr(language, "group_only_command"))
	}
	if !svcs.Authorizer.IsAuthorized(ctx.Context(), e.GroupID, e.ActorID, anonymousAdmin(msg)) {
		return reply(ctx, bot, msg.Chat.ID, tr(language, "insufficient_privilege"))
	}

	results, err := svcs.Moderator.Warn(ctx.Context(), e.GroupID, e.ActorID, e.Targets)
	if err != nil {
		return reply(ctx, bot, msg.Chat.ID, tr(language, "usage_warn"))
	}

	threshold := svcs.Moderator.Threshold()
	lines := make([]string, 0, len(results))
	for _, r := range results {
		switch r.Kind {
		case service.ResultWarned:
			lines = append(lines, fmt.Sprintf(tr(language, "warn_progress"), r.UserID, r.Count, threshold))
		case service.ResultExcluded:
			lines = append(lines, fmt.Sprintf(tr(language, "warn_escalated"), r.UserID, threshold))
		case service.ResultExcludedKickFailed:
			lines = append(lines, fmt.Sprintf(tr(language, "warn_escalated_no_kick"), r.UserID, threshold))
		case service.ResultExcludedNotMember:
			lines = append(lines, fmt.Sprintf(tr(language, "added_not_member"), r.UserID))
		default:
			lines = append(lines, fmt.Sprintf(tr(language, "operation_failed"), r.UserID))
		}
	}
	return reply(ctx, bot, msg.Chat.ID, strings.Join(lines, "\n"))
}

func handleBan(ctx *th.Context, bot *telego.Bot, svcs *service.Services, msg telego.Message, e event.Ban) error {
	language := lang()
	if !isGroupChat(msg) {
		return reply(ctx, bot, msg.Chat.ID, tr(language, "group_only_command"))
	}
	if !svcs.Authorizer.IsAuthorized(ctx.Context(), e.GroupID, e.ActorID, anonymousAdmin(msg)) {
		return reply(ctx, bot, msg.Chat.ID, tr(language, "insufficient_privilege"))
	}

	results, err := svcs.Moderator.Ban(ctx.Context(), e.GroupID, e.ActorID, e.Targets)
	if err != nil {
		return reply(ctx, bot, msg.Chat.ID, tr(language, "usage_ban"))
	}

	return reply(ctx, bot, msg.Chat.ID, strings.Join(formatExclusionResults(language, results), "\n"))
}

func handleManualAdd(ctx *th.Context, bot *telego.Bot, svcs *service.Services, msg telego.Message, e event.ManualAdd) error {
	language := lang()
	if !isGroupChat(msg) {
		return reply(ctx, bot, msg.Chat.ID, tr(language, "group_only_command"))
	}
	if !svcs.Authorizer.IsAuthorized(ctx.Context(), e.GroupID, e.ActorID, anonymousAdmin(msg)) {
		return reply(ctx, bot, msg.Chat.ID, tr(language, "insufficient_privilege"))
	}

	results, err := svcs.Moderator.ManualAdd(ctx.Context(), e.GroupID, e.ActorID, e.Targets, e.Reason, e.SuppressRemoval)
	if err != nil {
		return reply(ctx, bot, msg.Chat.ID, tr(language, "usage_denylist_add"))
	}

	return reply(ctx, bot, msg.Chat.ID, strings.Join(formatExclusionResults(language, results), "\n"))
}

func handleManualRemove(ctx *th.Context, bot *telego.Bot, svcs *service.Services, msg telego.Message, e event.ManualRemove) error {
	language := lang()
	if !isGroupChat(msg) {
		return reply(ctx, bot, msg.Chat.ID, tr(language, "group_only_command"))
	}
	if !svcs.Authorizer.IsAuthorized(ctx.Context(), e.GroupID, e.ActorID, anonymousAdmin(msg)) {
		return reply(ctx, bot, msg.Chat.ID, tr(language, "insufficient_privilege"))
	}

	results, err := svcs.Moderator.ManualRemove(ctx.Context(), e.GroupID, e.ActorID, e.Targets)
	if err != nil {
		return reply(ctx, bot, msg.Chat.ID, tr(language, "usage_denylist_del"))
	}

	lines := make([]string, 0, len(results))
	for _, r := range results {
		switch r.Kind {
		case service.ResultRemoved:
			lines = append(lines, fmt.Sprintf(tr(language, "removed_from_denylist"), r.UserID))
		default:
			lines = append(lines, fmt.Sprintf(tr(language, "operation_failed"), r.UserID))
		}
	}
	return reply(ctx, bot, msg.Chat.ID, strings.Join(lines, "\n"))
}

func handleListDenylist(ctx *th.Context, bot *telego.Bot, svcs *service.Services, msg telego.Message, e event.ListDenylist) error {
	language := lang()
	if !isGroupChat(msg) {
		return reply(ctx, bot, msg.Chat.ID, tr(language, "group_only_command"))
	}

	entries, err := svcs.Moderator.ListDenylist(e.GroupID)
	if err != nil {
		logger.Errorf("Error listing denylist for group %d: %v", e.GroupID, err)
		return reply(ctx, bot, msg.Chat.ID, fmt.Sprintf(tr(language, "operation_failed"), e.GroupID))
	}

	if len(entries) == 0 {
		return reply(ctx, bot, msg.Chat.ID, tr(language, "denylist_empty"))
	}

	limit := globalConfig.Moderation.ListLimit
	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}

	lines := make([]string, 0, limit+1)
	lines = append(lines, tr(language, "denylist_header"))
	for _, entry := range entries[:limit] {
		reason := entry.Reason
		if reason == "" {
			reason = tr(language, "denylist_no_reason")
		}
		lines = append(lines, fmt.Sprintf("%d - %s", entry.UserID, reason))
	}
	if len(entries) > limit {
		lines = append(lines, fmt.Sprintf(tr(language, "denylist_more"), len(entries)))
	}
	return reply(ctx, bot, msg.Chat.ID, strings.Join(lines, "\n"))
}

func handleJoinRequest(ctx *th.Context, bot *telego.Bot, svcs *service.Services, e event.JoinRequest) error {
	decision, err := svcs.HandleJoinRequest(ctx.Context(), e.GroupID, e.UserID)
	if err != nil {
		logger.Errorf("Error deciding join request for user %d in group %d: %v", e.UserID, e.GroupID, err)
		return nil
	}
	if decision.Approve {
		return nil
	}

	return reply(ctx, bot, e.GroupID, tr(lang(), "join_rejected"))
}

func handleMemberLeft(ctx *th.Context, bot *telego.Bot, svcs *service.Services, e event.MemberLeft) error {
	added, err := svcs.Moderator.RecordDeparture(e.GroupID, e.UserID)
	if err != nil {
		logger.Errorf("Error recording departure of user %d from group %d: %v", e.UserID, e.GroupID, err)
		return nil
	}
	if !added {
		return nil
	}

	return reply(ctx, bot, e.GroupID, fmt.Sprintf(tr(lang(), "member_left_blocked"), e.UserID))
}

// handleUnmatchedCommand answers help requests and bare /denylist usage
func handleUnmatchedCommand(ctx *th.Context, bot *telego.Bot, msg telego.Message) error {
	language := lang()
	switch {
	case strings.HasPrefix(msg.Text, "/help"), strings.HasPrefix(msg.Text, "/start"):
		helpText := fmt.Sprintf("<b>%s</b>\n\n%s\n\n%s\n\n%s",
			tr(language, "help_title"),
			tr(language, "help_description"),
			tr(language, "help_commands"),
			tr(language, "help_note"),
		)
		_, err := bot.SendMessage(ctx.Context(), &telego.SendMessageParams{
			ChatID:    telego.ChatID{ID: msg.Chat.ID},
			Text:      helpText,
			ParseMode: "HTML",
		})
		return err
	case strings.HasPrefix(msg.Text, "/denylist"):
		return reply(ctx, bot, msg.Chat.ID, tr(language, "usage_denylist"))
	default:
		return nil
	}
}

func formatExclusionResults(language string, results []service.Result) []string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		switch r.Kind {
		case service.ResultExcluded:
			lines = append(lines, fmt.Sprintf(tr(language, "ban_done"), r.UserID))
		case service.ResultExcludedKickFailed:
			lines = append(lines, fmt.Sprintf(tr(language, "ban_kick_failed"), r.UserID))
		case service.ResultExcludedNotMember:
			lines = append(lines, fmt.Sprintf(tr(language, "added_not_member"), r.UserID))
		case service.ResultAddedNoKick:
			lines = append(lines, fmt.Sprintf(tr(language, "added_no_kick"), r.UserID))
		default:
			lines = append(lines, fmt.Sprintf(tr(language, "operation_failed"), r.UserID))
		}
	}
	return lines
}

func lang() string {
	if globalConfig != nil && globalConfig.Bot.Language != "" {
		return globalConfig.Bot.Language
	}
	return models.DefaultLanguage
}

func tr(language, key string) string {
	return models.GetTranslation(language, key)
}

func isGroupChat(msg telego.Message) bool {
	return msg.Chat.Type == telego.ChatTypeGroup || msg.Chat.Type == telego.ChatTypeSupergroup
}

// anonymousAdmin reports the fast local admin signal: the message was
// posted by an anonymous group admin in the group's own name
func anonymousAdmin(msg telego.Message) bool {
	return msg.SenderChat != nil && msg.SenderChat.ID == msg.Chat.ID
}

func reply(ctx *th.Context, bot *telego.Bot, chatID int64, text string) error {
	_, err := bot.SendMessage(ctx.Context(), &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: chatID},
		Text:   text,
	})
	if err != nil {
		logger.Warningf("Error sending reply to chat %d: %v", chatID, err)
	}
	return nil
}
