package handler

import (
	"strconv"
	"strings"

	"github.com/mymmrac/telego"

	"tg-groupguard/internal/event"
)

// parseCommand turns a command message into a moderation event. Anything
// that is not one of this bot's commands is dropped.
func parseCommand(message telego.Message) (event.Event, bool) {
	// Anonymous group admins post through a service bot with SenderChat set
	if message.From == nil || (message.From.IsBot && message.SenderChat == nil) {
		return nil, false
	}
	if !strings.HasPrefix(message.Text, "/") {
		return nil, false
	}

	fields := strings.Fields(message.Text)
	if len(fields) == 0 {
		return nil, false
	}

	// Strip a /command@botname suffix
	name := fields[0]
	if at := strings.Index(name, "@"); at > 0 {
		name = name[:at]
	}

	groupID := message.Chat.ID
	actorID := message.From.ID

	switch name {
	case "/warn":
		return event.Warn{
			GroupID: groupID,
			ActorID: actorID,
			Targets: extractTargets(message, fields[1:]),
		}, true
	case "/ban":
		return event.Ban{
			GroupID: groupID,
			ActorID: actorID,
			Targets: extractTargets(message, fields[1:]),
		}, true
	case "/denylist":
		return parseDenylistCommand(message, fields[1:])
	default:
		return nil, false
	}
}

// parseDenylistCommand handles the /denylist <list|add|del> subcommands.
// A bare or unknown subcommand is dropped here; the unmatched-command
// path replies with usage.
func parseDenylistCommand(message telego.Message, args []string) (event.Event, bool) {
	if len(args) == 0 {
		return nil, false
	}

	groupID := message.Chat.ID
	actorID := message.From.ID

	switch args[0] {
	case "list":
		return event.ListDenylist{GroupID: groupID}, true
	case "add":
		suppressRemoval := false
		rest := make([]string, 0, len(args)-1)
		for _, tok := range args[1:] {
			if tok == "--no-kick" {
				suppressRemoval = true
				continue
			}
			rest = append(rest, tok)
		}
		return event.ManualAdd{
			GroupID:         groupID,
			ActorID:         actorID,
			Targets:         extractTargets(message, rest),
			SuppressRemoval: suppressRemoval,
		}, true
	case "del", "remove":
		return event.ManualRemove{
			GroupID: groupID,
			ActorID: actorID,
			Targets: extractTargets(message, args[1:]),
		}, true
	default:
		return nil, false
	}
}

// extractTargets collects target user IDs from the replied-to message,
// text mentions and numeric tokens, de-duplicated in order
func extractTargets(message telego.Message, args []string) []int64 {
	var ids []int64
	seen := make(map[int64]bool)
	add := func(id int64) {
		if id > 0 && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	if message.ReplyToMessage != nil && message.ReplyToMessage.From != nil && !message.ReplyToMessage.From.IsBot {
		add(message.ReplyToMessage.From.ID)
	}

	for _, entity := range message.Entities {
		if entity.Type == telego.EntityTypeTextMention && entity.User != nil {
			add(entity.User.ID)
		}
	}

	// Fall back to plain numeric IDs, with or without a leading @
	for _, tok := range args {
		tok = strings.TrimPrefix(tok, "@")
		id, err := strconv.ParseInt(tok, 10, 64)
		if err == nil {
			add(id)
		}
	}

	return ids
}
