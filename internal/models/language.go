package models

// Language constants
const (
	LangSimplifiedChinese = "zh_CN"
	LangEnglish           = "en"
)

// DefaultLanguage is used when a group has no language preference
const DefaultLanguage = LangSimplifiedChinese

// Translation is a map of message keys to translated text
type Translation map[string]string

// Translations stores all language translations
var Translations = map[string]Translation{
	LangSimplifiedChinese: {
		"help_title":       "GroupGuard 帮助",
		"help_description": "本机器人维护群组本地黑名单：警告累计两次自动踢出并拉黑，黑名单用户的进群申请将被自动拒绝。",
		"help_commands": "- /warn @用户 警告用户，累计达到阈值自动踢出并拉黑\n" +
			"- /ban @用户 立即踢出并拉黑\n" +
			"- /denylist list 查看本群黑名单\n" +
			"- /denylist add <@用户|ID> [--no-kick] 手动拉黑\n" +
			"- /denylist del <@用户|ID> 移出黑名单",
		"help_note": "注意: 只有群组管理员才能使用管理指令。",

		// Command descriptions for the Telegram command menu
		"cmd_desc_help":     "显示帮助信息",
		"cmd_desc_warn":     "警告用户",
		"cmd_desc_ban":      "踢出并拉黑用户",
		"cmd_desc_denylist": "管理本群黑名单",

		"group_only_command":     "仅支持群聊中使用该指令",
		"insufficient_privilege": "此操作需要管理员权限",

		"usage_warn":         "用法: /warn @用户",
		"usage_ban":          "用法: /ban @用户",
		"usage_denylist":     "用法: /denylist <list|add|del>",
		"usage_denylist_add": "用法: /denylist add <@用户|ID> [--no-kick]",
		"usage_denylist_del": "用法: /denylist del <@用户|ID>",

		"warn_progress":          "已警告 %d（%d/%d）",
		"warn_escalated":         "%d 已达 %d 次警告，已踢出并加入本地黑名单",
		"warn_escalated_no_kick": "%d 达到 %d 次警告，已加入本地黑名单，但踢出失败，请检查权限",
		"ban_done":               "已将 %d 踢出并加入本地黑名单",
		"ban_kick_failed":        "%d 已加入本地黑名单，但踢出失败，请检查权限",
		"added_not_member":       "%d 已加入本地黑名单（不在群内，无需踢出）",
		"added_no_kick":          "已加入本地黑名单: %d",
		"removed_from_denylist":  "已从本地黑名单移除: %d",
		"operation_failed":       "%d 操作失败，请稍后再试",

		"denylist_empty":      "本群黑名单为空",
		"denylist_header":     "本地黑名单列表:",
		"denylist_no_reason":  "无原因",
		"denylist_more":       "...共 %d 人",
		"member_left_blocked": "%d 主动退群，已加入本地黑名单",
		"join_rejected":       "黑名单用户，已自动拒绝进群",
	},
	LangEnglish: {
		"help_title":       "GroupGuard Help",
		"help_description": "This bot keeps a per-group denylist: two warnings escalate to a kick plus denylist entry, and join requests from denylisted users are rejected automatically.",
		"help_commands": "- /warn @user warn a user, the threshold escalates to a kick and denylist entry\n" +
			"- /ban @user kick and denylist immediately\n" +
			"- /denylist list show this group's denylist\n" +
			"- /denylist add <@user|ID> [--no-kick] add to the denylist\n" +
			"- /denylist del <@user|ID> remove from the denylist",
		"help_note": "Note: only group administrators can use moderation commands.",

		"cmd_desc_help":     "Show help",
		"cmd_desc_warn":     "Warn a user",
		"cmd_desc_ban":      "Kick and denylist a user",
		"cmd_desc_denylist": "Manage the group denylist",

		"group_only_command":     "This command only works in group chats",
		"insufficient_privilege": "This action requires administrator privilege",

		"usage_warn":         "Usage: /warn @user",
		"usage_ban":          "Usage: /ban @user",
		"usage_denylist":     "Usage: /denylist <list|add|del>",
		"usage_denylist_add": "Usage: /denylist add <@user|ID> [--no-kick]",
		"usage_denylist_del": "Usage: /denylist del <@user|ID>",

		"warn_progress":          "Warned %d (%d/%d)",
		"warn_escalated":         "%d reached %d warnings, kicked and denylisted",
		"warn_escalated_no_kick": "%d reached %d warnings and was denylisted, but the kick failed, check bot permissions",
		"ban_done":               "%d kicked and added to the denylist",
		"ban_kick_failed":        "%d added to the denylist, but the kick failed, check bot permissions",
		"added_not_member":       "%d added to the denylist (not a member, no kick needed)",
		"added_no_kick":          "Added to the denylist: %d",
		"removed_from_denylist":  "Removed from the denylist: %d",
		"operation_failed":       "%d operation failed, try again later",

		"denylist_empty":      "The denylist for this group is empty",
		"denylist_header":     "Denylist:",
		"denylist_no_reason":  "no reason",
		"denylist_more":       "...%d entries in total",
		"member_left_blocked": "%d left the group and was added to the denylist",
		"join_rejected":       "Denylisted user, join request rejected",
	},
}

// GetTranslation returns the translated text for a key, falling back to
// Simplified Chinese and then to the key itself
func GetTranslation(language, key string) string {
	if translation, ok := Translations[language]; ok {
		if text, ok := translation[key]; ok {
			return text
		}
	}

	if text, ok := Translations[DefaultLanguage][key]; ok {
		return text
	}

	return key
}
