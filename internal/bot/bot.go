package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg-groupguard/internal/config"
	"tg-groupguard/internal/logger"
	"tg-groupguard/internal/models"
)

// Service represents the Telegram bot service
type Service struct {
	Bot     *telego.Bot
	Handler *th.BotHandler
}

// Start starts the bot handler
func (s *Service) Start() {
	s.Handler.Start()
}

// Stop stops the bot handler
func (s *Service) Stop() {
	s.Handler.Stop()
}

// Initialize initializes the bot and webhook
func Initialize(ctx context.Context, cfg *config.Config) (*Service, *WebhookServer, error) {
	if cfg.Bot.Token == "" {
		return nil, nil, fmt.Errorf("bot token is required")
	}

	bot, err := telego.NewBot(cfg.Bot.Token)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize bot: %w", err)
	}

	botUser, err := bot.GetMe(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get bot info: %w", err)
	}
	logger.Infof("Authorized on account %s", botUser.Username)

	// Set bot commands for the menu in supported languages
	setLocalizedCommands(ctx, bot)

	// Delete any existing webhook
	err = bot.DeleteWebhook(ctx, &telego.DeleteWebhookParams{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to delete existing webhook: %w", err)
	}

	// Fixed secret token derived from the bot token
	secretToken := "secure_webhook_token_" + cfg.Bot.Token[len(cfg.Bot.Token)-6:]

	bh, server, err := SetupWebhook(ctx, bot, cfg.Bot.Webhook, secretToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to setup webhook: %w", err)
	}

	return &Service{
		Bot:     bot,
		Handler: bh,
	}, server, nil
}

// setLocalizedCommands sets bot commands in the supported languages
func setLocalizedCommands(ctx context.Context, bot *telego.Bot) {
	commandKeys := []struct {
		Command string
		DescKey string
	}{
		{Command: "help", DescKey: "cmd_desc_help"},
		{Command: "warn", DescKey: "cmd_desc_warn"},
		{Command: "ban", DescKey: "cmd_desc_ban"},
		{Command: "denylist", DescKey: "cmd_desc_denylist"},
	}

	// Map of language codes to Telegram language codes
	langCodes := map[string]string{
		models.LangEnglish:           "en",
		models.LangSimplifiedChinese: "zh",
	}

	for lang, telegramLang := range langCodes {
		var commands []telego.BotCommand
		for _, cmd := range commandKeys {
			commands = append(commands, telego.BotCommand{
				Command:     cmd.Command,
				Description: models.GetTranslation(lang, cmd.DescKey),
			})
		}

		err := bot.SetMyCommands(ctx, &telego.SetMyCommandsParams{
			Commands:     commands,
			LanguageCode: telegramLang,
		})
		if err != nil {
			logger.Warningf("Failed to set bot commands for %s: %v", lang, err)
		}
	}

	// Default commands without a language code
	var defaultCommands []telego.BotCommand
	for _, cmd := range commandKeys {
		defaultCommands = append(defaultCommands, telego.BotCommand{
			Command:     cmd.Command,
			Description: models.GetTranslation(models.DefaultLanguage, cmd.DescKey),
		})
	}

	err := bot.SetMyCommands(ctx, &telego.SetMyCommandsParams{
		Commands: defaultCommands,
	})
	if err != nil {
		logger.Warningf("Failed to set default bot commands: %v", err)
	}
}
