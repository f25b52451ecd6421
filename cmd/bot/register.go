package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"effettobot/internal/adapter/dispatch"
	"effettobot/internal/infrastructure/discord"
	"effettobot/pkg/config"
	"effettobot/pkg/logger"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the guild's slash commands and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		for name, value := range map[string]string{
			"BOT_TOKEN":      cfg.BotToken,
			"APPLICATION_ID": cfg.ApplicationID,
			"GUILD_ID":       cfg.GuildID,
		} {
			if value == "" {
				return fmt.Errorf("missing required environment variable %s", name)
			}
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		rest := discord.NewRestClient(cfg.BotToken, cfg.ApplicationID, cfg.GuildID)
		specs := dispatch.Commands()
		if err := rest.RegisterCommands(ctx, specs); err != nil {
			return fmt.Errorf("register commands: %w", err)
		}

		logger.Info("Registered %d commands for guild %s", len(specs), cfg.GuildID)
		return nil
	},
}
