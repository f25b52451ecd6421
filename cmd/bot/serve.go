package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"effettobot/internal/adapter/api"
	"effettobot/internal/adapter/dispatch"
	adapterrepo "effettobot/internal/adapter/repository"
	"effettobot/internal/infrastructure/discord"
	"effettobot/internal/usecase"
	"effettobot/pkg/config"
	"effettobot/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot: gateway session plus the ops HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fsClient, err := newFirestoreClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("firestore client: %w", err)
	}
	defer fsClient.Close()

	ticketRepo := adapterrepo.NewFirestoreTicketRepository(fsClient)
	productRepo := adapterrepo.NewFirestoreProductRepository(fsClient)
	reviewRepo := adapterrepo.NewFirestoreReviewRepository(fsClient)
	authRepo := adapterrepo.NewFirestoreAuthorizationRepository(fsClient)
	configRepo := adapterrepo.NewFirestoreConfigRepository(fsClient)

	rest := discord.NewRestClient(cfg.BotToken, cfg.ApplicationID, cfg.GuildID)

	sessions := usecase.NewSessionStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute)
	sessions.StartSweeper(ctx)

	configUC := usecase.NewConfigUseCase(configRepo)
	catalogUC := usecase.NewCatalogUseCase(productRepo)
	authUC := usecase.NewAuthorizationUseCase(authRepo, configUC, rest)
	ticketUC := usecase.NewTicketUseCase(ticketRepo, configUC, rest, cfg.StaffRoleID)
	reviewUC := usecase.NewReviewUseCase(reviewRepo, catalogUC, authUC, configUC, sessions, rest)

	dispatcher := dispatch.NewDispatcher(ticketUC, reviewUC, catalogUC, authUC, configUC, rest)
	gateway := discord.NewGateway(cfg.GatewayURL, cfg.BotToken, rest, dispatcher)

	ops := api.NewOpsHandler(reviewUC, catalogUC)
	e := api.NewRouter(ops)

	errCh := make(chan error, 2)
	go func() {
		logger.Info("Ops server listening on :%s", cfg.OpsPort)
		errCh <- e.Start(":" + cfg.OpsPort)
	}()
	go func() {
		logger.Info("Connecting to gateway")
		errCh <- gateway.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err := <-errCh:
		if err != nil {
			logger.Error("Fatal component error: %v", err)
		}
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ops server shutdown: %v", err)
	}

	return nil
}

func validateConfig(cfg *config.Config) error {
	for name, value := range map[string]string{
		"BOT_TOKEN":            cfg.BotToken,
		"APPLICATION_ID":       cfg.ApplicationID,
		"GUILD_ID":             cfg.GuildID,
		"FIRESTORE_PROJECT_ID": cfg.FirestoreProject,
	} {
		if value == "" {
			return fmt.Errorf("missing required environment variable %s", name)
		}
	}
	return nil
}

func newFirestoreClient(ctx context.Context, cfg *config.Config) (*firestore.Client, error) {
	var opts []option.ClientOption
	switch {
	case cfg.ServiceAccountJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)))
	case cfg.ServiceAccountPath != "":
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountPath))
	}
	return firestore.NewClient(ctx, cfg.FirestoreProject, opts...)
}
