package main

import (
	"MyneBooks/internal/adapters/locale"
	"MyneBooks/internal/adapters/telegram"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot",
	Long:  "Connects to Telegram and dispatches updates until interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, baseLogger, err := setup()
		if err != nil {
			return err
		}
		if err := cfg.ValidateForServe(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx, cfg, &baseLogger)
		if err != nil {
			return err
		}
		defer st.Close()

		lang, err := locale.New(cfg.Locale.Default, &baseLogger)
		if err != nil {
			return fmt.Errorf("failed to load locales: %w", err)
		}

		baseLogger.Info().Msg("All services initialized successfully")

		orchestrator := telegram.NewOrchestrator(cfg, st.chats, lang, &baseLogger)
		if err := orchestrator.Start(ctx); err != nil {
			return fmt.Errorf("bot stopped with error: %w", err)
		}
		baseLogger.Info().Msg("Shutdown complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
