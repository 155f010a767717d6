package main

import (
	"MyneBooks/internal/core/domain"
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var chatsCmd = &cobra.Command{
	Use:   "chats",
	Short: "Inspect the chats the bot knows",
}

var chatsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered chats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, baseLogger, err := setup()
		if err != nil {
			return err
		}

		ctx := context.Background()
		st, err := openStore(ctx, cfg, &baseLogger)
		if err != nil {
			return err
		}
		defer st.Close()

		chats, err := st.chats.List(ctx)
		if err != nil {
			return err
		}
		return printChats(cmd.OutOrStdout(), chats)
	},
}

var chatsDeleteCmd = &cobra.Command{
	Use:   "delete <chat-id>",
	Short: "Forget a chat; it is registered again on its next message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid chat id %q: %w", args[0], err)
		}

		cfg, baseLogger, err := setup()
		if err != nil {
			return err
		}

		ctx := context.Background()
		st, err := openStore(ctx, cfg, &baseLogger)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.chats.Delete(ctx, id); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted chat %d\n", id)
		return err
	},
}

func init() {
	chatsCmd.AddCommand(chatsListCmd, chatsDeleteCmd)
	rootCmd.AddCommand(chatsCmd)
}

// printChats writes the chats as an aligned table.
func printChats(w io.Writer, chats []*domain.Chat) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tLOCALE\tNAME\tREGISTERED")
	for _, c := range chats {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			c.ID, c.Kind, c.Locale, c.DisplayName, c.CreatedAt.UTC().Format(time.DateTime))
	}
	return tw.Flush()
}
