package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atendebot/atende/internal/cli"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the assistant in the terminal",
	Long:  `Opens an interactive conversation with the assistant. Type 'sair' to leave.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		debug, _ := cmd.Flags().GetBool("debug")
		conversationID, _ := cmd.Flags().GetString("conversation")
		userID, _ := cmd.Flags().GetString("user")

		err = cli.RunChat(cmd.Context(), cli.ChatOptions{
			Config:         cfg,
			Debug:          debug,
			ConversationID: conversationID,
			UserID:         userID,
		})
		if err != nil {
			fmt.Printf("Chat error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringP("conversation", "c", "", "Conversation ID to resume (default: a fresh one)")
	chatCmd.Flags().StringP("user", "u", "", "User ID to attach to the turns")
}
