package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atendebot/atende/internal/cli"
	"github.com/atendebot/atende/pkg/session"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persistent conversations",
	Long:  `List, inspect, and remove conversation stacks from the configured store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all active conversations",
	Run: func(cmd *cobra.Command, args []string) {
		sessions := getSessions(cmd)
		ids, err := sessions.List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing conversations: %v\n", err)
			os.Exit(1)
		}

		if len(ids) == 0 {
			fmt.Println("No active conversations found.")
			return
		}

		fmt.Println("Active conversations:")
		for _, id := range ids {
			fmt.Println("- " + id)
		}
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <conversation-id>",
	Short: "Inspect the dialog stack of a conversation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sessions := getSessions(cmd)
		stack, err := sessions.Load(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error loading conversation '%s': %v\n", args[0], err)
			os.Exit(1)
		}

		data, err := json.MarshalIndent(stack, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling stack: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <conversation-id>...",
	Short: "Remove one or more conversations",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sessions := getSessions(cmd)
		hasError := false

		for _, id := range args {
			if err := sessions.Delete(cmd.Context(), id); err != nil {
				fmt.Printf("Error removing '%s': %v\n", id, err)
				hasError = true
			} else {
				fmt.Printf("Removed conversation '%s'\n", id)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}

func getSessions(cmd *cobra.Command) *session.Manager {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	debug, _ := cmd.Flags().GetBool("debug")
	logger := cli.NewLogger(cfg.Log, debug)

	app, err := cli.BuildApp(cmd.Context(), cfg, logger, nil)
	if err != nil {
		fmt.Printf("Error initializing store: %v\n", err)
		os.Exit(1)
	}
	return app.Bot.Sessions()
}
