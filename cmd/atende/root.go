package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atendebot/atende/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "atende",
	Short: "Atende is a conversational assistant for order inquiries",
	Long:  `Atende runs a waterfall dialog engine that answers questions about orders, products and purchase statements, over HTTP or in the terminal.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// loadConfig reads the --config file when given, otherwise the defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
