package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atendebot/atende"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the atende version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("atende %s\n", atende.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
