package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "effettobot",
	Short: "Community support and review bot",
	Long:  "effettobot runs the community support-ticket and product-review bot: a realtime gateway session, Firestore-backed workflows and a small operational HTTP surface.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(registerCmd)
}
