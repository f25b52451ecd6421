package main

import (
	"os"

	"effettobot/pkg/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed: %v", err)
		os.Exit(1)
	}
}
