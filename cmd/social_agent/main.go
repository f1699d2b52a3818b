// Package main provides the entry point for the Social Amplifier service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "social_agent",
	Short: "Social Amplifier HTTP API Server",
	Long:  "Social Amplifier converts a blog URL into platform-tailored LinkedIn, Instagram, and Twitter posts plus a generated thumbnail, and stores the result for review.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
