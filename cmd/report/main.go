package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portal-report",
		Short: "Export management reports for the franchise network",
		Long: `portal-report fetches the live dashboard metrics from a running portal
API and renders the management report locally.

Quick start:
  portal-report export --token $TOKEN                 # PDF in the current directory
  portal-report export --format all --out ./reports   # PDF and XLSX from one snapshot`,
		SilenceUsage: true,
	}

	cmd.AddCommand(exportCommand())
	return cmd
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
