package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memecoin-madness/internal/manifest"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Print the discovery manifest",
	Long: `Print the JSON document served at /.well-known/farcaster.json.

MADNESS_PUBLIC_URL (from the environment or --env-file) replaces homeUrl.

Examples:
  madness manifest
  MADNESS_PUBLIC_URL=https://example.com madness manifest`,
	Args: cobra.NoArgs,
	Run:  runManifest,
}

func init() {
	manifestCmd.Flags().StringVar(&flagEnvFile, "env-file", ".env", "Environment file to load first")
}

func runManifest(_ *cobra.Command, _ []string) {
	if err := loadEnvFile(flagEnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	data, err := manifest.FromEnv().JSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding manifest: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
