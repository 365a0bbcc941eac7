package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/memecoin-madness/internal/manifest"
	"github.com/vovakirdan/memecoin-madness/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagHTTPAddr    string
	flagIdleTimeout int
	flagEnvFile     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Meme Coin Madness SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. All players share one leaderboard,
stored in the server's database. The player name is taken from the
MADNESS_DISPLAY_NAME environment variable sent by the client, then the SSH
user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.madness/host_key

With --http the discovery manifest is also served at
/.well-known/farcaster.json. Set MADNESS_PUBLIC_URL (in the environment or
the .env file) to change its homeUrl.

Examples:
  madness serve                           # Listen on :23234 with auto-generated key
  madness serve --ssh :2222               # Listen on port 2222
  madness serve --host-key ./my_host_key  # Use specific host key
  madness serve --http :8080              # Also serve the manifest

Users can connect with:
  ssh localhost -p 23234
  ssh -o SendEnv=MADNESS_DISPLAY_NAME localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "Also serve the discovery manifest on this address (host:port)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagEnvFile, "env-file", ".env", "Environment file to load before starting")
}

func runServe(_ *cobra.Command, _ []string) {
	if err := loadEnvFile(flagEnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.ManifestAddress = flagHTTPAddr
	cfg.Manifest = manifest.FromEnv()
	cfg.Game = gameCfg
	cfg.TickRate = flagFPS

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Meme Coin Madness SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	if cfg.ManifestAddress != "" {
		fmt.Printf("Manifest: http://localhost:%s%s\n", portOf(cfg.ManifestAddress), manifest.Path)
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// loadEnvFile loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("could not load %s: %w", path, err)
	}
	return nil
}

// portOf returns the port of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
