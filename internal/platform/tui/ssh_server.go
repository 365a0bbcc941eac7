package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/memecoin-madness/internal/config"
	"github.com/vovakirdan/memecoin-madness/internal/core"
	"github.com/vovakirdan/memecoin-madness/internal/host"
	"github.com/vovakirdan/memecoin-madness/internal/leaderboard"
	"github.com/vovakirdan/memecoin-madness/internal/manifest"
	"github.com/vovakirdan/memecoin-madness/internal/sound"
	"github.com/vovakirdan/memecoin-madness/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.madness/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// ManifestAddress, when set, also serves the discovery manifest over HTTP.
	ManifestAddress string
	Manifest        manifest.Manifest

	// Game is the gameplay configuration shared by all sessions.
	Game     config.Config
	TickRate int

	// Logger defaults to a timestamped stderr logger.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.madness/madness.db",
		IdleTimeout: 30 * time.Minute,
		Manifest:    manifest.Default(""),
		Game:        config.DefaultConfig(),
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server for the game. All connections share one
// leaderboard.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	http   *http.Server
	store  *storage.Store
	board  *leaderboard.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "madness-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database, leaderboard will not persist", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		board:  NewBoard(store, cfg.Game.Leaderboard, logger),
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.closeStore()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".madness", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server

	if cfg.ManifestAddress != "" {
		srv.http = &http.Server{
			Addr:              cfg.ManifestAddress,
			Handler:           manifest.NewRouter(cfg.Manifest, logger.WithPrefix("madness-http")),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	return srv, nil
}

// NewBoard builds the shared leaderboard over the database, or over memory
// when no database is available.
func NewBoard(store *storage.Store, cfg config.LeaderboardConfig, logger *log.Logger) *leaderboard.Store {
	var kv leaderboard.KV = leaderboard.NewMemoryKV()
	if store != nil {
		kv = store
	}
	return leaderboard.NewStore(kv,
		leaderboard.WithKey(cfg.Key),
		leaderboard.WithBadgeKey(cfg.BadgeKey),
		leaderboard.WithCapacity(cfg.Capacity),
		leaderboard.WithLogger(logger),
	)
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	tickRate := s.config.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	model := NewModel(Options{
		Game: s.config.Game,
		Runtime: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: tickRate,
			Seed:     time.Now().UnixNano(),
		},
		Host:   host.NewSSH(sshSession, s.logger),
		Board:  s.board,
		Store:  s.store,
		Sound:  sound.Nop{}, // The speaker is on the server, not the player's machine
		Logger: s.logger,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server, and the manifest server when
// configured, and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	if s.http != nil {
		s.logger.Info("serving manifest", "address", s.http.Addr, "path", manifest.Path)
		go func() {
			if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("manifest server error", "error", err)
			}
		}()
	}

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the servers.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var httpErr error
	if s.http != nil {
		httpErr = s.http.Shutdown(ctx)
	}
	sshErr := s.server.Shutdown(ctx)
	s.closeStore()

	return errors.Join(sshErr, httpErr)
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		//nolint:errcheck // Best-effort close
		s.store.Close()
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// Board returns the leaderboard shared by all sessions.
func (s *SSHServer) Board() *leaderboard.Store {
	return s.board
}
