// Package host connects the game to whatever is hosting it: a local terminal
// or an SSH session. A host supplies the player's display name and is told,
// exactly once, when the game is ready to receive input.
package host

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
)

// PlaceholderName is used when the host has no usable display name.
const PlaceholderName = "Anon degen"

// EnvDisplayName is the environment variable carrying a display name.
const EnvDisplayName = "MADNESS_DISPLAY_NAME"

// Host is the embedding runtime of one game session.
type Host interface {
	// Ready signals that the game is mounted. Only the first call has an effect.
	Ready()
	// DisplayName returns the active player's name, never empty.
	DisplayName() string
}

// ResolveName returns the first candidate that is not blank, trimmed, or
// PlaceholderName if every candidate is blank.
func ResolveName(candidates ...string) string {
	for _, c := range candidates {
		if name := strings.TrimSpace(c); name != "" {
			return name
		}
	}
	return PlaceholderName
}

// readySignal fires its callback at most once.
type readySignal struct {
	once   sync.Once
	fired  bool
	mu     sync.Mutex
	onFire func()
}

func (r *readySignal) fire() {
	r.once.Do(func() {
		r.mu.Lock()
		r.fired = true
		r.mu.Unlock()
		if r.onFire != nil {
			r.onFire()
		}
	})
}

func (r *readySignal) isReady() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fired
}

// Local is the host for a game played in the current terminal.
type Local struct {
	name   string
	ready  readySignal
	logger *log.Logger
}

// NewLocal creates a local host. flagName takes precedence over the
// MADNESS_DISPLAY_NAME environment variable.
func NewLocal(flagName string, logger *log.Logger) *Local {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &Local{
		name:   ResolveName(flagName, os.Getenv(EnvDisplayName)),
		logger: logger,
	}
	h.ready.onFire = func() {
		h.logger.Info("game ready", "host", "local", "player", h.name)
	}
	return h
}

func (h *Local) Ready()              { h.ready.fire() }
func (h *Local) DisplayName() string { return h.name }

// IsReady reports whether Ready was called.
func (h *Local) IsReady() bool { return h.ready.isReady() }

// SSH is the host for a game played over an SSH session.
type SSH struct {
	name   string
	user   string
	remote string
	ready  readySignal
	logger *log.Logger
}

// NewSSH creates a host for sess. The display name comes from
// MADNESS_DISPLAY_NAME in the session environment, then the SSH user.
func NewSSH(sess ssh.Session, logger *log.Logger) *SSH {
	return newSSH(sess.Environ(), sess.User(), sess.RemoteAddr().String(), logger)
}

func newSSH(environ []string, user, remote string, logger *log.Logger) *SSH {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &SSH{
		name:   ResolveName(lookupEnv(environ, EnvDisplayName), user),
		user:   user,
		remote: remote,
		logger: logger,
	}
	h.ready.onFire = func() {
		h.logger.Info("game ready", "host", "ssh", "user", h.user, "remote", h.remote, "player", h.name)
	}
	return h
}

func (h *SSH) Ready()              { h.ready.fire() }
func (h *SSH) DisplayName() string { return h.name }

// IsReady reports whether Ready was called.
func (h *SSH) IsReady() bool { return h.ready.isReady() }

// lookupEnv finds key in a KEY=VALUE list. Later entries win.
func lookupEnv(environ []string, key string) string {
	value := ""
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok && k == key {
			value = v
		}
	}
	return value
}
