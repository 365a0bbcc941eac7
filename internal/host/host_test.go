package host

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestResolveName(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		expected   string
	}{
		{"first non-blank", []string{"alice", "bob"}, "alice"},
		{"skips blank", []string{"   ", "bob"}, "bob"},
		{"trims", []string{"  carol \t"}, "carol"},
		{"all blank", []string{"", " "}, PlaceholderName},
		{"none", nil, PlaceholderName},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ResolveName(tc.candidates...))
		})
	}
}

func TestLocalName(t *testing.T) {
	t.Setenv(EnvDisplayName, "from-env")

	assert.Equal(t, "from-flag", NewLocal("from-flag", nil).DisplayName())
	assert.Equal(t, "from-env", NewLocal("", nil).DisplayName())

	t.Setenv(EnvDisplayName, "")
	assert.Equal(t, PlaceholderName, NewLocal("", nil).DisplayName())
}

func TestReadyFiresOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	h := NewLocal("alice", logger)
	assert.False(t, h.IsReady())

	h.Ready()
	h.Ready()
	h.Ready()

	assert.True(t, h.IsReady())
	assert.Equal(t, 1, strings.Count(buf.String(), "game ready"))
}

func TestSSHName(t *testing.T) {
	tests := []struct {
		name     string
		environ  []string
		user     string
		expected string
	}{
		{"env wins", []string{"TERM=xterm", EnvDisplayName + "=degen"}, "alice", "degen"},
		{"falls back to user", []string{"TERM=xterm"}, "alice", "alice"},
		{"blank env", []string{EnvDisplayName + "=  "}, "alice", "alice"},
		{"nothing", nil, "", PlaceholderName},
		{"value with equals", []string{EnvDisplayName + "=a=b"}, "", "a=b"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newSSH(tc.environ, tc.user, "127.0.0.1:1", nil)
			assert.Equal(t, tc.expected, h.DisplayName())
		})
	}
}

func TestSSHReadyFiresOnce(t *testing.T) {
	var buf bytes.Buffer
	h := newSSH(nil, "alice", "127.0.0.1:1", log.New(&buf))

	h.Ready()
	h.Ready()

	assert.True(t, h.IsReady())
	assert.Equal(t, 1, strings.Count(buf.String(), "game ready"))
}
