// Package manifest serves the discovery document that lets a mini-app host
// find and describe the game.
package manifest

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Path is where hosts look for the document.
const Path = "/.well-known/farcaster.json"

// EnvPublicURL overrides the home URL.
const EnvPublicURL = "MADNESS_PUBLIC_URL"

// DefaultPublicURL is the home URL used when none is configured.
const DefaultPublicURL = "https://meme-coin-madness-miniapp-jocw-nkbmidm36.vercel.app"

// Manifest is the discovery document.
type Manifest struct {
	Name                  string `json:"name"`
	Description           string `json:"description"`
	IconImageURL          string `json:"iconImageUrl"`
	BannerImageURL        string `json:"bannerImageUrl"`
	HomeURL               string `json:"homeUrl"`
	SplashBackgroundColor string `json:"splashBackgroundColor"`
}

// Default returns the manifest with homeURL as its home. Images are always
// served from the default deployment. An empty homeURL falls back to
// DefaultPublicURL.
func Default(homeURL string) Manifest {
	homeURL = strings.TrimSpace(homeURL)
	if homeURL == "" {
		homeURL = DefaultPublicURL
	}
	return Manifest{
		Name:                  "Meme Coin Madness",
		Description:           "Fast-paced meme coin tapper on Base. Smash coins, dodge rugs, build combos, and chase new high scores.",
		IconImageURL:          DefaultPublicURL + "/icon.png",
		BannerImageURL:        DefaultPublicURL + "/banner.png",
		HomeURL:               homeURL,
		SplashBackgroundColor: "#FFFFFF",
	}
}

// FromEnv returns the default manifest with MADNESS_PUBLIC_URL as home.
func FromEnv() Manifest {
	return Default(os.Getenv(EnvPublicURL))
}

// JSON encodes the manifest with indentation, as served.
func (m Manifest) JSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// NewRouter returns an HTTP handler serving the manifest and a health check.
func NewRouter(m Manifest, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(logger))

	r.Get(Path, func(w http.ResponseWriter, r *http.Request) {
		body, err := m.JSON()
		if err != nil {
			logger.Error("cannot encode manifest", "error", err)
			http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return r
}

// requestLogger logs each request with its status and latency.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"remote", r.RemoteAddr,
				"took", time.Since(start),
			)
		})
	}
}
