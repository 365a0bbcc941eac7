package manifest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	m := Default("")
	assert.Equal(t, "Meme Coin Madness", m.Name)
	assert.Equal(t, DefaultPublicURL, m.HomeURL)
	assert.Equal(t, DefaultPublicURL+"/icon.png", m.IconImageURL)
	assert.Equal(t, DefaultPublicURL+"/banner.png", m.BannerImageURL)
	assert.Equal(t, "#FFFFFF", m.SplashBackgroundColor)

	assert.Equal(t, "https://example.com", Default(" https://example.com ").HomeURL)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvPublicURL, "https://madness.example")
	assert.Equal(t, "https://madness.example", FromEnv().HomeURL)
}

func TestServeManifest(t *testing.T) {
	srv := httptest.NewServer(NewRouter(Default("https://madness.example"), nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + Path)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var doc map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "Meme Coin Madness", doc["name"])
	assert.Equal(t, "https://madness.example", doc["homeUrl"])
	assert.Contains(t, doc, "iconImageUrl")
	assert.Contains(t, doc, "bannerImageUrl")
	assert.Contains(t, doc, "description")
	assert.Equal(t, "#FFFFFF", doc["splashBackgroundColor"])
}

func TestHealthAndNotFound(t *testing.T) {
	h := NewRouter(Default(""), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found","path":"/nope"}`, rec.Body.String())
}

func TestManifestRejectsPost(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(Default(""), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, Path, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
