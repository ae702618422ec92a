package tts

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	cfg := DefaultConfig()
	cfg.APIKey = "xi-test"
	cfg.BaseURL = baseURL
	return cfg
}

func TestElevenLabsRequestShape(t *testing.T) {
	var got synthesisRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/text-to-speech/pNInz6obpgDQGcFmaJgB", r.URL.Path)
		assert.Equal(t, "xi-test", r.Header.Get("xi-api-key"))
		assert.Equal(t, "audio/mpeg", r.Header.Get("Accept"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3audio"))
	}))
	defer srv.Close()

	audio, err := NewElevenLabsClient(testConfig(srv.URL)).Synthesize(context.Background(), "Velocity is speed with direction.")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3audio"), audio.Data)
	assert.Equal(t, "audio/mpeg", audio.ContentType)

	assert.Equal(t, "Velocity is speed with direction.", got.Text)
	assert.Equal(t, "eleven_monolingual_v1", got.ModelID)
	assert.InDelta(t, 0.5, got.VoiceSettings.Stability, 1e-9)
	assert.InDelta(t, 0.5, got.VoiceSettings.SimilarityBoost, 1e-9)
}

func TestElevenLabsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewElevenLabsClient(testConfig(srv.URL)).Synthesize(context.Background(), "hi")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "quota")
}

func TestGatewayUnavailableReturnsNil(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGatewayFromConfig(context.Background(), cfg, nil)

	assert.False(t, g.Availability().Available)
	assert.Equal(t, "STUDYMATE_ELEVENLABS_API_KEY is not set", g.Availability().Reason)
	assert.Nil(t, g.Synthesize(context.Background(), "anything"))
}

func TestGatewayFailureReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewGatewayFromConfig(context.Background(), testConfig(srv.URL), nil)
	require.True(t, g.Availability().Available)
	assert.Nil(t, g.Synthesize(context.Background(), "hello"))
}

type countingSynth struct {
	calls int
	texts []string
}

func (s *countingSynth) Synthesize(_ context.Context, text string) (*Audio, error) {
	s.calls++
	s.texts = append(s.texts, text)
	return &Audio{Data: []byte("audio:" + text), ContentType: "audio/mpeg"}, nil
}

func TestGatewayStripsMarkdownAndCaches(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)

	synth := &countingSynth{}
	g := NewGateway(synth, "", DefaultConfig(), nil, WithCache(cache))

	a1 := g.Synthesize(context.Background(), "## **Newton's** first law")
	require.NotNil(t, a1)
	a2 := g.Synthesize(context.Background(), "## **Newton's** first law")
	require.NotNil(t, a2)

	assert.Equal(t, 1, synth.calls)
	assert.Equal(t, []string{"Newton's first law"}, synth.texts)
	assert.Equal(t, a1.Data, a2.Data)
}

func TestGatewaySkipsEmptyText(t *testing.T) {
	synth := &countingSynth{}
	g := NewGateway(synth, "", DefaultConfig(), nil)
	assert.Nil(t, g.Synthesize(context.Background(), "### **"))
	assert.Zero(t, synth.calls)
}

func TestStripMarkdown(t *testing.T) {
	assert.Equal(t, "Title and bold", StripMarkdown("# Title and **bold**"))
	assert.Equal(t, "plain", StripMarkdown("plain"))
}

func TestCacheKey(t *testing.T) {
	k := CacheKey("v", "m", "text")
	assert.Len(t, k, 64)
	assert.Equal(t, k, CacheKey("v", "m", "text"))
	assert.NotEqual(t, k, CacheKey("v2", "m", "text"))
	assert.NotEqual(t, CacheKey("ab", "c", "t"), CacheKey("a", "bc", "t"))
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)
	data, err := cache.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestNewRedisCacheBadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not a url", time.Minute)
	assert.Error(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("STUDYMATE_ELEVENLABS_API_KEY", "")
	t.Setenv("ELEVENLABS_API_KEY", "alias-key")
	t.Setenv("STUDYMATE_ELEVENLABS_VOICE_ID", "voice-2")
	t.Setenv("STUDYMATE_TTS_TIMEOUT", "3s")

	cfg := ConfigFromEnv()
	assert.Equal(t, "alias-key", cfg.APIKey)
	assert.Equal(t, "voice-2", cfg.VoiceID)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "eleven_monolingual_v1", cfg.ModelID)
	assert.NoError(t, cfg.Validate())
}
