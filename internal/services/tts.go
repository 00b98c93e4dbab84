package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const elevenLabsBaseURL = "https://api.elevenlabs.io"

// ErrTTSNotConfigured signals that no ElevenLabs API key was supplied.
// Handlers map it to a 503.
var ErrTTSNotConfigured = errors.New("tts is not configured")

// TTSService proxies text-to-speech synthesis to ElevenLabs. When a Redis
// client is supplied, generated audio is cached by a hash of voice+text so
// repeated reads of the same consent paragraph don't re-bill the API.
type TTSService struct {
	apiKey  string
	voiceID string
	baseURL string
	client  *http.Client
	cache   *redis.Client // nil disables caching
}

func NewTTSService(apiKey, voiceID string, cache *redis.Client) *TTSService {
	return &TTSService{
		apiKey:  apiKey,
		voiceID: voiceID,
		baseURL: elevenLabsBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
		cache:   cache,
	}
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize converts text to MP3 audio bytes.
func (s *TTSService) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if s.apiKey == "" {
		return nil, ErrTTSNotConfigured
	}

	cacheKey := s.cacheKey(text)
	if s.cache != nil {
		if audio, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			return audio, nil
		}
	}

	body, err := json.Marshal(ttsRequest{
		Text:    text,
		ModelID: "eleven_turbo_v2",
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.5,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal tts request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.baseURL, s.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create tts request: %w", err)
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts api call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts api error: status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tts response: %w", err)
	}

	if s.cache != nil {
		// Cache write failures are not worth failing the request over.
		s.cache.Set(ctx, cacheKey, audio, 24*time.Hour)
	}

	return audio, nil
}

func (s *TTSService) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(s.voiceID + "\x00" + text))
	return "tts:" + hex.EncodeToString(sum[:])
}
