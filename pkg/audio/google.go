package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type GoogleVoiceConfig struct {
	APIKey   string
	ModelURL string
	Timeout  time.Duration
}

// GoogleVoiceClient posts text to a hosted voice-model endpoint and reads
// back the audio stream. The voice and settings live server-side in the
// model deployment, so voiceID and settings are accepted and ignored.
type GoogleVoiceClient struct {
	cfg  GoogleVoiceConfig
	http *http.Client
}

func NewGoogleVoiceClient(cfg GoogleVoiceConfig) (*GoogleVoiceClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("audio: google voice api key is required")
	}
	if cfg.ModelURL == "" {
		return nil, fmt.Errorf("audio: google voice model url is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &GoogleVoiceClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *GoogleVoiceClient) Name() string { return "google" }

func (c *GoogleVoiceClient) Synthesize(ctx context.Context, text, _ string, _ VoiceSettings) ([]byte, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ModelURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, newProviderError(c.Name(), resp.StatusCode, string(msg))
	}
	return io.ReadAll(resp.Body)
}
