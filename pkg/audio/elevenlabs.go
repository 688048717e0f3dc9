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

const (
	elevenLabsBaseURL = "https://api.elevenlabs.io"
	elevenLabsModelID = "eleven_multilingual_v2"
)

type ElevenLabsConfig struct {
	APIKey  string
	BaseURL string
	ModelID string
	Timeout time.Duration
}

// ElevenLabsClient talks to the ElevenLabs text-to-speech API.
type ElevenLabsClient struct {
	cfg  ElevenLabsConfig
	http *http.Client
}

func NewElevenLabsClient(cfg ElevenLabsConfig) (*ElevenLabsClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("audio: elevenlabs api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = elevenLabsBaseURL
	}
	if cfg.ModelID == "" {
		cfg.ModelID = elevenLabsModelID
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &ElevenLabsClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *ElevenLabsClient) Name() string { return "elevenlabs" }

func (c *ElevenLabsClient) Synthesize(ctx context.Context, text, voiceID string, settings VoiceSettings) ([]byte, error) {
	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.cfg.BaseURL, voiceID)

	body, err := json.Marshal(map[string]interface{}{
		"text":           text,
		"model_id":       c.cfg.ModelID,
		"voice_settings": settings,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.cfg.APIKey)

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

type elevenLabsSubscription struct {
	Subscription struct {
		CharacterCount int `json:"character_count"`
		CharacterUsed  int `json:"character_used"`
	} `json:"subscription"`
}

// CheckCredits queries the account quota. Callers gate voice replies on
// HasCredit so a drained account degrades to text instead of erroring.
func (c *ElevenLabsClient) CheckCredits(ctx context.Context) (CreditStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/v1/user", nil)
	if err != nil {
		return CreditStatus{}, err
	}
	req.Header.Set("xi-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return CreditStatus{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return CreditStatus{}, newProviderError(c.Name(), resp.StatusCode, string(msg))
	}

	var sub elevenLabsSubscription
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return CreditStatus{}, err
	}

	remaining := sub.Subscription.CharacterCount - sub.Subscription.CharacterUsed
	return CreditStatus{
		Total:     sub.Subscription.CharacterCount,
		Used:      sub.Subscription.CharacterUsed,
		Remaining: remaining,
		HasCredit: remaining > 100,
	}, nil
}
