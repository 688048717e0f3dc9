package audio

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultMaxRetries = 2
	defaultRetryDelay = time.Second
)

type ManagerConfig struct {
	Provider   Provider
	Cache      *Cache
	Logger     *logrus.Logger
	MaxRetries int
	RetryDelay time.Duration
}

// Manager fronts a synthesis provider with text normalization, a
// fingerprint cache, and bounded retries. Identical (text, voice, settings)
// triples resolve to the same cache entry.
type Manager struct {
	provider   Provider
	cache      *Cache
	log        *logrus.Logger
	maxRetries int
	retryDelay time.Duration
}

func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("audio: manager requires a provider")
	}
	if cfg.Cache == nil {
		cfg.Cache = NewCache(defaultCacheCapacity)
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	return &Manager{
		provider:   cfg.Provider,
		cache:      cfg.Cache,
		log:        cfg.Logger,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Synthesize normalizes the text, consults the cache, and only then calls
// the provider. The cache lock is never held across the provider call.
func (m *Manager) Synthesize(ctx context.Context, text, voiceID string, settings VoiceSettings) (SynthResult, error) {
	prepared, err := PrepareText(text)
	if err != nil {
		return SynthResult{}, err
	}

	key := fingerprint(prepared, voiceID, settings)
	if audio, ok := m.cache.Get(key); ok {
		if m.log != nil {
			m.log.WithFields(logrus.Fields{"key": key[:8], "voice": voiceID}).Debug("Synthesis cache hit")
		}
		return SynthResult{Audio: audio, FromCache: true, TextLength: len([]rune(prepared))}, nil
	}

	audio, err := m.synthesizeWithRetry(ctx, prepared, voiceID, settings)
	if err != nil {
		return SynthResult{}, err
	}

	// A cancelled request must not publish its result.
	if ctx.Err() == nil {
		m.cache.Put(key, audio)
	}
	return SynthResult{Audio: audio, FromCache: false, TextLength: len([]rune(prepared))}, nil
}

func (m *Manager) synthesizeWithRetry(ctx context.Context, text, voiceID string, settings VoiceSettings) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(m.retryDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		audio, err := m.provider.Synthesize(ctx, text, voiceID, settings)
		if err == nil {
			return audio, nil
		}
		lastErr = err

		if !retryableError(err) {
			break
		}
		if m.log != nil {
			m.log.WithFields(logrus.Fields{
				"attempt":  attempt + 1,
				"provider": m.provider.Name(),
				"error":    err.Error(),
			}).Warn("Synthesis attempt failed, retrying")
		}
	}
	return nil, lastErr
}

func (m *Manager) CacheStats() CacheStats { return m.cache.Stats() }

func retryableError(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	// Transport-level failures (timeouts, resets) stay retryable.
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func fingerprint(text, voiceID string, settings VoiceSettings) string {
	raw, _ := json.Marshal(settings)
	sum := md5.Sum([]byte(text + "_" + voiceID + "_" + string(raw)))
	return hex.EncodeToString(sum[:])
}
