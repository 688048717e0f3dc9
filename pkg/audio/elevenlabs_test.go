package audio

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newElevenLabsTest(t *testing.T, handler http.HandlerFunc) *ElevenLabsClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewElevenLabsClient(ElevenLabsConfig{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestElevenLabs_Synthesize(t *testing.T) {
	c := newElevenLabsTest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/text-to-speech/voice-1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("xi-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body["text"] != "hola mundo" || body["model_id"] != elevenLabsModelID {
			t.Errorf("unexpected body: %v", body)
		}
		w.Write([]byte("mp3"))
	})

	audio, err := c.Synthesize(context.Background(), "hola mundo", "voice-1", DefaultVoiceSettings())
	if err != nil {
		t.Fatal(err)
	}
	if string(audio) != "mp3" {
		t.Errorf("got %q, want mp3", audio)
	}
}

func TestElevenLabs_ErrorRetryability(t *testing.T) {
	cases := []struct {
		status    int
		retryable bool
	}{
		{http.StatusUnauthorized, false},
		{http.StatusUnprocessableEntity, false},
		{http.StatusTooManyRequests, true},
		{http.StatusBadGateway, true},
	}

	for _, tc := range cases {
		c := newElevenLabsTest(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream said no", tc.status)
		})

		_, err := c.Synthesize(context.Background(), "hola mundo", "v", DefaultVoiceSettings())

		var pe *ProviderError
		if !errors.As(err, &pe) {
			t.Fatalf("status %d: got %v, want ProviderError", tc.status, err)
		}
		if pe.Status != tc.status || pe.Retryable != tc.retryable {
			t.Errorf("status %d: got retryable=%v, want %v", tc.status, pe.Retryable, tc.retryable)
		}
	}
}

func TestElevenLabs_CheckCredits(t *testing.T) {
	c := newElevenLabsTest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/user" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"subscription": map[string]int{
				"character_count": 10000,
				"character_used":  9950,
			},
		})
	})

	status, err := c.CheckCredits(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if status.Remaining != 50 {
		t.Errorf("remaining = %d, want 50", status.Remaining)
	}
	if status.HasCredit {
		t.Error("50 characters left should not count as having credit")
	}
}

func TestElevenLabs_RequiresAPIKey(t *testing.T) {
	if _, err := NewElevenLabsClient(ElevenLabsConfig{}); err == nil {
		t.Fatal("expected an error for a missing api key")
	}
}
