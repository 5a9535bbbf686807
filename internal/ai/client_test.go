package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateBody(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.APIKey = "test-key"
	cfg.TimeoutMs = 2000
	return cfg
}

func TestClientGenerate_SendsContract(t *testing.T) {
	var gotBody generateRequest
	var gotKey, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(candidateBody("hola")))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), "plan please")
	require.NoError(t, err)

	assert.Equal(t, "hola", resp.Text)
	assert.Equal(t, "test-key", gotKey)
	assert.Contains(t, gotPath, "gemini-1.5-flash:generateContent")
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "plan please", gotBody.Contents[0].Parts[0].Text)
	assert.InDelta(t, 0.3, gotBody.GenerationConfig.Temperature, 1e-9)
	assert.Equal(t, 32, gotBody.GenerationConfig.TopK)
	assert.InDelta(t, 0.95, gotBody.GenerationConfig.TopP, 1e-9)
	assert.Equal(t, 8192, gotBody.GenerationConfig.MaxOutputTokens)
}

func TestClientGenerate_NoCredentialNoNetworkCall(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(candidateBody("x")))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = ""
	client := NewClient(cfg, NoopObserver{})

	assert.False(t, client.Available())
	_, err := client.Generate(context.Background(), "plan")
	assert.True(t, errors.Is(err, ErrNoCredential))
	assert.Equal(t, int64(0), calls.Load(), "no request may be made without a credential")
}

func TestClientGenerate_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), "plan")
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestClientGenerate_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), "plan")
	assert.True(t, errors.Is(err, ErrInvalidOutput))
}

type recordingObserver struct {
	events []CallEvent
}

func (r *recordingObserver) OnCallComplete(e CallEvent) {
	r.events = append(r.events, e)
}

func TestClientGenerate_ObserverSeesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewClient(testConfig(srv.URL), obs)
	_, err := client.Generate(context.Background(), "plan")
	require.Error(t, err)

	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, "UNAVAILABLE", obs.events[0].ErrorCode)
}
