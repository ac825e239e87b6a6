package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIProvider_Summarize(t *testing.T) {
	var gotReq openaiRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"[要約]\n要約です。"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", "gpt-4o-mini")
	p.endpoint = srv.URL

	got, err := p.Summarize(context.Background(), "タイトル", "本文")
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if got != "[要約]\n要約です。" {
		t.Errorf("Summarize() = %q", got)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("request model = %q, want %q", gotReq.Model, "gpt-4o-mini")
	}
	if gotReq.Temperature != summarizeTemperature {
		t.Errorf("request temperature = %v, want %v", gotReq.Temperature, summarizeTemperature)
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("request has %d messages, want 2", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", gotReq.Messages[0].Role)
	}
	if !strings.Contains(gotReq.Messages[1].Content, "タイトル") {
		t.Error("user message should contain the article title")
	}
	if !strings.Contains(gotReq.Messages[1].Content, "本文") {
		t.Error("user message should contain the article body")
	}
}

func TestOpenAIProvider_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", "gpt-4o-mini")
	p.endpoint = srv.URL

	_, err := p.Summarize(context.Background(), "タイトル", "本文")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Errorf("error %q should carry the API error message", err)
	}
}

func TestOpenAIProvider_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", "gpt-4o-mini")
	p.endpoint = srv.URL

	if _, err := p.Summarize(context.Background(), "タイトル", "本文"); err == nil {
		t.Fatal("expected error for empty choices, got nil")
	}
}

func TestAnthropicProvider_Summarize(t *testing.T) {
	var gotReq anthropicRequest
	var gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"text":"[要約]\n要約です。"}]}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider("test-key", "claude-haiku-4-5")
	p.endpoint = srv.URL

	got, err := p.Summarize(context.Background(), "タイトル", "本文")
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if got != "[要約]\n要約です。" {
		t.Errorf("Summarize() = %q", got)
	}

	if gotKey != "test-key" {
		t.Errorf("x-api-key = %q, want test-key", gotKey)
	}
	if gotReq.System == "" {
		t.Error("request should carry a system prompt")
	}
	if gotReq.Temperature != summarizeTemperature {
		t.Errorf("request temperature = %v, want %v", gotReq.Temperature, summarizeTemperature)
	}
}
