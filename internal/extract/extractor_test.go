package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claimkit/fnoltriage/internal/model"
	"github.com/claimkit/fnoltriage/internal/worker"
)

func baseConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.LLM.Provider = ""
	cfg.Cache.Enabled = false
	cfg.Output.Verbose = false
	return cfg
}

func TestExtract_NoBackendUsesPatterns(t *testing.T) {
	e := New(baseConfig(), nil)

	fields, method := e.Extract(context.Background(), "Policy Number: POL-1")

	if method != MethodPattern {
		t.Errorf("expected method %q, got %q", MethodPattern, method)
	}
	if fields.PolicyNumber == nil || *fields.PolicyNumber != "POL-1" {
		t.Errorf("unexpected policyNumber: %v", fields.PolicyNumber)
	}
}

func TestExtract_KeylessBackendFallsBack(t *testing.T) {
	cfg := baseConfig()
	cfg.LLM.Provider = "gemini"
	cfg.LLM.APIKey = ""
	e := New(cfg, nil)

	_, method := e.Extract(context.Background(), "Policy Number: POL-1")

	if method != MethodPattern {
		t.Errorf("misconfigured backend must fall back to patterns, got %q", method)
	}
}

func TestExtract_BackendSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"model":    "llama3.1",
			"response": `{"policyNumber": "POL-FROM-MODEL", "estimatedDamage": 12000}`,
			"done":     true,
		})
	}))
	defer server.Close()

	cfg := baseConfig()
	cfg.LLM.Provider = "ollama"
	cfg.LLM.BaseURL = server.URL
	e := New(cfg, nil)

	fields, method := e.Extract(context.Background(), "irrelevant, the backend decides")

	if method != "ollama" {
		t.Fatalf("expected ollama extraction, got %q", method)
	}
	if fields.PolicyNumber == nil || *fields.PolicyNumber != "POL-FROM-MODEL" {
		t.Errorf("unexpected policyNumber: %v", fields.PolicyNumber)
	}
	if fields.EstimatedDamage == nil || *fields.EstimatedDamage != 12000 {
		t.Errorf("unexpected estimatedDamage: %v", fields.EstimatedDamage)
	}
}

func TestExtract_BackendFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"model not loaded"}`))
	}))
	defer server.Close()

	cfg := baseConfig()
	cfg.LLM.Provider = "ollama"
	cfg.LLM.BaseURL = server.URL
	e := New(cfg, nil)

	fields, method := e.Extract(context.Background(), "Policy Number: POL-9")

	if method != MethodPattern {
		t.Fatalf("backend failure must fall back to patterns, got %q", method)
	}
	if fields.PolicyNumber == nil || *fields.PolicyNumber != "POL-9" {
		t.Errorf("fallback should still extract from text: %v", fields.PolicyNumber)
	}
}

func TestExtract_MalformedBackendResponseFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"model":    "llama3.1",
			"response": "I am unable to produce JSON for this document.",
			"done":     true,
		})
	}))
	defer server.Close()

	cfg := baseConfig()
	cfg.LLM.Provider = "ollama"
	cfg.LLM.BaseURL = server.URL
	e := New(cfg, nil)

	_, method := e.Extract(context.Background(), "Policy Number: POL-9")

	if method != MethodPattern {
		t.Errorf("undecodable backend reply must fall back to patterns, got %q", method)
	}
}

func TestExtract_RateLimitDenialFallsBack(t *testing.T) {
	var backendCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendCalls++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"model":    "llama3.1",
			"response": "{}",
			"done":     true,
		})
	}))
	defer server.Close()

	cfg := baseConfig()
	cfg.LLM.Provider = "ollama"
	cfg.LLM.BaseURL = server.URL

	limiter := worker.NewBackendLimiter(0.001, 1)
	e := New(cfg, limiter)

	// First call spends the only token, second is denied and must not reach
	// the backend.
	if _, method := e.Extract(context.Background(), "doc one"); method != "ollama" {
		t.Fatalf("first call should use the backend, got %q", method)
	}
	if _, method := e.Extract(context.Background(), "doc two"); method != MethodPattern {
		t.Errorf("denied call must use patterns, got %q", method)
	}
	if backendCalls != 1 {
		t.Errorf("expected exactly 1 backend call, got %d", backendCalls)
	}
}

func TestExtract_ConfigChangeTakesEffect(t *testing.T) {
	cfg := baseConfig()
	e := New(cfg, nil)

	if _, method := e.Extract(context.Background(), "doc"); method != MethodPattern {
		t.Fatalf("expected pattern extraction, got %q", method)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"model": "llama3.1", "response": "{}", "done": true})
	}))
	defer server.Close()

	// The LLM section is re-read per call, so enabling a backend on the
	// shared config applies without rebuilding the extractor.
	cfg.LLM.Provider = "ollama"
	cfg.LLM.BaseURL = server.URL

	if _, method := e.Extract(context.Background(), "doc"); method != "ollama" {
		t.Errorf("expected backend extraction after config change, got %q", method)
	}
}
