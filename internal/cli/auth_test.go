package cli

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/joshuadavidthomas/bihucal/internal/config"
	"github.com/joshuadavidthomas/bihucal/internal/prompt"
)

func TestAuthStore_WithKeyFlagSkipsPrompt(t *testing.T) {
	buf := setupCLI(t, memoryConfig())
	mock := &prompt.Mock{}
	useMockPrompter(t, mock)

	if err := authStore("  " + testAPIKey + "  "); err != nil {
		t.Fatalf("authStore() error = %v", err)
	}
	if len(mock.InputCalls) != 0 || len(mock.ConfirmCalls) != 0 {
		t.Errorf("unexpected prompts: %d input, %d confirm", len(mock.InputCalls), len(mock.ConfirmCalls))
	}
	if key, source := config.LoadGeminiKey(); key != testAPIKey || source != config.SourceFile {
		t.Errorf("stored key = %q from %q", key, source)
	}
	if !strings.Contains(buf.String(), "Saved Gemini API key") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestAuthStore_PromptsForSecretKey(t *testing.T) {
	setupCLI(t, memoryConfig())
	mock := &prompt.Mock{
		InputFunc: func(cfg prompt.InputConfig) (string, error) {
			if !cfg.Secret {
				t.Error("key prompt should mask input")
			}
			if cfg.Validate == nil {
				t.Error("key prompt should validate input")
			}
			return testAPIKey, nil
		},
	}
	useMockPrompter(t, mock)

	if err := authStore(""); err != nil {
		t.Fatalf("authStore() error = %v", err)
	}
	if len(mock.InputCalls) != 1 {
		t.Fatalf("expected 1 Input call, got %d", len(mock.InputCalls))
	}
	if key, _ := config.LoadGeminiKey(); key != testAPIKey {
		t.Errorf("stored key = %q", key)
	}
}

func TestAuthStore_KeepsExistingKeyWhenDeclined(t *testing.T) {
	buf := setupCLI(t, memoryConfig())
	if err := config.SaveGeminiKey("AIzaExistingKey0123456789"); err != nil {
		t.Fatalf("SaveGeminiKey() error = %v", err)
	}
	mock := &prompt.Mock{
		ConfirmFunc: func(prompt.ConfirmConfig) (bool, error) { return false, nil },
	}
	useMockPrompter(t, mock)

	if err := authStore(""); err != nil {
		t.Fatalf("authStore() error = %v", err)
	}
	if len(mock.InputCalls) != 0 {
		t.Error("should not prompt for a key after declining")
	}
	if key, _ := config.LoadGeminiKey(); key != "AIzaExistingKey0123456789" {
		t.Errorf("key replaced: %q", key)
	}
	if !strings.Contains(buf.String(), "Kept the existing key") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestAuthStore_RejectsInvalidKey(t *testing.T) {
	setupCLI(t, memoryConfig())

	if err := authStore("short"); err == nil {
		t.Fatal("expected invalid key error")
	}
	if key, _ := config.LoadGeminiKey(); key != "" {
		t.Errorf("invalid key was stored: %q", key)
	}
}

func TestAuthStore_PromptError(t *testing.T) {
	setupCLI(t, memoryConfig())
	useMockPrompter(t, &prompt.Mock{
		InputFunc: func(prompt.InputConfig) (string, error) { return "", errors.New("user aborted") },
	})

	if err := authStore(""); err == nil || !strings.Contains(err.Error(), "aborted") {
		t.Errorf("error = %v, want prompt error", err)
	}
}

func TestAuthStatus(t *testing.T) {
	buf := setupCLI(t, memoryConfig())

	if err := authStatus(); err != nil {
		t.Fatalf("authStatus() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No Gemini API key configured") {
		t.Errorf("output = %q", buf.String())
	}

	t.Setenv(config.GeminiKeyEnv, testAPIKey)
	buf.Reset()
	jsonOutput = true
	if err := authStatus(); err != nil {
		t.Fatalf("authStatus() error = %v", err)
	}
	var got authStatusJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if !got.Configured || got.Source != config.SourceEnv {
		t.Errorf("status = %+v", got)
	}
}

func TestAuthDelete(t *testing.T) {
	buf := setupCLI(t, memoryConfig())
	if err := config.SaveGeminiKey(testAPIKey); err != nil {
		t.Fatalf("SaveGeminiKey() error = %v", err)
	}

	if err := authDelete(); err != nil {
		t.Fatalf("authDelete() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Removed stored Gemini API key") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	if err := authDelete(); err != nil {
		t.Fatalf("authDelete() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No stored Gemini API key") {
		t.Errorf("second delete output = %q", buf.String())
	}
}

func TestSourceToLabel(t *testing.T) {
	tests := map[string]string{
		config.SourceEnv:  "environment (GEMINI_API_KEY)",
		config.SourceFile: "stored credential",
		"":                "—",
	}
	for source, want := range tests {
		if got := sourceToLabel(source); got != want {
			t.Errorf("sourceToLabel(%q) = %q, want %q", source, got, want)
		}
	}
}
