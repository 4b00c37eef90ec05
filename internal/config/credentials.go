package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const GeminiKeyEnv = "GEMINI_API_KEY"

// Credential sources reported by LoadGeminiKey.
const (
	SourceEnv  = "env"
	SourceFile = "file"
)

// GeminiKeyPath is where `bihucal auth` stores the API key.
func GeminiKeyPath() string {
	return filepath.Join(CredentialsDir(), "gemini", "api_key.json")
}

func legacyGeminiKeyPath() string {
	return filepath.Join(CredentialsDir(), "gemini", "api_key.txt")
}

type apiKeyFile struct {
	APIKey string `json:"api_key,omitempty"`
	Key    string `json:"key,omitempty"`
}

func (a apiKeyFile) effectiveKey() string {
	if a.APIKey != "" {
		return a.APIKey
	}
	return a.Key
}

// LoadGeminiKey returns the API key and where it came from. The environment
// wins over stored credentials. An empty key means none is configured.
func LoadGeminiKey() (key, source string) {
	if v := strings.TrimSpace(os.Getenv(GeminiKeyEnv)); v != "" {
		return v, SourceEnv
	}
	if data, err := os.ReadFile(GeminiKeyPath()); err == nil {
		var f apiKeyFile
		if json.Unmarshal(data, &f) == nil {
			if k := strings.TrimSpace(f.effectiveKey()); k != "" {
				return k, SourceFile
			}
		}
	}
	if data, err := os.ReadFile(legacyGeminiKeyPath()); err == nil {
		if k := strings.TrimSpace(string(data)); k != "" {
			return k, SourceFile
		}
	}
	return "", ""
}

// SaveGeminiKey stores the key with owner-only permissions.
func SaveGeminiKey(key string) error {
	data, err := json.Marshal(apiKeyFile{APIKey: strings.TrimSpace(key)})
	if err != nil {
		return fmt.Errorf("writing credential: %w", err)
	}
	return WriteCredential(GeminiKeyPath(), data)
}

// DeleteGeminiKey removes stored keys and reports whether anything was removed.
func DeleteGeminiKey() bool {
	removed := false
	for _, p := range []string{GeminiKeyPath(), legacyGeminiKeyPath()} {
		if err := os.Remove(p); err == nil {
			removed = true
		}
	}
	return removed
}

func WriteCredential(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("writing credential: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o600); err != nil {
		return fmt.Errorf("writing credential: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("writing credential: %w", err)
	}
	return nil
}
