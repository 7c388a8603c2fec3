// Copyright 2025 The ghscripts Authors
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GitHub.APIEndpoint != "https://api.github.com/" {
		t.Errorf("APIEndpoint = %s, want https://api.github.com/", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.GraphQLEndpoint != "https://api.github.com/graphql" {
		t.Errorf("GraphQLEndpoint = %s, want https://api.github.com/graphql", cfg.GitHub.GraphQLEndpoint)
	}
	if cfg.Defaults.ContribDays != 7 {
		t.Errorf("ContribDays = %d, want 7", cfg.Defaults.ContribDays)
	}
	if cfg.Defaults.ActiveWindowDays != 3 {
		t.Errorf("ActiveWindowDays = %d, want 3", cfg.Defaults.ActiveWindowDays)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
github:
  api_endpoint: https://github.enterprise.com/api/v3/
  graphql_endpoint: https://github.enterprise.com/api/graphql

defaults:
  contrib_days: 14
  active_window_days: 5
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GitHub.APIEndpoint != "https://github.enterprise.com/api/v3/" {
		t.Errorf("APIEndpoint = %s, want enterprise endpoint", cfg.GitHub.APIEndpoint)
	}
	if cfg.Defaults.ContribDays != 14 {
		t.Errorf("ContribDays = %d, want 14", cfg.Defaults.ContribDays)
	}
	if cfg.Defaults.ActiveWindowDays != 5 {
		t.Errorf("ActiveWindowDays = %d, want 5", cfg.Defaults.ActiveWindowDays)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("explicit missing config file should be an error")
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("defaults:\n  contrib_days: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Defaults.ContribDays != 30 {
		t.Errorf("ContribDays = %d, want 30", cfg.Defaults.ContribDays)
	}
	if cfg.GitHub.APIEndpoint != "https://api.github.com/" {
		t.Errorf("APIEndpoint should keep default, got %s", cfg.GitHub.APIEndpoint)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GITHUB_API_ENDPOINT", "http://127.0.0.1:8080/")
	t.Setenv("GITHUB_GRAPHQL_ENDPOINT", "http://127.0.0.1:8080/graphql")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GitHub.APIEndpoint != "http://127.0.0.1:8080/" {
		t.Errorf("APIEndpoint = %s, want env override", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.GraphQLEndpoint != "http://127.0.0.1:8080/graphql" {
		t.Errorf("GraphQLEndpoint = %s, want env override", cfg.GitHub.GraphQLEndpoint)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"empty api endpoint", func(c *Config) { c.GitHub.APIEndpoint = "" }, true},
		{"empty graphql endpoint", func(c *Config) { c.GitHub.GraphQLEndpoint = "" }, true},
		{"zero contrib days", func(c *Config) { c.Defaults.ContribDays = 0 }, true},
		{"negative active window", func(c *Config) { c.Defaults.ActiveWindowDays = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
