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

// Package auth resolves a GitHub personal access token from an ordered list
// of optional local sources. Resolution never touches the network.
//
// Sources, highest precedence first:
//  1. GH_TOKEN / GITHUB_TOKEN environment variables
//  2. the same two keys in a .env file in the working directory
//  3. the gh CLI token store (hosts.yml)
//  4. the hub CLI configuration file
//  5. the hub.oauthtoken git configuration value
package auth

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	gherrors "github.com/varonathe/ghscripts/internal/errors"
)

const defaultHost = "github.com"

// Resolver is one credential source. It returns the token and true when the
// source yields a usable value, and ("", false) otherwise. Resolvers must not
// perform network I/O.
type Resolver func() (string, bool)

// Resolve walks the default source chain and returns the first token found.
// It fails with ErrNoToken when every source comes up empty.
func Resolve() (string, error) {
	return ResolveFrom(
		FromEnv(),
		FromDotenv(".env"),
		FromGHConfig(ghConfigDir()),
		FromHubConfig(hubConfigPath()),
		FromGitConfig(),
	)
}

// ResolveFrom walks the given resolvers in order and stops at the first
// success. Lower-precedence sources are never consulted once a token is
// found.
func ResolveFrom(resolvers ...Resolver) (string, error) {
	for _, r := range resolvers {
		if token, ok := r(); ok {
			return token, nil
		}
	}
	return "", gherrors.ErrNoToken
}

// FromEnv reads GH_TOKEN, then GITHUB_TOKEN, from the process environment.
func FromEnv() Resolver {
	return func() (string, bool) {
		for _, key := range []string{"GH_TOKEN", "GITHUB_TOKEN"} {
			if v := strings.TrimSpace(os.Getenv(key)); v != "" {
				return v, true
			}
		}
		return "", false
	}
}

// FromDotenv reads GH_TOKEN, then GITHUB_TOKEN, from a .env file. A missing
// or malformed file is treated as an empty source.
func FromDotenv(path string) Resolver {
	return func() (string, bool) {
		env, err := godotenv.Read(path)
		if err != nil {
			return "", false
		}
		for _, key := range []string{"GH_TOKEN", "GITHUB_TOKEN"} {
			if v := strings.TrimSpace(env[key]); v != "" {
				return v, true
			}
		}
		return "", false
	}
}

// ghHosts mirrors the subset of the gh CLI hosts.yml format we care about.
type ghHosts map[string]struct {
	OauthToken string `yaml:"oauth_token"`
}

// FromGHConfig reads the oauth_token stored for github.com by the gh CLI in
// <dir>/hosts.yml.
func FromGHConfig(dir string) Resolver {
	return func() (string, bool) {
		data, err := os.ReadFile(filepath.Join(dir, "hosts.yml"))
		if err != nil {
			return "", false
		}
		var hosts ghHosts
		if err := yaml.Unmarshal(data, &hosts); err != nil {
			return "", false
		}
		if v := strings.TrimSpace(hosts[defaultHost].OauthToken); v != "" {
			return v, true
		}
		return "", false
	}
}

// hubConfig mirrors the hub CLI config file: a host mapped to a list of
// account entries, each with an oauth_token.
type hubConfig map[string][]struct {
	OauthToken string `yaml:"oauth_token"`
}

// FromHubConfig reads the first oauth_token stored for github.com by the hub
// CLI.
func FromHubConfig(path string) Resolver {
	return func() (string, bool) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", false
		}
		var cfg hubConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return "", false
		}
		for _, entry := range cfg[defaultHost] {
			if v := strings.TrimSpace(entry.OauthToken); v != "" {
				return v, true
			}
		}
		return "", false
	}
}

// FromGitConfig asks git for the hub.oauthtoken configuration value.
func FromGitConfig() Resolver {
	return func() (string, bool) {
		cmd := exec.Command("git", "config", "--get", "hub.oauthtoken")
		var out bytes.Buffer
		cmd.Stdout = &out
		cmd.Stderr = nil
		if err := cmd.Run(); err != nil {
			return "", false
		}
		if v := strings.TrimSpace(out.String()); v != "" {
			return v, true
		}
		return "", false
	}
}

// ghConfigDir mirrors the gh CLI's config directory lookup.
func ghConfigDir() string {
	if dir := os.Getenv("GH_CONFIG_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gh")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gh")
}

// hubConfigPath mirrors the hub CLI's config file lookup.
func hubConfigPath() string {
	if path := os.Getenv("HUB_CONFIG"); path != "" {
		return path
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hub")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hub")
}
