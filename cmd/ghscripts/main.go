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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/varonathe/ghscripts/internal/auth"
	"github.com/varonathe/ghscripts/internal/config"
	gherrors "github.com/varonathe/ghscripts/internal/errors"
	"github.com/varonathe/ghscripts/internal/github"
)

var version = "dev"

// Timeouts per command shape. Single-request commands finish well within
// 30 seconds; commands that walk every repository of an account need more.
const (
	commandTimeout = 30 * time.Second
	scanTimeout    = 5 * time.Minute
)

// Persistent flags shared by every subcommand.
var (
	flagToken   string
	flagConfig  string
	flagVerbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ghscripts",
		Short: "Query and report on GitHub activity from the command line",
		Long: `ghscripts bundles a set of small GitHub reports: rate-limit usage,
recent creations and contributions, active workflow runs, fork branch
status, reactions on open issues, and pull request lookup for the
current branch.

Authentication resolves from --token, the GH_TOKEN / GITHUB_TOKEN
environment variables, a .env file, the gh or hub CLI token stores,
or the hub.oauthtoken git configuration value, in that order.`,
		Version:       version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "GitHub personal access token (overrides all other credential sources)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (default: .ghscripts.yaml, ~/.config/ghscripts/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log request progress to stderr")

	rootCmd.AddCommand(
		newRateLimitCommand(),
		newCreationsCommand(),
		newActiveCommand(),
		newContribsCommand(),
		newForkStatusCommand(),
		newReactionsCommand(),
		newViewPRCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// setup loads configuration, resolves the credential and builds the API
// client. Every subcommand starts here.
func setup() (*github.Client, *config.Config, error) {
	cfg, err := config.LoadConfig(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	token := flagToken
	if token == "" {
		token, err = auth.Resolve()
		if err != nil {
			return nil, nil, err
		}
	}

	logger := log.New(io.Discard, "", 0)
	if flagVerbose {
		logger = log.New(os.Stderr, "ghscripts: ", 0)
	}

	client, err := github.NewClient(token, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}

// commandContext derives a deadline-bound context for one command run.
func commandContext(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	// Check for specific error types
	if errors.Is(err, gherrors.ErrNoToken) ||
		errors.Is(err, gherrors.ErrInvalidToken) ||
		errors.Is(err, gherrors.ErrNotFound) ||
		errors.Is(err, gherrors.ErrRateLimit) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, gherrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
