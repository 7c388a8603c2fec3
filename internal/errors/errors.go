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

// Package errors defines sentinel errors for consistent error handling across
// the application. These errors map to specific exit codes in the CLI for
// proper scripting support.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrNoToken indicates that no GitHub token could be resolved from any
	// credential source. Maps to exit code 2.
	ErrNoToken = errors.New("no github token found")

	// ErrInvalidToken indicates GitHub authentication failed.
	// Maps to exit code 2.
	ErrInvalidToken = errors.New("invalid github token")

	// ErrNotFound indicates the requested resource does not exist or is not
	// accessible. Maps to exit code 2.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimit indicates GitHub API rate limit has been exceeded.
	// Maps to exit code 2.
	ErrRateLimit = errors.New("github rate limit exceeded")

	// ErrAPI indicates a non-2xx API response that is not covered by a more
	// specific sentinel. Maps to exit code 1.
	ErrAPI = errors.New("github api error")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrNoPullRequest indicates that no pull request exists for the
	// requested head branch. Maps to exit code 1.
	ErrNoPullRequest = errors.New("no pull request found")
)

// RateLimitError carries the reset time extracted from the API response when
// the quota is exhausted. It unwraps to ErrRateLimit so callers can match it
// with errors.Is while still reaching the reset time with errors.As.
type RateLimitError struct {
	// Resource is the rate-limited resource name when known ("core",
	// "graphql", ...). May be empty for REST responses.
	Resource string

	// Reset is when the quota replenishes. The zero value means the reset
	// time is unknown (GraphQL errors carry no rate-limit headers).
	Reset time.Time
}

func (e *RateLimitError) Error() string {
	s := "rate limit exhausted"
	if e.Resource != "" {
		s += " for " + e.Resource
	}
	if !e.Reset.IsZero() {
		s += fmt.Sprintf(", resets at %s", e.Reset.Local().Format(time.RFC1123))
	}
	return s
}

// Unwrap makes errors.Is(err, ErrRateLimit) hold for every RateLimitError.
func (e *RateLimitError) Unwrap() error { return ErrRateLimit }

// APIError carries the HTTP status and server message of a failed API call.
// It unwraps to ErrAPI, or to ErrNotFound / ErrInvalidToken for the status
// codes that have a more specific meaning.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("github api returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("github api returned %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 401:
		return ErrInvalidToken
	case 404:
		return ErrNotFound
	default:
		return ErrAPI
	}
}
