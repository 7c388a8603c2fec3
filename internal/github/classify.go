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

package github

import (
	"errors"
	"strings"
	"time"

	gh "github.com/google/go-github/v62/github"

	gherrors "github.com/varonathe/ghscripts/internal/errors"
)

// mapRESTError maps go-github errors onto the error taxonomy. The REST
// library surfaces typed errors, so most of the mapping is structural;
// anything left over is classified by message.
func mapRESTError(err error) error {
	if err == nil {
		return nil
	}

	var rle *gh.RateLimitError
	if errors.As(err, &rle) {
		return &gherrors.RateLimitError{Reset: rle.Rate.Reset.Time}
	}

	var abuse *gh.AbuseRateLimitError
	if errors.As(err, &abuse) {
		reset := time.Now()
		if abuse.RetryAfter != nil {
			reset = reset.Add(*abuse.RetryAfter)
		}
		return &gherrors.RateLimitError{Reset: reset}
	}

	var er *gh.ErrorResponse
	if errors.As(err, &er) && er.Response != nil {
		return &gherrors.APIError{
			StatusCode: er.Response.StatusCode,
			Message:    er.Message,
		}
	}

	if isNetworkError(err) {
		return errorsJoin(err, gherrors.ErrNetworkFailure)
	}

	return err
}

// mapGraphQLError maps errors from the GraphQL client onto the taxonomy.
// They arrive as opaque strings, so classification is by message.
func mapGraphQLError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isRateLimitError(err):
		// The GraphQL client exposes no response headers, so the reset
		// time is unknown.
		return errorsJoin(err, &gherrors.RateLimitError{})
	case isAuthError(err):
		return errorsJoin(err, gherrors.ErrInvalidToken)
	case isNotFoundError(err):
		return errorsJoin(err, gherrors.ErrNotFound)
	case isNetworkError(err):
		return errorsJoin(err, gherrors.ErrNetworkFailure)
	default:
		return errorsJoin(err, gherrors.ErrAPI)
	}
}

// errorsJoin wraps err so that it matches the sentinel with errors.Is while
// keeping the original message first.
func errorsJoin(err, sentinel error) error {
	return &classifiedError{cause: err, sentinel: sentinel}
}

type classifiedError struct {
	cause    error
	sentinel error
}

func (e *classifiedError) Error() string { return e.cause.Error() }

func (e *classifiedError) Unwrap() []error { return []error{e.cause, e.sentinel} }

// isAuthError checks if the error is an authentication or authorization error.
func isAuthError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "401") ||
		strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "forbidden") ||
		strings.Contains(errStr, "bad credentials") ||
		strings.Contains(errStr, "authentication")
}

// isNotFoundError checks if the error is a not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "404") ||
		strings.Contains(errStr, "not found") ||
		strings.Contains(errStr, "could not resolve to a repository")
}

// isRateLimitError checks if the error is a rate limit error.
func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "rate_limited") ||
		strings.Contains(errStr, "429")
}

// isNetworkError checks if the error is a network connectivity error.
func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "dial tcp") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "network is unreachable")
}
