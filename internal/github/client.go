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
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/varonathe/ghscripts/internal/config"
)

// Version is the tool version stamped into the User-Agent header.
// Overridden at build time via -ldflags.
var Version = "dev"

var userAgent = "ghscripts/" + Version

// ErrStop is returned by a record callback to end iteration early without
// reporting an error to the caller.
var ErrStop = errors.New("stop iteration")

// Logger is the minimal logging interface the client needs. *log.Logger
// satisfies it.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Client wraps a REST and a GraphQL GitHub client sharing one authenticated
// HTTP client. All fetch methods issue requests sequentially and hold at
// most one response page in memory.
type Client struct {
	rest    *gh.Client
	graphql *githubv4.Client
	log     Logger
}

// NewClient builds a Client authenticated with the given token. The
// endpoints come from cfg, which allows pointing the client at a GitHub
// Enterprise instance or a test server.
func NewClient(token string, cfg *config.Config, logger Logger) (*Client, error) {
	base := &userAgentTransport{base: http.DefaultTransport}
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   base,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		},
	}

	rest := gh.NewClient(httpClient)
	endpoint := cfg.GitHub.APIEndpoint
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	baseURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid API endpoint %q: %w", cfg.GitHub.APIEndpoint, err)
	}
	rest.BaseURL = baseURL

	return &Client{
		rest:    rest,
		graphql: githubv4.NewEnterpriseClient(cfg.GitHub.GraphQLEndpoint, httpClient),
		log:     logger,
	}, nil
}

// userAgentTransport stamps the User-Agent header on every request.
// Authentication is layered on top by oauth2.Transport.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", userAgent)
	return t.base.RoundTrip(req)
}

// stopOnErr normalizes a callback result: ErrStop ends iteration cleanly,
// anything else propagates.
func stopOnErr(err error) (stop bool, out error) {
	if err == nil {
		return false, nil
	}
	if errors.Is(err, ErrStop) {
		return true, nil
	}
	return true, err
}
