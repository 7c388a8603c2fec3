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
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	gherrors "github.com/varonathe/ghscripts/internal/errors"
)

func TestContributions(t *testing.T) {
	var requests []map[string]interface{}

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graphql" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}

		var req struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		requests = append(requests, req.Variables)

		maxRepos, _ := req.Variables["max"].(float64)
		if int(maxRepos) == contribRepoGuess {
			// More repositories than the guess: report the real count and
			// only part of the data, forcing the follow-up query.
			writeJSON(t, w, `{"data": {"viewer": {"contributionsCollection": {
				"totalRepositoriesWithContributedCommits": 12,
				"commitContributionsByRepository": [
					{"repository": {"nameWithOwner": "octocat/a"}, "contributions": {"totalCount": 1}}
				]}}}}`)
			return
		}
		writeJSON(t, w, `{"data": {"viewer": {"contributionsCollection": {
			"totalRepositoriesWithContributedCommits": 12,
			"commitContributionsByRepository": [
				{"repository": {"nameWithOwner": "octocat/a"}, "contributions": {"totalCount": 1}},
				{"repository": {"nameWithOwner": "octocat/b"}, "contributions": {"totalCount": 5}}
			]}}}}`)
	}))

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC)

	contribs, err := client.Contributions(context.Background(), from, to)
	if err != nil {
		t.Fatalf("Contributions failed: %v", err)
	}

	if len(requests) != 2 {
		t.Fatalf("issued %d queries, want 2 (guess then exact count)", len(requests))
	}
	if got, _ := requests[1]["max"].(float64); int(got) != 12 {
		t.Errorf("follow-up maxRepositories = %v, want 12", requests[1]["max"])
	}

	if len(contribs) != 2 || contribs["octocat/a"] != 1 || contribs["octocat/b"] != 5 {
		t.Errorf("contribs = %v", contribs)
	}
}

func TestContributionsSingleQueryWhenGuessSuffices(t *testing.T) {
	queries := 0
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries++
		writeJSON(t, w, `{"data": {"viewer": {"contributionsCollection": {
			"totalRepositoriesWithContributedCommits": 2,
			"commitContributionsByRepository": [
				{"repository": {"nameWithOwner": "octocat/a"}, "contributions": {"totalCount": 4}},
				{"repository": {"nameWithOwner": "octocat/b"}, "contributions": {"totalCount": 2}}
			]}}}}`)
	}))

	contribs, err := client.Contributions(context.Background(), time.Now().Add(-24*time.Hour), time.Now())
	if err != nil {
		t.Fatalf("Contributions failed: %v", err)
	}
	if queries != 1 {
		t.Errorf("issued %d queries, want 1", queries)
	}
	if contribs["octocat/a"] != 4 {
		t.Errorf("contribs = %v", contribs)
	}
}

func TestContributionsErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
	}{
		{
			name:     "graphql rate limited",
			status:   http.StatusOK,
			body:     `{"errors": [{"type": "RATE_LIMITED", "message": "API rate limit exceeded"}]}`,
			sentinel: gherrors.ErrRateLimit,
		},
		{
			name:     "bad credentials",
			status:   http.StatusUnauthorized,
			body:     `{"message": "Bad credentials"}`,
			sentinel: gherrors.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := client.Contributions(context.Background(), time.Now().Add(-time.Hour), time.Now())
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("err = %v, want %v", err, tt.sentinel)
			}
		})
	}
}
