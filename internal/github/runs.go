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
	"time"

	gh "github.com/google/go-github/v62/github"
)

// WorkflowRunsSince walks a repository's workflow runs, newest first, and
// invokes fn for each run created after cutoff. The listing is ordered by
// the server, so iteration ends at the first run at or before the cutoff.
//
// Filtering the query server-side by creation date would omit queued runs,
// so the cutoff is applied client-side.
func (c *Client) WorkflowRunsSince(ctx context.Context, owner, repo string, cutoff time.Time, fn func(RunRow) error) error {
	opts := &gh.ListWorkflowRunsOptions{
		ListOptions: gh.ListOptions{PerPage: pageSize},
	}
	for {
		runs, resp, err := c.rest.Actions.ListRepositoryWorkflowRuns(ctx, owner, repo, opts)
		if err != nil {
			return mapRESTError(err)
		}
		for _, run := range runs.WorkflowRuns {
			if !run.GetCreatedAt().Time.After(cutoff) {
				return nil
			}
			if stop, err := stopOnErr(fn(convertRun(owner, repo, run))); stop {
				return err
			}
		}
		if resp.NextPage == 0 {
			return nil
		}
		opts.Page = resp.NextPage
		c.log.Printf("fetching next page of workflow runs for %s/%s...", owner, repo)
	}
}

func convertRun(owner, repo string, run *gh.WorkflowRun) RunRow {
	row := RunRow{
		Repo:      owner + "/" + repo,
		Name:      run.GetName(),
		Number:    run.GetRunNumber(),
		Attempt:   run.GetRunAttempt(),
		Title:     run.GetDisplayTitle(),
		Event:     run.GetEvent(),
		Branch:    run.GetHeadBranch(),
		Status:    run.GetStatus(),
		CreatedAt: run.GetCreatedAt().Time,
	}
	for _, pr := range run.PullRequests {
		row.PRs = append(row.PRs, pr.GetNumber())
	}
	return row
}
