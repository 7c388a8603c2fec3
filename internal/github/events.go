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

// CreationsSince walks the user's event feed, newest first, and invokes fn
// for every reportable event created at or after since. The feed is ordered
// by the server, so iteration ends at the first event older than the cutoff.
//
// Reportable events: repository creations, forks, issue and PR transitions
// (opened/closed/reopened, with closed-and-merged PRs reported as merged),
// and published releases. Everything else in the feed is skipped.
func (c *Client) CreationsSince(ctx context.Context, user string, since time.Time, fn func(CreationEvent) error) error {
	opts := &gh.ListOptions{PerPage: pageSize}
	for {
		events, resp, err := c.rest.Activity.ListEventsPerformedByUser(ctx, user, false, opts)
		if err != nil {
			return mapRESTError(err)
		}
		for _, ev := range events {
			if ev.GetCreatedAt().Time.Before(since) {
				return nil
			}
			rec, ok, err := c.convertEvent(ctx, ev)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if stop, err := stopOnErr(fn(rec)); stop {
				return err
			}
		}
		if resp.NextPage == 0 {
			return nil
		}
		opts.Page = resp.NextPage
		c.log.Printf("fetching next page of events...")
	}
}

// convertEvent flattens one feed event into a CreationEvent. The second
// result is false for event types the creations report does not cover.
func (c *Client) convertEvent(ctx context.Context, ev *gh.Event) (CreationEvent, bool, error) {
	rec := CreationEvent{
		Time: ev.GetCreatedAt().Time,
		Repo: ev.GetRepo().GetName(),
	}

	payload, err := ev.ParsePayload()
	if err != nil {
		// An unrecognized payload is not worth failing the run over.
		return rec, false, nil
	}

	switch p := payload.(type) {
	case *gh.CreateEvent:
		if p.GetRefType() != "repository" {
			return rec, false, nil
		}
		rec.Kind = KindRepository
		rec.Action = "created"
		return rec, true, nil

	case *gh.ForkEvent:
		rec.Kind = KindFork
		rec.Action = "forked"
		// The interesting name is the new fork, not the upstream repo.
		rec.Repo = p.GetForkee().GetFullName()
		return rec, true, nil

	case *gh.IssuesEvent:
		switch p.GetAction() {
		case "opened", "closed", "reopened":
		default:
			return rec, false, nil
		}
		rec.Kind = KindIssue
		rec.Action = p.GetAction()
		rec.Number = p.GetIssue().GetNumber()
		rec.Title = p.GetIssue().GetTitle()
		return rec, true, nil

	case *gh.PullRequestEvent:
		action := p.GetAction()
		switch action {
		case "opened", "closed", "reopened":
		default:
			return rec, false, nil
		}
		if action == "closed" && p.GetPullRequest().GetMerged() {
			action = "merged"
		}
		rec.Kind = KindPullRequest
		rec.Action = action
		rec.Number = p.GetPullRequest().GetNumber()
		// The events payload stopped carrying PR titles in 2025; fetch it
		// from the pulls endpoint instead.
		title, err := c.pullTitle(ctx, rec.Repo, rec.Number)
		if err != nil {
			return rec, false, err
		}
		rec.Title = title
		return rec, true, nil

	case *gh.ReleaseEvent:
		if p.GetAction() != "published" {
			return rec, false, nil
		}
		rec.Kind = KindRelease
		rec.Action = "published"
		rec.Tag = p.GetRelease().GetTagName()
		rec.Title = p.GetRelease().GetName()
		return rec, true, nil
	}

	return rec, false, nil
}

func (c *Client) pullTitle(ctx context.Context, fullName string, number int) (string, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return "", err
	}
	pr, _, err := c.rest.PullRequests.Get(ctx, owner, name, number)
	if err != nil {
		return "", mapRESTError(err)
	}
	return pr.GetTitle(), nil
}
