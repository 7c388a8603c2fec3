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
	"errors"
	"fmt"
	"sort"
	"strings"

	gh "github.com/google/go-github/v62/github"

	gherrors "github.com/varonathe/ghscripts/internal/errors"
)

const pageSize = 100

// AuthenticatedLogin returns the login of the token's user.
func (c *Client) AuthenticatedLogin(ctx context.Context) (string, error) {
	user, _, err := c.rest.Users.Get(ctx, "")
	if err != nil {
		return "", mapRESTError(err)
	}
	return user.GetLogin(), nil
}

// RateLimits returns one row per rate-limit resource, in a fixed order.
// Rows are returned regardless of usage; filtering is the caller's concern.
func (c *Client) RateLimits(ctx context.Context) ([]QuotaRow, error) {
	limits, _, err := c.rest.RateLimit.Get(ctx)
	if err != nil {
		return nil, mapRESTError(err)
	}

	resources := []struct {
		name string
		rate *gh.Rate
	}{
		{"core", limits.Core},
		{"search", limits.Search},
		{"graphql", limits.GraphQL},
		{"integration_manifest", limits.IntegrationManifest},
		{"source_import", limits.SourceImport},
		{"code_scanning_upload", limits.CodeScanningUpload},
		{"actions_runner_registration", limits.ActionsRunnerRegistration},
		{"scim", limits.SCIM},
		{"dependency_snapshots", limits.DependencySnapshots},
		{"code_search", limits.CodeSearch},
		{"audit_log", limits.AuditLog},
	}

	rows := make([]QuotaRow, 0, len(resources))
	for _, res := range resources {
		if res.rate == nil {
			continue
		}
		rows = append(rows, QuotaRow{
			Resource:  res.name,
			Used:      res.rate.Limit - res.rate.Remaining,
			Remaining: res.rate.Remaining,
			Limit:     res.rate.Limit,
			Reset:     res.rate.Reset.Time,
		})
	}
	return rows, nil
}

// Repos walks the repositories owned by owner, or by the authenticated user
// when owner is empty, invoking fn per repository in server order.
func (c *Client) Repos(ctx context.Context, owner string, fn func(Repo) error) error {
	list := func(page int) ([]*gh.Repository, *gh.Response, error) {
		if owner == "" {
			opts := &gh.RepositoryListByAuthenticatedUserOptions{
				Affiliation: "owner",
				ListOptions: gh.ListOptions{Page: page, PerPage: pageSize},
			}
			return c.rest.Repositories.ListByAuthenticatedUser(ctx, opts)
		}
		opts := &gh.RepositoryListByUserOptions{
			ListOptions: gh.ListOptions{Page: page, PerPage: pageSize},
		}
		return c.rest.Repositories.ListByUser(ctx, owner, opts)
	}

	page := 0
	for {
		repos, resp, err := list(page)
		if err != nil {
			return mapRESTError(err)
		}
		for _, r := range repos {
			if stop, err := stopOnErr(fn(convertRepo(r))); stop {
				return err
			}
		}
		if resp.NextPage == 0 {
			return nil
		}
		page = resp.NextPage
		c.log.Printf("fetching next page of repositories...")
	}
}

func convertRepo(r *gh.Repository) Repo {
	return Repo{
		Owner:    r.GetOwner().GetLogin(),
		Name:     r.GetName(),
		FullName: r.GetFullName(),
		Private:  r.GetPrivate(),
		Fork:     r.GetFork(),
		Archived: r.GetArchived(),
	}
}

// ForkInfo fetches a repository and resolves its parent. It fails when the
// repository is not a fork.
func (c *Client) ForkInfo(ctx context.Context, owner, name string) (*Fork, error) {
	r, _, err := c.rest.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, mapRESTError(err)
	}
	parent := r.GetParent()
	if parent == nil {
		return nil, fmt.Errorf("repository %s is not a fork", r.GetFullName())
	}
	return &Fork{
		Owner:               r.GetOwner().GetLogin(),
		Name:                r.GetName(),
		FullName:            r.GetFullName(),
		ParentOwner:         parent.GetOwner().GetLogin(),
		ParentName:          parent.GetName(),
		ParentFullName:      parent.GetFullName(),
		ParentDefaultBranch: parent.GetDefaultBranch(),
	}, nil
}

// BranchStatuses compares every branch of the fork against the parent and
// invokes fn per branch, ordered by branch name. For each branch it reports
// whether the branch exists on the parent, the ahead/behind counts relative
// to the matching parent branch (or the parent's default branch), and the
// most recently created PR opened from it.
func (c *Client) BranchStatuses(ctx context.Context, f *Fork, fn func(BranchStatus) error) error {
	var names []string
	opts := &gh.BranchListOptions{ListOptions: gh.ListOptions{PerPage: pageSize}}
	for {
		branches, resp, err := c.rest.Repositories.ListBranches(ctx, f.Owner, f.Name, opts)
		if err != nil {
			return mapRESTError(err)
		}
		for _, br := range branches {
			names = append(names, br.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	sort.Strings(names)

	for _, name := range names {
		status, err := c.branchStatus(ctx, f, name)
		if err != nil {
			return err
		}
		if stop, err := stopOnErr(fn(status)); stop {
			return err
		}
	}
	return nil
}

func (c *Client) branchStatus(ctx context.Context, f *Fork, branch string) (BranchStatus, error) {
	status := BranchStatus{Name: branch, OnParent: true, Related: true}

	cmpBranch := branch
	// GetBranch follows redirects itself and reports non-200 statuses as
	// plain errors rather than *ErrorResponse, so the 404 has to be read
	// from the response.
	if _, resp, err := c.rest.Repositories.GetBranch(ctx, f.ParentOwner, f.ParentName, branch, 0); err != nil {
		if !isMissing(resp, err) {
			return status, mapRESTError(err)
		}
		status.OnParent = false
		cmpBranch = f.ParentDefaultBranch
	}

	base := fmt.Sprintf("%s:%s", f.ParentOwner, cmpBranch)
	delta, _, err := c.rest.Repositories.CompareCommits(ctx, f.Owner, f.Name, base, branch, nil)
	if err != nil {
		// A 404 here means the branches share no common ancestor.
		if !is404(err) {
			return status, mapRESTError(err)
		}
		status.Related = false
	} else {
		status.Ahead = delta.GetAheadBy()
		status.Behind = delta.GetBehindBy()
	}

	// The head must carry the full fork name: a plain "owner:branch" head
	// returns nothing when either repository has been renamed.
	prOpts := &gh.PullRequestListOptions{
		State:       "all",
		Head:        fmt.Sprintf("%s:%s", f.FullName, branch),
		Sort:        "created",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: 1},
	}
	pulls, _, err := c.rest.PullRequests.List(ctx, f.ParentOwner, f.ParentName, prOpts)
	if err != nil {
		return status, mapRESTError(err)
	}
	if len(pulls) > 0 {
		pr := pulls[0]
		status.PRNumber = pr.GetNumber()
		if pr.MergedAt != nil {
			status.PRState = "merged"
		} else {
			status.PRState = pr.GetState()
		}
	}
	return status, nil
}

// OpenIssueReactions walks the open issues and PRs of a repository, invoking
// fn per item with its reaction counts, in server order.
func (c *Client) OpenIssueReactions(ctx context.Context, owner, repo string, fn func(IssueReactions) error) error {
	opts := &gh.IssueListByRepoOptions{
		State:       "open",
		ListOptions: gh.ListOptions{PerPage: pageSize},
	}
	for {
		issues, resp, err := c.rest.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return mapRESTError(err)
		}
		for _, issue := range issues {
			rec := IssueReactions{
				Repo:      fmt.Sprintf("%s/%s", owner, repo),
				Title:     issue.GetTitle(),
				URL:       issue.GetHTMLURL(),
				IsPR:      issue.IsPullRequest(),
				Reactions: convertReactions(issue.Reactions),
			}
			if stop, err := stopOnErr(fn(rec)); stop {
				return err
			}
		}
		if resp.NextPage == 0 {
			return nil
		}
		opts.Page = resp.NextPage
		c.log.Printf("fetching next page of issues for %s/%s...", owner, repo)
	}
}

func convertReactions(r *gh.Reactions) ReactionCounts {
	if r == nil {
		return ReactionCounts{}
	}
	return ReactionCounts{
		ThumbsDown: r.GetMinusOne(),
		ThumbsUp:   r.GetPlusOne(),
		Laugh:      r.GetLaugh(),
		Hooray:     r.GetHooray(),
		Confused:   r.GetConfused(),
		Heart:      r.GetHeart(),
		Rocket:     r.GetRocket(),
		Eyes:       r.GetEyes(),
	}
}

// LatestPullForHead returns the most recently created pull request in
// base from the given head ("owner/repo:branch" or "owner:branch"),
// regardless of state. Fails with ErrNoPullRequest when none exists.
func (c *Client) LatestPullForHead(ctx context.Context, baseOwner, baseRepo, head string) (*Pull, error) {
	opts := &gh.PullRequestListOptions{
		State:       "all",
		Head:        head,
		Sort:        "created",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: 1},
	}
	pulls, _, err := c.rest.PullRequests.List(ctx, baseOwner, baseRepo, opts)
	if err != nil {
		return nil, mapRESTError(err)
	}
	if len(pulls) == 0 {
		return nil, fmt.Errorf("no pull request for %s in %s/%s: %w",
			head, baseOwner, baseRepo, gherrors.ErrNoPullRequest)
	}
	pr := pulls[0]
	state := pr.GetState()
	if pr.MergedAt != nil {
		state = "merged"
	}
	return &Pull{
		Number:  pr.GetNumber(),
		State:   state,
		Title:   pr.GetTitle(),
		HTMLURL: pr.GetHTMLURL(),
	}, nil
}

// RepoByName fetches a repository summary together with its parent when the
// repository is a fork. The second result is nil for non-forks.
func (c *Client) RepoByName(ctx context.Context, owner, name string) (Repo, *Fork, error) {
	r, _, err := c.rest.Repositories.Get(ctx, owner, name)
	if err != nil {
		return Repo{}, nil, mapRESTError(err)
	}
	repo := convertRepo(r)
	if parent := r.GetParent(); parent != nil {
		return repo, &Fork{
			Owner:               repo.Owner,
			Name:                repo.Name,
			FullName:            repo.FullName,
			ParentOwner:         parent.GetOwner().GetLogin(),
			ParentName:          parent.GetName(),
			ParentFullName:      parent.GetFullName(),
			ParentDefaultBranch: parent.GetDefaultBranch(),
		}, nil
	}
	return repo, nil, nil
}

func is404(err error) bool {
	var er *gh.ErrorResponse
	return errors.As(err, &er) && er.Response != nil && er.Response.StatusCode == 404
}

// isMissing reports whether a fetch failed because the resource does not
// exist, covering both *ErrorResponse errors and plain errors whose status
// is only visible on the response.
func isMissing(resp *gh.Response, err error) bool {
	if is404(err) {
		return true
	}
	return resp != nil && resp.Response != nil && resp.Response.StatusCode == 404
}

// splitFullName splits "owner/repo" into its components.
func splitFullName(full string) (owner, name string, err error) {
	parts := strings.Split(full, "/")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return "", "", fmt.Errorf("invalid repository name %q, expected owner/repo", full)
	}
	return parts[0], parts[1], nil
}
