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

// Package github provides thin, command-oriented wrappers over the GitHub
// REST and GraphQL APIs. Each wrapper flattens API responses into one
// concrete record type per command and walks pagination transparently,
// yielding records one page at a time.
package github

import (
	"fmt"
	"time"
)

// QuotaRow is one rate-limit resource from the /rate_limit endpoint.
type QuotaRow struct {
	Resource  string    `json:"resource"`
	Used      int       `json:"used"`
	Remaining int       `json:"remaining"`
	Limit     int       `json:"limit"`
	Reset     time.Time `json:"reset"`
}

// Event kinds reported by the creations command.
const (
	KindRepository  = "repository"
	KindFork        = "fork"
	KindIssue       = "issue"
	KindPullRequest = "pull_request"
	KindRelease     = "release"
)

// CreationEvent is one user-feed event worth reporting: a repository
// creation, a fork, an issue or PR transition, or a release publication.
type CreationEvent struct {
	Time   time.Time `json:"time"`
	Kind   string    `json:"kind"`
	Action string    `json:"action"`
	Repo   string    `json:"repo"`
	Number int       `json:"number,omitempty"`
	Title  string    `json:"title,omitempty"`
	Tag    string    `json:"tag,omitempty"`
}

// RunRow is one GitHub Actions workflow run.
type RunRow struct {
	Repo      string    `json:"repo"`
	Name      string    `json:"name"`
	Number    int       `json:"number"`
	Attempt   int       `json:"attempt"`
	Title     string    `json:"title"`
	Event     string    `json:"event"`
	PRs       []int     `json:"prs,omitempty"`
	Branch    string    `json:"branch,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Repo is a summary of one repository from a listing.
type Repo struct {
	Owner    string `json:"owner"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Private  bool   `json:"private"`
	Fork     bool   `json:"fork"`
	Archived bool   `json:"archived"`
}

// Fork identifies a fork and its parent repository.
type Fork struct {
	Owner               string
	Name                string
	FullName            string
	ParentOwner         string
	ParentName          string
	ParentFullName      string
	ParentDefaultBranch string
}

// BranchStatus describes one fork branch relative to the parent repository.
type BranchStatus struct {
	Name string `json:"name"`

	// OnParent reports whether a branch of the same name exists on the
	// parent. When it does not, the comparison runs against the parent's
	// default branch.
	OnParent bool `json:"on_parent"`

	// Related is false when the branches share no common ancestor, in
	// which case Ahead and Behind are meaningless.
	Related bool `json:"related"`
	Ahead   int  `json:"ahead"`
	Behind  int  `json:"behind"`

	// PRNumber is the most recently created PR opened from this branch
	// against the parent, or 0 when none exists.
	PRNumber int    `json:"pr_number,omitempty"`
	PRState  string `json:"pr_state,omitempty"`
}

// IsEven reports whether the branch exists on the parent and is neither
// ahead of nor behind it.
func (b BranchStatus) IsEven() bool {
	return b.OnParent && b.Related && b.Ahead == 0 && b.Behind == 0
}

// AheadBehind renders the divergence cell: "=", "+a", "-b", "+a/-b" or
// "NO RELAT" for unrelated histories.
func (b BranchStatus) AheadBehind() string {
	if !b.Related {
		return "NO RELAT"
	}
	if b.Ahead == 0 && b.Behind == 0 {
		return "="
	}
	s := ""
	if b.Ahead > 0 {
		s += fmt.Sprintf("+%d", b.Ahead)
		if b.Behind > 0 {
			s += "/"
		}
	}
	if b.Behind > 0 {
		s += fmt.Sprintf("-%d", b.Behind)
	}
	return s
}

// ReactionCounts holds per-reaction totals for one issue or PR, in GitHub's
// shortcut vocabulary.
type ReactionCounts struct {
	ThumbsDown int `json:"-1,omitempty"`
	ThumbsUp   int `json:"+1,omitempty"`
	Laugh      int `json:"laugh,omitempty"`
	Hooray     int `json:"hooray,omitempty"`
	Confused   int `json:"confused,omitempty"`
	Heart      int `json:"heart,omitempty"`
	Rocket     int `json:"rocket,omitempty"`
	Eyes       int `json:"eyes,omitempty"`
}

// HasAny reports whether at least one reaction was recorded.
func (r ReactionCounts) HasAny() bool {
	return r.ThumbsDown > 0 || r.ThumbsUp > 0 || r.Laugh > 0 || r.Hooray > 0 ||
		r.Confused > 0 || r.Heart > 0 || r.Rocket > 0 || r.Eyes > 0
}

// IssueReactions is one open issue or PR together with its reactions.
type IssueReactions struct {
	Repo      string         `json:"repo"`
	Title     string         `json:"title"`
	URL       string         `json:"url"`
	IsPR      bool           `json:"is_pr"`
	Reactions ReactionCounts `json:"reactions"`
}

// Pull is a minimal pull request summary used by the view-pr command.
type Pull struct {
	Number  int    `json:"number"`
	State   string `json:"state"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
}
