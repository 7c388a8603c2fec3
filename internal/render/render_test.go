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

package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/varonathe/ghscripts/internal/github"
)

func TestQuotaTable(t *testing.T) {
	rows := []github.QuotaRow{
		{Resource: "core", Used: 10, Remaining: 4990, Limit: 5000, Reset: time.Unix(1700000000, 0)},
		{Resource: "graphql", Used: 500, Remaining: 4500, Limit: 5000, Reset: time.Unix(1700000123, 0)},
	}

	got := QuotaTable(rows)

	assert.Contains(t, got, "RESOURCE")
	assert.Contains(t, got, "core")
	assert.Contains(t, got, "4990")
	assert.Contains(t, got, "graphql")

	// Pure function: identical input yields byte-identical output.
	assert.Equal(t, got, QuotaTable(rows))
}

func TestCreationLine(t *testing.T) {
	ts := time.Date(2024, 3, 5, 12, 0, 0, 0, time.Local)
	prefix := "[2024-03-05 12:00] "

	tests := []struct {
		name string
		ev   github.CreationEvent
		want string
	}{
		{
			name: "created repository",
			ev:   github.CreationEvent{Time: ts, Kind: github.KindRepository, Action: "created", Repo: "octocat/newrepo"},
			want: prefix + "Created repository octocat/newrepo",
		},
		{
			name: "forked repository",
			ev:   github.CreationEvent{Time: ts, Kind: github.KindFork, Action: "forked", Repo: "octocat/fork"},
			want: prefix + "Forked repository octocat/fork",
		},
		{
			name: "opened issue",
			ev:   github.CreationEvent{Time: ts, Kind: github.KindIssue, Action: "opened", Repo: "octocat/tool", Number: 17, Title: "It breaks"},
			want: prefix + "Opened issue octocat/tool#17: It breaks",
		},
		{
			name: "merged pr",
			ev:   github.CreationEvent{Time: ts, Kind: github.KindPullRequest, Action: "merged", Repo: "octocat/tool", Number: 8, Title: "Add feature"},
			want: prefix + "Merged PR octocat/tool#8: Add feature",
		},
		{
			name: "published release",
			ev:   github.CreationEvent{Time: ts, Kind: github.KindRelease, Action: "published", Repo: "octocat/tool", Tag: "v1.2.0", Title: "Bugfixes"},
			want: prefix + "Published release for octocat/tool@v1.2.0: Bugfixes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CreationLine(tt.ev))
		})
	}
}

func TestRunLine(t *testing.T) {
	created := time.Date(2024, 3, 2, 10, 0, 0, 0, time.Local)

	run := github.RunRow{
		Name: "CI", Number: 42, Attempt: 2, Title: "Fix tests",
		Event: "pull_request", PRs: []int{7}, Branch: "fix",
		Status: "in_progress", CreatedAt: created,
	}
	got := RunLine(run)
	assert.Equal(t, "CI #42(attempt 2) - Fix tests - PR #7 - fix - in_progress - 2024-03-02 10:00", got)

	plain := github.RunRow{
		Name: "CI", Number: 41, Attempt: 1, Title: "CI",
		Event: "push", Branch: "main", Status: "queued", CreatedAt: created,
	}
	assert.Equal(t, "CI #41 - push - main - queued - 2024-03-02 10:00", RunLine(plain))
}

func TestBranchLine(t *testing.T) {
	tests := []struct {
		name   string
		status github.BranchStatus
		want   string
	}{
		{
			name:   "even branch",
			status: github.BranchStatus{Name: "main", OnParent: true, Related: true},
			want:   "  main                              =",
		},
		{
			name:   "diverged with pr",
			status: github.BranchStatus{Name: "fix", OnParent: true, Related: true, Ahead: 2, Behind: 1, PRNumber: 12, PRState: "merged"},
			want:   "  fix                               +2/-1      #12       MERGED",
		},
		{
			name:   "unrelated branch absent from parent",
			status: github.BranchStatus{Name: "wild", OnParent: false, Related: false},
			want:   "+ wild                              NO RELAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BranchLine(tt.status))
		})
	}
}

func TestAheadBehind(t *testing.T) {
	tests := []struct {
		status github.BranchStatus
		want   string
	}{
		{github.BranchStatus{Related: true}, "="},
		{github.BranchStatus{Related: true, Ahead: 3}, "+3"},
		{github.BranchStatus{Related: true, Behind: 4}, "-4"},
		{github.BranchStatus{Related: true, Ahead: 3, Behind: 4}, "+3/-4"},
		{github.BranchStatus{Related: false}, "NO RELAT"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.AheadBehind())
	}
}

func TestReactionBlock(t *testing.T) {
	ir := github.IssueReactions{
		Title: "Crash on start",
		URL:   "https://github.com/octocat/tool/issues/1",
		IsPR:  false,
		Reactions: github.ReactionCounts{
			ThumbsUp: 3,
			Eyes:     1,
		},
	}

	got := ReactionBlock(ir)
	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "Issue: Crash on start", lines[0])
	assert.Equal(t, "URL: https://github.com/octocat/tool/issues/1", lines[1])
	assert.Equal(t, "Reactions: \U0001F44D 3 \U0001F440 1", lines[2])

	pr := ir
	pr.IsPR = true
	assert.True(t, strings.HasPrefix(ReactionBlock(pr), "PR: "))
}

func TestContribTable(t *testing.T) {
	tbl := NewContribTable()
	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	// day2 added first: output ordering must not depend on insertion order.
	tbl.Add(day2, map[string]int{"octocat/b": 2})
	tbl.Add(day1, map[string]int{"octocat/a": 3, "octocat/b": 1})

	got := tbl.Render()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	header := lines[1]
	assert.Contains(t, header, "Repository")
	assert.Less(t, strings.Index(header, "2024-03-01"), strings.Index(header, "2024-03-02"),
		"date columns must be sorted")
	assert.Contains(t, header, "Total")

	// Rows sorted by repository name, TOTAL footer last.
	aIdx := strings.Index(got, "octocat/a")
	bIdx := strings.Index(got, "octocat/b")
	totalIdx := strings.Index(got, "TOTAL")
	assert.Less(t, aIdx, bIdx)
	assert.Less(t, bIdx, totalIdx)

	// Per-repo totals: a=3, b=3; grand total 6.
	assert.Contains(t, lines[len(lines)-2], "6")

	assert.Equal(t, got, tbl.Render(), "Render must be deterministic")
}

func TestHighlight(t *testing.T) {
	table := Table([]string{"A"}, [][]string{{"1"}, {"2"}, {"3"}}, nil)
	got := Highlight(table)

	assert.Contains(t, got, "\x1b[30;48;5;227m")
	assert.Contains(t, got, "\x1b[m")
	// Border and header lines stay untouched.
	assert.True(t, strings.HasPrefix(got, "+"))
}
