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

// Package render turns flattened API records into report text. Every
// function here is pure: identical records produce byte-identical output.
// No network or file I/O happens in this package.
package render

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/varonathe/ghscripts/internal/github"
)

const timestampLayout = "2006-01-02 15:04"

// Table renders headers and rows as an ASCII grid. aligns applies per
// column; pass nil for all-left.
func Table(headers []string, rows [][]string, aligns []int) string {
	var buf bytes.Buffer
	tw := tablewriter.NewWriter(&buf)
	tw.SetHeader(headers)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	if aligns != nil {
		tw.SetColumnAlignment(aligns)
	}
	tw.AppendBulk(rows)
	tw.Render()
	return buf.String()
}

// QuotaTable renders rate-limit rows. Filtering (used == 0) is the caller's
// concern; every given row becomes one line.
func QuotaTable(rows []github.QuotaRow) string {
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []string{
			row.Resource,
			fmt.Sprintf("%d", row.Used),
			fmt.Sprintf("%d", row.Remaining),
			fmt.Sprintf("%d", row.Limit),
			row.Reset.Local().Format("2006-01-02 15:04:05 MST"),
		})
	}
	return Table(
		[]string{"RESOURCE", "USED", "REMAINING", "TOTAL", "RESET"},
		cells,
		[]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT},
	)
}

// CreationLine renders one creations event as "[ts] <what happened>".
func CreationLine(ev github.CreationEvent) string {
	ts := ev.Time.Local().Format(timestampLayout)
	switch ev.Kind {
	case github.KindRepository:
		return fmt.Sprintf("[%s] Created repository %s", ts, ev.Repo)
	case github.KindFork:
		return fmt.Sprintf("[%s] Forked repository %s", ts, ev.Repo)
	case github.KindIssue:
		return fmt.Sprintf("[%s] %s issue %s#%d: %s", ts, capitalize(ev.Action), ev.Repo, ev.Number, ev.Title)
	case github.KindPullRequest:
		return fmt.Sprintf("[%s] %s PR %s#%d: %s", ts, capitalize(ev.Action), ev.Repo, ev.Number, ev.Title)
	case github.KindRelease:
		return fmt.Sprintf("[%s] %s release for %s@%s: %s", ts, capitalize(ev.Action), ev.Repo, ev.Tag, ev.Title)
	}
	return fmt.Sprintf("[%s] %s %s", ts, ev.Action, ev.Repo)
}

// Underline renders a section header with a dashed rule of matching width.
func Underline(header string) string {
	return header + "\n" + strings.Repeat("-", len([]rune(header)))
}

// RunLine renders one workflow run.
func RunLine(run github.RunRow) string {
	s := fmt.Sprintf("%s #%d", run.Name, run.Number)
	if run.Attempt > 1 {
		s += fmt.Sprintf("(attempt %d)", run.Attempt)
	}
	if run.Title != "" && run.Title != run.Name {
		s += " - " + run.Title
	}
	event := run.Event
	if event == "pull_request" {
		event = "PR"
	}
	s += " - " + event
	if len(run.PRs) > 0 {
		nums := make([]string, 0, len(run.PRs))
		for _, n := range run.PRs {
			nums = append(nums, fmt.Sprintf("#%d", n))
		}
		s += " " + strings.Join(nums, ", ")
	}
	if run.Branch != "" {
		s += " - " + run.Branch
	}
	s += fmt.Sprintf(" - %s - %s", run.Status, run.CreatedAt.Local().Format(timestampLayout))
	return s
}

// BranchLine renders one fork-branch status row. Branches absent from the
// parent are marked with a leading "+".
func BranchLine(b github.BranchStatus) string {
	plus := " "
	if !b.OnParent {
		plus = "+"
	}
	prNum := ""
	prState := ""
	if b.PRNumber != 0 {
		prNum = fmt.Sprintf("#%d", b.PRNumber)
		prState = strings.ToUpper(b.PRState)
	}
	return strings.TrimRight(
		fmt.Sprintf("%s %-32s  %-9s  %-8s  %s", plus, b.Name, b.AheadBehind(), prNum, prState),
		" ",
	)
}

// reactionOrder fixes the display order of reaction counts.
var reactionOrder = []struct {
	emoji string
	count func(github.ReactionCounts) int
}{
	{"\U0001F44E", func(r github.ReactionCounts) int { return r.ThumbsDown }},
	{"\U0001F44D", func(r github.ReactionCounts) int { return r.ThumbsUp }},
	{"\U0001F604", func(r github.ReactionCounts) int { return r.Laugh }},
	{"\U0001F389", func(r github.ReactionCounts) int { return r.Hooray }},
	{"\U0001F615", func(r github.ReactionCounts) int { return r.Confused }},
	{"❤️", func(r github.ReactionCounts) int { return r.Heart }},
	{"\U0001F680", func(r github.ReactionCounts) int { return r.Rocket }},
	{"\U0001F440", func(r github.ReactionCounts) int { return r.Eyes }},
}

// ReactionBlock renders one issue/PR with its non-zero reaction counts as a
// three-line block.
func ReactionBlock(ir github.IssueReactions) string {
	kind := "Issue:"
	if ir.IsPR {
		kind = "PR:"
	}
	var counts []string
	for _, r := range reactionOrder {
		if qty := r.count(ir.Reactions); qty > 0 {
			counts = append(counts, fmt.Sprintf("%s %d", r.emoji, qty))
		}
	}
	return fmt.Sprintf("%s %s\nURL: %s\nReactions: %s", kind, ir.Title, ir.URL, strings.Join(counts, " "))
}

// ContribTable accumulates commit counts per repository per day and renders
// them as one table: a column per day, a Total column, and a TOTAL footer
// row. Repositories sort by name; zero cells render empty.
type ContribTable struct {
	contribs map[string]map[string]int
	dates    map[string]bool
	totals   map[string]int
}

// NewContribTable returns an empty tabulator.
func NewContribTable() *ContribTable {
	return &ContribTable{
		contribs: make(map[string]map[string]int),
		dates:    make(map[string]bool),
		totals:   make(map[string]int),
	}
}

// Add records one day's per-repository commit counts.
func (t *ContribTable) Add(day time.Time, contribs map[string]int) {
	key := day.Format("2006-01-02")
	t.dates[key] = true
	for repo, count := range contribs {
		if t.contribs[repo] == nil {
			t.contribs[repo] = make(map[string]int)
		}
		t.contribs[repo][key] = count
		t.totals[key] += count
	}
}

// Render produces the table text.
func (t *ContribTable) Render() string {
	dates := make([]string, 0, len(t.dates))
	for d := range t.dates {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	repos := make([]string, 0, len(t.contribs))
	for repo := range t.contribs {
		repos = append(repos, repo)
	}
	sort.Strings(repos)

	headers := append([]string{"Repository"}, dates...)
	headers = append(headers, "Total")

	rows := make([][]string, 0, len(repos)+1)
	for _, repo := range repos {
		row := []string{repo}
		total := 0
		for _, d := range dates {
			row = append(row, cell(t.contribs[repo][d]))
			total += t.contribs[repo][d]
		}
		row = append(row, fmt.Sprintf("%d", total))
		rows = append(rows, row)
	}

	footer := []string{"TOTAL"}
	grand := 0
	for _, d := range dates {
		footer = append(footer, cell(t.totals[d]))
		grand += t.totals[d]
	}
	footer = append(footer, fmt.Sprintf("%d", grand))
	rows = append(rows, footer)

	aligns := make([]int, len(headers))
	aligns[0] = tablewriter.ALIGN_LEFT
	for i := 1; i < len(aligns); i++ {
		aligns[i] = tablewriter.ALIGN_RIGHT
	}
	return Table(headers, rows, aligns)
}

// cell renders a count, with zero shown as an empty cell.
func cell(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}

// Highlight colors alternating data rows of a rendered table with an ANSI
// background, keeping the border characters intact.
func Highlight(table string) string {
	lines := strings.Split(table, "\n")
	// Data rows start after the top border, header and header rule;
	// shading begins on the second data row.
	for i := 4; i < len(lines)-1; i += 2 {
		line := lines[i]
		if len(line) < 2 || !strings.HasPrefix(line, "|") {
			continue
		}
		lines[i] = "|\x1b[30;48;5;227m" + line[1:len(line)-1] + "\x1b[m|"
	}
	return strings.Join(lines, "\n")
}

// capitalize upper-cases the first letter of an ASCII word.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
